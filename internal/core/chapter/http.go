// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/inkwell/internal/platform/listing"
	requestutil "github.com/taibuivan/inkwell/internal/platform/request"
	"github.com/taibuivan/inkwell/internal/platform/respond"
	"github.com/taibuivan/inkwell/pkg/pagination"
)

const listPath = "/chapters"

// Handler serves the chapter endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a chapter [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the chapter endpoints. The caller applies authentication.
//
// # Endpoints
//   - GET    /       : List (or groups with ?group=manuscript)
//   - POST   /       : Create
//   - GET    /{id}   : Detail
//   - PUT    /{id}   : Update
//   - DELETE /{id}   : Delete
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.remove)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params, err := listing.FromRequest(request, ListFields)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if request.URL.Query().Get(ParamGroup) == GroupByManuscript {
		groups, err := handler.service.Grouped(request.Context(), userID, params)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, groups)
		return
	}

	chapters, err := handler.service.List(request.Context(), userID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)
	respond.Paginated(writer, pagination.Window(chapters, page), pagination.NewMeta(page, len(chapters)))
}

/*
ListForManuscript serves GET /api/v1/manuscripts/{id}/chapters.

Response:
  - 200: []Chapter ordered by chapter number
*/
func (handler *Handler) ListForManuscript(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	manuscriptID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapters, err := handler.service.ListByManuscript(request.Context(), userID, manuscriptID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, chapters)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, err := handler.service.Get(request.Context(), userID, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, chapter)
}

/*
POST /api/v1/chapters

Request:
  - Body: Input
  - Query: from

Response:
  - 201: {"data": Chapter, "return_to": "..."}
  - 400: Validation failure, nothing stored
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, err := handler.service.Create(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Mutated(writer, http.StatusCreated, chapter, requestutil.ReturnTo(request, listPath))
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, err := handler.service.Update(request.Context(), userID, id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Mutated(writer, http.StatusOK, chapter, requestutil.ReturnTo(request, listPath))
}

func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), userID, id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Mutated(writer, http.StatusNoContent, nil, requestutil.ReturnTo(request, listPath))
}
