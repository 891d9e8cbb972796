// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package character

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/inkwell/internal/platform/listing"
	requestutil "github.com/taibuivan/inkwell/internal/platform/request"
	"github.com/taibuivan/inkwell/internal/platform/respond"
	"github.com/taibuivan/inkwell/pkg/pagination"
)

const listPath = "/characters"

// Handler serves the character endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a character [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the character endpoints. The caller applies authentication.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.remove)
}

/*
GET /api/v1/characters

Request:
  - Query: q, role, manuscript, sort, page, limit

Response:
  - 200: []Character with pagination meta
*/
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

	characters, err := handler.service.List(request.Context(), userID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)
	respond.Paginated(writer, pagination.Window(characters, page), pagination.NewMeta(page, len(characters)))
}

// ListForManuscript serves GET /api/v1/manuscripts/{id}/characters.
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

	characters, err := handler.service.ListByManuscript(request.Context(), userID, manuscriptID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, characters)
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

	character, err := handler.service.Get(request.Context(), userID, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, character)
}

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

	character, err := handler.service.Create(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Mutated(writer, http.StatusCreated, character, requestutil.ReturnTo(request, listPath))
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

	character, err := handler.service.Update(request.Context(), userID, id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Mutated(writer, http.StatusOK, character, requestutil.ReturnTo(request, listPath))
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
