// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manuscript

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/inkwell/internal/platform/listing"
	requestutil "github.com/taibuivan/inkwell/internal/platform/request"
	"github.com/taibuivan/inkwell/internal/platform/respond"
	"github.com/taibuivan/inkwell/pkg/pagination"
)

// listPath is where manuscript flows return when no 'from' is given.
const listPath = "/manuscripts"

// Handler serves the manuscript endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a manuscript [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the manuscript endpoints. The caller applies authentication.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.remove)
}

/*
GET /api/v1/manuscripts

Request:
  - Query: q, status, genre, sort, page, limit

Response:
  - 200: []Manuscript with pagination meta
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

	manuscripts, err := handler.service.List(request.Context(), userID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)
	respond.Paginated(writer, pagination.Window(manuscripts, page), pagination.NewMeta(page, len(manuscripts)))
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

	manuscript, err := handler.service.Get(request.Context(), userID, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, manuscript)
}

/*
POST /api/v1/manuscripts

Request:
  - Body: Input
  - Query: from (return-to page)

Response:
  - 201: {"data": Manuscript, "return_to": "..."}
  - 400: Validation failure
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

	manuscript, err := handler.service.Create(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Mutated(writer, http.StatusCreated, manuscript, requestutil.ReturnTo(request, listPath))
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

	manuscript, err := handler.service.Update(request.Context(), userID, id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Mutated(writer, http.StatusOK, manuscript, requestutil.ReturnTo(request, listPath))
}

/*
DELETE /api/v1/manuscripts/{id}

Only the manuscript row is removed.

Response:
  - 204: Deleted, X-Return-To set
  - 404: Not found
*/
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
