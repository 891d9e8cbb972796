// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/inkwell/internal/platform/middleware"
	requestutil "github.com/taibuivan/inkwell/internal/platform/request"
	"github.com/taibuivan/inkwell/internal/platform/respond"
	"github.com/taibuivan/inkwell/internal/platform/sec"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the catalogue. Reading is public, adding needs an admin.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listGenres)
	router.With(middleware.RequireRole(sec.RoleAdmin)).Post("/", handler.createGenre)
}

/*
GET /api/v1/genres

Query:
  - view=sections groups the list by category
*/
func (handler *Handler) listGenres(writer http.ResponseWriter, request *http.Request) {
	genres, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if request.URL.Query().Get("view") == "sections" {
		respond.OK(writer, Sections(genres))
		return
	}
	respond.OK(writer, genres)
}

type createGenreRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

func (handler *Handler) createGenre(writer http.ResponseWriter, request *http.Request) {
	var input createGenreRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	genre, err := handler.service.Add(request.Context(), input.Name, input.Category)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, genre)
}
