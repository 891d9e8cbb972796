// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires the HTTP router, the middleware chain and every domain
handler into a runnable [http.Server].

Only this package and cmd/api build net/http servers.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/inkwell/internal/core/chapter"
	"github.com/taibuivan/inkwell/internal/core/character"
	"github.com/taibuivan/inkwell/internal/core/dashboard"
	"github.com/taibuivan/inkwell/internal/core/genre"
	"github.com/taibuivan/inkwell/internal/core/manuscript"
	"github.com/taibuivan/inkwell/internal/core/note"
	"github.com/taibuivan/inkwell/internal/platform/config"
	"github.com/taibuivan/inkwell/internal/platform/constants"
	"github.com/taibuivan/inkwell/internal/platform/middleware"
	"github.com/taibuivan/inkwell/internal/platform/notify"
	"github.com/taibuivan/inkwell/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups the domain handler sets.
type Handlers struct {
	// Liveness always answers 200 while the process is up.
	Liveness http.HandlerFunc

	// Readiness answers 200 when every backing store responds.
	Readiness http.HandlerFunc

	Auth        *auth.Handler
	Dashboard   *dashboard.Handler
	Manuscripts *manuscript.Handler
	Chapters    *chapter.Handler
	Characters  *character.Handler
	Notes       *note.Handler
	Genres      *genre.Handler
	Toasts      *notify.Handler
}

// # Server Initialization

/*
NewServer constructs the chi router with the full middleware chain and
registers all route groups.

Every route except the toast stream runs under [constants.GlobalRequestTimeout];
the stream is a long-lived websocket and would be cut off by it.
*/
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	r.With(middleware.RequireAuth).Get("/api/v1/toasts/stream", h.Toasts.Stream)

	r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(constants.GlobalRequestTimeout))

		// # Infrastructure Endpoints
		r.Get("/health", h.Liveness)
		r.Get("/ready", h.Readiness)

		// # Application API
		r.Route("/api/v1", func(api chi.Router) {
			api.Mount("/auth", h.Auth.Routes())
			api.Route("/genres", h.Genres.RegisterRoutes)

			api.Group(func(private chi.Router) {
				private.Use(middleware.RequireAuth)

				private.Route("/dashboard", h.Dashboard.RegisterRoutes)
				private.Route("/manuscripts", func(manuscripts chi.Router) {
					h.Manuscripts.RegisterRoutes(manuscripts)
					manuscripts.Get("/{id}/chapters", h.Chapters.ListForManuscript)
					manuscripts.Get("/{id}/characters", h.Characters.ListForManuscript)
					manuscripts.Get("/{id}/notes", h.Notes.ListForManuscript)
				})
				private.Route("/chapters", h.Chapters.RegisterRoutes)
				private.Route("/characters", h.Characters.RegisterRoutes)
				private.Route("/notes", h.Notes.RegisterRoutes)
				private.Mount("/toasts", h.Toasts.Routes())
			})
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
