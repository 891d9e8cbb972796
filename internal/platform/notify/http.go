// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notify

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/taibuivan/inkwell/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/inkwell/internal/platform/request"
	"github.com/taibuivan/inkwell/internal/platform/respond"
	"github.com/taibuivan/inkwell/internal/platform/validate"
)

// Stream timing.
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Handler exposes the caller's toasts over HTTP.
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewHandler constructs a toast [Handler].
//
// With allowAnyOrigin false the websocket upgrade only accepts same-origin
// requests.
func NewHandler(hub *Hub, allowAnyOrigin bool) *Handler {
	upgrader := websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024}
	if allowAnyOrigin {
		upgrader.CheckOrigin = func(*http.Request) bool { return true }
	}
	return &Handler{hub: hub, upgrader: upgrader}
}

// Routes returns the toast router. Every route requires authentication.
//
// # Endpoints
//   - GET    /        : Visible toasts.
//   - POST   /        : Adds a client-originated toast.
//   - DELETE /{id}    : Dismisses one toast.
//
// The websocket [Handler.Stream] is mounted separately so it escapes the
// per-request timeout.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.list)
	router.Post("/", handler.add)
	router.Delete("/{id}", handler.remove)
	return router
}

type addToastRequest struct {
	Message  string `json:"message"`
	Kind     Kind   `json:"type"`
	Duration int64  `json:"duration"`
}

/*
GET /api/v1/toasts

Response:
  - 200: []Toast
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, handler.hub.For(userID).List())
}

/*
POST /api/v1/toasts

Request:
  - Body: addToastRequest (message, type, duration in milliseconds)

Response:
  - 201: {"id": "..."}
  - 400: Validation failure
*/
func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input addToastRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required("message", input.Message).
		MaxLen("message", input.Message, 500).
		Custom("type", !input.Kind.Valid(), "Must be one of: success, error, warning, info").
		Custom("duration", input.Duration < 0, "Must not be negative")
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	id := handler.hub.Add(userID, input.Message, input.Kind, time.Duration(input.Duration)*time.Millisecond)
	respond.Created(writer, map[string]string{"id": id})
}

/*
DELETE /api/v1/toasts/{id}

Dismissal is idempotent: an unknown or expired ID still answers 204.
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	handler.hub.For(userID).Remove(requestutil.Param(request, "id"))
	respond.NoContent(writer)
}

/*
Stream serves GET /api/v1/toasts/stream.

Upgrades to a websocket and pushes the full toast list after every change.
Client messages are ignored. The connection is kept alive with pings.
*/
func (handler *Handler) Stream(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	logger := ctxutil.GetLogger(request.Context())

	connection, err := handler.upgrader.Upgrade(writer, request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		logger.Warn("toast_stream_upgrade_failed", slog.Any("error", err))
		return
	}
	defer connection.Close()

	updates, cancel := handler.hub.Subscribe(userID)
	defer cancel()

	// The read loop only exists to process pongs and notice disconnects.
	done := make(chan struct{})
	go func() {
		defer close(done)
		connection.SetReadLimit(512)
		_ = connection.SetReadDeadline(time.Now().Add(pongWait))
		connection.SetPongHandler(func(string) error {
			return connection.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := connection.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case snapshot, ok := <-updates:
			_ = connection.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = connection.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := connection.WriteJSON(snapshot); err != nil {
				logger.Debug("toast_stream_write_failed", slog.Any("error", err))
				return
			}

		case <-ticker.C:
			_ = connection.SetWriteDeadline(time.Now().Add(writeWait))
			if err := connection.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-done:
			return
		}
	}
}
