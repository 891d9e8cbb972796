// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/api"
	"github.com/taibuivan/inkwell/internal/core/chapter"
	"github.com/taibuivan/inkwell/internal/core/character"
	"github.com/taibuivan/inkwell/internal/core/dashboard"
	"github.com/taibuivan/inkwell/internal/core/genre"
	"github.com/taibuivan/inkwell/internal/core/manuscript"
	"github.com/taibuivan/inkwell/internal/core/note"
	"github.com/taibuivan/inkwell/internal/platform/config"
	"github.com/taibuivan/inkwell/internal/platform/constants"
	"github.com/taibuivan/inkwell/internal/platform/notify"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/internal/platform/table"
	"github.com/taibuivan/inkwell/internal/users/auth"
)

type harness struct {
	handler http.Handler
	tokens  *sec.TokenService
}

func newHarness(t *testing.T, sessions api.Checker) *harness {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	tokens := sec.NewTokenServiceFromKeys(key, &key.PublicKey, constants.AuthIssuer)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := notify.NewHub(nil, log)
	t.Cleanup(hub.Close)

	tables := table.NewMemoryClient(manuscript.Schema, chapter.Schema, character.Schema, note.Schema, genre.Schema)
	manuscripts := manuscript.NewService(manuscript.NewTableRepository(tables), hub, log)
	chapters := chapter.NewService(chapter.NewTableRepository(tables), manuscripts, hub, log)
	characters := character.NewService(character.NewTableRepository(tables), hub, log)
	notes := note.NewService(note.NewTableRepository(tables), hub, log)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		Database: func(context.Context) error { return nil },
		Sessions: sessions,
	}, log)

	cfg := &config.Config{ServerPort: "0", Environment: config.EnvDevelopment}
	server := api.NewServer(ctx, cfg, log, tokens, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(auth.NewService(nil, nil, tokens, log), false),
		Dashboard: dashboard.NewHandler(dashboard.NewService(dashboard.Sources{
			Manuscripts: manuscripts,
			Characters:  characters,
			Chapters:    chapters,
			Notes:       notes,
		}, log)),
		Manuscripts: manuscript.NewHandler(manuscripts),
		Chapters:    chapter.NewHandler(chapters),
		Characters:  character.NewHandler(characters),
		Notes:       note.NewHandler(notes),
		Genres:      genre.NewHandler(genre.NewService(genre.NewTableRepository(tables), log)),
		Toasts:      notify.NewHandler(hub, true),
	})

	return &harness{handler: server.Handler(), tokens: tokens}
}

func (h *harness) bearer(t *testing.T, userID string) string {
	t.Helper()
	token, err := h.tokens.GenerateAccessToken(userID, userID, string(sec.RoleWriter), time.Minute)
	require.NoError(t, err)
	return "Bearer " + token
}

func (h *harness) do(t *testing.T, method, target, userID, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, target, reader)
	if userID != "" {
		request.Header.Set("Authorization", h.bearer(t, userID))
	}

	recorder := httptest.NewRecorder()
	h.handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestHealth answers liveness and reports each readiness dependency.
*/
func TestHealth(t *testing.T) {
	healthy := newHarness(t, func(context.Context) error { return nil })
	assert.Equal(t, http.StatusOK, healthy.do(t, http.MethodGet, "/health", "", "").Code)

	ready := healthy.do(t, http.MethodGet, "/ready", "", "")
	assert.Equal(t, http.StatusOK, ready.Code)
	assert.Contains(t, ready.Body.String(), `"status":"ready"`)

	broken := newHarness(t, func(context.Context) error { return errors.New("redis down") })
	degraded := broken.do(t, http.MethodGet, "/ready", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, degraded.Code)
	assert.Contains(t, degraded.Body.String(), `"status":"degraded"`)
	assert.Contains(t, degraded.Body.String(), "redis down")
}

/*
TestRouter_PrivateRoutes rejects anonymous callers, serves the owner and
keeps other users out.
*/
func TestRouter_PrivateRoutes(t *testing.T) {
	h := newHarness(t, nil)

	assert.Equal(t, http.StatusUnauthorized, h.do(t, http.MethodGet, "/api/v1/manuscripts", "", "").Code)
	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/api/v1/genres", "", "").Code)

	created := h.do(t, http.MethodPost, "/api/v1/manuscripts?from=dashboard", "alice", `{"title":"Dune"}`)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	assert.Equal(t, "/", created.Header().Get(constants.HeaderXReturnTo))

	var envelope struct {
		Data manuscript.Manuscript `json:"data"`
	}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &envelope))
	id := strconv.FormatInt(envelope.Data.ID, 10)

	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/api/v1/manuscripts/"+id, "alice", "").Code)
	assert.Equal(t, http.StatusNotFound, h.do(t, http.MethodGet, "/api/v1/manuscripts/"+id, "bob", "").Code)

	chapters := h.do(t, http.MethodGet, "/api/v1/manuscripts/"+id+"/chapters", "alice", "")
	assert.Equal(t, http.StatusOK, chapters.Code)

	summary := h.do(t, http.MethodGet, "/api/v1/dashboard", "alice", "")
	assert.Equal(t, http.StatusOK, summary.Code)
	assert.Contains(t, summary.Body.String(), `"Dune"`)

	toasts := h.do(t, http.MethodGet, "/api/v1/toasts", "alice", "")
	assert.Contains(t, toasts.Body.String(), "Manuscript created successfully")
	assert.NotContains(t, h.do(t, http.MethodGet, "/api/v1/toasts", "bob", "").Body.String(), "Manuscript")
}

/*
TestRouter_InvalidToken answers 401 before reaching a handler.
*/
func TestRouter_InvalidToken(t *testing.T) {
	h := newHarness(t, nil)

	request := httptest.NewRequest(http.MethodGet, "/api/v1/manuscripts", nil)
	request.Header.Set("Authorization", "Bearer not-a-jwt")
	recorder := httptest.NewRecorder()
	h.handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestRouter_ListPastLastPage answers an empty page for a huge page number.
*/
func TestRouter_ListPastLastPage(t *testing.T) {
	h := newHarness(t, nil)
	require.Equal(t, http.StatusCreated, h.do(t, http.MethodPost, "/api/v1/notes", "alice", `{"title":"Plot hole"}`).Code)

	for _, path := range []string{"/api/v1/manuscripts", "/api/v1/chapters", "/api/v1/characters", "/api/v1/notes"} {
		response := h.do(t, http.MethodGet, path+"?page=9223372036854775807&limit=100", "alice", "")
		assert.Equal(t, http.StatusOK, response.Code, path)
		assert.NotContains(t, response.Body.String(), "Plot hole", path)
	}
}

/*
TestToastStream sends the current list on connect and a new snapshot after
every change.
*/
func TestToastStream(t *testing.T) {
	h := newHarness(t, nil)
	server := httptest.NewServer(h.handler)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/toasts/stream"

	_, response, err := websocket.DefaultDialer.Dial(url, nil)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.NotNil(t, response)
	response.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, response.StatusCode)

	header := http.Header{}
	header.Set("Authorization", h.bearer(t, "alice"))
	connection, response, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	defer connection.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, response.StatusCode)

	require.NoError(t, connection.SetReadDeadline(time.Now().Add(5*time.Second)))

	type wireToast struct {
		ID       string      `json:"id"`
		Message  string      `json:"message"`
		Kind     notify.Kind `json:"type"`
		Duration int64       `json:"duration"`
	}

	var snapshot []wireToast
	require.NoError(t, connection.ReadJSON(&snapshot))
	assert.Empty(t, snapshot)

	created := h.do(t, http.MethodPost, "/api/v1/chapters", "alice", `{"name_chapter":"Opening"}`)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())

	require.NoError(t, connection.ReadJSON(&snapshot))
	require.Len(t, snapshot, 1)
	assert.Equal(t, "Chapter created successfully", snapshot[0].Message)
	assert.Equal(t, notify.KindSuccess, snapshot[0].Kind)
	assert.Equal(t, notify.DefaultDuration.Milliseconds(), snapshot[0].Duration)
}
