// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package character_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/core/character"
	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/ctxutil"
	"github.com/taibuivan/inkwell/internal/platform/listing"
	"github.com/taibuivan/inkwell/internal/platform/notify"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/internal/platform/table"
	"github.com/taibuivan/inkwell/pkg/pointer"
)

func newService(t *testing.T) (*character.Service, *table.MemoryClient, *notify.Recorder) {
	t.Helper()
	client := table.NewMemoryClient(character.Schema)
	recorder := &notify.Recorder{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return character.NewService(character.NewTableRepository(client), recorder, logger), client, recorder
}

func names(characters []*character.Character) []string {
	result := make([]string, len(characters))
	for i, c := range characters {
		result[i] = c.Name
	}
	return result
}

/*
TestCreate_Validation covers the name, age and biography rules.
*/
func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   character.Input
		details []apperr.FieldError
	}{
		{
			name:    "missing name",
			input:   character.Input{},
			details: []apperr.FieldError{{Field: "name", Message: "Name is required"}},
		},
		{
			name:    "short name",
			input:   character.Input{Name: "X"},
			details: []apperr.FieldError{{Field: "name", Message: "Name must be at least 2 characters"}},
		},
		{
			name:    "long name",
			input:   character.Input{Name: strings.Repeat("n", 101)},
			details: []apperr.FieldError{{Field: "name", Message: "Name must be at most 100 characters"}},
		},
		{
			name:    "too old",
			input:   character.Input{Name: "Mara", Age: pointer.To(151.0)},
			details: []apperr.FieldError{{Field: "age", Message: "Age must be between 0 and 150"}},
		},
		{
			name:    "negative age",
			input:   character.Input{Name: "Mara", Age: pointer.To(-0.5)},
			details: []apperr.FieldError{{Field: "age", Message: "Age must be between 0 and 150"}},
		},
		{
			name: "long biography",
			input: character.Input{Name: "Mara", Profile: character.Profile{
				Biography: pointer.To(strings.Repeat("b", 10001)),
			}},
			details: []apperr.FieldError{{Field: "biography", Message: "Biography must be at most 10000 characters"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, client, recorder := newService(t)

			_, err := service.Create(context.Background(), "alice", tt.input)

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.details, appErr.Details)
			assert.Zero(t, client.Calls())
			assert.Equal(t, notify.InvalidForm, recorder.Last().Message)
		})
	}
}

/*
TestCreate_Normalises floors the age and drops blank profile text.
*/
func TestCreate_Normalises(t *testing.T) {
	service, _, recorder := newService(t)

	created, err := service.Create(context.Background(), "alice", character.Input{
		Name: " Mara Quell ",
		Age:  pointer.To(34.9),
		Profile: character.Profile{
			Role:  pointer.To(" Protagonist "),
			Motto: pointer.To("  "),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Mara Quell", created.Name)
	assert.Equal(t, pointer.To(34), created.Age)
	assert.Equal(t, pointer.To("Protagonist"), created.Role)
	assert.Nil(t, created.Motto)
	assert.Equal(t, "MQ", created.Initials())
	assert.Equal(t, "Character created successfully", recorder.Last().Message)
}

/*
TestList_RoleFilter narrows by role and searches the role text.
*/
func TestList_RoleFilter(t *testing.T) {
	service, _, _ := newService(t)
	ctx := context.Background()

	for _, input := range []character.Input{
		{Name: "Mara", Profile: character.Profile{Role: pointer.To("Protagonist")}},
		{Name: "Voss", Profile: character.Profile{Role: pointer.To("Antagonist")}},
		{Name: "Pell"},
	} {
		_, err := service.Create(ctx, "alice", input)
		require.NoError(t, err)
	}

	filtered, err := service.List(ctx, "alice", listing.Params{
		Filters: map[string]string{character.ColumnRole: "Antagonist"},
		Sort:    listing.SortAlphabetical,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Voss"}, names(filtered))

	searched, err := service.List(ctx, "alice", listing.Params{Search: "agonist", Sort: listing.SortAlphabetical})
	require.NoError(t, err)
	assert.Equal(t, []string{"Mara", "Voss"}, names(searched))
}

/*
TestListByManuscript orders a cast by name.
*/
func TestListByManuscript(t *testing.T) {
	service, _, _ := newService(t)
	ctx := context.Background()

	for _, name := range []string{"Voss", "Mara", "Pell"} {
		_, err := service.Create(ctx, "alice", character.Input{Name: name, ManuscriptID: pointer.To(int64(3))})
		require.NoError(t, err)
	}
	_, err := service.Create(ctx, "alice", character.Input{Name: "Adle"})
	require.NoError(t, err)

	cast, err := service.ListByManuscript(ctx, "alice", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mara", "Pell", "Voss"}, names(cast))
}

/*
TestHTTP_RoundTrip creates, reads and deletes over the router.
*/
func TestHTTP_RoundTrip(t *testing.T) {
	service, _, recorder := newService(t)

	router := chi.NewRouter()
	router.Route("/characters", character.NewHandler(service).RegisterRoutes)

	send := func(method, target string, body any) *httptest.ResponseRecorder {
		var payload io.Reader
		if body != nil {
			encoded, err := json.Marshal(body)
			require.NoError(t, err)
			payload = bytes.NewReader(encoded)
		}
		request := httptest.NewRequest(method, target, payload)
		request = request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: "alice"}))
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)
		return response
	}

	response := send(http.MethodPost, "/characters?from=notes", map[string]any{"name": "Mara", "eye_color": "Grey"})
	require.Equal(t, http.StatusCreated, response.Code)
	assert.Equal(t, "/notes", response.Header().Get("X-Return-To"))

	response = send(http.MethodGet, "/characters/1", nil)
	require.Equal(t, http.StatusOK, response.Code)

	var body struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &body))
	assert.Equal(t, "Mara", body.Data["name"])
	assert.Equal(t, "Grey", body.Data["eye_color"])
	assert.Nil(t, body.Data["age"])

	response = send(http.MethodDelete, "/characters/1", nil)
	assert.Equal(t, http.StatusNoContent, response.Code)
	assert.Equal(t, "/characters", response.Header().Get("X-Return-To"))
	assert.Equal(t, "Character deleted successfully", recorder.Last().Message)

	response = send(http.MethodGet, "/characters/1", nil)
	assert.Equal(t, http.StatusNotFound, response.Code)
}
