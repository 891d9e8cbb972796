// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/core/genre"
	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/ctxutil"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/internal/platform/table"
)

const seedFile = `
categories:
  - name: Non-Fiction
    genres: [Memoir, " Essay "]
  - name: Fiction
    genres: [Thriller, Fantasy, ""]
  - name: Poetry
    genres: [Sonnets]
`

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "genres.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newService() *genre.Service {
	client := table.NewMemoryClient(genre.Schema)
	return genre.NewService(genre.NewTableRepository(client), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func genreNames(genres []*genre.Genre) []string {
	names := make([]string, len(genres))
	for i, g := range genres {
		names[i] = g.Name
	}
	return names
}

/*
TestSeed_Idempotent loads the catalogue once and lists it by category then name.
*/
func TestSeed_Idempotent(t *testing.T) {
	catalogue, err := genre.LoadCatalogue(writeSeed(t, seedFile))
	require.NoError(t, err)

	service := newService()
	ctx := context.Background()

	inserted, err := service.Seed(ctx, catalogue)
	require.NoError(t, err)
	assert.Equal(t, 5, inserted)

	inserted, err = service.Seed(ctx, catalogue)
	require.NoError(t, err)
	assert.Zero(t, inserted)

	genres, err := service.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fantasy", "Thriller", "Essay", "Memoir", "Sonnets"}, genreNames(genres))
}

/*
TestLoadCatalogue_Errors wraps read and parse failures.
*/
func TestLoadCatalogue_Errors(t *testing.T) {
	_, err := genre.LoadCatalogue(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = genre.LoadCatalogue(writeSeed(t, "categories: [oops"))
	assert.Error(t, err)
}

/*
TestSections groups the picker options.
*/
func TestSections(t *testing.T) {
	genres := []*genre.Genre{
		{Name: "Fantasy", Category: "fiction"},
		{Name: "Memoir", Category: " Non Fiction "},
		{Name: "Sonnets", Category: "Poetry"},
		{Name: "Essay", Category: "NON-FICTION"},
		{Name: "Loose", Category: " "},
	}

	sections := genre.Sections(genres)

	require.Len(t, sections, 3)
	assert.Equal(t, genre.SectionFiction, sections[0].Label)
	assert.Equal(t, []string{"Memoir", "Essay"}, genreNames(sections[1].Genres))
	assert.Equal(t, genre.SectionOther, sections[2].Label)
	assert.Empty(t, genre.Sections(nil))
}

/*
TestAdd trims input, validates it and rejects names already present in any case.
*/
func TestAdd(t *testing.T) {
	service := newService()
	ctx := context.Background()

	added, err := service.Add(ctx, "  Solarpunk ", " Fiction ")
	require.NoError(t, err)
	assert.Equal(t, "Solarpunk", added.Name)
	assert.Equal(t, "Fiction", added.Category)

	_, err = service.Add(ctx, "SOLARPUNK", "Fiction")
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	_, err = service.Add(ctx, " ", strings.Repeat("c", genre.MaxNameLength+1))
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeValidation, appErr.Code)
	assert.Len(t, appErr.Details, 2)
}

/*
TestCreateGenre_RequiresAdmin lets admins add genres and keeps writers out.
*/
func TestCreateGenre_RequiresAdmin(t *testing.T) {
	router := chi.NewRouter()
	router.Route("/genres", genre.NewHandler(newService()).RegisterRoutes)

	post := func(role string) int {
		request := httptest.NewRequest(http.MethodPost, "/genres", strings.NewReader(`{"name":"Cozy","category":"Fiction"}`))
		if role != "" {
			request = request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: "u1", Role: role}))
		}
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		return recorder.Code
	}

	assert.Equal(t, http.StatusUnauthorized, post(""))
	assert.Equal(t, http.StatusForbidden, post(string(sec.RoleWriter)))
	assert.Equal(t, http.StatusCreated, post(string(sec.RoleAdmin)))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/genres", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Cozy")
}
