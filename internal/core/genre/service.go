// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/dberr"
	"github.com/taibuivan/inkwell/internal/platform/validate"
)

// MaxNameLength bounds genre and category names.
const MaxNameLength = 100

const Resource = "Genre"

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (service *Service) List(context context.Context) ([]*Genre, error) {
	genres, err := service.repo.List(context)
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return genres, nil
}

/*
Seed inserts the catalogue entries whose name is not stored yet.

Names compare case-insensitively, so running it twice is a no-op.

Returns:
  - int: Number of genres inserted
  - error: Storage failures
*/
func (service *Service) Seed(context context.Context, catalogue Catalogue) (int, error) {
	existing, err := service.repo.List(context)
	if err != nil {
		return 0, dberr.Wrap(err, Resource)
	}

	known := make(map[string]bool, len(existing))
	for _, genre := range existing {
		known[strings.ToLower(genre.Name)] = true
	}

	inserted := 0
	for _, entry := range catalogue.Entries() {
		key := strings.ToLower(entry.Name)
		if known[key] {
			continue
		}
		if _, err := service.repo.Create(context, entry.Name, entry.Category); err != nil {
			return inserted, dberr.Wrap(err, Resource)
		}
		known[key] = true
		inserted++
	}

	service.logger.Info("genres_seeded", slog.Int("inserted", inserted), slog.Int("existing", len(existing)))
	return inserted, nil
}

// Add stores one genre outside the seeded catalogue. Names are unique
// regardless of case.
func (service *Service) Add(context context.Context, name, category string) (*Genre, error) {
	name = strings.TrimSpace(name)
	category = strings.TrimSpace(category)

	validator := &validate.Validator{}
	validator.Required("name", name).
		MaxLen("name", name, MaxNameLength).
		Required("category", category).
		MaxLen("category", category, MaxNameLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	existing, err := service.repo.List(context)
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	for _, genre := range existing {
		if strings.EqualFold(genre.Name, name) {
			return nil, apperr.Conflict("Genre already exists")
		}
	}

	genre, err := service.repo.Create(context, name, category)
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}

	service.logger.Info("genre_added", slog.Int64("genre_id", genre.ID), slog.String("category", category))
	return genre, nil
}
