// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manuscript

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/inkwell/internal/platform/dberr"
	"github.com/taibuivan/inkwell/internal/platform/listing"
	"github.com/taibuivan/inkwell/internal/platform/notify"
	"github.com/taibuivan/inkwell/internal/platform/validate"
	"github.com/taibuivan/inkwell/pkg/normalize"
	"github.com/taibuivan/inkwell/pkg/pointer"
)

// Resource is the entity name used in messages.
const Resource = "Manuscript"

// ListFields registers how manuscripts are searched, filtered and sorted.
var ListFields = listing.Fields[*Manuscript]{
	Search: []func(*Manuscript) string{
		func(m *Manuscript) string { return m.Title },
		func(m *Manuscript) string { return pointer.Val(m.Genre) },
	},
	Filters: map[string]func(*Manuscript) string{
		ColumnStatus: func(m *Manuscript) string { return pointer.Val(m.Status) },
		ColumnGenre:  func(m *Manuscript) string { return pointer.Val(m.Genre) },
	},
	Sort: listing.SortKeys[*Manuscript]{
		Date:   func(m *Manuscript) time.Time { return pointer.Val(m.CreatedAt) },
		Text:   func(m *Manuscript) string { return m.Title },
		Status: func(m *Manuscript) string { return pointer.Val(m.Status) },
		Number: func(m *Manuscript) *int { return m.WordCount },
	},
}

// # Service Layer

// Service orchestrates the business logic for manuscripts.
type Service struct {
	repo     Repository
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, notifier notify.Notifier, logger *slog.Logger) *Service {
	return &Service{repo: repo, notifier: notifier, logger: logger}
}

/*
List returns the owner's manuscripts narrowed and ordered by params.

Parameters:
  - context: context.Context
  - userID: string
  - params: listing.Params (search, filters, sort)

Returns:
  - []*Manuscript: Matching manuscripts
  - error: Storage failures as apperr
*/
func (service *Service) List(context context.Context, userID string, params listing.Params) ([]*Manuscript, error) {
	manuscripts, err := service.repo.List(context, userID)
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return listing.Apply(manuscripts, params, ListFields), nil
}

// Get returns one manuscript or a 404.
func (service *Service) Get(context context.Context, userID string, id int64) (*Manuscript, error) {
	manuscript, err := service.repo.FindByID(context, userID, id)
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return manuscript, nil
}

// Titles maps every manuscript id of the owner to its title.
func (service *Service) Titles(context context.Context, userID string) (map[int64]string, error) {
	manuscripts, err := service.repo.List(context, userID)
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	titles := make(map[int64]string, len(manuscripts))
	for _, manuscript := range manuscripts {
		titles[manuscript.ID] = manuscript.Title
	}
	return titles, nil
}

/*
Create validates, normalises and stores a new manuscript.

Status defaults to Draft and the word count to 0. The outcome is announced
with a toast.
*/
func (service *Service) Create(context context.Context, userID string, input Input) (*Manuscript, error) {
	if err := validateInput(input); err != nil {
		return nil, notify.Failure(service.notifier, userID, err, "")
	}

	created, err := service.repo.Create(context, userID, build(input))
	if err != nil {
		return nil, notify.Failure(service.notifier, userID, dberr.Wrap(err, Resource), "Error saving manuscript")
	}

	service.logger.Info("manuscript_created", slog.Int64("manuscript_id", created.ID))
	service.notifier.Notify(userID, notify.KindSuccess, "Manuscript created successfully")
	return created, nil
}

// Update validates, normalises and rewrites an existing manuscript.
func (service *Service) Update(context context.Context, userID string, id int64, input Input) (*Manuscript, error) {
	if err := validateInput(input); err != nil {
		return nil, notify.Failure(service.notifier, userID, err, "")
	}

	updated, err := service.repo.Update(context, userID, id, build(input))
	if err != nil {
		return nil, notify.Failure(service.notifier, userID, dberr.Wrap(err, Resource), "Error saving manuscript")
	}

	service.logger.Info("manuscript_updated", slog.Int64("manuscript_id", id))
	service.notifier.Notify(userID, notify.KindSuccess, "Manuscript updated successfully")
	return updated, nil
}

// Delete removes the manuscript. Chapters, characters and notes that reference it are kept.
func (service *Service) Delete(context context.Context, userID string, id int64) error {
	if err := service.repo.Delete(context, userID, id); err != nil {
		return notify.Failure(service.notifier, userID, dberr.Wrap(err, Resource), "Failed to delete manuscript")
	}

	service.logger.Warn("manuscript_deleted", slog.Int64("manuscript_id", id))
	service.notifier.Notify(userID, notify.KindSuccess, "Manuscript deleted successfully")
	return nil
}

func validateInput(input Input) error {
	validator := &validate.Validator{}
	validator.Label(ColumnTitle, "Title").
		Required(ColumnTitle, input.Title).
		MaxLen(ColumnTitle, input.Title, 200)

	if whole := normalize.Whole(input.WordCount); whole != nil {
		validator.Label(ColumnWordCount, "Word count").NonNegative(ColumnWordCount, *whole)
	}

	return validator.Err()
}

func build(input Input) *Manuscript {
	return &Manuscript{
		Title:          strings.TrimSpace(input.Title),
		Genre:          normalize.CleanOptional(input.Genre),
		Status:         pointer.To(pointer.Or(normalize.CleanOptional(input.Status), DefaultStatus)),
		WordCount:      pointer.To(normalize.CountOrZero(input.WordCount)),
		Summary:        normalize.CleanOptional(input.Summary),
		Picture:        normalize.CleanOptional(input.Picture),
		TargetAudience: normalize.CleanOptional(input.TargetAudience),
	}
}
