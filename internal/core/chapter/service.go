// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"context"
	"log/slog"
	"strconv"
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
const Resource = "Chapter"

// ListFields registers how chapters are searched, filtered and sorted.
var ListFields = listing.Fields[*Chapter]{
	Search: []func(*Chapter) string{
		func(c *Chapter) string { return c.Name },
		func(c *Chapter) string { return pointer.Val(c.Summary) },
	},
	Filters: map[string]func(*Chapter) string{
		ColumnStatus:     func(c *Chapter) string { return pointer.Val(c.Status) },
		FilterManuscript: manuscriptKey,
	},
	Sort: listing.SortKeys[*Chapter]{
		Date:   func(c *Chapter) time.Time { return pointer.Val(c.CreatedAt) },
		Text:   func(c *Chapter) string { return c.Name },
		Status: func(c *Chapter) string { return pointer.Val(c.Status) },
		Number: func(c *Chapter) *int { return c.WordCount },
	},
}

func manuscriptKey(c *Chapter) string {
	if c.ManuscriptID == nil {
		return ""
	}
	return strconv.FormatInt(*c.ManuscriptID, 10)
}

// TitleLookup resolves manuscript titles for grouped views.
type TitleLookup interface {
	Titles(context context.Context, userID string) (map[int64]string, error)
}

// # Service Layer

// Service orchestrates the business logic for chapters.
type Service struct {
	repo     Repository
	titles   TitleLookup
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewService constructs a new [Service] with its required collaborators.
func NewService(repo Repository, titles TitleLookup, notifier notify.Notifier, logger *slog.Logger) *Service {
	return &Service{repo: repo, titles: titles, notifier: notifier, logger: logger}
}

/*
List returns the owner's chapters narrowed and ordered by params.

Parameters:
  - context: context.Context
  - userID: string
  - params: listing.Params

Returns:
  - []*Chapter: Matching chapters
  - error: Storage failures as apperr
*/
func (service *Service) List(context context.Context, userID string, params listing.Params) ([]*Chapter, error) {
	chapters, err := service.repo.List(context, userID)
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return listing.Apply(chapters, params, ListFields), nil
}

/*
Grouped returns the listed chapters bucketed by manuscript.

The chapter and title fetches are independent and both honour the context.
*/
func (service *Service) Grouped(context context.Context, userID string, params listing.Params) ([]Group, error) {
	chapters, err := service.List(context, userID, params)
	if err != nil {
		return nil, err
	}

	titles, err := service.titles.Titles(context, userID)
	if err != nil {
		return nil, err
	}

	return GroupChapters(chapters, titles), nil
}

// ListByManuscript returns one manuscript's chapters in chapter-number order.
func (service *Service) ListByManuscript(context context.Context, userID string, manuscriptID int64) ([]*Chapter, error) {
	chapters, err := service.repo.ListByManuscript(context, userID, manuscriptID)
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return chapters, nil
}

// Get returns one chapter or a 404.
func (service *Service) Get(context context.Context, userID string, id int64) (*Chapter, error) {
	chapter, err := service.repo.FindByID(context, userID, id)
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return chapter, nil
}

/*
Create validates, normalises and stores a new chapter.

An invalid payload never reaches the repository.
*/
func (service *Service) Create(context context.Context, userID string, input Input) (*Chapter, error) {
	if err := validateInput(input); err != nil {
		return nil, notify.Failure(service.notifier, userID, err, "")
	}

	created, err := service.repo.Create(context, userID, build(input))
	if err != nil {
		return nil, notify.Failure(service.notifier, userID, dberr.Wrap(err, Resource), "Error saving chapter")
	}

	service.logger.Info("chapter_created", slog.Int64("chapter_id", created.ID))
	service.notifier.Notify(userID, notify.KindSuccess, "Chapter created successfully")
	return created, nil
}

// Update validates, normalises and rewrites an existing chapter.
func (service *Service) Update(context context.Context, userID string, id int64, input Input) (*Chapter, error) {
	if err := validateInput(input); err != nil {
		return nil, notify.Failure(service.notifier, userID, err, "")
	}

	updated, err := service.repo.Update(context, userID, id, build(input))
	if err != nil {
		return nil, notify.Failure(service.notifier, userID, dberr.Wrap(err, Resource), "Error saving chapter")
	}

	service.logger.Info("chapter_updated", slog.Int64("chapter_id", id))
	service.notifier.Notify(userID, notify.KindSuccess, "Chapter updated successfully")
	return updated, nil
}

// Delete removes one chapter.
func (service *Service) Delete(context context.Context, userID string, id int64) error {
	if err := service.repo.Delete(context, userID, id); err != nil {
		return notify.Failure(service.notifier, userID, dberr.Wrap(err, Resource), "Error deleting chapter")
	}

	service.logger.Warn("chapter_deleted", slog.Int64("chapter_id", id))
	service.notifier.Notify(userID, notify.KindSuccess, "Chapter deleted successfully")
	return nil
}

func validateInput(input Input) error {
	validator := &validate.Validator{}
	validator.
		Label(ColumnName, "Title").
		Label(ColumnWordCount, "Word count").
		Label(ColumnSummary, "Summary")

	validator.Required(ColumnName, input.Name).
		MinLen(ColumnName, input.Name, 2).
		MaxLen(ColumnName, input.Name, 200)

	if whole := normalize.Whole(input.WordCount); whole != nil {
		validator.NonNegative(ColumnWordCount, *whole)
	}
	if input.Summary != nil {
		validator.MaxLen(ColumnSummary, *input.Summary, 2000)
	}

	return validator.Err()
}

func build(input Input) *Chapter {
	return &Chapter{
		Name:         strings.TrimSpace(input.Name),
		Number:       normalize.Count(input.Number),
		Content:      input.Content,
		Status:       normalize.CleanOptional(input.Status),
		Summary:      normalize.CleanOptional(input.Summary),
		WordCount:    normalize.Count(input.WordCount),
		ManuscriptID: input.ManuscriptID,
	}
}
