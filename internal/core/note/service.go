// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package note

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
const Resource = "Note"

var ListFields = listing.Fields[*Note]{
	Search: []func(*Note) string{
		func(n *Note) string { return n.Title },
		func(n *Note) string { return pointer.Val(n.Content) },
		func(n *Note) string { return pointer.Val(n.Category) },
	},
	Filters: map[string]func(*Note) string{
		ColumnCategory: func(n *Note) string { return pointer.Val(n.Category) },
		ColumnPriority: func(n *Note) string { return pointer.Val(n.Priority) },
		FilterManuscript: func(n *Note) string {
			if n.ManuscriptID == nil {
				return ""
			}
			return strconv.FormatInt(*n.ManuscriptID, 10)
		},
	},
	Sort: listing.SortKeys[*Note]{
		Date: func(n *Note) time.Time { return pointer.Val(n.CreatedAt) },
		Text: func(n *Note) string { return n.Title },
	},
}

// Service orchestrates the business logic for notes.
type Service struct {
	repo     Repository
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, notifier notify.Notifier, logger *slog.Logger) *Service {
	return &Service{repo: repo, notifier: notifier, logger: logger}
}

func (service *Service) List(context context.Context, userID string, params listing.Params) ([]*Note, error) {
	notes, err := service.repo.List(context, userID)
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return listing.Apply(notes, params, ListFields), nil
}

func (service *Service) ListByManuscript(context context.Context, userID string, manuscriptID int64) ([]*Note, error) {
	notes, err := service.repo.ListByManuscript(context, userID, manuscriptID)
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return notes, nil
}

func (service *Service) Get(context context.Context, userID string, id int64) (*Note, error) {
	note, err := service.repo.FindByID(context, userID, id)
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return note, nil
}

// Create validates, normalises and stores a new note.
func (service *Service) Create(context context.Context, userID string, input Input) (*Note, error) {
	if err := validateInput(input); err != nil {
		return nil, notify.Failure(service.notifier, userID, err, "")
	}

	created, err := service.repo.Create(context, userID, build(input))
	if err != nil {
		return nil, notify.Failure(service.notifier, userID, dberr.Wrap(err, Resource), "Error saving note")
	}

	service.logger.Info("note_created", slog.Int64("note_id", created.ID))
	service.notifier.Notify(userID, notify.KindSuccess, "Note created successfully")
	return created, nil
}

// Update validates, normalises and rewrites an existing note.
func (service *Service) Update(context context.Context, userID string, id int64, input Input) (*Note, error) {
	if err := validateInput(input); err != nil {
		return nil, notify.Failure(service.notifier, userID, err, "")
	}

	updated, err := service.repo.Update(context, userID, id, build(input))
	if err != nil {
		return nil, notify.Failure(service.notifier, userID, dberr.Wrap(err, Resource), "Error saving note")
	}

	service.logger.Info("note_updated", slog.Int64("note_id", id))
	service.notifier.Notify(userID, notify.KindSuccess, "Note updated successfully")
	return updated, nil
}

// Delete removes one note.
func (service *Service) Delete(context context.Context, userID string, id int64) error {
	if err := service.repo.Delete(context, userID, id); err != nil {
		return notify.Failure(service.notifier, userID, dberr.Wrap(err, Resource), "Error deleting note")
	}

	service.logger.Warn("note_deleted", slog.Int64("note_id", id))
	service.notifier.Notify(userID, notify.KindSuccess, "Note deleted successfully")
	return nil
}

func validateInput(input Input) error {
	validator := &validate.Validator{}
	validator.
		Label(ColumnTitle, "Title").
		Label(ColumnContent, "Content").
		Label(ColumnCategory, "Category")

	validator.Required(ColumnTitle, input.Title).
		MinLen(ColumnTitle, input.Title, 2).
		MaxLen(ColumnTitle, input.Title, 200)

	if input.Content != nil {
		validator.MaxLen(ColumnContent, *input.Content, 10000)
	}
	if input.Category != nil {
		validator.MaxLen(ColumnCategory, *input.Category, 100)
	}
	if priority := normalize.CleanOptional(input.Priority); priority != nil {
		validator.OneOf(ColumnPriority, *priority, Priorities...)
	}

	return validator.Err()
}

func build(input Input) *Note {
	return &Note{
		Title:        strings.TrimSpace(input.Title),
		Content:      normalize.CleanOptional(input.Content),
		Category:     normalize.CleanOptional(input.Category),
		Priority:     normalize.CleanOptional(input.Priority),
		ManuscriptID: input.ManuscriptID,
	}
}
