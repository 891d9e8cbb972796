// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package character

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
const Resource = "Character"

// Bounds enforced on the character form.
const (
	MaxAge          = 150
	MaxNameLength   = 100
	MaxBiographyLen = 10000
)

// ListFields registers how characters are searched, filtered and sorted.
//
// Characters carry neither a status nor a word count, so those sort modes keep
// the stored order.
var ListFields = listing.Fields[*Character]{
	Search: []func(*Character) string{
		func(c *Character) string { return c.Name },
		func(c *Character) string { return pointer.Val(c.Role) },
	},
	Filters: map[string]func(*Character) string{
		ColumnRole: func(c *Character) string { return pointer.Val(c.Role) },
		FilterManuscript: func(c *Character) string {
			if c.ManuscriptID == nil {
				return ""
			}
			return strconv.FormatInt(*c.ManuscriptID, 10)
		},
	},
	Sort: listing.SortKeys[*Character]{
		Date: func(c *Character) time.Time { return pointer.Val(c.CreatedAt) },
		Text: func(c *Character) string { return c.Name },
	},
}

// # Service Layer

// Service orchestrates the business logic for characters.
type Service struct {
	repo     Repository
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, notifier notify.Notifier, logger *slog.Logger) *Service {
	return &Service{repo: repo, notifier: notifier, logger: logger}
}

// List returns the owner's characters narrowed and ordered by params.
func (service *Service) List(context context.Context, userID string, params listing.Params) ([]*Character, error) {
	characters, err := service.repo.List(context, userID)
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return listing.Apply(characters, params, ListFields), nil
}

// ListByManuscript returns one manuscript's cast in name order.
func (service *Service) ListByManuscript(context context.Context, userID string, manuscriptID int64) ([]*Character, error) {
	characters, err := service.repo.ListByManuscript(context, userID, manuscriptID)
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return characters, nil
}

// Get returns one character or a 404.
func (service *Service) Get(context context.Context, userID string, id int64) (*Character, error) {
	character, err := service.repo.FindByID(context, userID, id)
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return character, nil
}

/*
Create validates, normalises and stores a new character.

Parameters:
  - context: context.Context
  - userID: string
  - input: Input

Returns:
  - *Character: The stored character
  - error: Validation (400) or storage failures
*/
func (service *Service) Create(context context.Context, userID string, input Input) (*Character, error) {
	if err := validateInput(input); err != nil {
		return nil, notify.Failure(service.notifier, userID, err, "")
	}

	created, err := service.repo.Create(context, userID, build(input))
	if err != nil {
		return nil, notify.Failure(service.notifier, userID, dberr.Wrap(err, Resource), "Error saving character")
	}

	service.logger.Info("character_created", slog.Int64("character_id", created.ID))
	service.notifier.Notify(userID, notify.KindSuccess, "Character created successfully")
	return created, nil
}

// Update validates, normalises and rewrites an existing character.
func (service *Service) Update(context context.Context, userID string, id int64, input Input) (*Character, error) {
	if err := validateInput(input); err != nil {
		return nil, notify.Failure(service.notifier, userID, err, "")
	}

	updated, err := service.repo.Update(context, userID, id, build(input))
	if err != nil {
		return nil, notify.Failure(service.notifier, userID, dberr.Wrap(err, Resource), "Error saving character")
	}

	service.logger.Info("character_updated", slog.Int64("character_id", id))
	service.notifier.Notify(userID, notify.KindSuccess, "Character updated successfully")
	return updated, nil
}

// Delete removes one character.
func (service *Service) Delete(context context.Context, userID string, id int64) error {
	if err := service.repo.Delete(context, userID, id); err != nil {
		return notify.Failure(service.notifier, userID, dberr.Wrap(err, Resource), "Error deleting character")
	}

	service.logger.Warn("character_deleted", slog.Int64("character_id", id))
	service.notifier.Notify(userID, notify.KindSuccess, "Character deleted successfully")
	return nil
}

func validateInput(input Input) error {
	validator := &validate.Validator{}
	validator.
		Label(ColumnName, "Name").
		Label(ColumnAge, "Age").
		Label(ColumnBiography, "Biography")

	validator.Required(ColumnName, input.Name).
		MinLen(ColumnName, input.Name, 2).
		MaxLen(ColumnName, input.Name, MaxNameLength)

	if age := normalize.Whole(input.Age); age != nil {
		validator.Range(ColumnAge, *age, 0, MaxAge)
	}
	if input.Biography != nil {
		validator.MaxLen(ColumnBiography, *input.Biography, MaxBiographyLen)
	}

	return validator.Err()
}

func build(input Input) *Character {
	return &Character{
		Name:         strings.TrimSpace(input.Name),
		Age:          normalize.Count(input.Age),
		ManuscriptID: input.ManuscriptID,
		Profile:      input.Profile.clean(),
	}
}
