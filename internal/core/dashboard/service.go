// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dashboard

import (
	"context"
	"log/slog"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/inkwell/internal/core/chapter"
	"github.com/taibuivan/inkwell/internal/core/character"
	"github.com/taibuivan/inkwell/internal/core/manuscript"
	"github.com/taibuivan/inkwell/internal/core/note"
	"github.com/taibuivan/inkwell/internal/platform/constants"
	"github.com/taibuivan/inkwell/internal/platform/listing"
	"github.com/taibuivan/inkwell/pkg/slice"
)

// Lister is the slice of a domain service the dashboard reads.
type Lister[T any] interface {
	List(context context.Context, userID string, params listing.Params) ([]T, error)
}

// Sources bundles the four lists the dashboard reads.
type Sources struct {
	Manuscripts Lister[*manuscript.Manuscript]
	Characters  Lister[*character.Character]
	Chapters    Lister[*chapter.Chapter]
	Notes       Lister[*note.Note]
}

type Service struct {
	sources Sources
	logger  *slog.Logger
}

func NewService(sources Sources, logger *slog.Logger) *Service {
	return &Service{sources: sources, logger: logger}
}

/*
Summary builds the dashboard for one user.

The four lists are fetched concurrently. The first failure cancels the others
and is returned as is.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Summary: Stats and recent entries
  - error: The first failed fetch
*/
func (service *Service) Summary(context context.Context, userID string) (*Summary, error) {
	var (
		manuscripts []*manuscript.Manuscript
		characters  []*character.Character
		chapters    []*chapter.Chapter
		notes       []*note.Note
	)

	params := listing.Params{Sort: listing.SortRecent}
	group, groupContext := errgroup.WithContext(context)

	group.Go(func() (err error) {
		manuscripts, err = service.sources.Manuscripts.List(groupContext, userID, params)
		return err
	})
	group.Go(func() (err error) {
		characters, err = service.sources.Characters.List(groupContext, userID, params)
		return err
	})
	group.Go(func() (err error) {
		chapters, err = service.sources.Chapters.List(groupContext, userID, params)
		return err
	})
	group.Go(func() (err error) {
		notes, err = service.sources.Notes.List(groupContext, userID, params)
		return err
	})

	if err := group.Wait(); err != nil {
		service.logger.Warn("dashboard_fetch_failed", slog.String("user_id", userID), slog.Any("error", err))
		return nil, err
	}

	totalWords := TotalWords(manuscripts, chapters)
	limit := constants.DashboardRecentItems

	return &Summary{
		Stats: []Stat{
			count(StatManuscripts, len(manuscripts)),
			count(StatCharacters, len(characters)),
			count(StatChapters, len(chapters)),
			count(StatNotes, len(notes)),
			{Title: StatTotalWords, Value: totalWords, Display: FormatNumber(totalWords)},
		},
		Manuscripts: slice.Map(recent(manuscripts, limit), newManuscriptCard),
		Characters: slice.Map(recent(characters, limit), func(c *character.Character) CharacterCard {
			return CharacterCard{Character: c, Initials: c.Initials()}
		}),
		Chapters: recent(chapters, limit),
		Notes:    recent(notes, limit),
	}, nil
}

func count(title string, value int) Stat {
	return Stat{Title: title, Value: value, Display: strconv.Itoa(value)}
}
