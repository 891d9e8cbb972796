// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import "context"

// # Chapter Data Access

// Repository defines the data access contract for chapters.
type Repository interface {

	/*
		List returns all of the owner's chapters, newest first.

		Parameters:
		  - context: context.Context
		  - userID: string (Owner)

		Returns:
		  - []*Chapter: Hydrated chapters
		  - error: Storage failures
	*/
	List(context context.Context, userID string) ([]*Chapter, error)

	/*
		ListByManuscript returns the chapters of one manuscript, ordered by chapter number.

		Parameters:
		  - context: context.Context
		  - userID: string (Owner)
		  - manuscriptID: int64

		Returns:
		  - []*Chapter: Chapters in reading order
		  - error: Storage failures
	*/
	ListByManuscript(context context.Context, userID string, manuscriptID int64) ([]*Chapter, error)

	// FindByID returns one chapter or table.ErrNotFound.
	FindByID(context context.Context, userID string, id int64) (*Chapter, error)

	// Create inserts a chapter and returns the stored row.
	Create(context context.Context, userID string, chapter *Chapter) (*Chapter, error)

	// Update rewrites the given chapter's columns and stamps last_edit.
	Update(context context.Context, userID string, id int64, chapter *Chapter) (*Chapter, error)

	// Delete removes the chapter.
	Delete(context context.Context, userID string, id int64) error
}
