// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manuscript

import "context"

// # Manuscript Data Access

// Repository defines the data access contract for manuscripts.
//
// Every method is scoped to one owner. Rows of other users behave as missing.
type Repository interface {

	/*
		List returns all of the owner's manuscripts, newest first.

		Parameters:
		  - context: context.Context
		  - userID: string (Owner)

		Returns:
		  - []*Manuscript: Hydrated manuscripts, never nil
		  - error: Storage failures
	*/
	List(context context.Context, userID string) ([]*Manuscript, error)

	/*
		FindByID returns one manuscript.

		Returns:
		  - *Manuscript: Hydrated entity
		  - error: table.ErrNotFound if missing
	*/
	FindByID(context context.Context, userID string, id int64) (*Manuscript, error)

	// Create inserts the manuscript and returns the stored row.
	Create(context context.Context, userID string, manuscript *Manuscript) (*Manuscript, error)

	// Update rewrites the given manuscript's columns. Absent optionals keep their stored value.
	Update(context context.Context, userID string, id int64, manuscript *Manuscript) (*Manuscript, error)

	// Delete removes the manuscript row only.
	Delete(context context.Context, userID string, id int64) error
}
