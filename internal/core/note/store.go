// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package note

import "context"

// Repository defines the data access contract for notes.
type Repository interface {
	// List returns all of the owner's notes, newest first.
	List(context context.Context, userID string) ([]*Note, error)

	// ListByManuscript returns one manuscript's notes, newest first.
	ListByManuscript(context context.Context, userID string, manuscriptID int64) ([]*Note, error)

	FindByID(context context.Context, userID string, id int64) (*Note, error)
	Create(context context.Context, userID string, note *Note) (*Note, error)
	Update(context context.Context, userID string, id int64, note *Note) (*Note, error)
	Delete(context context.Context, userID string, id int64) error
}
