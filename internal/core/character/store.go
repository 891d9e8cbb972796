// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package character

import "context"

// Repository defines the data access contract for characters.
//
// Every method is scoped to the owner. Missing rows surface as table.ErrNotFound.
type Repository interface {
	// List returns all of the owner's characters, newest first.
	List(context context.Context, userID string) ([]*Character, error)

	// ListByManuscript returns one manuscript's cast ordered by name.
	ListByManuscript(context context.Context, userID string, manuscriptID int64) ([]*Character, error)

	FindByID(context context.Context, userID string, id int64) (*Character, error)
	Create(context context.Context, userID string, character *Character) (*Character, error)
	Update(context context.Context, userID string, id int64, character *Character) (*Character, error)
	Delete(context context.Context, userID string, id int64) error
}
