// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// UserRole is the authorization level of an account.
type UserRole string

const (
	// RoleAdmin curates the shared genre catalogue.
	RoleAdmin UserRole = "admin"

	// RoleWriter owns manuscripts. Every new account starts here.
	RoleWriter UserRole = "writer"
)

var roleRank = map[UserRole]int{
	RoleWriter: 1,
	RoleAdmin:  2,
}

// AtLeast reports whether r ranks at or above target. Unknown roles rank
// below everything.
func (r UserRole) AtLeast(target UserRole) bool {
	return roleRank[r] >= roleRank[target] && r.Valid()
}

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	_, ok := roleRank[r]
	return ok
}
