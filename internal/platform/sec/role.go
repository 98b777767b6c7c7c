// Copyright (c) 2026 Kritika. All rights reserved.

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted access to catalog management and user administration
	RoleAdmin UserRole = "admin"

	// Can edit or delete any review and comment, but not catalog entries
	RoleModerator UserRole = "moderator"

	// Default role for standard registered users
	RoleUser UserRole = "user"
)

// Valid reports whether the role is one of the three known values.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleUser:
		return true
	}
	return false
}

// Roles returns the closed set of assignable role values.
func Roles() []string {
	return []string{string(RoleUser), string(RoleModerator), string(RoleAdmin)}
}
