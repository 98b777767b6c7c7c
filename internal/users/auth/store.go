// Copyright (c) 2026 Kritika. All rights reserved.

package auth

import "context"

// Filter narrows and pages the account listing.
type Filter struct {
	// Search matches a case-insensitive substring of the username.
	Search string
	// Limit of 0 disables paging and returns the full collection.
	Limit  int
	Offset int
}

// UserRepository is the persistence contract for user accounts. It is shared
// with the account administration package, which manages the same entity.
type UserRepository interface {
	Create(context context.Context, user *User) error
	GetByID(context context.Context, id string) (*User, error)
	GetByUsername(context context.Context, username string) (*User, error)
	GetByEmail(context context.Context, email string) (*User, error)
	List(context context.Context, filter Filter) ([]*User, int, error)
	Update(context context.Context, user *User) error
	DeleteByUsername(context context.Context, username string) error
}
