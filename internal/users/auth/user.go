// Copyright (c) 2026 Kritika. All rights reserved.

/*
Package auth implements the user identity layer of Kritika.

It defines the core User entity and the passwordless signup flow: a user
registers with a username and email, receives a confirmation code by mail,
and exchanges that code for a JWT access/refresh pair.

# Architecture

This layer is the "Truth" of the system. The User entity defined here is
shared with the account administration package, and all business rules about
identity (reserved names, confirmation state, role changes) live here.
*/
package auth

import (
	"strconv"
	"strings"
	"time"

	"github.com/kritika-app/kritika/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Kritika platform.
//
// There is no password: possession of the emailed confirmation code is the
// only proof of identity at signup time.
type User struct {
	ID        string       `json:"-"`
	Username  string       `json:"username"`
	Email     string       `json:"email"`
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	Bio       string       `json:"bio"`
	Role      sec.UserRole `json:"role"`
	Staff     bool         `json:"-"`
	CreatedAt time.Time    `json:"-"`
	UpdatedAt time.Time    `json:"-"`
}

// ConfirmationState serializes the account fields a confirmation code is
// bound to. Any mutation of these fields (including UpdatedAt) invalidates
// every previously issued code, so codes need no server-side storage.
func (user *User) ConfirmationState() string {
	return strings.Join([]string{
		user.ID,
		user.Username,
		user.Email,
		string(user.Role),
		strconv.FormatBool(user.Staff),
		strconv.FormatInt(user.UpdatedAt.Unix(), 10),
	}, "|")
}

// # Field Identifiers

// Global field names for validation and identity mapping in the auth domain.
const (
	FieldUsername         = "username"
	FieldEmail            = "email"
	FieldFirstName        = "first_name"
	FieldLastName         = "last_name"
	FieldBio              = "bio"
	FieldRole             = "role"
	FieldConfirmationCode = "confirmation_code"
	FieldRefreshToken     = "refresh"
)

// # Identity Rules

const (
	// ReservedUsername is rejected at signup because /users/me addresses
	// the caller's own profile.
	ReservedUsername = "me"

	MaxUsernameLength  = 150
	MaxEmailLength     = 254
	MaxFirstNameLength = 150
	MaxLastNameLength  = 150
)
