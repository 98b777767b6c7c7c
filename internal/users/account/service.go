// Copyright (c) 2026 Kritika. All rights reserved.

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kritika-app/kritika/internal/platform/apperr"
	"github.com/kritika-app/kritika/internal/platform/dberr"
	"github.com/kritika-app/kritika/internal/platform/sec"
	"github.com/kritika-app/kritika/internal/users/auth"
	"github.com/kritika-app/kritika/pkg/uuidv7"
)

// # Definitions & Constructors

// Service implements account administration and self-service profile logic on
// top of the shared user repository.
type Service struct {
	userRepository auth.UserRepository
	logger         *slog.Logger
}

// NewService constructs an account [Service].
func NewService(repository auth.UserRepository, logger *slog.Logger) *Service {
	return &Service{userRepository: repository, logger: logger}
}

// # Inputs

// CreateInput carries the fields an administrator may set when provisioning
// an account directly, bypassing the confirmation flow.
type CreateInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Bio       string
	Role      string
}

// UpdateInput is a partial update; nil fields are left untouched.
type UpdateInput struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *string
}

// # Administration

// ListUsers returns accounts matching the filter plus the unfiltered total.
func (service *Service) ListUsers(context context.Context, filter auth.Filter) ([]*auth.User, int, error) {
	users, count, err := service.userRepository.List(context, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("account_service_list_failed: %w", err)
	}
	return users, count, nil
}

/*
CreateUser provisions an account with an explicit role.

Description: Unlike signup, no confirmation code is involved; the account is
usable as soon as its owner completes the code exchange. An empty role
defaults to the regular user role.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *auth.User: The stored account
  - err: Conflict or storage errors
*/
func (service *Service) CreateUser(context context.Context, input CreateInput) (*auth.User, error) {
	role := sec.UserRole(input.Role)
	if input.Role == "" {
		role = sec.RoleUser
	}

	user := &auth.User{
		ID:        uuidv7.New(),
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      role,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		if conflict := mapIdentityConflict(err); conflict != nil {
			return nil, conflict
		}
		return nil, fmt.Errorf("account_service_create_failed: %w", err)
	}

	service.logger.InfoContext(context, "user_created",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
		slog.String("role", string(user.Role)))

	return user, nil
}

// GetUser fetches a single account by its username.
func (service *Service) GetUser(context context.Context, username string) (*auth.User, error) {
	return service.userRepository.GetByUsername(context, username)
}

/*
UpdateUser applies a partial update to the named account.

Description: Only non-nil input fields change. Renaming onto a taken username
or email is a field-level conflict. Any successful update bumps the account's
modification time, which also invalidates outstanding confirmation codes.

Parameters:
  - context: context.Context
  - username: string
  - input: UpdateInput

Returns:
  - *auth.User: The updated account
  - err: NotFound, conflict, or storage errors
*/
func (service *Service) UpdateUser(context context.Context, username string, input UpdateInput) (*auth.User, error) {
	user, err := service.userRepository.GetByUsername(context, username)
	if err != nil {
		return nil, err
	}

	applyUpdate(user, input)

	if err := service.userRepository.Update(context, user); err != nil {
		if conflict := mapIdentityConflict(err); conflict != nil {
			return nil, conflict
		}
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	return user, nil
}

// DeleteUser removes the named account. Reviews and comments authored by the
// account go with it.
func (service *Service) DeleteUser(context context.Context, username string) error {
	if err := service.userRepository.DeleteByUsername(context, username); err != nil {
		return err
	}

	service.logger.InfoContext(context, "user_deleted", slog.String("username", username))
	return nil
}

// # Self Service

// GetMe returns the calling user's own account.
func (service *Service) GetMe(context context.Context, claims *sec.AuthClaims) (*auth.User, error) {
	return service.userRepository.GetByID(context, claims.UserID)
}

/*
UpdateMe applies a partial update to the caller's own account.

Description: Identical to [Service.UpdateUser], except that a role change is
silently dropped unless the caller already holds admin-level authority; a
regular user cannot promote themselves, and the rest of the payload still
applies.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - input: UpdateInput

Returns:
  - *auth.User: The updated account
  - err: Conflict or storage errors
*/
func (service *Service) UpdateMe(context context.Context, claims *sec.AuthClaims, input UpdateInput) (*auth.User, error) {
	if !sec.IsAdminEquivalent(claims) {
		input.Role = nil
	}

	user, err := service.userRepository.GetByID(context, claims.UserID)
	if err != nil {
		return nil, err
	}

	applyUpdate(user, input)

	if err := service.userRepository.Update(context, user); err != nil {
		if conflict := mapIdentityConflict(err); conflict != nil {
			return nil, conflict
		}
		return nil, fmt.Errorf("account_service_update_me_failed: %w", err)
	}

	return user, nil
}

// # Helpers

func applyUpdate(user *auth.User, input UpdateInput) {
	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Role != nil {
		user.Role = sec.UserRole(*input.Role)
	}
}

// mapIdentityConflict translates the account unique constraints into
// field-level conflicts, or returns nil for unrelated errors.
func mapIdentityConflict(err error) error {
	if dberr.IsUniqueViolation(err, "account_username_key") {
		return apperr.Conflict(auth.FieldUsername, "Username is already taken")
	}
	if dberr.IsUniqueViolation(err, "account_email_key") {
		return apperr.Conflict(auth.FieldEmail, "Email is already registered")
	}
	return nil
}
