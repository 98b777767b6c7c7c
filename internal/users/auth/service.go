// Copyright (c) 2026 Kritika. All rights reserved.

/*
Package auth implements the passwordless signup and token issuance flows.

Architecture:

  - Service: Orchestrates signup idempotency, code verification, token rotation.
  - Repository: Abstracted Postgres store for user accounts.
  - Security: HMAC-signed confirmation codes and RSA-signed JWTs.

The confirmation code is stateless: it is an HMAC over the account's current
state, so it survives server restarts yet dies the moment the account changes.
*/
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kritika-app/kritika/internal/platform/apperr"
	"github.com/kritika-app/kritika/internal/platform/constants"
	"github.com/kritika-app/kritika/internal/platform/dberr"
	"github.com/kritika-app/kritika/internal/platform/sec"
	"github.com/kritika-app/kritika/pkg/uuidv7"
)

// # Contracts & Types

// TokenProvider defines the contract for minting and checking JWTs.
type TokenProvider interface {
	GenerateAccessToken(userID, username, role string, staff bool, timeToLive time.Duration) (string, error)
	GenerateRefreshToken(userID, username, role string, staff bool, timeToLive time.Duration) (string, error)
	VerifyRefreshToken(tokenString string) (*sec.AuthClaims, error)
}

// CodeSigner derives and checks confirmation codes from account state.
type CodeSigner interface {
	Generate(state string) string
	Verify(state, code string) bool
}

// CodeMailer delivers a confirmation code to a user.
type CodeMailer interface {
	SendConfirmationCode(context context.Context, recipient, username, code string) error
}

// Service implements the signup and token use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to code derivation or
// token issuance must be reviewed carefully.
type Service struct {
	userRepository UserRepository
	tokenProvider  TokenProvider
	codeSigner     CodeSigner
	codeMailer     CodeMailer
	logger         *slog.Logger
}

// NewService constructs an auth [Service] with its dependencies.
func NewService(
	userRepo UserRepository,
	tokenProv TokenProvider,
	signer CodeSigner,
	mailer CodeMailer,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository: userRepo,
		tokenProvider:  tokenProv,
		codeSigner:     signer,
		codeMailer:     mailer,
		logger:         logger,
	}
}

// # Signup Flow

// SignupInput holds the identity pair for registration.
type SignupInput struct {
	Username string
	Email    string
}

/*
Signup registers a new account, or re-sends the confirmation code to an
existing one.

Description: The operation is idempotent on the exact (username, email) pair:
repeating it simply re-mails a code. A username or email that collides with a
DIFFERENT account is a field-level conflict, and both collisions are reported
at once when present. The email send is part of the transaction of trust: if
it fails, the whole operation fails.

Parameters:
  - context: context.Context
  - input: SignupInput

Returns:
  - *User: The created or existing account
  - err: Conflict, mail delivery, or storage errors
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*User, error) {
	byUsername, usernameErr := service.userRepository.GetByUsername(context, input.Username)
	if usernameErr != nil && !apperr.IsNotFound(usernameErr) {
		return nil, fmt.Errorf("auth_service_signup_lookup_failed: %w", usernameErr)
	}

	byEmail, emailErr := service.userRepository.GetByEmail(context, input.Email)
	if emailErr != nil && !apperr.IsNotFound(emailErr) {
		return nil, fmt.Errorf("auth_service_signup_lookup_failed: %w", emailErr)
	}

	usernameTaken := usernameErr == nil && byUsername.Email != input.Email
	emailTaken := emailErr == nil && byEmail.Username != input.Username

	if usernameTaken || emailTaken {
		details := make([]apperr.FieldError, 0, 2)
		if usernameTaken {
			details = append(details, apperr.FieldError{Field: FieldUsername, Message: "Username is already taken"})
		}
		if emailTaken {
			details = append(details, apperr.FieldError{Field: FieldEmail, Message: "Email is already registered"})
		}
		return nil, apperr.ValidationError("Signup conflict", details...)
	}

	user := byUsername
	if user == nil {
		// Brand new identity. Time-sortable ID to prevent PG index fragmentation.
		user = &User{
			ID:       uuidv7.New(),
			Username: input.Username,
			Email:    input.Email,
			Role:     sec.RoleUser,
		}

		if err := service.userRepository.Create(context, user); err != nil {
			// Races with a concurrent signup collapse into the same conflicts.
			if dberr.IsUniqueViolation(err, "account_username_key") {
				return nil, apperr.ValidationError("Signup conflict",
					apperr.FieldError{Field: FieldUsername, Message: "Username is already taken"})
			}
			if dberr.IsUniqueViolation(err, "account_email_key") {
				return nil, apperr.ValidationError("Signup conflict",
					apperr.FieldError{Field: FieldEmail, Message: "Email is already registered"})
			}
			return nil, fmt.Errorf("auth_service_signup_failed: %w", err)
		}

		service.logger.InfoContext(context, "user_signed_up",
			slog.String("user_id", user.ID), slog.String("username", user.Username))
	}

	code := service.codeSigner.Generate(user.ConfirmationState())
	if err := service.codeMailer.SendConfirmationCode(context, user.Email, user.Username, code); err != nil {
		return nil, fmt.Errorf("auth_service_send_code_failed: %w", err)
	}

	return user, nil
}

// # Token Issuance

// TokenPair carries a freshly minted access/refresh pair.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

/*
IssueTokens exchanges a confirmation code for a JWT pair.

Description: The code is checked against the account's current state; a code
issued before any account mutation no longer verifies. An unknown username is
a 404, while a bad code is a field-level validation failure.

Parameters:
  - context: context.Context
  - username: string
  - code: string

Returns:
  - *TokenPair: Signed access and refresh tokens
  - err: NotFound, validation, or signing errors
*/
func (service *Service) IssueTokens(context context.Context, username, code string) (*TokenPair, error) {
	user, err := service.userRepository.GetByUsername(context, username)
	if err != nil {
		return nil, err
	}

	if !service.codeSigner.Verify(user.ConfirmationState(), code) {
		return nil, apperr.ValidationError("Confirmation failed", apperr.FieldError{
			Field:   FieldConfirmationCode,
			Message: "Invalid or expired confirmation code",
		})
	}

	return service.mintPair(user)
}

/*
Refresh rotates a refresh token into a new JWT pair.

Description: The incoming token must be a valid refresh-typed JWT, and the
account must still exist; claims are re-read from the database so a role
change takes effect at the next rotation.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - *TokenPair: Fresh access and refresh tokens
  - err: Unauthorized or signing errors
*/
func (service *Service) Refresh(context context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := service.tokenProvider.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	user, err := service.userRepository.GetByID(context, claims.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("Account no longer exists")
	}

	return service.mintPair(user)
}

func (service *Service) mintPair(user *User) (*TokenPair, error) {
	access, err := service.tokenProvider.GenerateAccessToken(
		user.ID, user.Username, string(user.Role), user.Staff, constants.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_access_token_failed: %w", err)
	}

	refresh, err := service.tokenProvider.GenerateRefreshToken(
		user.ID, user.Username, string(user.Role), user.Staff, constants.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	return &TokenPair{Access: access, Refresh: refresh}, nil
}
