// Copyright (c) 2026 Kritika. All rights reserved.

package auth_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kritika-app/kritika/internal/platform/apperr"
	"github.com/kritika-app/kritika/internal/platform/sec"
	"github.com/kritika-app/kritika/internal/users/auth"
)

// # Test Doubles

type fakeUserRepository struct {
	byID map[string]*auth.User

	// lookupErr, when set, is returned by the identity lookups to simulate
	// a storage outage.
	lookupErr error
}

func (f *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserRepository) GetByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := f.byID[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, apperr.NotFound("user")
}

func (f *fakeUserRepository) GetByUsername(_ context.Context, username string) (*auth.User, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	for _, user := range f.byID {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("user")
}

func (f *fakeUserRepository) GetByEmail(_ context.Context, email string) (*auth.User, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	for _, user := range f.byID {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("user")
}

func (f *fakeUserRepository) List(_ context.Context, _ auth.Filter) ([]*auth.User, int, error) {
	out := make([]*auth.User, 0, len(f.byID))
	for _, user := range f.byID {
		out = append(out, user)
	}
	return out, len(out), nil
}

func (f *fakeUserRepository) Update(_ context.Context, user *auth.User) error {
	user.UpdatedAt = time.Now().Add(time.Second)
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserRepository) DeleteByUsername(_ context.Context, username string) error {
	for id, user := range f.byID {
		if user.Username == username {
			delete(f.byID, id)
			return nil
		}
	}
	return apperr.NotFound("user")
}

// fakeTokenProvider mints predictable token strings.
type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(userID, _, _ string, _ bool, _ time.Duration) (string, error) {
	return "access-" + userID, nil
}

func (fakeTokenProvider) GenerateRefreshToken(userID, _, _ string, _ bool, _ time.Duration) (string, error) {
	return "refresh-" + userID, nil
}

func (fakeTokenProvider) VerifyRefreshToken(tokenString string) (*sec.AuthClaims, error) {
	var userID string
	if _, err := fmt.Sscanf(tokenString, "refresh-%s", &userID); err != nil {
		return nil, errors.New("malformed token")
	}
	return &sec.AuthClaims{UserID: userID}, nil
}

type fakeMailer struct {
	sent []string // recipient addresses, in order
	fail bool
}

func (f *fakeMailer) SendConfirmationCode(_ context.Context, recipient, _, _ string) error {
	if f.fail {
		return errors.New("smtp unreachable")
	}
	f.sent = append(f.sent, recipient)
	return nil
}

// # Fixtures

func newFixture() (*auth.Service, *fakeUserRepository, *fakeMailer) {
	repo := &fakeUserRepository{byID: make(map[string]*auth.User)}
	mailer := &fakeMailer{}
	signer := sec.NewConfirmationSigner("test-secret")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := auth.NewService(repo, fakeTokenProvider{}, signer, mailer, logger)
	return service, repo, mailer
}

// # Tests

/*
TestSignup_CreatesAndMails verifies the happy path: a user row appears and a
code goes out to the right address.
*/
func TestSignup_CreatesAndMails(t *testing.T) {
	service, repo, mailer := newFixture()

	user, err := service.Signup(context.Background(), auth.SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, sec.RoleUser, user.Role)
	assert.Len(t, repo.byID, 1)
	assert.Equal(t, []string{"alice@example.com"}, mailer.sent)
}

/*
TestSignup_Idempotent verifies that repeating the exact identity pair does not
create a second account and simply re-sends the code.
*/
func TestSignup_Idempotent(t *testing.T) {
	service, repo, mailer := newFixture()
	input := auth.SignupInput{Username: "alice", Email: "alice@example.com"}

	_, err := service.Signup(context.Background(), input)
	require.NoError(t, err)

	_, err = service.Signup(context.Background(), input)
	require.NoError(t, err)

	assert.Len(t, repo.byID, 1)
	assert.Len(t, mailer.sent, 2)
}

/*
TestSignup_Conflicts verifies that identity collisions surface as HTTP 400
with per-field details, including the both-fields-collide case.
*/
func TestSignup_Conflicts(t *testing.T) {
	service, _, _ := newFixture()

	_, err := service.Signup(context.Background(), auth.SignupInput{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
	_, err = service.Signup(context.Background(), auth.SignupInput{Username: "bob", Email: "bob@example.com"})
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    auth.SignupInput
		expected []string
	}{
		{
			name:     "username taken by another email",
			input:    auth.SignupInput{Username: "alice", Email: "new@example.com"},
			expected: []string{auth.FieldUsername},
		},
		{
			name:     "email taken by another username",
			input:    auth.SignupInput{Username: "carol", Email: "alice@example.com"},
			expected: []string{auth.FieldEmail},
		},
		{
			name:     "both collide with different accounts",
			input:    auth.SignupInput{Username: "alice", Email: "bob@example.com"},
			expected: []string{auth.FieldUsername, auth.FieldEmail},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := service.Signup(context.Background(), testCase.input)
			require.Error(t, err)

			var appError *apperr.AppError
			require.True(t, errors.As(err, &appError))
			assert.Equal(t, 400, appError.HTTPStatus)

			fields := make([]string, 0, len(appError.Details))
			for _, detail := range appError.Details {
				fields = append(fields, detail.Field)
			}
			assert.Equal(t, testCase.expected, fields)
		})
	}
}

/*
TestSignup_ReservedUsername verifies the "me" reservation is enforced in any
letter case, since /users/me addresses the caller's own account.
*/
func TestSignup_ReservedUsername(t *testing.T) {
	service, repo, mailer := newFixture()
	router := auth.NewHandler(service).Routes()

	for _, username := range []string{"me", "Me", "ME", "mE"} {
		body := fmt.Sprintf(`{"username":%q,"email":"someone@example.com"}`, username)
		request := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body))
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code, "username %q", username)
	}

	assert.Empty(t, repo.byID)
	assert.Empty(t, mailer.sent)
}

/*
TestSignup_LookupFailure verifies that a storage outage during the identity
pre-checks fails the signup instead of falling through to creation.
*/
func TestSignup_LookupFailure(t *testing.T) {
	service, repo, mailer := newFixture()
	repo.lookupErr = errors.New("connection refused")

	_, err := service.Signup(context.Background(), auth.SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
	})

	require.Error(t, err)
	assert.Empty(t, repo.byID)
	assert.Empty(t, mailer.sent)
}

/*
TestSignup_MailFailureAborts verifies that a failed send fails the signup.
*/
func TestSignup_MailFailureAborts(t *testing.T) {
	service, _, mailer := newFixture()
	mailer.fail = true

	_, err := service.Signup(context.Background(), auth.SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
	})

	require.Error(t, err)
	assert.Empty(t, mailer.sent)
}

/*
TestIssueTokens verifies the code exchange: valid codes mint a pair, stale or
wrong codes fail with a field-level error, unknown usernames are 404.
*/
func TestIssueTokens(t *testing.T) {
	service, repo, _ := newFixture()
	signer := sec.NewConfirmationSigner("test-secret")

	user, err := service.Signup(context.Background(), auth.SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)

	code := signer.Generate(user.ConfirmationState())

	// 1. Valid code mints a pair
	pair, err := service.IssueTokens(context.Background(), "alice", code)
	require.NoError(t, err)
	assert.Equal(t, "access-"+user.ID, pair.Access)
	assert.Equal(t, "refresh-"+user.ID, pair.Refresh)

	// 2. Wrong code is a field-level validation failure
	_, err = service.IssueTokens(context.Background(), "alice", "bogus")
	var appError *apperr.AppError
	require.True(t, errors.As(err, &appError))
	assert.Equal(t, 400, appError.HTTPStatus)
	require.Len(t, appError.Details, 1)
	assert.Equal(t, auth.FieldConfirmationCode, appError.Details[0].Field)

	// 3. Unknown username is a 404
	_, err = service.IssueTokens(context.Background(), "ghost", code)
	require.True(t, errors.As(err, &appError))
	assert.Equal(t, 404, appError.HTTPStatus)

	// 4. Any account mutation invalidates previously issued codes
	stored := repo.byID[user.ID]
	stored.Bio = "updated"
	require.NoError(t, repo.Update(context.Background(), stored))

	_, err = service.IssueTokens(context.Background(), "alice", code)
	require.Error(t, err)
}

/*
TestRefresh verifies refresh rotation against live account state.
*/
func TestRefresh(t *testing.T) {
	service, repo, _ := newFixture()

	user, err := service.Signup(context.Background(), auth.SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)

	pair, err := service.Refresh(context.Background(), "refresh-"+user.ID)
	require.NoError(t, err)
	assert.Equal(t, "access-"+user.ID, pair.Access)

	// A token for a deleted account is rejected
	require.NoError(t, repo.DeleteByUsername(context.Background(), "alice"))
	_, err = service.Refresh(context.Background(), "refresh-"+user.ID)
	var appError *apperr.AppError
	require.True(t, errors.As(err, &appError))
	assert.Equal(t, 401, appError.HTTPStatus)

	// Garbage tokens are rejected outright
	_, err = service.Refresh(context.Background(), "garbage")
	require.Error(t, err)
}
