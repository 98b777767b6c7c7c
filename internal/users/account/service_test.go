// Copyright (c) 2026 Kritika. All rights reserved.

package account_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kritika-app/kritika/internal/platform/apperr"
	"github.com/kritika-app/kritika/internal/platform/ctxkey"
	"github.com/kritika-app/kritika/internal/platform/sec"
	"github.com/kritika-app/kritika/internal/users/account"
	"github.com/kritika-app/kritika/internal/users/auth"
)

// # Test Doubles

type fakeUserRepository struct {
	byID map[string]*auth.User

	// failConstraint, when set, makes the next write fail with a unique
	// violation on that constraint.
	failConstraint string
}

func (f *fakeUserRepository) writeError() error {
	if f.failConstraint == "" {
		return nil
	}
	constraint := f.failConstraint
	f.failConstraint = ""
	return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: constraint}
}

func (f *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	if err := f.writeError(); err != nil {
		return err
	}
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
	for _, user := range f.byID {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("user")
}

func (f *fakeUserRepository) GetByEmail(_ context.Context, email string) (*auth.User, error) {
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
	if err := f.writeError(); err != nil {
		return err
	}
	user.UpdatedAt = time.Now()
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

// # Fixtures

func newFixture() (*account.Service, *fakeUserRepository) {
	repo := &fakeUserRepository{byID: make(map[string]*auth.User)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return account.NewService(repo, logger), repo
}

func seedUser(repo *fakeUserRepository, id, username string, role sec.UserRole) *auth.User {
	user := &auth.User{
		ID:       id,
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
	}
	repo.byID[id] = user
	return user
}

func stringPtr(value string) *string { return &value }

// # Tests

func TestCreateUser_DefaultsRole(t *testing.T) {
	service, repo := newFixture()

	user, err := service.CreateUser(context.Background(), account.CreateInput{
		Username: "alice",
		Email:    "alice@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, sec.RoleUser, user.Role)
	assert.Len(t, repo.byID, 1)
}

func TestCreateUser_ExplicitRole(t *testing.T) {
	service, _ := newFixture()

	user, err := service.CreateUser(context.Background(), account.CreateInput{
		Username: "mod",
		Email:    "mod@example.com",
		Role:     "moderator",
	})

	require.NoError(t, err)
	assert.Equal(t, sec.RoleModerator, user.Role)
}

/*
TestCreateUser_Conflict verifies that a storage-level unique violation is
translated into a field-level 400 rather than leaking as a 500.
*/
func TestCreateUser_Conflict(t *testing.T) {
	service, repo := newFixture()
	repo.failConstraint = "account_email_key"

	_, err := service.CreateUser(context.Background(), account.CreateInput{
		Username: "alice",
		Email:    "taken@example.com",
	})

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, 400, appError.HTTPStatus)
	require.Len(t, appError.Details, 1)
	assert.Equal(t, auth.FieldEmail, appError.Details[0].Field)
}

func TestUpdateUser_Partial(t *testing.T) {
	service, repo := newFixture()
	seedUser(repo, "id-1", "alice", sec.RoleUser)

	user, err := service.UpdateUser(context.Background(), "alice", account.UpdateInput{
		Bio:  stringPtr("Reads everything"),
		Role: stringPtr("moderator"),
	})

	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "Reads everything", user.Bio)
	assert.Equal(t, sec.RoleModerator, user.Role)
}

func TestUpdateUser_Unknown(t *testing.T) {
	service, _ := newFixture()

	_, err := service.UpdateUser(context.Background(), "ghost", account.UpdateInput{})

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, 404, appError.HTTPStatus)
}

/*
TestUpdateMe_RoleEscalation verifies self-service role handling: regular
users cannot change their own role but the rest of the payload still applies,
while admin-equivalent callers may.
*/
func TestUpdateMe_RoleEscalation(t *testing.T) {
	service, repo := newFixture()
	seedUser(repo, "id-1", "alice", sec.RoleUser)
	seedUser(repo, "id-2", "root", sec.RoleAdmin)
	seedUser(repo, "id-3", "ops", sec.RoleUser)
	repo.byID["id-3"].Staff = true

	// 1. A regular user's role change is silently dropped
	user, err := service.UpdateMe(context.Background(),
		&sec.AuthClaims{UserID: "id-1", Role: string(sec.RoleUser)},
		account.UpdateInput{Role: stringPtr("admin"), Bio: stringPtr("hi")})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleUser, user.Role)
	assert.Equal(t, "hi", user.Bio)

	// 2. An admin may change their own role
	user, err = service.UpdateMe(context.Background(),
		&sec.AuthClaims{UserID: "id-2", Role: string(sec.RoleAdmin)},
		account.UpdateInput{Role: stringPtr("moderator")})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleModerator, user.Role)

	// 3. The staff flag grants the same power regardless of role
	user, err = service.UpdateMe(context.Background(),
		&sec.AuthClaims{UserID: "id-3", Role: string(sec.RoleUser), Staff: true},
		account.UpdateInput{Role: stringPtr("moderator")})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleModerator, user.Role)
}

/*
TestReservedUsername verifies the "me" reservation holds in any letter case
for both admin provisioning and renames.
*/
func TestReservedUsername(t *testing.T) {
	service, repo := newFixture()
	seedUser(repo, "id-1", "alice", sec.RoleUser)
	router := account.NewHandler(service).Routes()

	admin := &sec.AuthClaims{UserID: "admin-id", Role: string(sec.RoleAdmin)}
	asAdmin := func(request *http.Request) *http.Request {
		return request.WithContext(context.WithValue(request.Context(), ctxkey.KeyUser, admin))
	}

	for _, username := range []string{"me", "Me", "ME"} {
		// 1. Provisioning the reserved name fails
		body := fmt.Sprintf(`{"username":%q,"email":"someone@example.com"}`, username)
		request := asAdmin(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusBadRequest, recorder.Code, "create %q", username)

		// 2. Renaming onto the reserved name fails
		body = fmt.Sprintf(`{"username":%q}`, username)
		request = asAdmin(httptest.NewRequest(http.MethodPatch, "/alice", strings.NewReader(body)))
		recorder = httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusBadRequest, recorder.Code, "rename to %q", username)
	}

	assert.Len(t, repo.byID, 1)
	assert.Equal(t, "alice", repo.byID["id-1"].Username)
}

func TestDeleteUser(t *testing.T) {
	service, repo := newFixture()
	seedUser(repo, "id-1", "alice", sec.RoleUser)

	require.NoError(t, service.DeleteUser(context.Background(), "alice"))
	assert.Empty(t, repo.byID)

	var appError *apperr.AppError
	err := service.DeleteUser(context.Background(), "alice")
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, 404, appError.HTTPStatus)
}
