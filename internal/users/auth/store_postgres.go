// Copyright (c) 2026 Kritika. All rights reserved.

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kritika-app/kritika/internal/platform/apperr"
	"github.com/kritika-app/kritika/internal/platform/database/schema"
	"github.com/kritika-app/kritika/internal/platform/dberr"
)

// PostgresRepository persists user accounts in the users.account table.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(context context.Context, user *User) error {
	a := schema.UsersAccount

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s, %s
	`,
		a.Table, a.ID, a.Username, a.Email, a.FirstName, a.LastName, a.Bio, a.Role, a.IsStaff,
		a.CreatedAt, a.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		user.ID, user.Username, user.Email, user.FirstName, user.LastName,
		user.Bio, string(user.Role), user.Staff,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return err
	}

	return nil
}

func (repository *PostgresRepository) GetByID(context context.Context, id string) (*User, error) {
	return repository.getByColumn(context, schema.UsersAccount.ID, id)
}

func (repository *PostgresRepository) GetByUsername(context context.Context, username string) (*User, error) {
	return repository.getByColumn(context, schema.UsersAccount.Username, username)
}

func (repository *PostgresRepository) GetByEmail(context context.Context, email string) (*User, error) {
	return repository.getByColumn(context, schema.UsersAccount.Email, email)
}

func (repository *PostgresRepository) getByColumn(context context.Context, column, value string) (*User, error) {
	a := schema.UsersAccount

	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s FROM %s WHERE %s = $1`,
		a.ID, a.Username, a.Email, a.FirstName, a.LastName, a.Bio, a.Role, a.IsStaff, a.CreatedAt, a.UpdatedAt,
		a.Table, column)

	user := &User{}
	err := repository.db.QueryRow(context, query, value).Scan(
		&user.ID, &user.Username, &user.Email, &user.FirstName, &user.LastName,
		&user.Bio, &user.Role, &user.Staff, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "user")
	}

	return user, nil
}

func (repository *PostgresRepository) List(context context.Context, filter Filter) ([]*User, int, error) {
	a := schema.UsersAccount

	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, COUNT(*) OVER() AS total FROM %s`,
		a.ID, a.Username, a.Email, a.FirstName, a.LastName, a.Bio, a.Role, a.IsStaff, a.CreatedAt, a.UpdatedAt,
		a.Table)

	args := make([]any, 0, 3)
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" WHERE %s ILIKE $%d", a.Username, len(args))
	}

	query += fmt.Sprintf(" ORDER BY %s ASC", a.Username)

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_users")
	}
	defer rows.Close()

	users := make([]*User, 0)
	total := 0

	for rows.Next() {
		user := &User{}
		err := rows.Scan(
			&user.ID, &user.Username, &user.Email, &user.FirstName, &user.LastName,
			&user.Bio, &user.Role, &user.Staff, &user.CreatedAt, &user.UpdatedAt, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_user")
		}
		users = append(users, user)
	}

	return users, total, nil
}

func (repository *PostgresRepository) Update(context context.Context, user *User) error {
	a := schema.UsersAccount

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = now()
		WHERE %s = $1
		RETURNING %s
	`,
		a.Table,
		a.Username, a.Email, a.FirstName, a.LastName, a.Bio, a.Role, a.IsStaff, a.UpdatedAt,
		a.ID,
		a.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		user.ID, user.Username, user.Email, user.FirstName, user.LastName,
		user.Bio, string(user.Role), user.Staff,
	).Scan(&user.UpdatedAt)
	if err != nil {
		// Preserve unique violations for the service-layer conflict mapping.
		if dberr.IsUniqueViolation(err, "") {
			return err
		}
		return dberr.Wrap(err, "user")
	}

	return nil
}

func (repository *PostgresRepository) DeleteByUsername(context context.Context, username string) error {
	a := schema.UsersAccount

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, a.Table, a.Username)

	tag, err := repository.db.Exec(context, query, username)
	if err != nil {
		return dberr.Wrap(err, "delete_user")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("user")
	}

	return nil
}
