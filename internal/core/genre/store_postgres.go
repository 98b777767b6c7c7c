// Copyright (c) 2026 Kritika. All rights reserved.

package genre

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kritika-app/kritika/internal/platform/apperr"
	"github.com/kritika-app/kritika/internal/platform/database/schema"
	"github.com/kritika-app/kritika/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context, filter Filter) ([]*Genre, int, error) {
	table := schema.CoreGenre

	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, COUNT(*) OVER() AS total FROM %s`,
		table.ID, table.Name, table.Slug, table.CreatedAt, table.Table)

	args := make([]any, 0, 3)
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" WHERE %s ILIKE $%d", table.Name, len(args))
	}

	query += fmt.Sprintf(" ORDER BY %s ASC", table.Name)

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_genres")
	}
	defer rows.Close()

	genres := make([]*Genre, 0)
	total := 0

	for rows.Next() {
		g := &Genre{}
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug, &g.CreatedAt, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_genre")
		}
		genres = append(genres, g)
	}

	return genres, total, nil
}

func (repository *PostgresRepository) GetBySlug(context context.Context, slug string) (*Genre, error) {
	table := schema.CoreGenre

	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s = $1`,
		table.ID, table.Name, table.Slug, table.CreatedAt, table.Table, table.Slug)

	g := &Genre{}
	err := repository.db.QueryRow(context, query, slug).Scan(&g.ID, &g.Name, &g.Slug, &g.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "genre")
	}

	return g, nil
}

func (repository *PostgresRepository) Create(context context.Context, genre *Genre) error {
	table := schema.CoreGenre

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3) RETURNING %s`,
		table.Table, table.ID, table.Name, table.Slug, table.CreatedAt)

	err := repository.db.QueryRow(context, query, genre.ID, genre.Name, genre.Slug).
		Scan(&genre.CreatedAt)
	if err != nil {
		return err
	}

	return nil
}

func (repository *PostgresRepository) DeleteBySlug(context context.Context, slug string) error {
	table := schema.CoreGenre

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table.Table, table.Slug)

	tag, err := repository.db.Exec(context, query, slug)
	if err != nil {
		return dberr.Wrap(err, "delete_genre")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("genre")
	}

	return nil
}
