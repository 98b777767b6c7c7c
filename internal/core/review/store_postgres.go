// Copyright (c) 2026 Kritika. All rights reserved.

package review

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

func (repository *PostgresRepository) ListByTitle(context context.Context, titleID string, filter Filter) ([]*Review, int, error) {
	r := schema.CoreReview
	a := schema.UsersAccount

	query := fmt.Sprintf(`
		SELECT r.%s, r.%s, r.%s, a.%s, r.%s, r.%s, r.%s, COUNT(*) OVER() AS total
		FROM %s r
		JOIN %s a ON r.%s = a.%s
		WHERE r.%s = $1
		ORDER BY r.%s DESC
	`,
		r.ID, r.TitleID, r.AuthorID, a.Username, r.Text, r.Score, r.PubDate,
		r.Table,
		a.Table, r.AuthorID, a.ID,
		r.TitleID,
		r.PubDate,
	)

	args := []any{titleID}
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reviews")
	}
	defer rows.Close()

	reviews := make([]*Review, 0)
	total := 0

	for rows.Next() {
		review := &Review{}
		err := rows.Scan(
			&review.ID, &review.TitleID, &review.AuthorID, &review.Author,
			&review.Text, &review.Score, &review.PubDate, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_review")
		}
		reviews = append(reviews, review)
	}

	return reviews, total, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, titleID, reviewID string) (*Review, error) {
	r := schema.CoreReview
	a := schema.UsersAccount

	query := fmt.Sprintf(`
		SELECT r.%s, r.%s, r.%s, a.%s, r.%s, r.%s, r.%s
		FROM %s r
		JOIN %s a ON r.%s = a.%s
		WHERE r.%s = $1 AND r.%s = $2
	`,
		r.ID, r.TitleID, r.AuthorID, a.Username, r.Text, r.Score, r.PubDate,
		r.Table,
		a.Table, r.AuthorID, a.ID,
		r.ID, r.TitleID,
	)

	review := &Review{}
	err := repository.db.QueryRow(context, query, reviewID, titleID).Scan(
		&review.ID, &review.TitleID, &review.AuthorID, &review.Author,
		&review.Text, &review.Score, &review.PubDate,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "review")
	}

	return review, nil
}

func (repository *PostgresRepository) Create(context context.Context, review *Review) error {
	r := schema.CoreReview

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5) RETURNING %s`,
		r.Table, r.ID, r.TitleID, r.AuthorID, r.Text, r.Score, r.PubDate)

	err := repository.db.QueryRow(context, query,
		review.ID, review.TitleID, review.AuthorID, review.Text, review.Score,
	).Scan(&review.PubDate)
	if err != nil {
		return err
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, review *Review) error {
	r := schema.CoreReview

	query := fmt.Sprintf(`UPDATE %s SET %s = $3, %s = $4 WHERE %s = $1 AND %s = $2`,
		r.Table, r.Text, r.Score, r.ID, r.TitleID)

	tag, err := repository.db.Exec(context, query, review.ID, review.TitleID, review.Text, review.Score)
	if err != nil {
		return dberr.Wrap(err, "update_review")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("review")
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, titleID, reviewID string) error {
	r := schema.CoreReview

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, r.Table, r.ID, r.TitleID)

	tag, err := repository.db.Exec(context, query, reviewID, titleID)
	if err != nil {
		return dberr.Wrap(err, "delete_review")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("review")
	}

	return nil
}

func (repository *PostgresRepository) HasAuthorReview(context context.Context, titleID, authorID string) (bool, error) {
	r := schema.CoreReview

	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		r.Table, r.TitleID, r.AuthorID)

	var exists bool
	if err := repository.db.QueryRow(context, query, titleID, authorID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "review_duplicate_check")
	}

	return exists, nil
}
