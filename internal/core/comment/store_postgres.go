// Copyright (c) 2026 Kritika. All rights reserved.

package comment

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

// listByReviewSQL builds the comment listing query, newest first.
func listByReviewSQL() string {
	c := schema.CoreComment
	a := schema.UsersAccount

	return fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, a.%s, c.%s, c.%s, COUNT(*) OVER() AS total
		FROM %s c
		JOIN %s a ON c.%s = a.%s
		WHERE c.%s = $1
		ORDER BY c.%s DESC
	`,
		c.ID, c.ReviewID, c.AuthorID, a.Username, c.Text, c.PubDate,
		c.Table,
		a.Table, c.AuthorID, a.ID,
		c.ReviewID,
		c.PubDate,
	)
}

func (repository *PostgresRepository) ListByReview(context context.Context, reviewID string, filter Filter) ([]*Comment, int, error) {
	query := listByReviewSQL()

	args := []any{reviewID}
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	comments := make([]*Comment, 0)
	total := 0

	for rows.Next() {
		comment := &Comment{}
		err := rows.Scan(
			&comment.ID, &comment.ReviewID, &comment.AuthorID, &comment.Author,
			&comment.Text, &comment.PubDate, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_comment")
		}
		comments = append(comments, comment)
	}

	return comments, total, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, reviewID, commentID string) (*Comment, error) {
	c := schema.CoreComment
	a := schema.UsersAccount

	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, a.%s, c.%s, c.%s
		FROM %s c
		JOIN %s a ON c.%s = a.%s
		WHERE c.%s = $1 AND c.%s = $2
	`,
		c.ID, c.ReviewID, c.AuthorID, a.Username, c.Text, c.PubDate,
		c.Table,
		a.Table, c.AuthorID, a.ID,
		c.ID, c.ReviewID,
	)

	comment := &Comment{}
	err := repository.db.QueryRow(context, query, commentID, reviewID).Scan(
		&comment.ID, &comment.ReviewID, &comment.AuthorID, &comment.Author,
		&comment.Text, &comment.PubDate,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "comment")
	}

	return comment, nil
}

func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	c := schema.CoreComment

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4) RETURNING %s`,
		c.Table, c.ID, c.ReviewID, c.AuthorID, c.Text, c.PubDate)

	err := repository.db.QueryRow(context, query,
		comment.ID, comment.ReviewID, comment.AuthorID, comment.Text,
	).Scan(&comment.PubDate)
	if err != nil {
		return dberr.Wrap(err, "create_comment")
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, comment *Comment) error {
	c := schema.CoreComment

	query := fmt.Sprintf(`UPDATE %s SET %s = $3 WHERE %s = $1 AND %s = $2`,
		c.Table, c.Text, c.ID, c.ReviewID)

	tag, err := repository.db.Exec(context, query, comment.ID, comment.ReviewID, comment.Text)
	if err != nil {
		return dberr.Wrap(err, "update_comment")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("comment")
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, reviewID, commentID string) error {
	c := schema.CoreComment

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, c.Table, c.ID, c.ReviewID)

	tag, err := repository.db.Exec(context, query, commentID, reviewID)
	if err != nil {
		return dberr.Wrap(err, "delete_comment")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("comment")
	}

	return nil
}
