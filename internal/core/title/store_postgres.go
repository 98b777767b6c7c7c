// Copyright (c) 2026 Kritika. All rights reserved.

package title

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kritika-app/kritika/internal/core/category"
	"github.com/kritika-app/kritika/internal/core/genre"
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

func (repository *PostgresRepository) List(context context.Context, filter Filter) ([]*Title, int, error) {
	t := schema.CoreTitle
	c := schema.CoreCategory
	g := schema.CoreGenre
	tg := schema.CoreTitleGenre
	r := schema.CoreReview

	var builder strings.Builder
	args := make([]any, 0, 6)

	builder.WriteString(fmt.Sprintf(`
		SELECT t.%s, t.%s, t.%s, t.%s, t.%s, t.%s,
		       c.%s, c.%s, c.%s,
		       (SELECT AVG(r.%s)::float8 FROM %s r WHERE r.%s = t.%s) AS rating,
		       COUNT(*) OVER() AS total
		FROM %s t
		JOIN %s c ON t.%s = c.%s
	`,
		t.ID, t.Name, t.Year, t.Description, t.CreatedAt, t.UpdatedAt,
		c.ID, c.Name, c.Slug,
		r.Score, r.Table, r.TitleID, t.ID,
		t.Table,
		c.Table, t.CategoryID, c.ID,
	))

	conditions := make([]string, 0, 4)

	if filter.Category != "" {
		args = append(args, "%"+filter.Category+"%")
		conditions = append(conditions, fmt.Sprintf("c.%s ILIKE $%d", c.Slug, len(args)))
	}
	if filter.Genre != "" {
		args = append(args, "%"+filter.Genre+"%")
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM %s tg JOIN %s g ON tg.%s = g.%s WHERE tg.%s = t.%s AND g.%s ILIKE $%d)",
			tg.Table, g.Table, tg.GenreID, g.ID, tg.TitleID, t.ID, g.Slug, len(args)))
	}
	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		conditions = append(conditions, fmt.Sprintf("t.%s ILIKE $%d", t.Name, len(args)))
	}
	if filter.Year != nil {
		args = append(args, *filter.Year)
		conditions = append(conditions, fmt.Sprintf("t.%s = $%d", t.Year, len(args)))
	}

	if len(conditions) > 0 {
		builder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}

	builder.WriteString(fmt.Sprintf(" ORDER BY t.%s ASC, t.%s ASC", t.Name, t.ID))

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		builder.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
		args = append(args, filter.Offset)
		builder.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)))
	}

	rows, err := repository.db.Query(context, builder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_titles")
	}
	defer rows.Close()

	titles := make([]*Title, 0)
	total := 0

	for rows.Next() {
		title := &Title{Category: &category.Category{}, Genres: make([]genre.Genre, 0)}
		err := rows.Scan(
			&title.ID, &title.Name, &title.Year, &title.Description, &title.CreatedAt, &title.UpdatedAt,
			&title.Category.ID, &title.Category.Name, &title.Category.Slug,
			&title.Rating, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_title")
		}
		titles = append(titles, title)
	}
	rows.Close()

	if err := repository.attachGenres(context, titles); err != nil {
		return nil, 0, err
	}

	return titles, total, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, id string) (*Title, error) {
	t := schema.CoreTitle
	c := schema.CoreCategory

	query := fmt.Sprintf(`
		SELECT t.%s, t.%s, t.%s, t.%s, t.%s, t.%s,
		       c.%s, c.%s, c.%s
		FROM %s t
		JOIN %s c ON t.%s = c.%s
		WHERE t.%s = $1
	`,
		t.ID, t.Name, t.Year, t.Description, t.CreatedAt, t.UpdatedAt,
		c.ID, c.Name, c.Slug,
		t.Table,
		c.Table, t.CategoryID, c.ID,
		t.ID,
	)

	title := &Title{Category: &category.Category{}, Genres: make([]genre.Genre, 0)}
	err := repository.db.QueryRow(context, query, id).Scan(
		&title.ID, &title.Name, &title.Year, &title.Description, &title.CreatedAt, &title.UpdatedAt,
		&title.Category.ID, &title.Category.Name, &title.Category.Slug,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "title")
	}

	if err := repository.attachGenres(context, []*Title{title}); err != nil {
		return nil, err
	}

	return title, nil
}

func (repository *PostgresRepository) Create(context context.Context, title *Title) error {
	t := schema.CoreTitle

	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_title")
	}
	defer func() { _ = tx.Rollback(context) }()

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5) RETURNING %s, %s`,
		t.Table, t.ID, t.Name, t.Year, t.Description, t.CategoryID, t.CreatedAt, t.UpdatedAt)

	err = tx.QueryRow(context, query,
		title.ID, title.Name, title.Year, title.Description, title.Category.ID,
	).Scan(&title.CreatedAt, &title.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_title")
	}

	if err := replaceGenres(context, tx, title); err != nil {
		return err
	}

	return tx.Commit(context)
}

func (repository *PostgresRepository) Update(context context.Context, title *Title) error {
	t := schema.CoreTitle

	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_update_title")
	}
	defer func() { _ = tx.Rollback(context) }()

	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = now() WHERE %s = $1 RETURNING %s`,
		t.Table, t.Name, t.Year, t.Description, t.CategoryID, t.UpdatedAt, t.ID, t.UpdatedAt)

	err = tx.QueryRow(context, query,
		title.ID, title.Name, title.Year, title.Description, title.Category.ID,
	).Scan(&title.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "title")
	}

	if err := replaceGenres(context, tx, title); err != nil {
		return err
	}

	return tx.Commit(context)
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	t := schema.CoreTitle

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_title")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("title")
	}

	return nil
}

func (repository *PostgresRepository) AverageScore(context context.Context, titleID string) (*float64, error) {
	r := schema.CoreReview

	query := fmt.Sprintf(`SELECT AVG(%s)::float8 FROM %s WHERE %s = $1`,
		r.Score, r.Table, r.TitleID)

	var rating *float64
	if err := repository.db.QueryRow(context, query, titleID).Scan(&rating); err != nil {
		return nil, dberr.Wrap(err, "title_rating")
	}

	return rating, nil
}

// attachGenres stitches the genre associations onto a page of titles with a
// single junction query.
func (repository *PostgresRepository) attachGenres(context context.Context, titles []*Title) error {
	if len(titles) == 0 {
		return nil
	}

	g := schema.CoreGenre
	tg := schema.CoreTitleGenre

	titleIDs := make([]string, 0, len(titles))
	titleMap := make(map[string]*Title, len(titles))
	for _, title := range titles {
		titleIDs = append(titleIDs, title.ID)
		titleMap[title.ID] = title
	}

	query := fmt.Sprintf(`
		SELECT tg.%s, g.%s, g.%s, g.%s
		FROM %s tg
		JOIN %s g ON tg.%s = g.%s
		WHERE tg.%s = ANY($1)
		ORDER BY g.%s ASC
	`,
		tg.TitleID, g.ID, g.Name, g.Slug,
		tg.Table,
		g.Table, tg.GenreID, g.ID,
		tg.TitleID,
		g.Name,
	)

	rows, err := repository.db.Query(context, query, titleIDs)
	if err != nil {
		return dberr.Wrap(err, "list_title_genres")
	}
	defer rows.Close()

	for rows.Next() {
		var titleID string
		item := genre.Genre{}
		if err := rows.Scan(&titleID, &item.ID, &item.Name, &item.Slug); err != nil {
			return dberr.Wrap(err, "scan_title_genre")
		}

		if title, ok := titleMap[titleID]; ok {
			title.Genres = append(title.Genres, item)
		}
	}

	return nil
}

// replaceGenres rewrites the junction rows for a title inside the caller's
// transaction.
func replaceGenres(context context.Context, tx pgx.Tx, title *Title) error {
	tg := schema.CoreTitleGenre

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, tg.Table, tg.TitleID)
	if _, err := tx.Exec(context, deleteQuery, title.ID); err != nil {
		return dberr.Wrap(err, "clear_title_genres")
	}

	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
		tg.Table, tg.TitleID, tg.GenreID)

	for _, item := range title.Genres {
		if _, err := tx.Exec(context, insertQuery, title.ID, item.ID); err != nil {
			return dberr.Wrap(err, "attach_title_genre")
		}
	}

	return nil
}
