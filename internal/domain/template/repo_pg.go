package template

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicdesk/clinicdesk/internal/platform/query"
)

type templateRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &templateRepoPG{pool: pool}
}

const templateCols = `templates.id, templates.name, templates.content, templates.deleted, templates.created_at, templates.updated_at`

func scanRow(row pgx.Row) (*Template, error) {
	var t Template
	err := row.Scan(&t.ID, &t.Name, &t.Content, &t.Deleted, &t.CreatedAt, &t.UpdatedAt)
	return &t, err
}

func (r *templateRepoPG) Create(ctx context.Context, t *Template) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO templates (name, content)
		VALUES ($1, $2)
		RETURNING `+templateCols,
		t.Name, t.Content)
	created, err := scanRow(row)
	if err != nil {
		return err
	}
	*t = *created
	return nil
}

func (r *templateRepoPG) GetByID(ctx context.Context, id int64) (*Template, error) {
	t, err := scanRow(r.pool.QueryRow(ctx,
		`SELECT `+templateCols+` FROM templates WHERE id = $1 AND deleted = FALSE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *templateRepoPG) Update(ctx context.Context, t *Template) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE templates SET name = $2, content = $3, updated_at = NOW()
		WHERE id = $1 AND deleted = FALSE
		RETURNING `+templateCols,
		t.ID, t.Name, t.Content)
	updated, err := scanRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	*t = *updated
	return nil
}

func (r *templateRepoPG) SoftDelete(ctx context.Context, id int64) (*Template, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE templates SET deleted = TRUE, updated_at = NOW()
		WHERE id = $1 AND deleted = FALSE
		RETURNING `+templateCols, id)
	t, err := scanRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *templateRepoPG) List(ctx context.Context, f Filter, p query.Params) ([]*Template, int, error) {
	qb := query.NewBuilder("templates", templateCols)
	if f.Name != "" {
		qb.Contains("templates.name", f.Name)
	}

	var total int
	if err := r.pool.QueryRow(ctx, qb.CountSQL(), qb.CountArgs()...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, qb.DataSQL(p), qb.DataArgs(p)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Template
	for rows.Next() {
		t, err := scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, t)
	}
	return items, total, rows.Err()
}
