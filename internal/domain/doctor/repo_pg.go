package doctor

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicdesk/clinicdesk/internal/platform/query"
)

type doctorRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &doctorRepoPG{pool: pool}
}

const doctorCols = `doctors.id, doctors.name, doctors.phone, doctors.email, doctors.deleted, doctors.created_at, doctors.updated_at`

func scanRow(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.Name, &d.Phone, &d.Email, &d.Deleted, &d.CreatedAt, &d.UpdatedAt)
	return &d, err
}

func (r *doctorRepoPG) Create(ctx context.Context, d *Doctor) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO doctors (name, phone, email)
		VALUES ($1, $2, $3)
		RETURNING `+doctorCols,
		d.Name, d.Phone, d.Email)
	created, err := scanRow(row)
	if err != nil {
		return err
	}
	*d = *created
	return nil
}

func (r *doctorRepoPG) GetByID(ctx context.Context, id int64) (*Doctor, error) {
	d, err := scanRow(r.pool.QueryRow(ctx,
		`SELECT `+doctorCols+` FROM doctors WHERE id = $1 AND deleted = FALSE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *doctorRepoPG) Update(ctx context.Context, d *Doctor) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE doctors SET name = $2, phone = $3, email = $4, updated_at = NOW()
		WHERE id = $1 AND deleted = FALSE
		RETURNING `+doctorCols,
		d.ID, d.Name, d.Phone, d.Email)
	updated, err := scanRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	*d = *updated
	return nil
}

func (r *doctorRepoPG) SoftDelete(ctx context.Context, id int64) (*Doctor, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE doctors SET deleted = TRUE, updated_at = NOW()
		WHERE id = $1 AND deleted = FALSE
		RETURNING `+doctorCols, id)
	d, err := scanRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *doctorRepoPG) List(ctx context.Context, f Filter, p query.Params) ([]*Doctor, int, error) {
	qb := query.NewBuilder("doctors", doctorCols)
	if f.Name != "" {
		qb.Contains("doctors.name", f.Name)
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

	var items []*Doctor
	for rows.Next() {
		d, err := scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, rows.Err()
}
