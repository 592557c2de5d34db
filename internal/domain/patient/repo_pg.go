package patient

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicdesk/clinicdesk/internal/platform/query"
)

type patientRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &patientRepoPG{pool: pool}
}

const patientCols = `patients.id, patients.name, patients.phone, patients.email, patients.age, patients.gender, patients.deleted, patients.created_at, patients.updated_at`

func scanRow(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.Name, &p.Phone, &p.Email, &p.Age, &p.Gender, &p.Deleted, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO patients (name, phone, email, age, gender)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+patientCols,
		p.Name, p.Phone, p.Email, p.Age, p.Gender)
	created, err := scanRow(row)
	if err != nil {
		return err
	}
	*p = *created
	return nil
}

func (r *patientRepoPG) GetByID(ctx context.Context, id int64) (*Patient, error) {
	p, err := scanRow(r.pool.QueryRow(ctx,
		`SELECT `+patientCols+` FROM patients WHERE id = $1 AND deleted = FALSE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *patientRepoPG) Update(ctx context.Context, p *Patient) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE patients SET name = $2, phone = $3, email = $4, age = $5, gender = $6, updated_at = NOW()
		WHERE id = $1 AND deleted = FALSE
		RETURNING `+patientCols,
		p.ID, p.Name, p.Phone, p.Email, p.Age, p.Gender)
	updated, err := scanRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	*p = *updated
	return nil
}

func (r *patientRepoPG) SoftDelete(ctx context.Context, id int64) (*Patient, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE patients SET deleted = TRUE, updated_at = NOW()
		WHERE id = $1 AND deleted = FALSE
		RETURNING `+patientCols, id)
	p, err := scanRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *patientRepoPG) List(ctx context.Context, f Filter, p query.Params) ([]*Patient, int, error) {
	qb := query.NewBuilder("patients", patientCols)
	if f.Name != "" {
		qb.Contains("patients.name", f.Name)
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

	var items []*Patient
	for rows.Next() {
		pt, err := scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, pt)
	}
	return items, total, rows.Err()
}
