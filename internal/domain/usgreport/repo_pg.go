package usgreport

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicdesk/clinicdesk/internal/domain/doctor"
	"github.com/clinicdesk/clinicdesk/internal/domain/patient"
	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
	"github.com/clinicdesk/clinicdesk/internal/platform/query"
)

const fkViolation = "23503"

type reportRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &reportRepoPG{pool: pool}
}

const reportCols = `usg_reports.id, usg_reports.patient_id, usg_reports.referrer_id,
	usg_reports.part_of_scan, usg_reports.findings, usg_reports.date,
	usg_reports.deleted, usg_reports.created_at, usg_reports.updated_at,
	p.id, p.name, p.phone, p.email, p.age, p.gender, p.created_at, p.updated_at,
	d.id, d.name, d.phone, d.email, d.created_at, d.updated_at`

const reportJoins = `JOIN patients p ON p.id = usg_reports.patient_id
	JOIN doctors d ON d.id = usg_reports.referrer_id`

func scanRow(row pgx.Row) (*USGReport, error) {
	var r USGReport
	var pt patient.Patient
	var dr doctor.Doctor
	err := row.Scan(
		&r.ID, &r.PatientID, &r.ReferrerID,
		&r.PartOfScan, &r.Findings, &r.Date,
		&r.Deleted, &r.CreatedAt, &r.UpdatedAt,
		&pt.ID, &pt.Name, &pt.Phone, &pt.Email, &pt.Age, &pt.Gender, &pt.CreatedAt, &pt.UpdatedAt,
		&dr.ID, &dr.Name, &dr.Phone, &dr.Email, &dr.CreatedAt, &dr.UpdatedAt)
	if err != nil {
		return nil, err
	}
	r.Patient = &pt
	r.Referrer = &dr
	return &r, nil
}

// getAny fetches a report by id regardless of its deleted flag, with the
// patient and referrer joined in. Used to shape write responses.
func (repo *reportRepoPG) getAny(ctx context.Context, id int64) (*USGReport, error) {
	return scanRow(repo.pool.QueryRow(ctx,
		`SELECT `+reportCols+` FROM usg_reports `+reportJoins+` WHERE usg_reports.id = $1`, id))
}

func (repo *reportRepoPG) Create(ctx context.Context, r *USGReport) error {
	var id int64
	err := repo.pool.QueryRow(ctx, `
		INSERT INTO usg_reports (patient_id, referrer_id, part_of_scan, findings, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		r.PatientID, r.ReferrerID, r.PartOfScan, r.Findings, r.Date).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == fkViolation {
			return apperr.Conflictf(err, "Invalid referrer or patient")
		}
		return err
	}
	created, err := repo.getAny(ctx, id)
	if err != nil {
		return err
	}
	*r = *created
	return nil
}

func (repo *reportRepoPG) GetByID(ctx context.Context, id int64) (*USGReport, error) {
	r, err := scanRow(repo.pool.QueryRow(ctx,
		`SELECT `+reportCols+` FROM usg_reports `+reportJoins+`
		 WHERE usg_reports.id = $1 AND usg_reports.deleted = FALSE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (repo *reportRepoPG) Update(ctx context.Context, r *USGReport) error {
	tag, err := repo.pool.Exec(ctx, `
		UPDATE usg_reports
		SET patient_id = $2, referrer_id = $3, part_of_scan = $4, findings = $5, date = $6, updated_at = NOW()
		WHERE id = $1 AND deleted = FALSE`,
		r.ID, r.PatientID, r.ReferrerID, r.PartOfScan, r.Findings, r.Date)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == fkViolation {
			return apperr.Conflictf(err, "Invalid referrer or patient")
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	updated, err := repo.getAny(ctx, r.ID)
	if err != nil {
		return err
	}
	*r = *updated
	return nil
}

func (repo *reportRepoPG) SoftDelete(ctx context.Context, id int64) (*USGReport, error) {
	tag, err := repo.pool.Exec(ctx, `
		UPDATE usg_reports SET deleted = TRUE, updated_at = NOW()
		WHERE id = $1 AND deleted = FALSE`, id)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return repo.getAny(ctx, id)
}

func (repo *reportRepoPG) List(ctx context.Context, f Filter, p query.Params) ([]*USGReport, int, error) {
	qb := query.NewBuilder("usg_reports", reportCols).Join(reportJoins)
	if f.Patient != 0 {
		qb.Eq("usg_reports.patient_id", f.Patient)
	}
	if f.Referrer != 0 {
		qb.Eq("usg_reports.referrer_id", f.Referrer)
	}
	if f.PartOfScan != "" {
		qb.Contains("usg_reports.part_of_scan", f.PartOfScan)
	}
	if f.Findings != "" {
		qb.Contains("usg_reports.findings", f.Findings)
	}
	if f.DateAfter != nil {
		qb.GTE("usg_reports.date", *f.DateAfter)
	}
	if f.DateBefore != nil {
		qb.LTE("usg_reports.date", *f.DateBefore)
	}

	var total int
	if err := repo.pool.QueryRow(ctx, qb.CountSQL(), qb.CountArgs()...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := repo.pool.Query(ctx, qb.DataSQL(p), qb.DataArgs(p)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*USGReport
	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, r)
	}
	return items, total, rows.Err()
}
