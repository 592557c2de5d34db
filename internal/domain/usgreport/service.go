package usgreport

import (
	"context"
	"errors"
	"time"

	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
	"github.com/clinicdesk/clinicdesk/internal/platform/query"
	"github.com/clinicdesk/clinicdesk/internal/platform/validate"
)

var payloadRules = validate.Rules{
	{Name: "patient", Required: true, Min: validate.IntPtr(1)},
	{Name: "referrer", Required: true, Min: validate.IntPtr(1)},
	{Name: "partOfScan", Required: true, MinLen: 3},
	{Name: "findings", Required: true, MinLen: 3},
	{Name: "date", Required: true},
}

// ParseDate accepts an RFC 3339 timestamp or a plain yyyy-mm-dd date.
func ParseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Time{}, apperr.Validationf("date must be an ISO 8601 date")
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) fromPayload(p Payload) (*USGReport, error) {
	if err := payloadRules.Apply(p.values()); err != nil {
		return nil, err
	}
	date, err := ParseDate(p.Date)
	if err != nil {
		return nil, err
	}
	return &USGReport{
		PatientID:  p.Patient,
		ReferrerID: p.Referrer,
		PartOfScan: p.PartOfScan,
		Findings:   p.Findings,
		Date:       date,
	}, nil
}

func (s *Service) Create(ctx context.Context, p Payload) (*USGReport, error) {
	r, err := s.fromPayload(p)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*USGReport, error) {
	r, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFoundf("USGReport with id %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) Update(ctx context.Context, id int64, p Payload) (*USGReport, error) {
	r, err := s.fromPayload(p)
	if err != nil {
		return nil, err
	}
	r.ID = id
	err = s.repo.Update(ctx, r)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFoundf("USGReport with id %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (*USGReport, error) {
	r, err := s.repo.SoftDelete(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFoundf("USGReport with id %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) List(ctx context.Context, f Filter, p query.Params) (*query.Page, error) {
	rows, total, err := s.repo.List(ctx, f, p)
	if err != nil {
		return nil, err
	}
	rows, hasMore := query.Trim(rows, p.Limit)
	if rows == nil {
		rows = []*USGReport{}
	}
	return query.NewPage(rows, p, total, hasMore), nil
}
