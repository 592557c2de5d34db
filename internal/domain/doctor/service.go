package doctor

import (
	"context"
	"errors"

	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
	"github.com/clinicdesk/clinicdesk/internal/platform/query"
	"github.com/clinicdesk/clinicdesk/internal/platform/validate"
)

var payloadRules = validate.Rules{
	{Name: "name", Required: true, MinLen: 3, MaxLen: 255},
	{Name: "phone", Pattern: validate.PhonePattern},
	{Name: "email", Pattern: validate.EmailPattern},
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, p Payload) (*Doctor, error) {
	if err := payloadRules.Apply(p.values()); err != nil {
		return nil, err
	}
	d := &Doctor{Name: p.Name, Phone: p.Phone, Email: p.Email}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Doctor, error) {
	d, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFoundf("Doctor with id: %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Update(ctx context.Context, id int64, p Payload) (*Doctor, error) {
	if err := payloadRules.Apply(p.values()); err != nil {
		return nil, err
	}
	d := &Doctor{ID: id, Name: p.Name, Phone: p.Phone, Email: p.Email}
	err := s.repo.Update(ctx, d)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFoundf("Doctor with id: %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (*Doctor, error) {
	d, err := s.repo.SoftDelete(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFoundf("Doctor with id: %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) List(ctx context.Context, f Filter, p query.Params) (*query.Page, error) {
	rows, total, err := s.repo.List(ctx, f, p)
	if err != nil {
		return nil, err
	}
	rows, hasMore := query.Trim(rows, p.Limit)
	if rows == nil {
		rows = []*Doctor{}
	}
	return query.NewPage(rows, p, total, hasMore), nil
}
