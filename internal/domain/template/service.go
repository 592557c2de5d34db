package template

import (
	"context"
	"errors"

	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
	"github.com/clinicdesk/clinicdesk/internal/platform/query"
	"github.com/clinicdesk/clinicdesk/internal/platform/validate"
)

var payloadRules = validate.Rules{
	{Name: "name", Required: true, MinLen: 3, MaxLen: 255},
	{Name: "content", Required: true, MinLen: 3},
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, p Payload) (*Template, error) {
	if err := payloadRules.Apply(p.values()); err != nil {
		return nil, err
	}
	t := &Template{Name: p.Name, Content: p.Content}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Template, error) {
	t, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFoundf("Template with id: %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Update(ctx context.Context, id int64, p Payload) (*Template, error) {
	if err := payloadRules.Apply(p.values()); err != nil {
		return nil, err
	}
	t := &Template{ID: id, Name: p.Name, Content: p.Content}
	err := s.repo.Update(ctx, t)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFoundf("Template with id: %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (*Template, error) {
	t, err := s.repo.SoftDelete(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFoundf("Template with id: %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) List(ctx context.Context, f Filter, p query.Params) (*query.Page, error) {
	rows, total, err := s.repo.List(ctx, f, p)
	if err != nil {
		return nil, err
	}
	rows, hasMore := query.Trim(rows, p.Limit)
	if rows == nil {
		rows = []*Template{}
	}
	return query.NewPage(rows, p, total, hasMore), nil
}
