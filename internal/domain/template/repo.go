package template

import (
	"context"
	"errors"

	"github.com/clinicdesk/clinicdesk/internal/platform/query"
)

// ErrNotFound is returned when no live template matches the lookup.
var ErrNotFound = errors.New("template not found")

type Filter struct {
	Name string
}

type Repository interface {
	Create(ctx context.Context, t *Template) error
	GetByID(ctx context.Context, id int64) (*Template, error)
	Update(ctx context.Context, t *Template) error
	SoftDelete(ctx context.Context, id int64) (*Template, error)
	List(ctx context.Context, f Filter, p query.Params) ([]*Template, int, error)
}
