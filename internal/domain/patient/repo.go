package patient

import (
	"context"
	"errors"

	"github.com/clinicdesk/clinicdesk/internal/platform/query"
)

// ErrNotFound is returned when no live patient matches the lookup.
var ErrNotFound = errors.New("patient not found")

type Filter struct {
	Name string
}

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id int64) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	SoftDelete(ctx context.Context, id int64) (*Patient, error)
	List(ctx context.Context, f Filter, p query.Params) ([]*Patient, int, error)
}
