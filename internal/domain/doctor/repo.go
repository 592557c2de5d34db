package doctor

import (
	"context"
	"errors"

	"github.com/clinicdesk/clinicdesk/internal/platform/query"
)

// ErrNotFound is returned when no live doctor matches the lookup.
var ErrNotFound = errors.New("doctor not found")

// Filter holds the recognized list filters.
type Filter struct {
	Name string
}

type Repository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id int64) (*Doctor, error)
	Update(ctx context.Context, d *Doctor) error
	SoftDelete(ctx context.Context, id int64) (*Doctor, error)
	// List returns up to limit+1 live rows for the page (the probe row
	// signals a further page) plus the unpaged filtered count.
	List(ctx context.Context, f Filter, p query.Params) ([]*Doctor, int, error)
}
