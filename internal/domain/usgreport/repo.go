package usgreport

import (
	"context"
	"errors"
	"time"

	"github.com/clinicdesk/clinicdesk/internal/platform/query"
)

// ErrNotFound is returned when no live report matches the lookup.
var ErrNotFound = errors.New("usg report not found")

// Filter holds the recognized list filters. Zero values mean "not filtered";
// date bounds are inclusive and independently optional.
type Filter struct {
	Patient    int64
	Referrer   int64
	PartOfScan string
	Findings   string
	DateAfter  *time.Time
	DateBefore *time.Time
}

type Repository interface {
	// Create inserts the report. A reference to a nonexistent patient or
	// doctor surfaces as a conflict error, not a store crash.
	Create(ctx context.Context, r *USGReport) error
	GetByID(ctx context.Context, id int64) (*USGReport, error)
	Update(ctx context.Context, r *USGReport) error
	SoftDelete(ctx context.Context, id int64) (*USGReport, error)
	List(ctx context.Context, f Filter, p query.Params) ([]*USGReport, int, error)
}
