// Package query is the filter/pagination engine shared by every list
// endpoint. It turns validated query parameters into a SQL predicate over
// live (non-deleted) rows, fetches one row beyond the page to detect whether
// more pages exist, and shapes the paginated response envelope.
//
// The data query and the count query are two separate store calls. A write
// landing between them can make total disagree with data for that one
// response; this is a known, accepted race.
package query

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params holds validated pagination parameters. Page is 1-based.
type Params struct {
	Page  int
	Limit int
}

// ParamsFromContext parses and validates page/limit query parameters.
// Missing parameters take defaults; malformed or out-of-range values are
// validation errors, not silently clamped.
func ParamsFromContext(c echo.Context) (Params, error) {
	p := Params{Page: 1, Limit: DefaultLimit}

	if raw := c.QueryParam("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return Params{}, apperr.Validationf("page must be a positive integer")
		}
		p.Page = n
	}
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > MaxLimit {
			return Params{}, apperr.Validationf("limit must be between 1 and %d", MaxLimit)
		}
		p.Limit = n
	}
	return p, nil
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// FetchLimit is the row count the data query asks for: one more than the
// page size, so the engine can tell whether a further page exists without a
// second round trip.
func (p Params) FetchLimit() int {
	return p.Limit + 1
}

// CheckParams rejects unrecognized query parameter keys. page and limit are
// always recognized.
func CheckParams(c echo.Context, allowed ...string) error {
	ok := map[string]bool{"page": true, "limit": true}
	for _, k := range allowed {
		ok[k] = true
	}
	for k := range c.QueryParams() {
		if !ok[k] {
			return apperr.Validationf("unrecognized query parameter: %s", k)
		}
	}
	return nil
}

// Builder assembles the WHERE clause for one list query using numbered
// placeholders. Every predicate starts from deleted = FALSE; conditions are
// ANDed in the order they are added.
type Builder struct {
	table string
	cols  string
	join  string
	where []string
	args  []interface{}
	idx   int
}

// NewBuilder creates a Builder for table selecting cols. The soft-delete
// filter is applied to the given table's rows from the start.
func NewBuilder(table, cols string) *Builder {
	return &Builder{
		table: table,
		cols:  cols,
		where: []string{table + ".deleted = FALSE"},
		idx:   1,
	}
}

// Join appends a JOIN clause used by both the data and count queries.
func (b *Builder) Join(clause string) *Builder {
	b.join += " " + clause
	return b
}

// Eq adds an equality condition (foreign-key style filters).
func (b *Builder) Eq(column string, value interface{}) {
	b.where = append(b.where, fmt.Sprintf("%s = $%d", column, b.idx))
	b.args = append(b.args, value)
	b.idx++
}

// Contains adds a case-insensitive substring condition (free-text filters).
func (b *Builder) Contains(column, value string) {
	b.where = append(b.where, fmt.Sprintf("%s ILIKE $%d", column, b.idx))
	b.args = append(b.args, "%"+value+"%")
	b.idx++
}

// GTE adds an inclusive lower bound (date_after).
func (b *Builder) GTE(column string, value interface{}) {
	b.where = append(b.where, fmt.Sprintf("%s >= $%d", column, b.idx))
	b.args = append(b.args, value)
	b.idx++
}

// LTE adds an inclusive upper bound (date_before).
func (b *Builder) LTE(column string, value interface{}) {
	b.where = append(b.where, fmt.Sprintf("%s <= $%d", column, b.idx))
	b.args = append(b.args, value)
	b.idx++
}

func (b *Builder) whereSQL() string {
	return strings.Join(b.where, " AND ")
}

// CountSQL returns the unpaged count query over the same predicate.
func (b *Builder) CountSQL() string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s%s WHERE %s", b.table, b.join, b.whereSQL())
}

func (b *Builder) CountArgs() []interface{} {
	return b.args
}

// DataSQL returns the page query: limit+1 rows, ordered by
// (created_at DESC, id DESC) on the base table so pagination stays stable
// when created_at collides.
func (b *Builder) DataSQL(p Params) string {
	return fmt.Sprintf(
		"SELECT %s FROM %s%s WHERE %s ORDER BY %s.created_at DESC, %s.id DESC LIMIT $%d OFFSET $%d",
		b.cols, b.table, b.join, b.whereSQL(), b.table, b.table, b.idx, b.idx+1)
}

func (b *Builder) DataArgs(p Params) []interface{} {
	return append(append([]interface{}{}, b.args...), p.FetchLimit(), p.Offset())
}

// Trim drops the probe row fetched beyond the page size and reports whether
// it was present.
func Trim[T any](rows []T, limit int) ([]T, bool) {
	if len(rows) > limit {
		return rows[:limit], true
	}
	return rows, false
}

// Page is the paginated response envelope shared by all list endpoints.
type Page struct {
	Data       interface{} `json:"data"`
	HasMore    bool        `json:"hasMore"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	Total      int         `json:"total"`
	TotalPages int         `json:"totalPages"`
}

// NewPage builds the envelope. data should already be trimmed to the page
// size; total is the unpaged filtered count.
func NewPage(data interface{}, p Params, total int, hasMore bool) *Page {
	return &Page{
		Data:       data,
		HasMore:    hasMore,
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(p.Limit))),
	}
}
