// Package validate applies declarative per-resource constraint tables to
// request payloads. Each resource declares one Rules table (field name →
// bounds/pattern) and every handler runs the same Apply routine over it, so
// the transport layer and the domain layer cannot drift apart.
package validate

import (
	"regexp"
	"unicode/utf8"

	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
)

// Common patterns shared by resource rule tables.
var (
	// Indian mobile numbers: exactly ten digits, leading 6-9.
	PhonePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)
	EmailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// Field is a single declarative constraint. Zero values mean "not checked".
type Field struct {
	Name     string
	Required bool
	MinLen   int
	MaxLen   int
	Min      *int
	Max      *int
	Pattern  *regexp.Regexp
	OneOf    []string
}

// Rules is the constraint table for one resource payload.
type Rules []Field

// IntPtr is a convenience for Min/Max bounds in rule tables.
func IntPtr(v int) *int { return &v }

// Apply checks values against the table and returns the first violation as a
// validation error. Accepted value types: string, *string, int, *int. A nil
// pointer counts as absent; absent optional fields pass.
func (r Rules) Apply(values map[string]interface{}) error {
	for _, f := range r {
		v, ok := values[f.Name]
		if !ok || v == nil {
			if f.Required {
				return apperr.Validationf("%s is required", f.Name)
			}
			continue
		}

		switch val := v.(type) {
		case string:
			if err := f.checkString(val); err != nil {
				return err
			}
		case *string:
			if val == nil {
				if f.Required {
					return apperr.Validationf("%s is required", f.Name)
				}
				continue
			}
			if err := f.checkString(*val); err != nil {
				return err
			}
		case int:
			if err := f.checkInt(val); err != nil {
				return err
			}
		case int64:
			if err := f.checkInt(int(val)); err != nil {
				return err
			}
		case *int:
			if val == nil {
				if f.Required {
					return apperr.Validationf("%s is required", f.Name)
				}
				continue
			}
			if err := f.checkInt(*val); err != nil {
				return err
			}
		default:
			return apperr.Validationf("%s has an unsupported type", f.Name)
		}
	}
	return nil
}

func (f Field) checkString(s string) error {
	if f.Required && s == "" {
		return apperr.Validationf("%s is required", f.Name)
	}
	if s == "" && !f.Required {
		return nil
	}
	// Length bounds count characters, not bytes.
	runes := utf8.RuneCountInString(s)
	if f.MinLen > 0 && runes < f.MinLen {
		return apperr.Validationf("%s must be at least %d characters", f.Name, f.MinLen)
	}
	if f.MaxLen > 0 && runes > f.MaxLen {
		return apperr.Validationf("%s must be at most %d characters", f.Name, f.MaxLen)
	}
	if f.Pattern != nil && !f.Pattern.MatchString(s) {
		return apperr.Validationf("%s is invalid", f.Name)
	}
	if len(f.OneOf) > 0 {
		for _, allowed := range f.OneOf {
			if s == allowed {
				return nil
			}
		}
		return apperr.Validationf("%s must be one of: %s", f.Name, joinComma(f.OneOf))
	}
	return nil
}

func (f Field) checkInt(n int) error {
	if f.Min != nil && n < *f.Min {
		return apperr.Validationf("%s must be at least %d", f.Name, *f.Min)
	}
	if f.Max != nil && n > *f.Max {
		return apperr.Validationf("%s must be at most %d", f.Name, *f.Max)
	}
	return nil
}

func joinComma(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}
