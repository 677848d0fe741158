package router

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/MKhiriev/go-rest-pipeline/models"
)

// ErrMalformedConfiguration is returned when a route table cannot be built.
var ErrMalformedConfiguration = errors.New("malformed route configuration")

// Route binds a path pattern to a handler.
type Route struct {
	// Pattern is a regular expression matched case-insensitively against
	// the start of the request path.
	Pattern string

	Handler Handler

	// Methods lists the allowed methods. Nil allows every method.
	Methods []string

	// Auth protects the route. Nil leaves it open.
	Auth *models.AuthPolicy
}

type entry struct {
	Route
	re *regexp.Regexp
}

// Table is an ordered, compiled route table. It is never mutated after
// NewTable and may be shared between goroutines.
type Table struct {
	entries []entry
}

// NewTable compiles routes in order.
func NewTable(routes ...Route) (*Table, error) {
	t := &Table{entries: make([]entry, 0, len(routes))}
	for i, r := range routes {
		if r.Pattern == "" {
			return nil, fmt.Errorf("%w: route %d has no pattern", ErrMalformedConfiguration, i)
		}
		re, err := regexp.Compile("(?i)^" + strings.TrimPrefix(r.Pattern, "^"))
		if err != nil {
			return nil, fmt.Errorf("%w: route %d (%q): %w", ErrMalformedConfiguration, i, r.Pattern, err)
		}
		t.entries = append(t.entries, entry{Route: r, re: re})
	}
	return t, nil
}

// MustTable is NewTable for static tables; it panics on error.
func MustTable(routes ...Route) *Table {
	t, err := NewTable(routes...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// allows reports whether method is a case-insensitive member of the
// route's method set.
func (e entry) allows(method string) bool {
	if e.Methods == nil {
		return true
	}
	for _, m := range e.Methods {
		if strings.EqualFold(m, method) {
			return true
		}
	}
	return false
}
