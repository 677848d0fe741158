package models

import (
	"slices"
	"strings"
	"time"
)

// Parameters is the merged set of query and body parameters of one request.
// Body keys overwrite query keys of the same name.
type Parameters map[string]any

// String returns the parameter stored under name as a string.
// Non-string values and missing keys yield "".
func (p Parameters) String(name string) string {
	v, ok := p[name].(string)
	if !ok {
		return ""
	}
	return v
}

// Headers is the raw header map delivered by the transport. Header names keep
// the case the transport used, so lookups are case-insensitive scans.
type Headers map[string][]string

// Get returns the first value of the header name, compared case-insensitively.
// When several spellings of the same header exist the alphabetically first
// spelling wins, which keeps lookups deterministic.
func (h Headers) Get(name string) string {
	for _, key := range h.sortedKeys() {
		if strings.EqualFold(key, name) && len(h[key]) > 0 {
			return h[key][0]
		}
	}
	return ""
}

// Has reports whether a header named name is present, regardless of case.
func (h Headers) Has(name string) bool {
	for key := range h {
		if strings.EqualFold(key, name) {
			return true
		}
	}
	return false
}

// Lower returns a copy of the headers with lower-cased names and the first
// value of each header. Used for header dumps.
func (h Headers) Lower(exclude ...string) map[string]string {
	out := make(map[string]string, len(h))
	for _, key := range h.sortedKeys() {
		lk := strings.ToLower(key)
		if slices.Contains(exclude, lk) || len(h[key]) == 0 {
			continue
		}
		if _, seen := out[lk]; !seen {
			out[lk] = h[key][0]
		}
	}
	return out
}

func (h Headers) sortedKeys() []string {
	keys := make([]string, 0, len(h))
	for key := range h {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// Request is an immutable snapshot of one inbound call, produced once by the
// request parser and only read downstream.
type Request struct {
	// Method is the upper-cased HTTP method.
	Method string

	// Protocol is the transport protocol version, e.g. "HTTP/1.1".
	Protocol string

	// RawPath is the path as delivered by the transport, before the /api
	// prefix is removed. Routes are matched against it.
	RawPath string

	// PathInfo is RawPath without the leading /api prefix.
	PathInfo string

	// PathList holds the path segments that follow the version segment.
	PathList []string

	// APIVersion is the first path segment after the /api prefix.
	APIVersion string

	// Path is "/" followed by the remaining segments.
	Path string

	// BasePath is the first remaining segment, or "" when there is none.
	BasePath string

	// RequestURI is the raw request target, used in audit lines.
	RequestURI string

	ClientIP      string
	RemoteAddr    string
	ContentType   string
	ContentLength int64
	Body          []byte
	Headers       Headers
	Parameters    Parameters

	// Auth is the raw authorization value, verbatim.
	Auth string

	// Token is the bearer value extracted from Auth, if any.
	Token string

	// Format is the response format hint: "json", "html" or the value of an
	// explicit format parameter.
	Format string

	// Received is when parsing started; audit lines report time elapsed since.
	Received time.Time
}
