package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-rest-pipeline/internal/auth"
	"github.com/MKhiriev/go-rest-pipeline/internal/store"
)

var errorStatusMap = map[error]int{
	store.ErrDatabaseUnavailable: http.StatusServiceUnavailable,
	store.ErrAuditTableMissing:   http.StatusServiceUnavailable,
	store.ErrExecutingQuery:      http.StatusInternalServerError,

	auth.ErrRegistryUnavailable: http.StatusInternalServerError,
	auth.ErrMalformedRegistry:   http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
