package http

import (
	"maps"
	"net/http"
	"slices"

	"github.com/MKhiriev/go-rest-pipeline/internal/logger"
	"github.com/MKhiriev/go-rest-pipeline/models"
)

// health runs every probe. The first failing probe, in name order, decides
// the status code.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	names := slices.Sorted(maps.Keys(h.probes))

	checks := make(map[string]any, len(names))
	var failed error
	for _, name := range names {
		err := h.probes[name](ctx)
		if err == nil {
			checks[name] = models.StatusOk
			continue
		}
		logger.FromRequest(r).Warn().Err(err).Str("probe", name).Msg("health probe failed")
		checks[name] = err.Error()
		if failed == nil {
			failed = err
		}
	}

	if failed != nil {
		h.send(w, r, models.StandardStatus(models.StatusError, map[string]any{"checks": checks}, statusFromError(failed)))
		return
	}
	h.send(w, r, models.StandardOk(map[string]any{"checks": checks}, http.StatusOK))
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.send(w, r, models.ErrorNotFound())
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.send(w, r, models.ErrorUnsupportedMethod())
}
