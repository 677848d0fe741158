package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-rest-pipeline/internal/router"
)

func (h *Handler) Init() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer, h.withTraceID, h.withLogging)

	if h.mode == router.ModeContinue {
		// unclaimed requests fall through to the host routes below
		r.Use(h.pipeline.Middleware)
		r.NotFound(h.notFound)
	} else {
		// every path the host does not own belongs to the pipeline; route
		// patterns are not limited to /api and match case-insensitively
		r.NotFound(h.pipeline.ServeHTTP)
	}

	r.Get("/healthz", h.health)
	r.MethodNotAllowed(h.methodNotAllowed)

	return r
}
