package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/MKhiriev/go-rest-pipeline/internal/emitter"
	"github.com/MKhiriev/go-rest-pipeline/internal/logger"
	"github.com/MKhiriev/go-rest-pipeline/internal/router"
	"github.com/MKhiriev/go-rest-pipeline/internal/utils"
	"github.com/MKhiriev/go-rest-pipeline/models"
)

// Pipeline is the request pipeline as seen by the host.
type Pipeline interface {
	http.Handler
	Middleware(next http.Handler) http.Handler
}

// Probe reports whether one dependency is usable.
type Probe func(ctx context.Context) error

type Handler struct {
	pipeline Pipeline
	emitter  *emitter.Emitter
	mode     router.Mode
	probes   map[string]Probe
	traceIDs *utils.TraceIDGenerator

	logger *logger.Logger
}

func NewHandler(pipeline Pipeline, emitter *emitter.Emitter, mode router.Mode, probes map[string]Probe, logger *logger.Logger) *Handler {
	logger.Info().Str("route_mode", string(mode)).Msg("http handler created")
	return &Handler{
		pipeline: pipeline,
		emitter:  emitter,
		mode:     mode,
		probes:   probes,
		traceIDs: utils.NewTraceIDGenerator(),
		logger:   logger,
	}
}

// send answers a host-level request through the emitter so host responses
// carry the same envelope and audit trail as pipeline responses.
func (h *Handler) send(w http.ResponseWriter, r *http.Request, resp models.Response) {
	req := &models.Request{
		Method:     strings.ToUpper(r.Method),
		Protocol:   r.Proto,
		RawPath:    r.URL.Path,
		RequestURI: r.RequestURI,
		RemoteAddr: r.RemoteAddr,
		ClientIP:   r.RemoteAddr,
		Received:   time.Now(),
	}
	if err := h.emitter.NewExchange(req, w).Send(r.Context(), resp); err != nil {
		logger.FromRequest(r).Err(err).Msg("error sending host response")
	}
}
