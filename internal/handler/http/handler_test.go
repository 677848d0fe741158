package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-rest-pipeline/internal/audit"
	"github.com/MKhiriev/go-rest-pipeline/internal/auth"
	"github.com/MKhiriev/go-rest-pipeline/internal/emitter"
	"github.com/MKhiriev/go-rest-pipeline/internal/logger"
	"github.com/MKhiriev/go-rest-pipeline/internal/pipeline"
	"github.com/MKhiriev/go-rest-pipeline/internal/request"
	"github.com/MKhiriev/go-rest-pipeline/internal/router"
	"github.com/MKhiriev/go-rest-pipeline/internal/store"
	"github.com/MKhiriev/go-rest-pipeline/models"
)

func ping(context.Context, models.Parameters) *models.Response {
	resp := models.StandardOk(map[string]any{"pong": true}, 0)
	return &resp
}

func newTestHandler(t *testing.T, mode router.Mode, probes map[string]Probe, log *logger.Logger) *Handler {
	t.Helper()

	table, err := router.NewTable(router.Route{
		Pattern: `^/api/v\d+/ping`,
		Handler: router.HandlerFunc(ping),
		Methods: []string{http.MethodGet},
	})
	require.NoError(t, err)

	em := emitter.New("", audit.Discard)
	p := pipeline.New(request.NewParser(0, ""), router.New(table, nil, mode), em)

	if log == nil {
		log = logger.Nop()
	}
	return NewHandler(p, em, mode, probes, log)
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) models.Envelope {
	t.Helper()
	var body models.Envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func serve(h *Handler, method, target string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, httptest.NewRequest(method, target, nil))
	return rr
}

func TestInit_Routes(t *testing.T) {
	for _, mode := range []router.Mode{router.ModeStop, router.ModeContinue} {
		t.Run(string(mode), func(t *testing.T) {
			h := newTestHandler(t, mode, nil, nil)

			tests := []struct {
				name   string
				method string
				target string
				status int
				error  string
			}{
				{name: "route", method: http.MethodGet, target: "/api/v1/ping", status: http.StatusOK},
				{name: "wrong method", method: http.MethodPost, target: "/api/v1/ping", status: http.StatusMethodNotAllowed, error: models.MessageUnsupportedMethod},
				{name: "unmatched api path", method: http.MethodGet, target: "/api/v1/nope", status: http.StatusNotFound, error: models.MessageNoRoute},
				{name: "outside api", method: http.MethodGet, target: "/nope", status: http.StatusNotFound, error: models.MessageNoRoute},
				{name: "healthz", method: http.MethodGet, target: "/healthz", status: http.StatusOK},
			}
			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					rr := serve(h, tt.method, tt.target)

					assert.Equal(t, tt.status, rr.Code)
					assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
					if tt.error != "" {
						assert.Equal(t, tt.error, decode(t, rr)["error"])
					}
				})
			}
		})
	}
}

func TestInit_StopModeServesEveryPipelineRoute(t *testing.T) {
	table, err := router.NewTable(
		router.Route{Pattern: `^/widgets`, Handler: router.HandlerFunc(ping), Methods: []string{http.MethodGet}},
		router.Route{Pattern: `^/api/v\d+/ping`, Handler: router.HandlerFunc(ping), Methods: []string{http.MethodGet}},
	)
	require.NoError(t, err)

	em := emitter.New("", audit.Discard)
	p := pipeline.New(request.NewParser(0, ""), router.New(table, nil, router.ModeStop), em)
	h := NewHandler(p, em, router.ModeStop, nil, logger.Nop())

	tests := []struct {
		method string
		target string
		status int
	}{
		{method: http.MethodGet, target: "/widgets/1", status: http.StatusOK},
		{method: http.MethodPost, target: "/widgets/1", status: http.StatusMethodNotAllowed},
		{method: http.MethodGet, target: "/API/v1/ping", status: http.StatusOK},
		{method: http.MethodGet, target: "/Api/V1/PING", status: http.StatusOK},
		{method: http.MethodGet, target: "/elsewhere", status: http.StatusNotFound},
		{method: http.MethodGet, target: "/healthz", status: http.StatusOK},
		{method: http.MethodPost, target: "/healthz", status: http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			assert.Equal(t, tt.status, serve(h, tt.method, tt.target).Code)
		})
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name   string
		probes map[string]Probe
		status int
	}{
		{
			name:   "no probes",
			status: http.StatusOK,
		},
		{
			name: "all healthy",
			probes: map[string]Probe{
				"audit_db": func(context.Context) error { return nil },
				"registry": func(context.Context) error { return nil },
			},
			status: http.StatusOK,
		},
		{
			name: "database down",
			probes: map[string]Probe{
				"audit_db": func(context.Context) error { return fmt.Errorf("ping: %w", store.ErrDatabaseUnavailable) },
				"registry": func(context.Context) error { return nil },
			},
			status: http.StatusServiceUnavailable,
		},
		{
			name: "empty registry",
			probes: map[string]Probe{
				"registry": func(context.Context) error { return auth.ErrRegistryUnavailable },
			},
			status: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(newTestHandler(t, router.ModeStop, tt.probes, nil), http.MethodGet, "/healthz")

			assert.Equal(t, tt.status, rr.Code)
			body := decode(t, rr)
			checks, _ := body["checks"].(map[string]any)
			assert.Len(t, checks, len(tt.probes))
		})
	}
}

func TestWithTraceID(t *testing.T) {
	h := newTestHandler(t, router.ModeStop, nil, nil)

	rr := serve(h, http.MethodGet, "/api/v1/ping")
	assert.NotEmpty(t, rr.Header().Get(traceIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	req.Header.Set(traceIDHeader, "abc-123")
	rr = httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)
	assert.Equal(t, "abc-123", rr.Header().Get(traceIDHeader))
}

func TestWithLogging(t *testing.T) {
	var buf bytes.Buffer
	log := &logger.Logger{Logger: zerolog.New(&buf)}
	h := newTestHandler(t, router.ModeStop, nil, log)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping?x=1", nil)
	req.Header.Set(traceIDHeader, "trace-1")
	h.Init().ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, `"uri":"/api/v1/ping?x=1"`)
	assert.Contains(t, out, `"status":200`)
	assert.Contains(t, out, `"trace_id":"trace-1"`)
}

func TestResponseWriter(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}

	w.WriteHeader(http.StatusTeapot)
	w.WriteHeader(http.StatusOK)
	_, err := w.Write([]byte("abc"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusTeapot, w.status)
	assert.Equal(t, 3, w.size)
	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.Same(t, rr, w.Unwrap())
}

func TestStatusFromError(t *testing.T) {
	assert.Equal(t, http.StatusServiceUnavailable, statusFromError(fmt.Errorf("x: %w", store.ErrDatabaseUnavailable)))
	assert.Equal(t, http.StatusInternalServerError, statusFromError(auth.ErrRegistryUnavailable))
	assert.Equal(t, http.StatusInternalServerError, statusFromError(fmt.Errorf("other")))
}
