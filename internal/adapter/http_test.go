package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-rest-pipeline/internal/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewHTTPClient(Config{Address: srv.URL, APIKey: "k1"}, logger.Nop())
	require.NoError(t, err)
	return c
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "localhost:8080", want: "http://localhost:8080"},
		{in: "https://api.example.com/", want: "https://api.example.com"},
		{in: "  ", wantErr: true},
		{in: "http://", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCall_SendsKeyAndBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/batch", r.URL.Path)
		assert.Equal(t, "k1", r.Header.Get("X-APIKEY"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		assert.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, []any{"a"}, body["items"])

		w.Header().Set("X-Trace-ID", "t-1")
		w.WriteHeader(http.StatusMultiStatus)
		_, _ = w.Write([]byte(`{"status":"multi","results":[]}`))
	})

	res, err := c.Call(context.Background(), "post", "/api/v1/batch", map[string]any{"items": []string{"a"}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusMultiStatus, res.Status)
	assert.Equal(t, "multi", res.Envelope.EnvelopeStatus())
	assert.Equal(t, "t-1", res.TraceID)
}

func TestCall_MapsErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{name: "401", status: http.StatusUnauthorized, body: `{"status":"error","error":"Unauthorized"}`, want: ErrUnauthorized},
		{name: "404", status: http.StatusNotFound, body: `{"status":"error","error":"No matching route found"}`, want: ErrNotFound},
		{name: "405", status: http.StatusMethodNotAllowed, body: `{"status":"error","error":"Unsupported method"}`, want: ErrMethodNotAllowed},
		{name: "500", status: http.StatusInternalServerError, body: "boom", want: ErrInternalServerError},
		{name: "503", status: http.StatusServiceUnavailable, body: "", want: ErrServiceUnavailable},
		{name: "400", status: http.StatusBadRequest, body: `{"status":"error","error":"username is required"}`, want: ErrBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			res, err := c.Call(context.Background(), http.MethodGet, "/api/v1/x", nil)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.status, res.Status)
		})
	}
}

func TestCall_UnexpectedStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	_, err := c.Call(context.Background(), http.MethodGet, "/api/v1/x", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 418")
}

func TestNewHTTPClient_BadAddress(t *testing.T) {
	_, err := NewHTTPClient(Config{}, logger.Nop())
	assert.ErrorIs(t, err, ErrEmptyAddress)
}
