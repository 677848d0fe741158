package pipeline

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-rest-pipeline/internal/auth"
	"github.com/MKhiriev/go-rest-pipeline/internal/emitter"
	"github.com/MKhiriev/go-rest-pipeline/internal/request"
	"github.com/MKhiriev/go-rest-pipeline/internal/router"
	"github.com/MKhiriev/go-rest-pipeline/internal/utils"
	"github.com/MKhiriev/go-rest-pipeline/models"
)

// echoParams answers with the parameters and identity it was given.
var echoParams = router.HandlerFunc(func(ctx context.Context, params models.Parameters) *models.Response {
	id, _ := utils.GetIdentityFromContext(ctx)
	resp := models.StandardOk(map[string]any{"params": params, "identity": id}, 0)
	return &resp
})

func newPipeline(t *testing.T, mode router.Mode, routes ...router.Route) *Pipeline {
	t.Helper()

	registry := auth.NewKeyRegistry(models.KeyEntry{Label: "svcA", Key: "abc123"})
	resolver := auth.NewResolver(registry, nil, nil)
	table, err := router.NewTable(routes...)
	require.NoError(t, err)

	return New(request.NewParser(0, ""), router.New(table, resolver, mode), emitter.New("", nil))
}

func TestServeHTTP_Scenarios(t *testing.T) {
	p := newPipeline(t, router.ModeStop,
		router.Route{Pattern: "^/widgets", Handler: echoParams, Methods: []string{"GET"}},
		router.Route{Pattern: "^/api/v1/secure", Handler: echoParams, Auth: &models.AuthPolicy{}},
		router.Route{Pattern: "^/api/v1/quiet", Handler: router.HandlerFunc(func(context.Context, models.Parameters) *models.Response { return nil })},
	)

	tests := []struct {
		name     string
		method   string
		target   string
		body     string
		headers  map[string]string
		wantCode int
		wantBody string
	}{
		{
			name: "unauthenticated", method: "GET", target: "/api/v1/secure",
			wantCode: 401, wantBody: `{"status":"error","error":"Unauthorized"}`,
		},
		{
			name: "method mismatch", method: "POST", target: "/widgets/1",
			wantCode: 405, wantBody: `{"status":"error","error":"Unsupported method"}`,
		},
		{
			name: "no route", method: "GET", target: "/nowhere",
			wantCode: 404, wantBody: `{"status":"error","error":"No matching route found"}`,
		},
		{
			name: "matched without answer", method: "GET", target: "/api/v1/quiet",
			wantCode: 200, wantBody: `null`,
		},
		{
			name: "successful key auth", method: "POST", target: "/api/v1/secure?b=query&c=3",
			body:     `{"a":1,"b":"x"}`,
			headers:  map[string]string{"X-APIKEY": "abc123", "Content-Type": "application/json"},
			wantCode: 200,
			wantBody: `{"status":"ok","identity":"KEY/svcA","params":{"a":1,"b":"x","c":"3"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			w := httptest.NewRecorder()

			p.ServeHTTP(w, r)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, "no-cache", w.Header().Get("Pragma"))
		})
	}
}

func TestServeHTTP_AuthReportedBeforeMethod(t *testing.T) {
	p := newPipeline(t, router.ModeStop,
		router.Route{Pattern: "^/widgets", Handler: echoParams, Methods: []string{"GET"}, Auth: &models.AuthPolicy{}},
	)

	w := httptest.NewRecorder()
	p.ServeHTTP(w, httptest.NewRequest("POST", "/widgets/1", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	r := httptest.NewRequest("POST", "/widgets/1", nil)
	r.Header.Set("Authorization", "Bearer abc123")
	w = httptest.NewRecorder()
	p.ServeHTTP(w, r)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestServeHTTP_RegistryUnavailable(t *testing.T) {
	table := router.MustTable(router.Route{Pattern: "/", Handler: echoParams, Auth: &models.AuthPolicy{Keys: []string{"nobody"}}})
	resolver := auth.NewResolver(auth.NewKeyRegistry(), nil, nil)
	p := New(request.NewParser(0, ""), router.New(table, resolver, router.ModeStop), emitter.New("", nil))

	w := httptest.NewRecorder()
	p.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"status":"error","error":"Service Unavailable"}`, w.Body.String())
}

func TestMiddleware_ContinueModePassesThrough(t *testing.T) {
	p := newPipeline(t, router.ModeContinue,
		router.Route{Pattern: "^/api", Handler: echoParams},
	)

	var gotBody string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		w.WriteHeader(http.StatusTeapot)
	})
	h := p.Middleware(next)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("POST", "/static/file", strings.NewReader("payload")))
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "payload", gotBody)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/x", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// standalone, an unclaimed request is a 404
	w = httptest.NewRecorder()
	p.ServeHTTP(w, httptest.NewRequest("GET", "/static/file", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMiddleware_BodyOverLimitReachesNext(t *testing.T) {
	table, err := router.NewTable(router.Route{Pattern: "^/api", Handler: echoParams})
	require.NoError(t, err)
	p := New(request.NewParser(8, ""), router.New(table, nil, router.ModeContinue), emitter.New("", nil))

	payload := "0123456789abcdefghij"
	var gotBody string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		assert.NoError(t, r.Body.Close())
		w.WriteHeader(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	p.Middleware(next).ServeHTTP(w, httptest.NewRequest("POST", "/upload", strings.NewReader(payload)))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, payload, gotBody)
}

func TestProcess_Idempotent(t *testing.T) {
	p := newPipeline(t, router.ModeStop,
		router.Route{Pattern: "^/widgets", Handler: echoParams, Methods: []string{"GET"}},
	)
	raw := func() request.RawContext {
		return request.RawContext{Method: "POST", PathInfo: "/widgets/1"}
	}

	_, first := p.Process(context.Background(), raw())
	_, second := p.Process(context.Background(), raw())
	assert.Equal(t, first, second)
	assert.Equal(t, http.StatusMethodNotAllowed, first.Response().Status)
}

func TestServeRaw(t *testing.T) {
	p := newPipeline(t, router.ModeContinue)

	var out bytes.Buffer
	err := p.ServeRaw(context.Background(), request.RawContext{Method: "GET", Protocol: "HTTP/1.1", PathInfo: "/x"}, &out)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out.String(), "HTTP/1.1 404\r\n"))
	assert.True(t, strings.HasSuffix(out.String(), `{"error":"No matching route found","status":"error"}`))
}
