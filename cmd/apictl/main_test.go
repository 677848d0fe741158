package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-rest-pipeline/internal/logger"
)

func TestParseOptions(t *testing.T) {
	t.Setenv("APICTL_ADDRESS", "example:9000")
	t.Setenv("APICTL_KEY", "from-env")

	opts, err := parseOptions([]string{"-X", "POST", "-d", `{"a":1}`, "/api/v1/echo"})
	require.NoError(t, err)
	assert.Equal(t, "example:9000", opts.Address)
	assert.Equal(t, "from-env", opts.Key)
	assert.Equal(t, "POST", opts.Method)
	assert.Equal(t, `{"a":1}`, opts.Data)
	assert.Equal(t, "/api/v1/echo", opts.Path)

	opts, err = parseOptions([]string{"-a", "other:1", "-k", "k2", "/x"})
	require.NoError(t, err)
	assert.Equal(t, "other:1", opts.Address)
	assert.Equal(t, "k2", opts.Key)
	assert.Equal(t, http.MethodGet, opts.Method)

	_, err = parseOptions(nil)
	assert.ErrorIs(t, err, errNoPath)
}

func TestRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-APIKEY") != "k1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"status":"error","error":"Unauthorized"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok","identity":"KEY/svcA"}`))
	}))
	defer srv.Close()

	var out bytes.Buffer
	code, err := run(context.Background(), options{Address: srv.URL, Key: "k1", Method: "GET", Path: "/api/v1/whoami"}, &out, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "200 OK")
	assert.Contains(t, out.String(), `"identity": "KEY/svcA"`)

	out.Reset()
	code, err = run(context.Background(), options{Address: srv.URL, Method: "GET", Path: "/api/v1/whoami"}, &out, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "401 Unauthorized")

	code, err = run(context.Background(), options{Address: srv.URL, Method: "POST", Data: "{", Path: "/x"}, &out, logger.Nop())
	assert.Error(t, err)
	assert.Equal(t, 2, code)
}
