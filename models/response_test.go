package models

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStandardStatus_InfoKeysWin(t *testing.T) {
	resp := StandardStatus(StatusOk, map[string]any{"status": "partial", "n": 1}, 0)

	body, ok := resp.Body.(Envelope)
	assert.True(t, ok)
	assert.Equal(t, "partial", body.EnvelopeStatus())
	assert.Equal(t, 1, body["n"])
	assert.Equal(t, http.StatusOK, resp.StatusCode())
}

func TestStandardEnvelopes(t *testing.T) {
	tests := []struct {
		name   string
		resp   Response
		status string
		code   int
	}{
		{name: "ok", resp: StandardOk(nil, 0), status: StatusOk, code: http.StatusOK},
		{name: "multi default", resp: StandardMulti(nil, 0), status: StatusMulti, code: http.StatusMultiStatus},
		{name: "multi explicit", resp: StandardMulti(nil, http.StatusOK), status: StatusMulti, code: http.StatusOK},
		{name: "unauthorized", resp: ErrorUnauthorized(), status: StatusError, code: http.StatusUnauthorized},
		{name: "not found", resp: ErrorNotFound(), status: StatusError, code: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.resp.Body.(Envelope).EnvelopeStatus())
			assert.Equal(t, tt.code, tt.resp.StatusCode())
		})
	}
}
