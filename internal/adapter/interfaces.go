// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"

	"github.com/MKhiriev/go-rest-pipeline/models"
)

// Client calls pipeline routes over HTTP with an API key.
type Client interface {
	// Call sends body (JSON-encoded, may be nil) to path with method. The
	// result is returned even when the status maps to an error.
	Call(ctx context.Context, method, path string, body any) (Result, error)
}

// Result is one answered call.
type Result struct {
	Status   int
	Envelope models.Envelope
	Raw      []byte
	TraceID  string
}
