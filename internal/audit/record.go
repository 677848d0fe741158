// Package audit records requests, responses, authentication attempts and
// header dumps to append-only sinks: log files, a structured logger or an
// SQL table.
package audit

import (
	"time"

	"github.com/MKhiriev/go-rest-pipeline/models"
)

// NewRecord returns a record of kind pre-filled from req. req may be nil.
func NewRecord(kind models.AuditKind, req *models.Request) models.AuditRecord {
	rec := models.AuditRecord{
		Kind: kind,
		Time: time.Now(),
	}
	if req == nil {
		return rec
	}

	rec.ClientIP = req.ClientIP
	rec.Method = req.Method
	rec.URI = req.RequestURI
	if rec.URI == "" {
		rec.URI = req.RawPath
	}
	rec.ContentLength = req.ContentLength
	if !req.Received.IsZero() {
		rec.Elapsed = rec.Time.Sub(req.Received)
	}

	return rec
}
