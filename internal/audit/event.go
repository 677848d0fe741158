package audit

import (
	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-rest-pipeline/models"
)

// fill adds the non-empty fields of rec to a zerolog event.
func fill(e *zerolog.Event, rec models.AuditRecord) *zerolog.Event {
	e = e.Str("kind", string(rec.Kind)).
		Time("at", rec.Time)

	if rec.ClientIP != "" {
		e = e.Str("client_ip", rec.ClientIP)
	}
	if rec.Method != "" {
		e = e.Str("method", rec.Method)
	}
	if rec.URI != "" {
		e = e.Str("uri", rec.URI)
	}
	if rec.Elapsed > 0 {
		e = e.Dur("elapsed", rec.Elapsed)
	}

	switch rec.Kind {
	case models.AuditRequest:
		e = e.Int64("content_length", rec.ContentLength).
			Str("identity", rec.Identity.String())
	case models.AuditResponse:
		e = e.Int("status", rec.Status)
	case models.AuditAuth:
		e = e.Int("key_length", rec.KeyLength).
			Bool("key_provided", rec.KeyProvided).
			Bool("valid", rec.Valid).
			Str("identity", rec.Identity.String()).
			Str("source", string(rec.Source)).
			Bool("use_session", rec.UseSession)
	}

	return e
}
