package audit

import (
	"context"

	"github.com/MKhiriev/go-rest-pipeline/internal/store"
	"github.com/MKhiriev/go-rest-pipeline/models"
)

// SQLSink stores audit records in the audit_log table. Header dumps are
// skipped: they are debug output, not audit history.
type SQLSink struct {
	repo store.AuditRepository
}

func NewSQLSink(repo store.AuditRepository) *SQLSink {
	return &SQLSink{repo: repo}
}

// Write implements [Sink].
func (s *SQLSink) Write(ctx context.Context, rec models.AuditRecord) error {
	if rec.Kind == models.AuditHeaders {
		return nil
	}
	return s.repo.SaveAuditRecord(ctx, rec)
}
