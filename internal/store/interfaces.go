package store

import (
	"context"

	"github.com/MKhiriev/go-rest-pipeline/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/audit_repository_mock.go -package=mock

// AuditRepository appends audit records to the database. Records are never
// updated or deleted.
type AuditRepository interface {
	SaveAuditRecord(ctx context.Context, rec models.AuditRecord) error
}
