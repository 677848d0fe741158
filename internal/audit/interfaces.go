package audit

import (
	"context"

	"github.com/MKhiriev/go-rest-pipeline/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/audit_sink_mock.go -package=mock

// Sink is an append-only audit destination. Write must be safe for
// concurrent use; records are never read back by the pipeline.
type Sink interface {
	Write(ctx context.Context, rec models.AuditRecord) error
}
