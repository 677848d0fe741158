package audit

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-rest-pipeline/models"
)

// Multi fans a record out to every sink. All sinks are written even when
// some of them fail; the failures are joined.
type Multi []Sink

func (m Multi) Write(ctx context.Context, rec models.AuditRecord) error {
	var errs []error
	for _, s := range m {
		if s == nil {
			continue
		}
		errs = append(errs, s.Write(ctx, rec))
	}
	return errors.Join(errs...)
}

// Discard is a sink that drops every record.
var Discard Sink = discard{}

type discard struct{}

func (discard) Write(context.Context, models.AuditRecord) error { return nil }
