package audit

import (
	"context"

	"github.com/MKhiriev/go-rest-pipeline/internal/logger"
	"github.com/MKhiriev/go-rest-pipeline/models"
)

// LogSink writes audit records to a structured logger. Header dumps and auth
// attempts are logged at debug level.
type LogSink struct {
	logger *logger.Logger
}

func NewLogSink(l *logger.Logger) *LogSink {
	return &LogSink{logger: l}
}

// Write implements [Sink].
func (s *LogSink) Write(_ context.Context, rec models.AuditRecord) error {
	e := s.logger.Info()
	if rec.Kind == models.AuditAuth || rec.Kind == models.AuditHeaders {
		e = s.logger.Debug()
	}

	fill(e, rec).Msg(rec.Message)
	return nil
}
