package audit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/MKhiriev/go-rest-pipeline/internal/logger"
	"github.com/MKhiriev/go-rest-pipeline/models"
)

// Log file names inside the audit directory, one per record kind.
const (
	RequestLogFile  = "api.request.log"
	ResponseLogFile = "api.response.log"
	AuthLogFile     = "api.auth.debug.log"
	HeadersLogFile  = "api.headers.debug.log"
)

var kindFiles = map[models.AuditKind]string{
	models.AuditRequest:  RequestLogFile,
	models.AuditResponse: ResponseLogFile,
	models.AuditAuth:     AuthLogFile,
	models.AuditHeaders:  HeadersLogFile,
}

// FileSink appends each record kind to its own JSON-lines file.
type FileSink struct {
	loggers map[models.AuditKind]*logger.Logger
	closers []io.Closer
}

// NewFileSink opens (or creates) the four audit files under dir.
func NewFileSink(dir string) (*FileSink, error) {
	if dir == "" {
		return nil, ErrNoAuditDir
	}

	s := &FileSink{loggers: make(map[models.AuditKind]*logger.Logger, len(kindFiles))}
	for kind, name := range kindFiles {
		l, closer, err := logger.NewFileLogger("audit", filepath.Join(dir, name))
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("error opening audit file %s: %w", name, err)
		}
		s.loggers[kind] = l
		s.closers = append(s.closers, closer)
	}

	return s, nil
}

// Write implements [Sink].
func (s *FileSink) Write(_ context.Context, rec models.AuditRecord) error {
	l, ok := s.loggers[rec.Kind]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKind, rec.Kind)
	}

	fill(l.Log(), rec).Msg(rec.Message)
	return nil
}

// Close releases every audit file.
func (s *FileSink) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c.Close())
	}
	s.closers = nil
	return errors.Join(errs...)
}
