package audit

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/go-rest-pipeline/internal/config"
	"github.com/MKhiriev/go-rest-pipeline/internal/logger"
	"github.com/MKhiriev/go-rest-pipeline/internal/store"
)

// Resources are the files and connection held by an opened sink chain.
type Resources struct {
	closers []io.Closer
	db      *store.DB
}

// Open builds the sink chain described by cfg. Records always go to log;
// an audit directory adds a FileSink and a DSN adds an SQLSink.
func Open(ctx context.Context, cfg config.Audit, log *logger.Logger) (Sink, *Resources, error) {
	sinks := Multi{NewLogSink(log)}
	res := &Resources{}

	if cfg.Dir != "" {
		fs, err := NewFileSink(cfg.Dir)
		if err != nil {
			return nil, nil, err
		}
		sinks = append(sinks, fs)
		res.closers = append(res.closers, fs)
	}

	if cfg.DSN != "" {
		db, err := store.NewDB(ctx, cfg, log)
		if err != nil {
			res.Close()
			return nil, nil, err
		}
		sinks = append(sinks, NewSQLSink(store.NewAuditRepository(db, log)))
		res.closers = append(res.closers, db)
		res.db = db
	}

	return sinks, res, nil
}

// Ping checks the audit database, if one is configured.
func (r *Resources) Ping(ctx context.Context) error {
	if r == nil || r.db == nil {
		return nil
	}
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", store.ErrDatabaseUnavailable, err)
	}
	return nil
}

// Close releases files and the database connection.
func (r *Resources) Close() error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, closer := range r.closers {
		errs = append(errs, closer.Close())
	}
	return errors.Join(errs...)
}
