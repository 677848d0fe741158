package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-rest-pipeline/internal/logger"
	"github.com/MKhiriev/go-rest-pipeline/models"
)

// auditRepository is the database/sql implementation of [AuditRepository].
type auditRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewAuditRepository constructs an [AuditRepository] on db.
func NewAuditRepository(db *DB, logger *logger.Logger) AuditRepository {
	logger.Debug().Msg("creating audit repository")
	return &auditRepository{
		db:     db,
		logger: logger,
	}
}

// SaveAuditRecord inserts rec into the audit table.
//
// Error handling:
//   - query build failure → [ErrBuildingSQLQuery].
//   - missing table → [ErrAuditTableMissing].
//   - lost connection → [ErrDatabaseUnavailable].
//   - anything else → [ErrExecutingQuery].
func (r *auditRepository) SaveAuditRecord(ctx context.Context, rec models.AuditRecord) error {
	query, args, err := sq.Insert(auditTable).
		Columns(auditColumns...).
		Values(
			string(rec.Kind),
			rec.Time.UTC(),
			rec.Elapsed.Microseconds(),
			rec.ClientIP,
			rec.Method,
			rec.URI,
			rec.ContentLength,
			rec.Identity.String(),
			rec.Message,
			rec.KeyLength,
			rec.KeyProvided,
			rec.Valid,
			string(rec.Source),
			rec.UseSession,
			rec.Status,
		).
		PlaceholderFormat(r.db.Placeholder()).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*auditRepository.SaveAuditRecord").Msg("error saving audit record")
		return r.db.classify(err)
	}

	return nil
}
