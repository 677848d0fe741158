package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassificator maps a driver error onto one of the store sentinels.
type ErrorClassificator interface {
	Classify(err error) error
}

// PostgresErrorClassifier implements [ErrorClassificator] for PostgreSQL.
// It inspects the pgconn error code returned by the pgx driver.
type PostgresErrorClassifier struct{}

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier] ready for use.
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator]. Errors that are not
// *pgconn.PgError are reported as [ErrExecutingQuery].
func (c *PostgresErrorClassifier) Classify(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return fmt.Errorf("%w: %w", classifyPgCode(pgErr.Code), err)
}

// classifyPgCode maps a PostgreSQL error code to a store sentinel.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html.
func classifyPgCode(code string) error {
	switch code {
	case pgerrcode.UndefinedTable:
		return ErrAuditTableMissing

	// Class 08: connection exceptions, Class 57: operator intervention
	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure,
		pgerrcode.CannotConnectNow,
		pgerrcode.AdminShutdown:
		return ErrDatabaseUnavailable
	}

	return ErrExecutingQuery
}
