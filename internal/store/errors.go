package store

import "errors"

// Sentinel errors returned by the audit repository. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrUnsupportedDriver is returned when the configured database/sql
	// driver is neither "sqlite3" nor "pgx".
	ErrUnsupportedDriver = errors.New("unsupported database driver")

	// ErrAuditTableMissing is returned when the audit table does not exist,
	// usually because migrations were not applied.
	ErrAuditTableMissing = errors.New("audit table is missing")

	// ErrDatabaseUnavailable is returned when the database connection is lost
	// or refused.
	ErrDatabaseUnavailable = errors.New("database is unavailable")

	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when the database rejects a statement for
	// any other reason.
	ErrExecutingQuery = errors.New("error executing query")
)
