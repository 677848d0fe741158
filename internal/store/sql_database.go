// Package store provides the SQL persistence used by the audit sink.
package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-rest-pipeline/internal/config"
	"github.com/MKhiriev/go-rest-pipeline/internal/logger"
	"github.com/MKhiriev/go-rest-pipeline/migrations"
)

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// DB wraps *sql.DB with the driver name it was opened with, so queries can
// pick the right placeholder format and errors the right classifier.
type DB struct {
	*sql.DB
	driver             string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewDB opens the audit database described by cfg and applies migrations.
func NewDB(ctx context.Context, cfg config.Audit, log *logger.Logger) (*DB, error) {
	var (
		db  *DB
		err error
	)

	switch cfg.Driver {
	case DriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg.DSN, log)
	case DriverPostgres:
		db, err = NewConnectPostgres(ctx, cfg.DSN, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// Driver returns the database/sql driver name.
func (db *DB) Driver() string {
	return db.driver
}

// Migrate applies the embedded schema migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}

// Placeholder returns the squirrel placeholder format of the driver.
func (db *DB) Placeholder() sq.PlaceholderFormat {
	if db.driver == DriverPostgres {
		return sq.Dollar
	}
	return sq.Question
}

// classify maps a driver error onto a store sentinel, keeping the original
// error in the chain.
func (db *DB) classify(err error) error {
	if db.errorClassificator == nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return db.errorClassificator.Classify(err)
}
