package audit

import "errors"

var (
	// ErrNoAuditDir is returned by NewFileSink when no directory is given.
	ErrNoAuditDir = errors.New("audit directory is not set")

	// ErrUnknownKind is returned when a record kind has no destination.
	ErrUnknownKind = errors.New("unknown audit record kind")
)
