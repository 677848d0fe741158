package models

import "time"

// AuditKind selects the append-only destination of an audit record.
type AuditKind string

const (
	AuditRequest  AuditKind = "request"
	AuditResponse AuditKind = "response"
	AuditAuth     AuditKind = "auth"
	AuditHeaders  AuditKind = "headers"
)

// AuditRecord is one line written to an audit sink.
type AuditRecord struct {
	Kind          AuditKind
	Time          time.Time
	Elapsed       time.Duration
	ClientIP      string
	Method        string
	URI           string
	ContentLength int64
	Identity      Identity

	// Message is the free-form payload: a response status summary, a header
	// dump or an auth attempt description.
	Message string

	// Auth attempt fields. KeyLength is the length of the candidate
	// credential; the credential itself is never recorded.
	KeyLength   int
	KeyProvided bool
	Valid       bool
	Source      CredentialSource
	UseSession  bool

	// Status is the emitted HTTP status for response records.
	Status int
}
