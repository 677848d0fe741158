package auth

import (
	"context"

	"github.com/MKhiriev/go-rest-pipeline/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/session_reader_mock.go -package=mock

// SessionReader gives read-only access to the active session of a request.
type SessionReader interface {
	// Username returns the session owner, or "" when there is no session.
	Username(ctx context.Context, req *models.Request) string
}
