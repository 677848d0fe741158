// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes type-safe context keys, HTTP client initialization, trace id
// generation and session token signing.
package utils

import (
	"context"

	"github.com/MKhiriev/go-rest-pipeline/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// IdentityCtxKey is the key used to store the resolved caller identity in
// the context handed to route handlers.
var IdentityCtxKey = contextKey("identity")

// CapturesCtxKey is the key used to store the route-capture data: the
// positional and named groups of the route pattern that matched.
var CapturesCtxKey = contextKey("captures")

// RequestCtxKey is the key used to store the parsed request.
var RequestCtxKey = contextKey("request")

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id models.Identity) context.Context {
	return context.WithValue(ctx, IdentityCtxKey, id)
}

// GetIdentityFromContext retrieves the caller identity from the context.
//
// Returns the identity and an ok flag:
//   - ok == true : value is found and has the correct type
//   - ok == false: the route is unprotected or the value has an unexpected type
func GetIdentityFromContext(ctx context.Context) (models.Identity, bool) {
	id, ok := ctx.Value(IdentityCtxKey).(models.Identity)
	return id, ok
}

// Captures holds the submatches of a route pattern. Positional[0] is the
// whole match.
type Captures struct {
	Positional []string
	Named      map[string]string
}

// WithCaptures returns a copy of ctx carrying c.
func WithCaptures(ctx context.Context, c Captures) context.Context {
	return context.WithValue(ctx, CapturesCtxKey, c)
}

// GetCapturesFromContext retrieves the route-capture data from the context.
func GetCapturesFromContext(ctx context.Context) (Captures, bool) {
	c, ok := ctx.Value(CapturesCtxKey).(Captures)
	return c, ok
}

// WithRequest returns a copy of ctx carrying the parsed request.
func WithRequest(ctx context.Context, req *models.Request) context.Context {
	return context.WithValue(ctx, RequestCtxKey, req)
}

// GetRequestFromContext retrieves the parsed request from the context.
func GetRequestFromContext(ctx context.Context) (*models.Request, bool) {
	req, ok := ctx.Value(RequestCtxKey).(*models.Request)
	return req, ok && req != nil
}
