package router

import (
	"context"

	"github.com/MKhiriev/go-rest-pipeline/models"
)

//go:generate mockgen -source=handler.go -destination=../mock/router_mock.go -package=mock

// Handler answers a matched route. A nil response means "no answer": the
// router keeps scanning the table for another match.
//
// The context carries the caller identity (protected routes), the route
// captures and the parsed request; see the utils context helpers.
type Handler interface {
	Handle(ctx context.Context, params models.Parameters) *models.Response
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, params models.Parameters) *models.Response

func (f HandlerFunc) Handle(ctx context.Context, params models.Parameters) *models.Response {
	return f(ctx, params)
}

// Authenticator resolves the caller of a protected route.
type Authenticator interface {
	Authenticate(ctx context.Context, req *models.Request, policy models.AuthPolicy) (models.Identity, error)
}
