// Package router dispatches parsed requests to the handlers of an ordered
// route table.
package router

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-rest-pipeline/internal/auth"
	"github.com/MKhiriev/go-rest-pipeline/internal/logger"
	"github.com/MKhiriev/go-rest-pipeline/internal/utils"
	"github.com/MKhiriev/go-rest-pipeline/models"
)

// Mode selects what happens when no route matches.
type Mode string

const (
	// ModeStop answers 404 when no route matches.
	ModeStop Mode = "stop"

	// ModeContinue passes an unmatched request on to the host.
	ModeContinue Mode = "continue"
)

// Router matches requests against a table.
type Router struct {
	table *Table
	auth  Authenticator
	mode  Mode
}

// New returns a Router. authenticator may be nil when no route is
// protected; protected routes then answer 500.
func New(table *Table, authenticator Authenticator, mode Mode) *Router {
	if mode == "" {
		mode = ModeStop
	}
	return &Router{table: table, auth: authenticator, mode: mode}
}

func (r *Router) Mode() Mode {
	return r.mode
}

// Dispatch scans the table in order and invokes every matching handler
// until one answers. The result is:
//   - Halt with the handler's response, or with an error envelope when a
//     matched entry is unusable, unauthenticated or forbids the method;
//   - Continue when routes matched but no handler answered;
//   - Halt 404 (stop mode) or Pass (continue mode) when nothing matched.
func (r *Router) Dispatch(ctx context.Context, req *models.Request) models.Result {
	log := logger.FromContext(ctx)

	if r.table == nil {
		log.Error().Err(ErrMalformedConfiguration).Msg("no route table")
		return models.Halt(models.ErrorInternal())
	}

	matched := false
	for i, e := range r.table.entries {
		m := e.re.FindStringSubmatch(req.RawPath)
		if m == nil {
			continue
		}
		matched = true

		if e.Handler == nil {
			log.Error().Int("route", i).Str("pattern", e.Pattern).Msg("route has no handler")
			return models.Halt(models.ErrorInternal())
		}

		hctx := utils.WithCaptures(utils.WithRequest(ctx, req), captures(e, m))

		if e.Auth != nil {
			id, result, ok := r.authenticate(ctx, req, *e.Auth)
			if !ok {
				return result
			}
			hctx = utils.WithIdentity(hctx, id)
		}

		if !e.allows(req.Method) {
			return models.Halt(models.ErrorUnsupportedMethod())
		}

		if resp := e.Handler.Handle(hctx, req.Parameters); resp != nil {
			return models.Halt(*resp)
		}
	}

	if matched {
		return models.Continue()
	}
	if r.mode == ModeContinue {
		return models.Pass()
	}
	return models.Halt(models.ErrorNotFound())
}

func (r *Router) authenticate(ctx context.Context, req *models.Request, policy models.AuthPolicy) (models.Identity, models.Result, bool) {
	if r.auth == nil {
		logger.FromContext(ctx).Error().Msg("protected route without authenticator")
		return "", models.Halt(models.ErrorInternal()), false
	}

	id, err := r.auth.Authenticate(ctx, req, policy)
	switch {
	case errors.Is(err, auth.ErrRegistryUnavailable):
		return "", models.Halt(models.ErrorServiceUnavailable()), false
	case err != nil:
		logger.FromContext(ctx).Err(err).Msg("authentication failed")
		return "", models.Halt(models.ErrorInternal()), false
	case !id.Authorized():
		return "", models.Halt(models.ErrorUnauthorized()), false
	}
	return id, models.Result{}, true
}

func captures(e entry, m []string) utils.Captures {
	c := utils.Captures{Positional: m}
	for i, name := range e.re.SubexpNames() {
		if name == "" || i >= len(m) {
			continue
		}
		if c.Named == nil {
			c.Named = make(map[string]string)
		}
		c.Named[name] = m[i]
	}
	return c
}
