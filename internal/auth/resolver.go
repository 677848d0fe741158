// Package auth resolves the identity of a caller from its request.
//
// A credential is taken from the first source that yields one, in this order:
//
//  1. the X-APIKEY header, verbatim;
//  2. the authorization value with its scheme token stripped;
//  3. a case-insensitive header scan for "authorization", only when neither
//     of the above is present;
//  4. the session username, when the route allows sessions.
//
// Once a source yields a candidate no later source is consulted, even when
// the candidate fails the registry lookup.
package auth

import (
	"context"
	"encoding/json"
	"regexp"
	"slices"
	"strings"

	"github.com/MKhiriev/go-rest-pipeline/internal/audit"
	"github.com/MKhiriev/go-rest-pipeline/internal/logger"
	"github.com/MKhiriev/go-rest-pipeline/models"
)

// HeaderAPIKey is the dedicated API key header.
const HeaderAPIKey = "X-APIKEY"

const headerAuthorization = "authorization"

var schemePrefix = regexp.MustCompile(`^\S+\s+`)

// Resolver authenticates requests against a key registry and, when allowed,
// the active session.
type Resolver struct {
	registry *KeyRegistry
	sessions SessionReader
	sink     audit.Sink
}

// NewResolver returns a Resolver. sessions may be nil, which disables the
// session fallback; sink may be nil, which discards audit records.
func NewResolver(registry *KeyRegistry, sessions SessionReader, sink audit.Sink) *Resolver {
	if sink == nil {
		sink = audit.Discard
	}
	return &Resolver{registry: registry, sessions: sessions, sink: sink}
}

// Authenticate resolves req under a route policy. The policy narrows the
// registry to its labels and enables the session fallback either explicitly
// or by listing the SESSION label. ErrRegistryUnavailable is returned when
// nothing could ever authenticate the request.
func (r *Resolver) Authenticate(ctx context.Context, req *models.Request, policy models.AuthPolicy) (models.Identity, error) {
	allowSession := r.sessions != nil && (policy.AllowSession || slices.ContainsFunc(policy.Keys, isSessionLabel))

	registry := r.registry.Allow(policy.Keys)
	if registry.Len() == 0 && !allowSession {
		logger.FromContext(ctx).Error().Err(ErrRegistryUnavailable).Strs("allow_keys", policy.Keys).Msg("protected route without usable keys")
		return models.Unauthorized, ErrRegistryUnavailable
	}

	return r.Resolve(ctx, req, registry, allowSession), nil
}

// Resolve returns the identity of the caller of req. Every attempt is
// audited; successful ones also record the inbound request.
func (r *Resolver) Resolve(ctx context.Context, req *models.Request, registry *KeyRegistry, allowSession bool) models.Identity {
	if req == nil {
		req = &models.Request{}
	}

	candidate, source := r.candidate(ctx, req, allowSession)

	identity := models.Unauthorized
	switch source {
	case models.SourceNone:
	case models.SourceSession:
		identity = models.SessionIdentity(candidate)
	default:
		if label, ok := registry.Lookup(candidate); ok {
			identity = models.KeyIdentity(label)
		}
	}

	rec := audit.NewRecord(models.AuditAuth, req)
	rec.KeyLength = len(candidate)
	rec.KeyProvided = source != models.SourceNone
	rec.Valid = identity.Authorized()
	rec.Identity = identity
	rec.Source = source
	rec.UseSession = allowSession
	rec.Message = "authenticate"
	r.write(ctx, rec)

	if identity.Authorized() {
		rec = audit.NewRecord(models.AuditRequest, req)
		rec.Identity = identity
		r.write(ctx, rec)
	}

	return identity
}

// candidate picks the credential of req by source priority.
func (r *Resolver) candidate(ctx context.Context, req *models.Request, allowSession bool) (string, models.CredentialSource) {
	if key := req.Headers.Get(HeaderAPIKey); key != "" {
		return key, models.SourceAPIKeyHeader
	}

	if req.Auth != "" {
		return stripScheme(req.Auth), models.SourceAuthorization
	}

	r.dumpHeaders(ctx, req)
	// presence is enough: an empty authorization header still blocks the
	// session fallback
	if req.Headers.Has(headerAuthorization) {
		return stripScheme(req.Headers.Get(headerAuthorization)), models.SourceHeaderScan
	}

	if allowSession && r.sessions != nil {
		if username := r.sessions.Username(ctx, req); username != "" {
			return username, models.SourceSession
		}
	}

	return "", models.SourceNone
}

// dumpHeaders records every header except the authorization value.
func (r *Resolver) dumpHeaders(ctx context.Context, req *models.Request) {
	dump, err := json.Marshal(req.Headers.Lower(headerAuthorization))
	if err != nil {
		return
	}

	rec := audit.NewRecord(models.AuditHeaders, req)
	rec.Message = string(dump)
	r.write(ctx, rec)
}

func (r *Resolver) write(ctx context.Context, rec models.AuditRecord) {
	if err := r.sink.Write(ctx, rec); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("kind", string(rec.Kind)).Msg("error writing audit record")
	}
}

func stripScheme(value string) string {
	return schemePrefix.ReplaceAllString(value, "")
}

func isSessionLabel(label string) bool {
	return strings.EqualFold(label, models.SessionTag)
}
