// Package session issues and reads signed session cookies. It is the session
// collaborator of the credential resolver: a valid cookie yields the
// username the session was issued to.
package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/MKhiriev/go-rest-pipeline/internal/config"
	"github.com/MKhiriev/go-rest-pipeline/internal/logger"
	"github.com/MKhiriev/go-rest-pipeline/internal/utils"
	"github.com/MKhiriev/go-rest-pipeline/models"
)

// ErrSessionsDisabled is returned by Issue when no sign key is configured.
var ErrSessionsDisabled = errors.New("sessions are disabled")

// Manager signs session tokens and reads them back from the session cookie.
type Manager struct {
	signKey  string
	issuer   string
	cookie   string
	duration time.Duration
}

func NewManager(cfg config.Auth) *Manager {
	return &Manager{
		signKey:  cfg.SessionSignKey,
		issuer:   cfg.SessionIssuer,
		cookie:   cfg.SessionCookie,
		duration: cfg.SessionDuration,
	}
}

// Enabled reports whether a sign key is configured.
func (m *Manager) Enabled() bool {
	return m != nil && m.signKey != ""
}

// Issue signs a session token for username.
func (m *Manager) Issue(username string) (models.SessionToken, error) {
	if !m.Enabled() {
		return models.SessionToken{}, ErrSessionsDisabled
	}
	return utils.GenerateSessionToken(m.issuer, username, m.duration, m.signKey)
}

// SetCookieHeader returns the "Set-Cookie" header line delivering token.
func (m *Manager) SetCookieHeader(token models.SessionToken) string {
	c := &http.Cookie{
		Name:     m.cookie,
		Value:    token.String(),
		Path:     "/",
		MaxAge:   int(m.duration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return "Set-Cookie: " + c.String()
}

// Username returns the owner of the session carried by req, or "" when the
// request has no valid session.
func (m *Manager) Username(ctx context.Context, req *models.Request) string {
	if !m.Enabled() || req == nil {
		return ""
	}

	raw := req.Headers.Get("Cookie")
	if raw == "" {
		return ""
	}

	cookies, err := http.ParseCookie(raw)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("malformed cookie header")
		return ""
	}

	for _, c := range cookies {
		if c.Name != m.cookie {
			continue
		}
		token, err := utils.ValidateAndParseSessionToken(c.Value, m.signKey, m.issuer)
		if err != nil {
			logger.FromContext(ctx).Debug().Err(err).Msg("invalid session cookie")
			return ""
		}
		username, _ := token.Username()
		return username
	}

	return ""
}
