package api

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-rest-pipeline/internal/emitter"
	"github.com/MKhiriev/go-rest-pipeline/internal/logger"
	"github.com/MKhiriev/go-rest-pipeline/internal/router"
	"github.com/MKhiriev/go-rest-pipeline/internal/utils"
	"github.com/MKhiriev/go-rest-pipeline/models"
)

// Built-in handler names usable in the route configuration.
const (
	HandlerVersion = "version"
	HandlerWhoAmI  = "whoami"
	HandlerEcho    = "echo"
	HandlerBatch   = "batch"
	HandlerSession = "session"
)

// SessionIssuer mints session tokens.
type SessionIssuer interface {
	Enabled() bool
	Issue(username string) (models.SessionToken, error)
	SetCookieHeader(token models.SessionToken) string
}

// Handlers are the built-in route handlers.
type Handlers struct {
	buildInfo models.AppBuildInfo
	sessions  SessionIssuer
}

// NewHandlers returns the built-in handlers. sessions may be nil, which
// makes the session handler answer 500.
func NewHandlers(buildInfo models.AppBuildInfo, sessions SessionIssuer) *Handlers {
	return &Handlers{buildInfo: buildInfo, sessions: sessions}
}

// ByName returns the built-in handlers keyed by configuration name.
func (h *Handlers) ByName() map[string]router.Handler {
	return map[string]router.Handler{
		HandlerVersion: router.HandlerFunc(h.Version),
		HandlerWhoAmI:  router.HandlerFunc(h.WhoAmI),
		HandlerEcho:    router.HandlerFunc(h.Echo),
		HandlerBatch:   router.HandlerFunc(h.Batch),
		HandlerSession: router.HandlerFunc(h.Session),
	}
}

// Version reports the build metadata.
func (h *Handlers) Version(context.Context, models.Parameters) *models.Response {
	return respond(models.StandardOk(h.buildInfo.Fields(), 0))
}

// WhoAmI reports the resolved caller identity.
func (h *Handlers) WhoAmI(ctx context.Context, _ models.Parameters) *models.Response {
	id, ok := utils.GetIdentityFromContext(ctx)
	if !ok {
		id = models.Unauthorized
	}
	return respond(models.StandardOk(map[string]any{"identity": id.String()}, 0))
}

// Echo answers with the request it was given: method, path decomposition,
// parameters and route captures.
func (h *Handlers) Echo(ctx context.Context, params models.Parameters) *models.Response {
	info := map[string]any{"parameters": params}

	if req, ok := utils.GetRequestFromContext(ctx); ok {
		info["method"] = req.Method
		info["version"] = req.APIVersion
		info["path"] = req.Path
		info["base"] = req.BasePath
		info["format"] = req.Format
	}
	if c, ok := utils.GetCapturesFromContext(ctx); ok {
		info["captures"] = c.Positional
		if c.Named != nil {
			info["named"] = c.Named
		}
	}

	return respond(models.StandardOk(info, 0))
}

// Batch answers a multi-status envelope with one result per element of the
// "items" parameter. Missing or non-list items yield an empty result set.
func (h *Handlers) Batch(_ context.Context, params models.Parameters) *models.Response {
	var items []any
	switch v := params["items"].(type) {
	case []any:
		items = v
	case []string:
		for _, s := range v {
			items = append(items, s)
		}
	}

	results := make([]map[string]any, 0, len(items))
	for i, item := range items {
		results = append(results, map[string]any{
			"index":  i,
			"status": http.StatusOK,
			"item":   item,
		})
	}

	return respond(models.StandardMulti(map[string]any{"results": results}, 0))
}

// Session mints a session for the "username" parameter and delivers it as
// a cookie next to the default cache headers.
func (h *Handlers) Session(ctx context.Context, params models.Parameters) *models.Response {
	if h.sessions == nil || !h.sessions.Enabled() {
		return respond(models.ErrorInternal())
	}

	username := params.String("username")
	if username == "" {
		return respond(models.StandardError("username is required", http.StatusBadRequest))
	}

	token, err := h.sessions.Issue(username)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("error issuing session")
		return respond(models.ErrorInternal())
	}

	resp := models.StandardOk(map[string]any{"username": username}, 0)
	resp.Headers = append(append([]string{}, emitter.DefaultHeaders...), h.sessions.SetCookieHeader(token))
	return &resp
}

func respond(resp models.Response) *models.Response {
	return &resp
}
