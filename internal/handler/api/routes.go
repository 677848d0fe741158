package api

import (
	"net/http"

	"github.com/MKhiriev/go-rest-pipeline/internal/logger"
	"github.com/MKhiriev/go-rest-pipeline/internal/router"
	"github.com/MKhiriev/go-rest-pipeline/models"
)

// DefaultRoutes is the route table used when none is configured.
func DefaultRoutes() []models.RouteConfig {
	return []models.RouteConfig{
		{Pattern: `^/api/v\d+/version`, Handler: HandlerVersion, Methods: []string{http.MethodGet}},
		{Pattern: `^/api/v\d+/whoami`, Handler: HandlerWhoAmI, Methods: []string{http.MethodGet}, Auth: &models.AuthPolicy{AllowSession: true}},
		{Pattern: `^/api/v\d+/echo(?:/(?P<rest>.*))?`, Handler: HandlerEcho, Auth: &models.AuthPolicy{}},
		{Pattern: `^/api/v\d+/batch`, Handler: HandlerBatch, Methods: []string{http.MethodPost}, Auth: &models.AuthPolicy{}},
		{Pattern: `^/api/v\d+/session`, Handler: HandlerSession, Methods: []string{http.MethodPost}, Auth: &models.AuthPolicy{}},
	}
}

// BuildTable binds configured routes to handlers by name, in order. An
// unknown name leaves the route without a handler, so dispatching to it
// answers 500.
func BuildTable(routes []models.RouteConfig, handlers map[string]router.Handler, log *logger.Logger) (*router.Table, error) {
	if len(routes) == 0 {
		routes = DefaultRoutes()
	}

	compiled := make([]router.Route, 0, len(routes))
	for _, rc := range routes {
		h, ok := handlers[rc.Handler]
		if !ok {
			log.Warn().Str("pattern", rc.Pattern).Str("handler", rc.Handler).Msg("route references an unknown handler")
		}
		compiled = append(compiled, router.Route{
			Pattern: rc.Pattern,
			Handler: h,
			Methods: rc.Methods,
			Auth:    rc.Auth,
		})
	}

	return router.NewTable(compiled...)
}
