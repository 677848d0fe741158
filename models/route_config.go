package models

// RouteConfig is one entry of a configured route table. Handler names a
// built-in handler.
type RouteConfig struct {
	Pattern string      `json:"pattern"`
	Handler string      `json:"handler"`
	Methods []string    `json:"methods,omitempty"`
	Auth    *AuthPolicy `json:"auth,omitempty"`
}
