// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/MKhiriev/go-rest-pipeline/models"
)

// Route dispatch modes accepted by [Pipeline.RouteMode].
const (
	// RouteModeContinue invokes every matching route; a request nothing
	// matches is passed on to the host.
	RouteModeContinue = "continue"

	// RouteModeStop invokes every matching route and answers 404 when no
	// route matches at all.
	RouteModeStop = "stop"
)

// Defaults applied by [StructuredConfig.applyDefaults] to unset fields.
const (
	DefaultHTTPAddress     = "localhost:8080"
	DefaultProtocol        = "HTTP/1.0"
	DefaultMaxBodyBytes    = 10 << 20
	DefaultSessionCookie   = "session"
	DefaultSessionIssuer   = "go-rest-pipeline"
	DefaultSessionDuration = 24 * time.Hour
)

// StructuredConfig is the top-level configuration container. It is populated
// by merging environment variables, command-line flags and an optional JSON
// file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings.
	App App `envPrefix:"APP_"`

	// Server holds the host HTTP listener settings.
	Server Server `envPrefix:"SERVER_"`

	// Pipeline holds route table and dispatch settings.
	Pipeline Pipeline `envPrefix:"PIPELINE_"`

	// Auth holds the key registry and session settings.
	Auth Auth `envPrefix:"AUTH_"`

	// Audit holds the audit sink destinations.
	Audit Audit `envPrefix:"AUDIT_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is reported by the version route.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Server holds network and limit settings for the host transport.
type Server struct {
	// HTTPAddress is the TCP address the HTTP host listens on ("host:port").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request. Zero disables it.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// MaxBodyBytes caps how much of a request body the parser reads.
	// Env: SERVER_MAX_BODY_BYTES
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES"`
}

// Pipeline holds the dispatch settings of the request pipeline.
type Pipeline struct {
	// RouteMode is either "continue" or "stop".
	// Env: PIPELINE_ROUTE_MODE
	RouteMode string `env:"ROUTE_MODE"`

	// DefaultProtocol is used in the status line when the transport does not
	// report a protocol version.
	// Env: PIPELINE_DEFAULT_PROTOCOL
	DefaultProtocol string `env:"DEFAULT_PROTOCOL"`

	// Routes is the ordered route table. Only the JSON file can set it; an
	// empty table selects the built-in routes.
	Routes []models.RouteConfig
}

// Auth holds the key registry source and the session settings.
type Auth struct {
	// KeysJSON is an inline JSON object mapping label to key, in order.
	// Env: AUTH_API_KEYS
	KeysJSON string `env:"API_KEYS"`

	// KeysFile is a JSON or YAML document mapping label to key, in order.
	// Env: AUTH_KEYS_FILE
	KeysFile string `env:"KEYS_FILE"`

	// KeysPassphrase, when set, means KeysFile is sealed and must be opened
	// with this passphrase.
	// Env: AUTH_KEYS_PASSPHRASE
	KeysPassphrase string `env:"KEYS_PASSPHRASE"`

	// SessionSignKey signs session tokens. Sessions are disabled without it.
	// Env: AUTH_SESSION_SIGN_KEY
	SessionSignKey string `env:"SESSION_SIGN_KEY"`

	// SessionIssuer is the "iss" claim of session tokens.
	// Env: AUTH_SESSION_ISSUER
	SessionIssuer string `env:"SESSION_ISSUER"`

	// SessionCookie is the name of the cookie carrying the session token.
	// Env: AUTH_SESSION_COOKIE
	SessionCookie string `env:"SESSION_COOKIE"`

	// SessionDuration is the lifetime of issued session tokens.
	// Env: AUTH_SESSION_DURATION
	SessionDuration time.Duration `env:"SESSION_DURATION"`
}

// Audit holds the audit sink destinations. Both may be set at once.
type Audit struct {
	// Dir receives the append-only audit log files.
	// Env: AUDIT_DIR
	Dir string `env:"DIR"`

	// Driver is the database/sql driver name: "sqlite3" or "pgx".
	// Env: AUDIT_DB_DRIVER
	Driver string `env:"DB_DRIVER"`

	// DSN is the audit database connection string.
	// Env: AUDIT_DB_DSN
	DSN string `env:"DB_DSN"`
}

// GetStructuredConfig loads, merges, and validates the configuration from all
// available sources in the following priority order (last source wins for
// non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
