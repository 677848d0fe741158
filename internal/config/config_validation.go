// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"slices"
)

// applyDefaults fills unset fields with their defaults.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.Pipeline.RouteMode == "" {
		cfg.Pipeline.RouteMode = RouteModeStop
	}
	if cfg.Pipeline.DefaultProtocol == "" {
		cfg.Pipeline.DefaultProtocol = DefaultProtocol
	}
	if cfg.Auth.SessionCookie == "" {
		cfg.Auth.SessionCookie = DefaultSessionCookie
	}
	if cfg.Auth.SessionIssuer == "" {
		cfg.Auth.SessionIssuer = DefaultSessionIssuer
	}
	if cfg.Auth.SessionDuration == 0 {
		cfg.Auth.SessionDuration = DefaultSessionDuration
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Server.MaxBodyBytes < 0 || cfg.Server.RequestTimeout < 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Pipeline.RouteMode != RouteModeContinue && cfg.Pipeline.RouteMode != RouteModeStop {
		return fmt.Errorf("%w: unknown route mode %q", ErrInvalidPipelineConfigs, cfg.Pipeline.RouteMode)
	}
	for i, route := range cfg.Pipeline.Routes {
		if route.Pattern == "" || route.Handler == "" {
			return fmt.Errorf("%w: route #%d needs a pattern and a handler", ErrInvalidPipelineConfigs, i)
		}
	}

	if cfg.Auth.KeysJSON != "" && cfg.Auth.KeysFile != "" {
		return fmt.Errorf("%w: set either inline keys or a keys file", ErrInvalidAuthConfigs)
	}
	if cfg.Auth.KeysPassphrase != "" && cfg.Auth.KeysFile == "" {
		return fmt.Errorf("%w: passphrase given without a keys file", ErrInvalidAuthConfigs)
	}

	if cfg.Audit.DSN != "" && !slices.Contains([]string{"sqlite3", "pgx"}, cfg.Audit.Driver) {
		return fmt.Errorf("%w: unsupported driver %q", ErrInvalidAuditConfigs, cfg.Audit.Driver)
	}

	return nil
}
