package config

import "errors"

// Validation errors returned by [StructuredConfig.validate].
var (
	// ErrInvalidServerConfigs indicates invalid host listener settings
	// (for example, a negative body limit).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidPipelineConfigs indicates an unknown route mode or a route
	// entry without a pattern.
	ErrInvalidPipelineConfigs = errors.New("invalid pipeline configuration")
	// ErrInvalidAuthConfigs indicates conflicting key registry sources.
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration")
	// ErrInvalidAuditConfigs indicates an audit DSN without a supported driver.
	ErrInvalidAuditConfigs = errors.New("invalid audit configuration")
)
