// Package api holds the built-in route handlers of the pipeline and the
// table builder that binds configured routes to them by name.
package api
