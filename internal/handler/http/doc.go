// Package http hosts the request pipeline on a chi router.
//
// The host owns transport concerns only: panic recovery, trace ids, access
// logging and the /healthz probe. Every other request is answered by the
// pipeline, either as the catch-all handler (stop mode) or as a middleware
// in front of the host routes (continue mode).
package http
