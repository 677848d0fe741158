// Package server runs the HTTP host: startup, signal handling and graceful
// shutdown.
package server
