// Package server runs the sync server's HTTP transport: startup, signal
// handling, and graceful shutdown.
package server
