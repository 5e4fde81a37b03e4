// Package server wires and runs the gateway's listeners.
//
// It provides orchestration for the gateway and admin HTTP servers together
// with the background workers, including startup, signal handling, and
// graceful shutdown bounded by the configured timeout.
package server
