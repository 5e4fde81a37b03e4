package server

import "context"

// Server defines the lifecycle contract of the gateway process.
//
// RunServer blocks until SIGTERM, SIGINT or SIGQUIT arrives and then shuts
// everything down. Run does the same but stops when ctx is cancelled.
type Server interface {
	// RunServer starts serving requests and blocks until a stop signal.
	RunServer()

	// Run starts serving requests and blocks until ctx is done or a listener fails.
	Run(ctx context.Context) error
}
