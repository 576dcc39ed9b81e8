// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

// Server defines the lifecycle contract of the application server.
//
// RunServer blocks until SIGINT, SIGTERM or SIGQUIT is received, Shutdown is
// called or the listener fails.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer() error

	// Shutdown requests a graceful stop of a running server.
	Shutdown()
}
