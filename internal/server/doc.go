// Package server wires configuration, logging, the service registry, the
// filesystem provider and the HTTP router into a runnable server.
//
// Server Lifecycle:
//  1. Load configuration (defaults, YAML file, environment, flags)
//  2. Initialize logger (production or development)
//  3. Register the filesystem provider with metrics attached
//  4. Setup middleware and routes
//  5. Serve until Close drains in-flight requests
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	srv, err := server.NewServer(cfg, logger)
//	if err := srv.Run(); err != nil {
//		log.Fatal(err)
//	}
package server
