// Package main is the entry point for the projectfs server.
//
// projectfs exposes a project directory to local tools over HTTP: reading,
// writing and editing files, listing directories and searching contents,
// with every path confined to the project root.
//
// Configuration:
//   - Built-in defaults
//   - YAML file (-config or PROJECTFS_CONFIG)
//   - Environment variables (12-factor)
//   - CLI flags (override everything else)
//
// Usage:
//
//	# Serve the current directory on 127.0.0.1:8000
//	./server
//
//	# Serve a specific project in development mode (colored logs, debug level)
//	./server -root ~/code/myapp -port 9000 -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
