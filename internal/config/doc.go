// Package config provides 12-factor configuration management for the
// projectfs server.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// environment variables. CLI flags in cmd/server override the result.
//
// Configuration Sections:
//   - Server: HTTP listener settings (port, host)
//   - Project: Default root, listing depth limit, extra exclusions
//   - Search: Result cap and per-file size guard
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//
// Example Usage:
//
//	cfg, err := config.LoadFile("projectfs.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Serving %s on %s\n", cfg.Project.Root, cfg.Addr())
//
// Environment Variables:
//   - PORT, HOST
//   - PROJECTFS_CONFIG, PROJECTFS_ROOT, PROJECTFS_MAX_DEPTH, PROJECTFS_EXCLUDE
//   - PROJECTFS_SEARCH_MAX_RESULTS, PROJECTFS_SEARCH_MAX_FILE_SIZE
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
package config
