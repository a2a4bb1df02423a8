// Package http provides the gin handlers for the projectfs REST API.
//
// Every filesystem endpoint is routed through the service registry so
// metrics and cancellation checks apply uniformly. Failures carry a kind
// that selects the HTTP status.
//
// Endpoints:
//   - Info: / and /health
//   - Services: /services, /services/execute
//   - Project: /project/root
//   - Files: /fs/read, /fs/write, /fs/edit, /fs/list, /fs/search, /fs/stats
//
// Example Usage:
//
//	handlers := http.NewHandlers(registry, logger)
//	router.POST("/fs/read", handlers.ReadFile)
package http
