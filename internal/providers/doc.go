// Package providers groups the service providers registered with the
// service registry. Each provider exposes its capabilities as tools:
//
//   - Definition(): service metadata and tool definitions
//   - Execute(): runs a tool with parameters and a request context
//
// Available Providers:
//   - filesystem: project-root confined read, write, edit, list, search and stats
package providers
