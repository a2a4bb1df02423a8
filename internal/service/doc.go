// Package service provides the service registry that routes tool calls to
// providers.
//
// A tool ID has the form "<service>.<tool>"; the prefix selects the provider.
//
// Features:
//   - Thread-safe registration with duplicate detection
//   - Category filtering and deterministic listing order
//   - Intent-based discovery with keyword scoring
//   - Context-aware tool execution
//
// Example Usage:
//
//	registry := service.NewRegistry()
//	registry.Register(filesystem.NewProvider(sandbox))
//	result, err := registry.Execute(ctx, "filesystem.read_file", params, appCtx)
package service
