// Package logging provides structured logging using uber/zap.
//
// Two modes are supported:
//   - Production: JSON output for machine parsing
//   - Development: colored console output
//
// Components get a named child logger so every line carries its origin:
//
//	logger, err := logging.New(logging.DefaultConfig())
//	fsLog := logger.Component("filesystem")
//	fsLog.Info("sandbox ready", zap.String("root", root))
package logging
