// Package middleware provides HTTP middleware for the projectfs server.
//
// Middleware stack includes:
//   - RequestID: UUID request IDs echoed in X-Request-ID
//   - Logger: Structured per-request zap logging
//   - CORS: Cross-origin resource sharing via gin-contrib/cors
//   - RateLimit: Per-IP token bucket rate limiting with idle cleanup
//
// Example Usage:
//
//	router.Use(middleware.RequestID())
//	router.Use(middleware.Logger(logger))
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
