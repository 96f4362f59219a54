// Package server provides the HTTP server of fluxkit services: a Gin engine
// mounted on a ServeMux and served over HTTP/1.1 and h2c.
//
// Middleware (server/middleware) wraps the whole handler: panic recovery,
// request IDs, CORS, body size limits and request logging.
//
// Handlers answer with flux results through RespondTask and RespondStream.
// A stream is written as a JSON array, or as Server-Sent Events when the
// client accepts text/event-stream.
//
// # Endpoints
//
// RegisterDefaultEndpoints mounts (server/endpoint):
//
//   - /health: component health aggregation
//   - /alive: liveness check
//   - /ready: readiness check
//   - /info: service name, version and uptime
//   - /metrics: runtime memory and goroutine counts
package server
