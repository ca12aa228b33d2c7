// Package api serves the Mission Control HTTP API.
//
// Routes are registered with huma on a chi router. Every request passes
// through CORS, request logging and an optional per-client rate limit.
// Errors are returned as RFC 7807 problem documents with generic
// messages; causes are logged, never sent.
package api
