// Package server implements the HTTP server using Echo framework.
//
// Routes: overview + reminder proxy API (authenticated), dashboard page,
// health/metrics/version (public). Handlers split by concern:
// handlers_overview.go, handlers_reminders.go, handlers_auth.go, handlers_health.go.
package server
