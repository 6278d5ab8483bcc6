// Package api implements the HTTP server (Gin-based) for the contact mailer:
// middleware, health and metrics endpoints, controller registration and
// graceful shutdown.
package api
