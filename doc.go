// Package auth implements a minimal authentication backend: account
// registration, email/password login, HMAC signed access and refresh
// tokens, and a request filter that classifies inbound tokens and
// attaches the resolved identity to the request context.
//
// The package exposes the token state machine (issue, classify, parse)
// and the login/refresh orchestration. HTTP routing lives in
// http_controller.go, the per-request filter in middleware/jwtware.
package auth
