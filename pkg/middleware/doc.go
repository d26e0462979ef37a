// Package middleware provides the HTTP request interceptors: bearer-token
// authentication, the per-resource ownership guard, request ids, and
// Prometheus request metrics.
//
// The authentication middleware verifies the bearer token and attaches the
// resulting principal to the request context. The ownership guard runs
// after it on every protected route and decides allow/deny for the
// specific resource instance the route targets, using a closed registry of
// per-kind ownership rules.
package middleware
