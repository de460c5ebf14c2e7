// Package auth provides authentication and authorization functionality for the application.
//
// This package implements the security core of the todo service:
//
// # Credentials
//
// Credentials handles username/password verification against the local
// database with Argon2id password hashing. It also covers registration
// and password changes, which re-verify the current password first.
//
// # Token Service
//
// TokenService issues and validates stateless HMAC-SHA256 signed bearer
// tokens. Claims carry the subject (username), the user id and the role.
// Validation is a pure function of the token, the server secret and the
// clock; no token state is kept server-side, so there is no revocation
// list and no per-request lookup cost.
//
// # Authentication Guard
//
// RequireAuth is the single choke point for protected routes. It extracts
// the bearer token from the Authorization header, validates it and places
// a typed Identity into the request context. Every failure is surfaced to
// the client with the same generic message so callers cannot distinguish
// missing, expired, malformed or tampered tokens.
//
// # Authorization Policy
//
// Can is a pure decision function over (identity, action, resource).
// Regular users may only touch todos they own; admins may read and delete
// any todo. The role is read exclusively from validated token claims.
//
// Example usage:
//
//	ts := auth.NewTokenService(cfg.Auth.TokenSecret, 20*time.Minute)
//
//	app.Get("/todos", auth.RequireAuth(ts), listHandler)
//
//	app.Delete("/admin/todos/:id",
//	    auth.RequireAuth(ts),
//	    auth.RequireRole(models.RoleAdmin),
//	    deleteAnyHandler,
//	)
package auth
