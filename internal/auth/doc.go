// Package auth provides password hashing, password strength rules and
// stateless bearer-token authentication.
//
// Tokens are HS256 JWTs carrying the user id in the "id" claim. They expire
// after JWT_EXPIRY (24h by default) and cannot be revoked server-side.
//
// # Usage
//
// Initialize in the entrypoint:
//
//	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
//	mw := auth.NewMiddleware(tokens)
//	protected := router.Group("/api", mw.RequireToken())
//
// Extract the caller in handlers:
//
//	userID := auth.GetUserID(c)
package auth
