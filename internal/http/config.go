package http

import (
	"github.com/mrlokans/librarian/internal/auth"
)

// RouterConfig contains all dependencies needed to create the HTTP router.
type RouterConfig struct {
	Users   UserManager
	Books   BookManager
	Borrows BorrowManager

	// AuthMiddleware gates every route marked as protected.
	AuthMiddleware *auth.Middleware

	// Store is pinged by /health. Nil skips the store check.
	Store Pinger

	// Application info
	Version string
}
