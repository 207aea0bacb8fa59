package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/librarian/internal/auth"
	"github.com/mrlokans/librarian/internal/database"
	"github.com/mrlokans/librarian/internal/database/books"
	"github.com/mrlokans/librarian/internal/database/borrows"
	"github.com/mrlokans/librarian/internal/database/mongodb"
	"github.com/mrlokans/librarian/internal/database/users"
	"github.com/mrlokans/librarian/internal/http"
	"github.com/mrlokans/librarian/internal/services"
)

// =============================================================================
// Data Access Layer (sqlite)
// =============================================================================

var _ services.UserStore = (*users.Repository)(nil)
var _ services.BookStore = (*books.Repository)(nil)
var _ services.BorrowStore = (*borrows.Repository)(nil)
var _ http.Pinger = (*database.Database)(nil)

// =============================================================================
// Data Access Layer (mongo)
// =============================================================================

var _ services.UserStore = (*mongodb.UserRepository)(nil)
var _ services.BookStore = (*mongodb.BookRepository)(nil)
var _ services.BorrowStore = (*mongodb.BorrowRepository)(nil)
var _ http.Pinger = (*mongodb.Store)(nil)

// =============================================================================
// Services
// =============================================================================

var _ http.UserManager = (*services.UserService)(nil)
var _ http.BookManager = (*services.BookService)(nil)
var _ http.BorrowManager = (*services.BorrowService)(nil)
var _ services.TokenIssuer = (*auth.TokenManager)(nil)
