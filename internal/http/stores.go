package http

import (
	"context"

	"github.com/mrlokans/librarian/internal/entities"
	"github.com/mrlokans/librarian/internal/services"
)

// Controllers depend on these narrow interfaces rather than the concrete
// services so they can be exercised with fakes.

// UserManager covers registration, login and user CRUD.
type UserManager interface {
	Register(ctx context.Context, input services.RegisterInput) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	ListUsers(ctx context.Context, page entities.Page) (*entities.PageResult[entities.User], error)
	GetUser(ctx context.Context, id string) (*entities.User, error)
	UpdateUser(ctx context.Context, id string, update services.UserUpdate) (*entities.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// BookManager covers the catalog.
type BookManager interface {
	AddBook(ctx context.Context, input services.BookInput) (*entities.Book, error)
	ListBooks(ctx context.Context, filter entities.BookFilter, page entities.Page) (*entities.PageResult[entities.Book], error)
	GetBook(ctx context.Context, id string) (*entities.Book, error)
	UpdateBook(ctx context.Context, id string, changes entities.BookChanges) (*entities.Book, error)
	DeleteBook(ctx context.Context, id string) error
}

// BorrowManager covers the borrow/return workflow.
type BorrowManager interface {
	BorrowBook(ctx context.Context, userID, bookID string) (*entities.Borrow, error)
	ListBorrows(ctx context.Context, page entities.Page) (*entities.PageResult[entities.BorrowDetails], error)
	ReturnBook(ctx context.Context, userID, bookID string) (*entities.Borrow, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
