package services

import (
	"context"
	"time"

	"github.com/mrlokans/librarian/internal/entities"
)

// Store interfaces are implemented by every persistence backend. Missing
// records are reported as database.ErrNotFound and unique index violations
// as database.ErrDuplicate.

// UserStore persists user records.
type UserStore interface {
	CreateUser(ctx context.Context, user *entities.User) error
	GetUserByID(ctx context.Context, id string) (*entities.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
	ListUsers(ctx context.Context, page entities.Page) ([]entities.User, int64, error)
	UpdateUser(ctx context.Context, id string, changes entities.UserChanges) (*entities.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// BookStore persists the book catalog.
type BookStore interface {
	CreateBook(ctx context.Context, book *entities.Book) error
	GetBookByID(ctx context.Context, id string) (*entities.Book, error)
	GetBookByISBN(ctx context.Context, isbn string) (*entities.Book, error)
	ListBooks(ctx context.Context, filter entities.BookFilter, page entities.Page) ([]entities.Book, int64, error)
	UpdateBook(ctx context.Context, id string, changes entities.BookChanges) (*entities.Book, error)
	DeleteBook(ctx context.Context, id string) error
}

// BorrowStore persists borrow records.
type BorrowStore interface {
	CreateBorrow(ctx context.Context, borrow *entities.Borrow) error
	ListBorrows(ctx context.Context, page entities.Page) ([]entities.BorrowDetails, int64, error)
	// CloseOpenBorrow sets returnDate on the oldest open borrow of the pair.
	CloseOpenBorrow(ctx context.Context, userID, bookID string, returnedAt time.Time) (*entities.Borrow, error)
}

// Clock returns the current time. Services take one so tests can pin it.
type Clock func() time.Time
