package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mrlokans/librarian/internal/auth"
	"github.com/mrlokans/librarian/internal/database"
	"github.com/mrlokans/librarian/internal/database/books"
	"github.com/mrlokans/librarian/internal/database/borrows"
	"github.com/mrlokans/librarian/internal/database/users"
	"github.com/mrlokans/librarian/internal/entities"
)

const strongPassword = "Abc12345!"

type testServices struct {
	users   *UserService
	books   *BookService
	borrows *BorrowService
	tokens  *auth.TokenManager
}

func setupServices(t *testing.T) *testServices {
	t.Helper()

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "library.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	tokens, err := auth.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	userRepo := users.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)
	borrowRepo := borrows.NewRepository(db.DB)

	return &testServices{
		users:   NewUserService(userRepo, tokens, bcrypt.MinCost),
		books:   NewBookService(bookRepo),
		borrows: NewBorrowService(borrowRepo, userRepo, bookRepo),
		tokens:  tokens,
	}
}

func (s *testServices) register(t *testing.T, name, email string) entities.UserSummary {
	t.Helper()
	result, err := s.users.Register(context.Background(), RegisterInput{Name: name, Email: email, Password: strongPassword})
	require.NoError(t, err)
	return result.User
}

func (s *testServices) addBook(t *testing.T, isbn string) *entities.Book {
	t.Helper()
	book, err := s.books.AddBook(context.Background(), BookInput{
		Title:       "Title " + isbn,
		Author:      "Author",
		ISBN:        isbn,
		PublishYear: 2020,
		Genre:       "Fiction",
	})
	require.NoError(t, err)
	return book
}

func fieldNames(t *testing.T, err error) []string {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	names := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		names = append(names, f.Field)
	}
	return names
}
