package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mrlokans/librarian/internal/database"
	"github.com/mrlokans/librarian/internal/entities"
)

type BookInput struct {
	Title       string
	Author      string
	ISBN        string
	PublishYear int
	Genre       string
}

// BookService manages the catalog.
type BookService struct {
	store BookStore
}

func NewBookService(store BookStore) *BookService {
	return &BookService{store: store}
}

// AddBook stores a new book. The ISBN is checked for uniqueness before the
// insert and again by the store's unique index.
func (s *BookService) AddBook(ctx context.Context, input BookInput) (*entities.Book, error) {
	book := &entities.Book{
		Title:       strings.TrimSpace(input.Title),
		Author:      strings.TrimSpace(input.Author),
		ISBN:        strings.TrimSpace(input.ISBN),
		PublishYear: input.PublishYear,
		Genre:       strings.TrimSpace(input.Genre),
	}

	v := &violations{}
	v.check(book.Title != "", "title", "title is required")
	v.check(book.Author != "", "author", "author is required")
	v.check(book.ISBN != "", "ISBN", "ISBN is required")
	switch {
	case input.PublishYear == 0:
		v.add("publishYear", "publishYear is required")
	case input.PublishYear < 0:
		v.add("publishYear", "publishYear must be a positive integer")
	}
	v.check(book.Genre != "", "genre", "genre is required")
	if err := v.err("please provide title, author, ISBN, publishYear and genre"); err != nil {
		return nil, err
	}

	_, err := s.store.GetBookByISBN(ctx, book.ISBN)
	if err == nil {
		return nil, ErrBookExists
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up book: %w", err)
	}

	if err := s.store.CreateBook(ctx, book); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrBookExists
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	logrus.WithFields(logrus.Fields{"book_id": book.ID, "isbn": book.ISBN}).Info("Book added")
	return book, nil
}

func (s *BookService) ListBooks(ctx context.Context, filter entities.BookFilter, page entities.Page) (*entities.PageResult[entities.Book], error) {
	filter.Author = strings.TrimSpace(filter.Author)
	filter.Genre = strings.TrimSpace(filter.Genre)

	books, total, err := s.store.ListBooks(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	if len(books) == 0 {
		return nil, ErrNoBooksFound
	}
	return &entities.PageResult[entities.Book]{Items: books, Page: page, Total: total}, nil
}

func (s *BookService) GetBook(ctx context.Context, id string) (*entities.Book, error) {
	if !isID(id) {
		return nil, ErrBookNotFound
	}
	book, err := s.store.GetBookByID(ctx, id)
	if err != nil {
		return nil, bookLookupError(err)
	}
	return book, nil
}

// UpdateBook applies the supplied fields. The ISBN cannot be changed.
func (s *BookService) UpdateBook(ctx context.Context, id string, changes entities.BookChanges) (*entities.Book, error) {
	changes.Title = trimmed(changes.Title)
	changes.Author = trimmed(changes.Author)
	changes.Genre = trimmed(changes.Genre)

	v := &violations{}
	if changes.Title != nil {
		v.check(*changes.Title != "", "title", "title cannot be empty")
	}
	if changes.Author != nil {
		v.check(*changes.Author != "", "author", "author cannot be empty")
	}
	if changes.PublishYear != nil {
		v.check(*changes.PublishYear > 0, "publishYear", "publishYear must be a positive integer")
	}
	if changes.Genre != nil {
		v.check(*changes.Genre != "", "genre", "genre cannot be empty")
	}
	if err := v.err("invalid book data"); err != nil {
		return nil, err
	}

	if !isID(id) {
		return nil, ErrBookNotFound
	}
	book, err := s.store.UpdateBook(ctx, id, changes)
	if err != nil {
		return nil, bookLookupError(err)
	}
	return book, nil
}

func (s *BookService) DeleteBook(ctx context.Context, id string) error {
	if !isID(id) {
		return ErrBookNotFound
	}
	if err := s.store.DeleteBook(ctx, id); err != nil {
		return bookLookupError(err)
	}
	logrus.WithField("book_id", id).Info("Book deleted")
	return nil
}

func bookLookupError(err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return ErrBookNotFound
	}
	return fmt.Errorf("book store: %w", err)
}
