package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mrlokans/librarian/internal/database"
	"github.com/mrlokans/librarian/internal/entities"
)

// BorrowService runs the borrow/return workflow. A borrow is open until its
// return date is set, and a closed borrow is never reopened.
type BorrowService struct {
	borrows BorrowStore
	users   UserStore
	books   BookStore
	now     Clock
}

func NewBorrowService(borrows BorrowStore, users UserStore, books BookStore) *BorrowService {
	return &BorrowService{borrows: borrows, users: users, books: books, now: time.Now}
}

// BorrowBook opens a borrow of bookID by userID. It does not check whether
// the pair already has an open borrow.
func (s *BorrowService) BorrowBook(ctx context.Context, userID, bookID string) (*entities.Borrow, error) {
	userID, bookID = strings.TrimSpace(userID), strings.TrimSpace(bookID)
	if err := requirePair(userID, bookID); err != nil {
		return nil, err
	}

	if !isID(userID) {
		return nil, ErrUserNotFound
	}
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, userLookupError(err)
	}
	if !isID(bookID) {
		return nil, ErrBookNotFound
	}
	if _, err := s.books.GetBookByID(ctx, bookID); err != nil {
		return nil, bookLookupError(err)
	}

	borrow := &entities.Borrow{UserID: userID, BookID: bookID, BorrowDate: s.now().UTC()}
	if err := s.borrows.CreateBorrow(ctx, borrow); err != nil {
		return nil, fmt.Errorf("failed to create borrow: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"borrow_id": borrow.ID,
		"user_id":   userID,
		"book_id":   bookID,
	}).Info("Book borrowed")
	return borrow, nil
}

func (s *BorrowService) ListBorrows(ctx context.Context, page entities.Page) (*entities.PageResult[entities.BorrowDetails], error) {
	details, total, err := s.borrows.ListBorrows(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list borrows: %w", err)
	}
	if len(details) == 0 {
		return nil, ErrNoBorrowsFound
	}
	return &entities.PageResult[entities.BorrowDetails]{Items: details, Page: page, Total: total}, nil
}

// ReturnBook closes the oldest open borrow of the pair.
func (s *BorrowService) ReturnBook(ctx context.Context, userID, bookID string) (*entities.Borrow, error) {
	userID, bookID = strings.TrimSpace(userID), strings.TrimSpace(bookID)
	if err := requirePair(userID, bookID); err != nil {
		return nil, err
	}

	v := &violations{}
	v.check(isID(userID), "userId", "userId is not a valid identifier")
	v.check(isID(bookID), "bookId", "bookId is not a valid identifier")
	if err := v.err("invalid userId or bookId format"); err != nil {
		return nil, err
	}

	borrow, err := s.borrows.CloseOpenBorrow(ctx, userID, bookID, s.now().UTC())
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrBorrowNotFound
		}
		return nil, fmt.Errorf("failed to close borrow: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"borrow_id": borrow.ID,
		"user_id":   userID,
		"book_id":   bookID,
	}).Info("Book returned")
	return borrow, nil
}

func requirePair(userID, bookID string) error {
	v := &violations{}
	v.check(userID != "", "userId", "userId is required")
	v.check(bookID != "", "bookId", "bookId is required")
	return v.err("please provide both userId and bookId")
}
