// Package borrows provides database operations for borrow/return records.
package borrows

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/librarian/internal/database"
	"github.com/mrlokans/librarian/internal/entities"
)

// Repository handles all borrow database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new borrows repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateBorrow(ctx context.Context, borrow *entities.Borrow) error {
	if err := r.db.WithContext(ctx).Create(borrow).Error; err != nil {
		return fmt.Errorf("create borrow: %w", database.TranslateError(err))
	}
	return nil
}

// ListBorrows returns one page of borrows in any state, joined with the
// borrower's name/email and the book's title/author.
func (r *Repository) ListBorrows(ctx context.Context, page entities.Page) ([]entities.BorrowDetails, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entities.Borrow{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count borrows: %w", err)
	}

	var borrows []entities.Borrow
	err := r.db.WithContext(ctx).
		Order("borrow_date ASC, id ASC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&borrows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list borrows: %w", err)
	}
	if len(borrows) == 0 {
		return []entities.BorrowDetails{}, total, nil
	}

	userIDs := make([]string, 0, len(borrows))
	bookIDs := make([]string, 0, len(borrows))
	for _, b := range borrows {
		userIDs = append(userIDs, b.UserID)
		bookIDs = append(bookIDs, b.BookID)
	}

	var users []entities.UserSummary
	err = r.db.WithContext(ctx).Model(&entities.User{}).
		Select("id", "name", "email").
		Where("id IN ?", userIDs).
		Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("load borrowers: %w", err)
	}

	var books []entities.BookSummary
	err = r.db.WithContext(ctx).Model(&entities.Book{}).
		Select("id", "title", "author").
		Where("id IN ?", bookIDs).
		Find(&books).Error
	if err != nil {
		return nil, 0, fmt.Errorf("load borrowed books: %w", err)
	}

	usersByID := make(map[string]*entities.UserSummary, len(users))
	for i := range users {
		usersByID[users[i].ID] = &users[i]
	}
	booksByID := make(map[string]*entities.BookSummary, len(books))
	for i := range books {
		booksByID[books[i].ID] = &books[i]
	}

	details := make([]entities.BorrowDetails, 0, len(borrows))
	for _, b := range borrows {
		details = append(details, entities.NewBorrowDetails(b, usersByID[b.UserID], booksByID[b.BookID]))
	}
	return details, total, nil
}

// CloseOpenBorrow sets returnDate on the oldest open borrow of the
// (user, book) pair. The update is conditional on the record still being
// open. When a concurrent return closes the selected record first, the next
// open one is tried, so ErrNotFound means no open borrow is left.
func (r *Repository) CloseOpenBorrow(ctx context.Context, userID, bookID string, returnedAt time.Time) (*entities.Borrow, error) {
	db := r.db.WithContext(ctx)

	for {
		var borrow entities.Borrow
		err := db.Where("user_id = ? AND book_id = ? AND return_date IS NULL", userID, bookID).
			Order("borrow_date ASC, id ASC").
			First(&borrow).Error
		if err != nil {
			return nil, database.TranslateError(err)
		}

		result := db.Model(&entities.Borrow{}).
			Where("id = ? AND return_date IS NULL", borrow.ID).
			Updates(map[string]any{"return_date": returnedAt})
		if result.Error != nil {
			return nil, fmt.Errorf("close borrow: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			// Lost the race for this record.
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			continue
		}

		if err := db.Where("id = ?", borrow.ID).First(&borrow).Error; err != nil {
			return nil, database.TranslateError(err)
		}
		return &borrow, nil
	}
}
