// Package books provides database operations for the book catalog.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	page, total, err := repo.ListBooks(ctx, entities.BookFilter{Author: "tolkien"}, entities.NewPage(1, 10))
package books

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/librarian/internal/database"
	"github.com/mrlokans/librarian/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateBook inserts a book. A taken ISBN yields database.ErrDuplicate.
func (r *Repository) CreateBook(ctx context.Context, book *entities.Book) error {
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return fmt.Errorf("create book: %w", database.TranslateError(err))
	}
	return nil
}

func (r *Repository) GetBookByID(ctx context.Context, id string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&book).Error
	if err != nil {
		return nil, database.TranslateError(err)
	}
	return &book, nil
}

func (r *Repository) GetBookByISBN(ctx context.Context, isbn string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.WithContext(ctx).Where("isbn = ?", isbn).First(&book).Error
	if err != nil {
		return nil, database.TranslateError(err)
	}
	return &book, nil
}

// ListBooks returns one page of books matching filter plus the total number
// of matches across all pages.
func (r *Repository) ListBooks(ctx context.Context, filter entities.BookFilter, page entities.Page) ([]entities.Book, int64, error) {
	query := r.filtered(ctx, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	var books []entities.Book
	err := r.filtered(ctx, filter).
		Order("created_at ASC, id ASC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&books).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}
	return books, total, nil
}

func (r *Repository) filtered(ctx context.Context, filter entities.BookFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entities.Book{})
	if filter.Author != "" {
		query = query.Where(`LOWER(author) LIKE LOWER(?) ESCAPE '\'`, database.LikePattern(filter.Author))
	}
	if filter.Genre != "" {
		query = query.Where(`LOWER(genre) LIKE LOWER(?) ESCAPE '\'`, database.LikePattern(filter.Genre))
	}
	if filter.Year != nil {
		query = query.Where("publish_year = ?", *filter.Year)
	}
	return query
}

// UpdateBook applies the non-nil changes and returns the updated book.
func (r *Repository) UpdateBook(ctx context.Context, id string, changes entities.BookChanges) (*entities.Book, error) {
	updates := make(map[string]any)
	if changes.Title != nil {
		updates["title"] = *changes.Title
	}
	if changes.Author != nil {
		updates["author"] = *changes.Author
	}
	if changes.PublishYear != nil {
		updates["publish_year"] = *changes.PublishYear
	}
	if changes.Genre != nil {
		updates["genre"] = *changes.Genre
	}

	if len(updates) > 0 {
		result := r.db.WithContext(ctx).Model(&entities.Book{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return nil, fmt.Errorf("update book: %w", database.TranslateError(result.Error))
		}
		if result.RowsAffected == 0 {
			return nil, database.ErrNotFound
		}
	}
	return r.GetBookByID(ctx, id)
}

func (r *Repository) DeleteBook(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Book{})
	if result.Error != nil {
		return fmt.Errorf("delete book: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}
