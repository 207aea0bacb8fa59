// Package users provides database operations for library members.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetUserByEmail(ctx, "a@x.com")
package users

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/librarian/internal/database"
	"github.com/mrlokans/librarian/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser inserts a user. A taken email yields database.ErrDuplicate.
func (r *Repository) CreateUser(ctx context.Context, user *entities.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", database.TranslateError(err))
	}
	return nil
}

func (r *Repository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, database.TranslateError(err)
	}
	return &user, nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, database.TranslateError(err)
	}
	return &user, nil
}

// ListUsers returns one page of users in registration order plus the total count.
func (r *Repository) ListUsers(ctx context.Context, page entities.Page) ([]entities.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entities.User{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	var users []entities.User
	err := r.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

// UpdateUser applies the non-nil changes and returns the updated user.
func (r *Repository) UpdateUser(ctx context.Context, id string, changes entities.UserChanges) (*entities.User, error) {
	updates := make(map[string]any)
	if changes.Name != nil {
		updates["name"] = *changes.Name
	}
	if changes.Password != nil {
		updates["password"] = *changes.Password
	}

	if len(updates) > 0 {
		result := r.db.WithContext(ctx).Model(&entities.User{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return nil, fmt.Errorf("update user: %w", database.TranslateError(result.Error))
		}
		if result.RowsAffected == 0 {
			return nil, database.ErrNotFound
		}
	}
	return r.GetUserByID(ctx, id)
}

func (r *Repository) DeleteUser(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.User{})
	if result.Error != nil {
		return fmt.Errorf("delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}
