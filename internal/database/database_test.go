package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/librarian/internal/entities"
)

func setupTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNewDatabase_MigratesAllTables(t *testing.T) {
	db := setupTestDB(t)

	for _, table := range []string{"users", "books", "borrows"} {
		assert.True(t, db.DB.Migrator().HasTable(table), "missing table %s", table)
	}
	assert.NoError(t, db.Ping(context.Background()))
}

func TestNewDatabase_AssignsIdentifiers(t *testing.T) {
	db := setupTestDB(t)

	book := &entities.Book{Title: "T", Author: "Au", ISBN: "111", PublishYear: 2020, Genre: "G"}
	require.NoError(t, db.DB.Create(book).Error)

	assert.Len(t, book.ID, 36)
	assert.False(t, book.CreatedAt.IsZero())
}

func TestTranslateError(t *testing.T) {
	db := setupTestDB(t)

	first := &entities.User{Name: "Alice", Email: "a@x.com", Password: "hash"}
	require.NoError(t, db.DB.Create(first).Error)

	err := db.DB.Create(&entities.User{Name: "Bob", Email: "a@x.com", Password: "hash"}).Error
	require.Error(t, err)
	assert.ErrorIs(t, TranslateError(err), ErrDuplicate)

	var missing entities.User
	err = db.DB.First(&missing, "id = ?", "nope").Error
	assert.ErrorIs(t, TranslateError(err), ErrNotFound)

	other := errors.New("disk on fire")
	assert.Equal(t, other, TranslateError(other))
	assert.Nil(t, TranslateError(nil))
	assert.ErrorIs(t, TranslateError(gorm.ErrRecordNotFound), ErrNotFound)
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%tolkien%", LikePattern("tolkien"))
	assert.Equal(t, `%100\%%`, LikePattern("100%"))
	assert.Equal(t, `%a\_b%`, LikePattern("a_b"))
	assert.Equal(t, `%c:\\d%`, LikePattern(`c:\d`))
}
