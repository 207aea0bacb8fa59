package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mrlokans/librarian/internal/entities"
	"github.com/mrlokans/librarian/internal/logging"
)

// dsnOptions enables WAL and a busy timeout so concurrent requests wait for
// the write lock instead of failing immediately.
const dsnOptions = "_journal=WAL&_timeout=5000&_busy_timeout=5000"

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens the sqlite database at dbPath and migrates the schema.
func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dsn(dbPath)), &gorm.Config{
		Logger: logging.GormLogger(),
		// Borrows keep plain references: deleting a user or book must not
		// cascade to, or be blocked by, existing borrow records.
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	database := &Database{DB: db}
	if err := database.Migrate(); err != nil {
		_ = database.Close()
		return nil, err
	}

	logrus.WithField("path", dbPath).Info("Database initialized")
	return database, nil
}

func dsn(dbPath string) string {
	if strings.Contains(dbPath, "?") {
		return dbPath + "&" + dsnOptions
	}
	return dbPath + "?" + dsnOptions
}

// Migrate creates or updates the tables for all records.
func (d *Database) Migrate() error {
	err := d.DB.AutoMigrate(
		&entities.User{},
		&entities.Book{},
		&entities.Borrow{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
