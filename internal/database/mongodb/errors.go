package mongodb

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mrlokans/librarian/internal/database"
)

// translateError maps driver errors onto the shared store errors.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return database.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return database.ErrDuplicate
	}
	return err
}

func pageOptions(skip, limit int) (int64, int64) {
	return int64(skip), int64(limit)
}
