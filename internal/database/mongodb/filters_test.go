package mongodb

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mrlokans/librarian/internal/database"
	"github.com/mrlokans/librarian/internal/entities"
)

func TestBookFilter(t *testing.T) {
	year := 1954

	assert.Equal(t, bson.M{}, bookFilter(entities.BookFilter{}))

	query := bookFilter(entities.BookFilter{Author: "J.R.R.", Genre: "fan", Year: &year})
	assert.Equal(t, primitive.Regex{Pattern: `J\.R\.R\.`, Options: "i"}, query["author"])
	assert.Equal(t, primitive.Regex{Pattern: "fan", Options: "i"}, query["genre"])
	assert.Equal(t, 1954, query["publishYear"])
}

func TestBookUpdate_OnlySuppliedFields(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	title := "New"

	update := bookUpdate(entities.BookChanges{Title: &title}, now)

	set, ok := update["$set"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, bson.M{"title": "New", "updatedAt": now}, set)
	assert.NotContains(t, set, "ISBN")
}

func TestUserUpdate(t *testing.T) {
	now := time.Now().UTC()
	name := "Alicia"
	hash := "$2a$10$hash"

	set := userUpdate(entities.UserChanges{Name: &name, Password: &hash}, now)["$set"].(bson.M)

	assert.Equal(t, "Alicia", set["name"])
	assert.Equal(t, hash, set["password"])
	assert.NotContains(t, set, "email")
}

func TestOpenBorrowFilter(t *testing.T) {
	assert.Equal(t, bson.M{"user": "u1", "book": "b1", "returnDate": nil}, openBorrowFilter("u1", "b1"))
}

func TestTranslateError(t *testing.T) {
	assert.Nil(t, translateError(nil))
	assert.ErrorIs(t, translateError(mongo.ErrNoDocuments), database.ErrNotFound)
	assert.ErrorIs(t, translateError(fmt.Errorf("find: %w", mongo.ErrNoDocuments)), database.ErrNotFound)

	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}}
	assert.ErrorIs(t, translateError(dup), database.ErrDuplicate)

	other := errors.New("boom")
	assert.Equal(t, other, translateError(other))
}

func TestBorrowDocumentShape(t *testing.T) {
	borrow := entities.Borrow{ID: "b-1", UserID: "u-1", BookID: "k-1", BorrowDate: time.Now().UTC()}

	raw, err := bson.Marshal(borrow)
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, "b-1", doc["_id"])
	assert.Equal(t, "u-1", doc["user"])
	assert.Equal(t, "k-1", doc["book"])
	assert.Contains(t, doc, "returnDate")
	assert.Nil(t, doc["returnDate"])
}
