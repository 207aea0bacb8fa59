package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/mrlokans/librarian/internal/database"
	"github.com/mrlokans/librarian/internal/entities"
)

var duplicateKey = mtest.CreateWriteErrorsResponse(mtest.WriteError{
	Index:   0,
	Code:    11000,
	Message: "E11000 duplicate key error",
})

// noMatch is the findAndModify reply when the filter matched nothing.
var noMatch = mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil})

func newMockT(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func testStore(mt *mtest.T) *Store {
	return &Store{client: mt.Client, db: mt.DB}
}

func cursorReply(ns string, docs ...bson.D) bson.D {
	return mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, docs...)
}

func countReply(ns string, n int) bson.D {
	return cursorReply(ns, bson.D{{Key: "_id", Value: 1}, {Key: "n", Value: n}})
}

func TestUserRepository_Mock(t *testing.T) {
	mt := newMockT(t)
	ctx := context.Background()

	mt.Run("create assigns id and timestamps", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		user := &entities.User{Name: "Alice", Email: "a@x.com", Password: "hash"}
		require.NoError(mt, testStore(mt).Users().CreateUser(ctx, user))

		assert.NotEmpty(mt, user.ID)
		assert.False(mt, user.CreatedAt.IsZero())
		assert.Equal(mt, "insert", mt.GetStartedEvent().CommandName)
	})

	mt.Run("duplicate email is ErrDuplicate", func(mt *mtest.T) {
		mt.AddMockResponses(duplicateKey)

		err := testStore(mt).Users().CreateUser(ctx, &entities.User{Name: "Alice", Email: "a@x.com"})
		assert.ErrorIs(mt, err, database.ErrDuplicate)
	})

	mt.Run("get decodes the stored hash", func(mt *mtest.T) {
		mt.AddMockResponses(cursorReply("library.users", bson.D{
			{Key: "_id", Value: "u1"},
			{Key: "name", Value: "Alice"},
			{Key: "email", Value: "a@x.com"},
			{Key: "password", Value: "hash"},
		}))

		user, err := testStore(mt).Users().GetUserByEmail(ctx, "a@x.com")
		require.NoError(mt, err)
		assert.Equal(mt, "u1", user.ID)
		assert.Equal(mt, "hash", user.Password)
	})

	mt.Run("get of missing id is ErrNotFound", func(mt *mtest.T) {
		mt.AddMockResponses(cursorReply("library.users"))

		_, err := testStore(mt).Users().GetUserByID(ctx, "missing")
		assert.ErrorIs(mt, err, database.ErrNotFound)
	})

	mt.Run("update of missing id is ErrNotFound", func(mt *mtest.T) {
		mt.AddMockResponses(noMatch)
		name := "Bob"

		_, err := testStore(mt).Users().UpdateUser(ctx, "missing", entities.UserChanges{Name: &name})
		assert.ErrorIs(mt, err, database.ErrNotFound)
	})

	mt.Run("delete of missing id is ErrNotFound", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := testStore(mt).Users().DeleteUser(ctx, "missing")
		assert.ErrorIs(mt, err, database.ErrNotFound)
	})

	mt.Run("delete of existing id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		assert.NoError(mt, testStore(mt).Users().DeleteUser(ctx, "u1"))
	})
}

func TestBookRepository_Mock(t *testing.T) {
	mt := newMockT(t)
	ctx := context.Background()

	mt.Run("duplicate ISBN is ErrDuplicate", func(mt *mtest.T) {
		mt.AddMockResponses(duplicateKey)

		err := testStore(mt).Books().CreateBook(ctx, &entities.Book{Title: "T", ISBN: "111"})
		assert.ErrorIs(mt, err, database.ErrDuplicate)
	})

	mt.Run("update of missing id is ErrNotFound", func(mt *mtest.T) {
		mt.AddMockResponses(noMatch)
		genre := "G"

		_, err := testStore(mt).Books().UpdateBook(ctx, "missing", entities.BookChanges{Genre: &genre})
		assert.ErrorIs(mt, err, database.ErrNotFound)
	})

	mt.Run("update returns the changed document", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: "b1"},
			{Key: "title", Value: "T"},
			{Key: "ISBN", Value: "111"},
			{Key: "genre", Value: "Fantasy"},
		}}))
		genre := "Fantasy"

		book, err := testStore(mt).Books().UpdateBook(ctx, "b1", entities.BookChanges{Genre: &genre})
		require.NoError(mt, err)
		assert.Equal(mt, "Fantasy", book.Genre)
		assert.Equal(mt, "findAndModify", mt.GetStartedEvent().CommandName)
	})

	mt.Run("delete of missing id is ErrNotFound", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := testStore(mt).Books().DeleteBook(ctx, "missing")
		assert.ErrorIs(mt, err, database.ErrNotFound)
	})

	mt.Run("list sends escaped case-insensitive filters", func(mt *mtest.T) {
		mt.AddMockResponses(
			countReply("library.books", 1),
			cursorReply("library.books", bson.D{{Key: "_id", Value: "b1"}, {Key: "author", Value: "J.R.R. Tolkien"}}),
		)

		books, total, err := testStore(mt).Books().ListBooks(ctx, entities.BookFilter{Author: "j.r.r."}, entities.NewPage(2, 5))
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), total)
		require.Len(mt, books, 1)

		events := mt.GetAllStartedEvents()
		require.Len(mt, events, 2)
		find := events[1].Command
		assert.Equal(mt, "find", events[1].CommandName)

		pattern, options, ok := find.Lookup("filter", "author").RegexOK()
		require.True(mt, ok)
		assert.Equal(mt, `j\.r\.r\.`, pattern)
		assert.Equal(mt, "i", options)
		assert.Equal(mt, int64(5), find.Lookup("skip").AsInt64())
		assert.Equal(mt, int64(5), find.Lookup("limit").AsInt64())
	})
}

func TestBorrowRepository_Mock(t *testing.T) {
	mt := newMockT(t)
	ctx := context.Background()
	borrowedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	mt.Run("list joins summaries and nils deleted references", func(mt *mtest.T) {
		mt.AddMockResponses(
			countReply("library.borrows", 2),
			cursorReply("library.borrows",
				bson.D{{Key: "_id", Value: "r1"}, {Key: "user", Value: "u1"}, {Key: "book", Value: "b1"}, {Key: "borrowDate", Value: borrowedAt}, {Key: "returnDate", Value: nil}},
				bson.D{{Key: "_id", Value: "r2"}, {Key: "user", Value: "gone"}, {Key: "book", Value: "b1"}, {Key: "borrowDate", Value: borrowedAt.Add(time.Hour)}, {Key: "returnDate", Value: nil}},
			),
			cursorReply("library.users", bson.D{{Key: "_id", Value: "u1"}, {Key: "name", Value: "Alice"}, {Key: "email", Value: "a@x.com"}}),
			cursorReply("library.books", bson.D{{Key: "_id", Value: "b1"}, {Key: "title", Value: "T"}, {Key: "author", Value: "Au"}}),
		)

		details, total, err := testStore(mt).Borrows().ListBorrows(ctx, entities.NewPage(1, 10))
		require.NoError(mt, err)
		assert.Equal(mt, int64(2), total)
		require.Len(mt, details, 2)

		require.NotNil(mt, details[0].User)
		assert.Equal(mt, "Alice", details[0].User.Name)
		require.NotNil(mt, details[0].Book)
		assert.Equal(mt, "T", details[0].Book.Title)
		assert.True(mt, details[0].BorrowDate.Equal(borrowedAt))

		assert.Nil(mt, details[1].User)
		require.NotNil(mt, details[1].Book)
		assert.Equal(mt, "Au", details[1].Book.Author)

		events := mt.GetAllStartedEvents()
		require.Len(mt, events, 4)
		assert.Equal(mt, "users", events[2].Command.Lookup("find").StringValue())
		assert.Equal(mt, "books", events[3].Command.Lookup("find").StringValue())
	})

	mt.Run("list of an empty page skips the lookups", func(mt *mtest.T) {
		mt.AddMockResponses(countReply("library.borrows", 0), cursorReply("library.borrows"))

		details, _, err := testStore(mt).Borrows().ListBorrows(ctx, entities.NewPage(1, 10))
		require.NoError(mt, err)
		assert.Empty(mt, details)
		assert.Len(mt, mt.GetAllStartedEvents(), 2)
	})

	mt.Run("close targets the oldest open borrow", func(mt *mtest.T) {
		returnedAt := borrowedAt.Add(48 * time.Hour)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: "r1"},
			{Key: "user", Value: "u1"},
			{Key: "book", Value: "b1"},
			{Key: "borrowDate", Value: borrowedAt},
			{Key: "returnDate", Value: returnedAt},
		}}))

		closed, err := testStore(mt).Borrows().CloseOpenBorrow(ctx, "u1", "b1", returnedAt)
		require.NoError(mt, err)
		assert.Equal(mt, "r1", closed.ID)
		require.NotNil(mt, closed.ReturnDate)
		assert.True(mt, closed.ReturnDate.Equal(returnedAt))

		cmd := mt.GetStartedEvent().Command
		sort, err := cmd.Lookup("sort").Document().Elements()
		require.NoError(mt, err)
		require.Len(mt, sort, 2)
		assert.Equal(mt, "borrowDate", sort[0].Key())
		assert.Equal(mt, int32(1), sort[0].Value().Int32())
		assert.Equal(mt, "_id", sort[1].Key())

		assert.Equal(mt, "u1", cmd.Lookup("query", "user").StringValue())
		assert.Equal(mt, "b1", cmd.Lookup("query", "book").StringValue())
		assert.Equal(mt, bsontype.Null, cmd.Lookup("query", "returnDate").Type)
		assert.True(mt, cmd.Lookup("new").Boolean())
	})

	mt.Run("close with nothing open is ErrNotFound", func(mt *mtest.T) {
		mt.AddMockResponses(noMatch)

		_, err := testStore(mt).Borrows().CloseOpenBorrow(ctx, "u1", "b1", time.Now())
		assert.ErrorIs(mt, err, database.ErrNotFound)
	})
}
