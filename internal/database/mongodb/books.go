package mongodb

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mrlokans/librarian/internal/database"
	"github.com/mrlokans/librarian/internal/entities"
)

type BookRepository struct {
	coll *mongo.Collection
}

func (r *BookRepository) CreateBook(ctx context.Context, book *entities.Book) error {
	if book.ID == "" {
		book.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	book.CreatedAt, book.UpdatedAt = now, now

	if _, err := r.coll.InsertOne(ctx, book); err != nil {
		return fmt.Errorf("create book: %w", translateError(err))
	}
	return nil
}

func (r *BookRepository) GetBookByID(ctx context.Context, id string) (*entities.Book, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *BookRepository) GetBookByISBN(ctx context.Context, isbn string) (*entities.Book, error) {
	return r.findOne(ctx, bson.M{"ISBN": isbn})
}

func (r *BookRepository) findOne(ctx context.Context, filter bson.M) (*entities.Book, error) {
	var book entities.Book
	if err := r.coll.FindOne(ctx, filter).Decode(&book); err != nil {
		return nil, translateError(err)
	}
	return &book, nil
}

func (r *BookRepository) ListBooks(ctx context.Context, filter entities.BookFilter, page entities.Page) ([]entities.Book, int64, error) {
	query := bookFilter(filter)

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	skip, limit := pageOptions(page.Offset(), page.Limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}
	books := []entities.Book{}
	if err := cursor.All(ctx, &books); err != nil {
		return nil, 0, fmt.Errorf("decode books: %w", err)
	}
	return books, total, nil
}

func (r *BookRepository) UpdateBook(ctx context.Context, id string, changes entities.BookChanges) (*entities.Book, error) {
	if changes.IsEmpty() {
		return r.GetBookByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var book entities.Book
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bookUpdate(changes, time.Now().UTC()), opts).Decode(&book)
	if err != nil {
		return nil, translateError(err)
	}
	return &book, nil
}

func (r *BookRepository) DeleteBook(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if result.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

// bookFilter translates a BookFilter into a query document. User input is
// quoted so it matches literally inside the case-insensitive regex.
func bookFilter(filter entities.BookFilter) bson.M {
	query := bson.M{}
	if filter.Author != "" {
		query["author"] = substringRegex(filter.Author)
	}
	if filter.Genre != "" {
		query["genre"] = substringRegex(filter.Genre)
	}
	if filter.Year != nil {
		query["publishYear"] = *filter.Year
	}
	return query
}

func substringRegex(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

func bookUpdate(changes entities.BookChanges, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if changes.Title != nil {
		set["title"] = *changes.Title
	}
	if changes.Author != nil {
		set["author"] = *changes.Author
	}
	if changes.PublishYear != nil {
		set["publishYear"] = *changes.PublishYear
	}
	if changes.Genre != nil {
		set["genre"] = *changes.Genre
	}
	return bson.M{"$set": set}
}
