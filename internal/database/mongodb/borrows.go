package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mrlokans/librarian/internal/entities"
)

type BorrowRepository struct {
	coll  *mongo.Collection
	users *mongo.Collection
	books *mongo.Collection
}

func (r *BorrowRepository) CreateBorrow(ctx context.Context, borrow *entities.Borrow) error {
	if borrow.ID == "" {
		borrow.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	borrow.CreatedAt, borrow.UpdatedAt = now, now

	if _, err := r.coll.InsertOne(ctx, borrow); err != nil {
		return fmt.Errorf("create borrow: %w", translateError(err))
	}
	return nil
}

func (r *BorrowRepository) ListBorrows(ctx context.Context, page entities.Page) ([]entities.BorrowDetails, int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count borrows: %w", err)
	}

	skip, limit := pageOptions(page.Offset(), page.Limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "borrowDate", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list borrows: %w", err)
	}
	var borrows []entities.Borrow
	if err := cursor.All(ctx, &borrows); err != nil {
		return nil, 0, fmt.Errorf("decode borrows: %w", err)
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
	if err := r.findSummaries(ctx, r.users, userIDs, bson.M{"name": 1, "email": 1}, &users); err != nil {
		return nil, 0, fmt.Errorf("load borrowers: %w", err)
	}
	var books []entities.BookSummary
	if err := r.findSummaries(ctx, r.books, bookIDs, bson.M{"title": 1, "author": 1}, &books); err != nil {
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

func (r *BorrowRepository) findSummaries(ctx context.Context, coll *mongo.Collection, ids []string, projection bson.M, out any) error {
	cursor, err := coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find().SetProjection(projection))
	if err != nil {
		return err
	}
	return cursor.All(ctx, out)
}

// CloseOpenBorrow atomically closes the oldest open borrow of the pair.
func (r *BorrowRepository) CloseOpenBorrow(ctx context.Context, userID, bookID string, returnedAt time.Time) (*entities.Borrow, error) {
	opts := options.FindOneAndUpdate().
		SetSort(bson.D{{Key: "borrowDate", Value: 1}, {Key: "_id", Value: 1}}).
		SetReturnDocument(options.After)

	update := bson.M{"$set": bson.M{"returnDate": returnedAt, "updatedAt": time.Now().UTC()}}

	var borrow entities.Borrow
	err := r.coll.FindOneAndUpdate(ctx, openBorrowFilter(userID, bookID), update, opts).Decode(&borrow)
	if err != nil {
		return nil, translateError(err)
	}
	return &borrow, nil
}

// openBorrowFilter matches borrows of the pair whose returnDate is null or absent.
func openBorrowFilter(userID, bookID string) bson.M {
	return bson.M{"user": userID, "book": bookID, "returnDate": nil}
}
