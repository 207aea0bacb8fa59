// Package mongodb implements the library stores on top of a MongoDB document
// database. Records use the same string identifiers as the sqlite backend,
// stored in _id.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection   = "users"
	booksCollection   = "books"
	borrowsCollection = "borrows"
)

// Store owns the client connection and hands out per-collection repositories.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials uri, verifies the connection and ensures indexes exist.
func Connect(ctx context.Context, uri, database string, timeout time.Duration) (*Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri).SetConnectTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to reach mongo: %w", err)
	}

	store := &Store{client: client, db: client.Database(database)}
	if err := store.EnsureIndexes(connectCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logrus.WithField("database", database).Info("Mongo store initialized")
	return store, nil
}

// EnsureIndexes creates the unique email/ISBN indexes and the open-borrow
// lookup index. It is idempotent.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		booksCollection: {
			{Keys: bson.D{{Key: "ISBN", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "publishYear", Value: 1}}},
		},
		borrowsCollection: {
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "book", Value: 1}, {Key: "returnDate", Value: 1}}},
			{Keys: bson.D{{Key: "borrowDate", Value: 1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := s.db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", collection, err)
		}
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Store) Users() *UserRepository {
	return &UserRepository{coll: s.db.Collection(usersCollection)}
}

func (s *Store) Books() *BookRepository {
	return &BookRepository{coll: s.db.Collection(booksCollection)}
}

func (s *Store) Borrows() *BorrowRepository {
	return &BorrowRepository{
		coll:  s.db.Collection(borrowsCollection),
		users: s.db.Collection(usersCollection),
		books: s.db.Collection(booksCollection),
	}
}
