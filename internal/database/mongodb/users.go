package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mrlokans/librarian/internal/database"
	"github.com/mrlokans/librarian/internal/entities"
)

type UserRepository struct {
	coll *mongo.Collection
}

func (r *UserRepository) CreateUser(ctx context.Context, user *entities.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("create user: %w", translateError(err))
	}
	return nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*entities.User, error) {
	var user entities.User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *UserRepository) ListUsers(ctx context.Context, page entities.Page) ([]entities.User, int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	skip, limit := pageOptions(page.Offset(), page.Limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	users := []entities.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, fmt.Errorf("decode users: %w", err)
	}
	return users, total, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, id string, changes entities.UserChanges) (*entities.User, error) {
	if changes.IsEmpty() {
		return r.GetUserByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user entities.User
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, userUpdate(changes, time.Now().UTC()), opts).Decode(&user)
	if err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if result.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func userUpdate(changes entities.UserChanges, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if changes.Name != nil {
		set["name"] = *changes.Name
	}
	if changes.Password != nil {
		set["password"] = *changes.Password
	}
	return bson.M{"$set": set}
}
