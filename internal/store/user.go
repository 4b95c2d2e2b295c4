package store

import (
	"context"

	"github.com/mflix-users/apiserver/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UsersCollection is the collection holding user documents.
const UsersCollection = "users"

// nameCollation sorts case-insensitively with diacritics folded
// (primary strength).
var nameCollation = options.Collation{Locale: "en", Strength: 1}

var userProjection = bson.D{
	{Key: "_id", Value: 1},
	{Key: "name", Value: 1},
	{Key: "email", Value: 1},
	{Key: "password", Value: 1},
}

// summaryProjection excludes the password from write-path results.
var summaryProjection = bson.D{
	{Key: "_id", Value: 1},
	{Key: "name", Value: 1},
	{Key: "email", Value: 1},
}

// UserRepository handles persistence for users.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(col *mongo.Collection) *UserRepository {
	return &UserRepository{col: col}
}

// EnsureIndexes creates the unique sparse index on email. Sparse keeps
// documents without an email from colliding on null.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetSparse(true),
	}
	_, err := r.col.Indexes().CreateOne(ctx, model)
	return err
}

// List returns every user sorted by name ascending under the
// primary-strength collation.
func (r *UserRepository) List(ctx context.Context) ([]types.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetCollation(&nameCollation).
		SetProjection(userProjection)

	cursor, err := r.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []types.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (types.User, error) {
	var user types.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(userProjection)).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}
	return user, nil
}

// ExistsByEmail reports whether a user with the given email exists,
// optionally excluding one record (the one being updated).
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string, exclude *primitive.ObjectID) (bool, error) {
	filter := bson.M{"email": email}
	if exclude != nil {
		filter["_id"] = bson.M{"$ne": *exclude}
	}

	err := r.col.FindOne(ctx, filter, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Create inserts the user and returns it with the store-assigned ID.
func (r *UserRepository) Create(ctx context.Context, user types.User) (types.User, error) {
	result, err := r.col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return types.User{}, ErrDuplicateEmail
		}
		return types.User{}, err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return user, nil
}

// Update applies a partial $set of the non-nil fields and returns the
// updated record without its password.
func (r *UserRepository) Update(ctx context.Context, id primitive.ObjectID, upd types.UserUpdate) (types.User, error) {
	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Email != nil {
		set["email"] = *upd.Email
	}
	if upd.Password != nil {
		set["password"] = *upd.Password
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(summaryProjection)

	var user types.User
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return types.User{}, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return types.User{}, ErrDuplicateEmail
		}
		return types.User{}, err
	}
	return user, nil
}

// Delete removes the user and returns the removed record without its password.
func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) (types.User, error) {
	opts := options.FindOneAndDelete().SetProjection(summaryProjection)

	var user types.User
	err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}, opts).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}
	return user, nil
}
