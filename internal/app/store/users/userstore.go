// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/reelhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateEmail = errors.New("a user with this email already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// Create inserts a new user, setting ID, status and timestamps. The email
// must already be normalized; the unique index backstops the handler's
// existence check.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	if u.Status == "" {
		u.Status = models.UserActive
	}
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByEmail returns the user with the given (normalized) address,
// including the password hash for credential checks.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"email.email": email}).Decode(&u)
	return u, err
}

// GetByID returns a user by object id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	return u, err
}

// FetchByID implements gates.UserFetcher. A malformed hex id is reported
// as not-found rather than an internal error.
func (s *Store) FetchByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	u, err := s.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns non-deleted users, newest first, capped at limit.
// Password hashes are excluded from the projection.
func (s *Store) List(ctx context.Context, limit int64) ([]models.User, error) {
	opts := options.Find().
		SetProjection(bson.M{"password": 0}).
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cur, err := s.c.Find(ctx, bson.M{"status": bson.M{"$ne": models.UserDeleted}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SoftDelete marks a user deleted without removing the record.
func (s *Store) SoftDelete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":    models.UserDeleted,
		"updatedAt": time.Now().UTC(),
	}})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// Count returns the number of non-deleted users.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"status": bson.M{"$ne": models.UserDeleted}})
}

// MonthCount is one month's sign-up total.
type MonthCount struct {
	Month int   `bson:"_id"`
	Count int64 `bson:"count"`
}

// SignupsPerMonth groups sign-ups of the given year by calendar month.
// Months with no sign-ups are absent from the result.
func (s *Store) SignupsPerMonth(ctx context.Context, year int) ([]MonthCount, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"createdAt": bson.M{"$gte": from, "$lt": to},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$month": "$createdAt"},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []MonthCount
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
