// internal/app/store/watched/watchedstore.go
//
// The watched collection serves two call paths that must stay distinct:
// Append adds one analytics row per playback (ad reporting), while
// UpsertProgress maintains a single resume checkpoint per (user, movie).
package watchedstore

import (
	"context"
	"time"

	"github.com/dalemusser/reelhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("watched")}
}

// Append inserts one playback analytics row. Never merges with existing
// rows for the same pair.
func (s *Store) Append(ctx context.Context, w models.Watched) (models.Watched, error) {
	now := time.Now().UTC()
	w.ID = primitive.NewObjectID()
	w.CreatedAt = now
	w.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, w); err != nil {
		return models.Watched{}, err
	}
	return w, nil
}

// UpsertProgress overwrites the resume checkpoint for (userID, movieID)
// with the latest duration, creating it on first playback. Last write
// wins.
func (s *Store) UpsertProgress(ctx context.Context, userID, movieID string, duration int64) error {
	now := time.Now().UTC()
	_, err := s.c.UpdateOne(ctx,
		bson.M{"userId": userID, "movieId": movieID},
		bson.M{
			"$set": bson.M{
				"duration":  duration,
				"updatedAt": now,
			},
			"$setOnInsert": bson.M{
				"createdAt": now,
			},
		},
		options.Update().SetUpsert(true))
	return err
}

// HistoryItem is one row of a user's watch history: the movie's list
// fields plus how far the user got.
type HistoryItem struct {
	ID              primitive.ObjectID `bson:"_id" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Image           string             `bson:"image" json:"image"`
	Bio             string             `bson:"bio" json:"bio"`
	Rating          float64            `bson:"rating" json:"rating"`
	Duration        int64              `bson:"duration" json:"duration"`
	WatchedDuration int64              `bson:"watchedDuration" json:"watchedDuration"`
}

// History joins a user's watched rows to the movie catalog. Movie ids are
// stored as hex strings, so the lookup converts with $toObjectId first.
func (s *Store) History(ctx context.Context, userID string) ([]HistoryItem, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": userID}}},
		{{Key: "$addFields", Value: bson.M{
			"movieObjId": bson.M{"$toObjectId": "$movieId"},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "movies",
			"localField":   "movieObjId",
			"foreignField": "_id",
			"as":           "movie",
		}}},
		{{Key: "$unwind", Value: "$movie"}},
		{{Key: "$project", Value: bson.M{
			"_id":             "$movie._id",
			"title":           "$movie.title",
			"image":           "$movie.image",
			"bio":             "$movie.bio",
			"rating":          "$movie.rating",
			"duration":        "$movie.duration",
			"watchedDuration": "$duration",
		}}},
		{{Key: "$limit", Value: 50}},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []HistoryItem
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ActivityItem is one row of the admin dashboard's latest-activity feed.
type ActivityItem struct {
	MovieName  string    `bson:"movieName" json:"movieName"`
	MovieID    string    `bson:"movieId" json:"movieId"`
	UserName   string    `bson:"userName" json:"userName"`
	UserID     string    `bson:"userId" json:"userId"`
	Duration   int64     `bson:"duration" json:"duration"`
	AdsWatched int64     `bson:"adsWatched" json:"adsWatched"`
	Time       time.Time `bson:"time" json:"time"`
}

// LatestActivity returns up to 50 watched rows joined to movie and user
// names for the dashboard feed. Rows whose movie or user has been hard
// deleted drop out at the $unwind.
func (s *Store) LatestActivity(ctx context.Context) ([]ActivityItem, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.M{"createdAt": -1}}},
		{{Key: "$limit", Value: 50}},
		{{Key: "$addFields", Value: bson.M{
			"movieObjId": bson.M{"$toObjectId": "$movieId"},
			"userObjId":  bson.M{"$toObjectId": "$userId"},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "movies",
			"localField":   "movieObjId",
			"foreignField": "_id",
			"as":           "movie",
		}}},
		{{Key: "$unwind", Value: "$movie"}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "userObjId",
			"foreignField": "_id",
			"as":           "user",
		}}},
		{{Key: "$unwind", Value: "$user"}},
		{{Key: "$project", Value: bson.M{
			"_id":        0,
			"movieName":  "$movie.title",
			"movieId":    "$movieId",
			"userName":   "$user.name",
			"userId":     "$userId",
			"duration":   1,
			"adsWatched": 1,
			"time":       "$updatedAt",
		}}},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []ActivityItem
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CountForPair returns the number of rows for one (user, movie) pair.
// Used by tests to assert append vs upsert behavior.
func (s *Store) CountForPair(ctx context.Context, userID, movieID string) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"userId": userID, "movieId": movieID})
}

// GetProgress returns the checkpoint row for one (user, movie) pair.
func (s *Store) GetProgress(ctx context.Context, userID, movieID string) (models.Watched, error) {
	var w models.Watched
	err := s.c.FindOne(ctx, bson.M{"userId": userID, "movieId": movieID}).Decode(&w)
	return w, err
}
