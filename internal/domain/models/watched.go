// internal/domain/models/watched.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Watched links a user to a movie they played.
//
// UserID and MovieID are stored as hex strings, not ObjectID references;
// the history and dashboard aggregations convert with $toObjectId when
// joining. The collection carries two logically distinct kinds of rows:
// append-only analytics events (one per playback, with AdsWatched) and a
// single progress checkpoint per (user, movie) maintained by upsert. The
// two must not be merged — the event log feeds ad reporting, the
// checkpoint feeds the resume list.
type Watched struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     string             `bson:"userId" json:"userId"`
	MovieID    string             `bson:"movieId" json:"movieId"`
	Duration   int64              `bson:"duration" json:"duration"` // milliseconds watched
	AdsWatched int64              `bson:"adsWatched" json:"adsWatched"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
