// internal/app/store/movies/moviestore.go
package moviestore

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

var ErrDuplicate = errors.New("a movie with this title, year and director already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("movies")}
}

// listLimit caps every catalog list endpoint.
const listLimit = 50

// listProjection is the field set public catalog lists expose.
var listProjection = bson.M{
	"title": 1, "bio": 1, "year": 1, "image": 1,
	"genre": 1, "rating": 1, "language": 1, "duration": 1,
}

// publicFilter restricts lists to movies whose media upload has completed.
func publicFilter() bson.M {
	return bson.M{
		"image":    bson.M{"$exists": true, "$ne": ""},
		"videoUrl": bson.M{"$exists": true, "$ne": ""},
	}
}

// Create inserts a new catalog entry. Title, director and cast must
// already be normalized; the unique (title, year, director) index
// backstops the handler's existence check.
func (s *Store) Create(ctx context.Context, m models.Movie) (models.Movie, error) {
	now := time.Now().UTC()
	m.ID = primitive.NewObjectID()
	if m.Type == "" {
		m.Type = models.TypeMovie
	}
	m.CreatedAt = now
	m.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, m); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Movie{}, ErrDuplicate
		}
		return models.Movie{}, err
	}
	return m, nil
}

// ExistsByKey reports whether a movie with the identity triple exists.
// Director must be normalized the same way Create stores it.
func (s *Store) ExistsByKey(ctx context.Context, title string, year int, director string) (bool, error) {
	n, err := s.c.CountDocuments(ctx,
		bson.M{"title": title, "year": year, "director": director},
		options.Count().SetLimit(1))
	return n > 0, err
}

// GetByID returns the full movie document.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Movie, error) {
	var m models.Movie
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	return m, err
}

// Exists reports whether a movie with the id exists.
func (s *Store) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	return n > 0, err
}

// ListPublic returns media-complete movies matching extra filters, newest
// first, projected to the list fields and capped at 50.
func (s *Store) ListPublic(ctx context.Context, extra bson.M) ([]models.Movie, error) {
	filter := publicFilter()
	for k, v := range extra {
		filter[k] = v
	}

	opts := options.Find().
		SetProjection(listProjection).
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(listLimit)

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Movie
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Search matches a keyword case-insensitively against title or synopsis.
func (s *Store) Search(ctx context.Context, keyword string) ([]models.Movie, error) {
	re := primitive.Regex{Pattern: regexQuote(keyword), Options: "i"}
	return s.ListPublic(ctx, bson.M{"$or": bson.A{
		bson.M{"title": re},
		bson.M{"bio": re},
	}})
}

// regexQuote escapes regex metacharacters so a search keyword is matched
// literally.
func regexQuote(s string) string {
	const meta = `\.+*?()|[]{}^$`
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		for j := 0; j < len(meta); j++ {
			if s[i] == meta[j] {
				out = append(out, '\\')
				break
			}
		}
		out = append(out, s[i])
	}
	return string(out)
}

// AdminRow is one row of the admin catalog list: identity fields plus the
// per-movie watch count joined from the watched collection.
type AdminRow struct {
	ID      primitive.ObjectID `bson:"_id" json:"id"`
	Title   string             `bson:"title" json:"title"`
	Year    int                `bson:"year" json:"year"`
	Genre   []string           `bson:"genre" json:"genre"`
	UpBy    string             `bson:"upBy" json:"upBy"`
	Rating  float64            `bson:"rating" json:"rating"`
	Watched int64              `bson:"watched" json:"watched"`
}

// ListAdmin returns every movie (media-complete or not) with its watch
// count. Watched rows store movie ids as hex strings, so the join
// stringifies _id before comparing.
func (s *Store) ListAdmin(ctx context.Context) ([]AdminRow, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.M{"createdAt": -1}}},
		{{Key: "$lookup", Value: bson.M{
			"from": "watched",
			"let":  bson.M{"movieId": bson.M{"$toString": "$_id"}},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{
					"$expr": bson.M{"$eq": bson.A{"$movieId", "$$movieId"}},
				}},
			},
			"as": "watch",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"watched": bson.M{"$size": "$watch"},
		}}},
		{{Key: "$project", Value: bson.M{
			"title": 1, "year": 1, "genre": 1, "upBy": 1, "rating": 1, "watched": 1,
		}}},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []AdminRow
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateData replaces the mutable catalog fields and returns the updated
// document. mongo.ErrNoDocuments means no such movie.
func (s *Store) UpdateData(ctx context.Context, id primitive.ObjectID, set bson.M) (models.Movie, error) {
	set["updatedAt"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var m models.Movie
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&m)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Movie{}, ErrDuplicate
		}
		return models.Movie{}, err
	}
	return m, nil
}

// RecordMedia stores both media URLs and the playback duration after the
// client's direct upload completes. Returns false when the movie is gone.
func (s *Store) RecordMedia(ctx context.Context, id primitive.ObjectID, imageURL, videoURL string, duration time.Duration) (bool, error) {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"image":     imageURL,
		"videoUrl":  videoURL,
		"duration":  duration.Milliseconds(),
		"updatedAt": time.Now().UTC(),
	}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// RecordPartialMedia updates whichever media URLs are non-empty, used
// after a media re-upload replaces the image, the video, or both.
func (s *Store) RecordPartialMedia(ctx context.Context, id primitive.ObjectID, imageURL, videoURL string) (bool, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if imageURL != "" {
		set["image"] = imageURL
	}
	if videoURL != "" {
		set["videoUrl"] = videoURL
	}

	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// Delete removes the catalog row. Returns the number deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Count returns the total number of catalog entries.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// TotalMediaBytes sums mediaSize across the catalog for the storage
// dashboard.
func (s *Store) TotalMediaBytes(ctx context.Context) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$mediaSize"},
		}}},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		Total int64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}
