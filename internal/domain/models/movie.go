// internal/domain/models/movie.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Movie content types.
const (
	TypeMovie  = "movie"
	TypeSeries = "series"
	TypeTVShow = "tvshow"
)

// Movie is one catalog entry.
//
// Image and VideoURL stay empty until the client has finished uploading
// the media directly to the external backends and the resulting URLs have
// been recorded. Public catalog queries only list movies where both are
// set; the admin list does not filter.
//
// Director and every cast entry are stored trimmed and lowercased so the
// (title, year, director) duplicate check is case-insensitive.
type Movie struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Bio       string             `bson:"bio" json:"bio"`
	Year      int                `bson:"year" json:"year"`
	Genre     []string           `bson:"genre" json:"genre"`
	Type      string             `bson:"type" json:"type"` // movie | series | tvshow
	Language  []string           `bson:"language" json:"language"`
	Cast      []string           `bson:"cast" json:"cast"`
	Director  string             `bson:"director" json:"director"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	VideoURL  string             `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`
	Rating    float64            `bson:"rating" json:"rating"`       // 0..10, one decimal
	Duration  int64              `bson:"duration" json:"duration"`   // milliseconds
	MediaSize int64              `bson:"mediaSize" json:"mediaSize"` // bytes
	UpBy      string             `bson:"upBy" json:"upBy"`
	Watched   int64              `bson:"watched" json:"watched"` // denormalized view count

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// HasMedia reports whether both media URLs have been recorded, i.e. the
// movie is eligible for public catalogs.
func (m *Movie) HasMedia() bool {
	return m.Image != "" && m.VideoURL != ""
}
