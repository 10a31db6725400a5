package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dalemusser/reelhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a test user with the given (already lowercased) email.
func (f *Fixtures) CreateUser(ctx context.Context, name, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     models.Email{Address: email, Verified: true},
		Phone:     models.Phone{Number: "9000000001", Verified: true},
		Password:  "$2a$10$test-hash-not-a-real-credential-ooooo",
		Status:    models.UserActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateDeletedUser inserts a soft-deleted test user.
func (f *Fixtures) CreateDeletedUser(ctx context.Context, name, email string) models.User {
	f.t.Helper()

	user := f.CreateUser(ctx, name, email)
	_, err := f.db.Collection("users").UpdateByID(ctx, user.ID,
		map[string]any{"$set": map[string]any{"status": models.UserDeleted}})
	if err != nil {
		f.t.Fatalf("failed to mark test user deleted: %v", err)
	}
	user.Status = models.UserDeleted
	return user
}

// CreateEmployee inserts a test employee with the given role.
func (f *Fixtures) CreateEmployee(ctx context.Context, name, email, empID, role string) models.Employee {
	f.t.Helper()

	now := time.Now().UTC()
	emp := models.Employee{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Phone:       fmt.Sprintf("9%09d", now.UnixNano()%1_000_000_000),
		Email:       email,
		EmpID:       empID,
		Department:  "Engineering",
		Post:        "Software Engineer",
		Role:        role,
		Address:     "1 Test Lane",
		Salary:      50000,
		Age:         30,
		DOB:         time.Date(1995, time.June, 15, 0, 0, 0, 0, time.UTC),
		JoiningDate: now,
		Status:      models.EmployeeActive,
		Password:    "$2a$10$test-hash-not-a-real-credential-ooooo",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("employees").InsertOne(ctx, emp); err != nil {
		f.t.Fatalf("failed to create test employee: %v", err)
	}
	return emp
}

// CreateElevatedEmployee inserts an employee with an elevation window.
func (f *Fixtures) CreateElevatedEmployee(ctx context.Context, name, email, empID string, start, end time.Time) models.Employee {
	f.t.Helper()

	emp := f.CreateEmployee(ctx, name, email, empID, models.RoleEmployee)
	_, err := f.db.Collection("employees").UpdateByID(ctx, emp.ID,
		map[string]any{"$set": map[string]any{
			"adminAccessStart": start.UTC(),
			"adminAccessEnd":   end.UTC(),
		}})
	if err != nil {
		f.t.Fatalf("failed to set elevation window: %v", err)
	}
	emp.AdminAccessStart = &start
	emp.AdminAccessEnd = &end
	return emp
}

// CreateMovie inserts a media-complete movie with both URLs recorded.
func (f *Fixtures) CreateMovie(ctx context.Context, title string, year int, rating float64) models.Movie {
	f.t.Helper()

	now := time.Now().UTC()
	movie := models.Movie{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Bio:       "A test synopsis.",
		Year:      year,
		Genre:     []string{"drama"},
		Type:      models.TypeMovie,
		Language:  []string{"english"},
		Cast:      []string{"test actor"},
		Director:  "test director",
		Image:     "https://bucket.s3.us-east-1.amazonaws.com/" + primitive.NewObjectID().Hex(),
		VideoURL:  "https://res.cloudinary.com/demo/video/upload/v1/movies/uploads/" + primitive.NewObjectID().Hex() + ".mp4",
		Rating:    rating,
		Duration:  5_400_000,
		MediaSize: 1 << 30,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("movies").InsertOne(ctx, movie); err != nil {
		f.t.Fatalf("failed to create test movie: %v", err)
	}
	return movie
}

// CreatePendingMovie inserts a movie whose media upload has not finished.
func (f *Fixtures) CreatePendingMovie(ctx context.Context, title string, year int) models.Movie {
	f.t.Helper()

	now := time.Now().UTC()
	movie := models.Movie{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Bio:       "A test synopsis.",
		Year:      year,
		Genre:     []string{"drama"},
		Type:      models.TypeMovie,
		Language:  []string{"english"},
		Cast:      []string{"test actor"},
		Director:  "test director",
		Rating:    6,
		MediaSize: 1 << 20,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("movies").InsertOne(ctx, movie); err != nil {
		f.t.Fatalf("failed to create pending test movie: %v", err)
	}
	return movie
}

// CreateWatched inserts one analytics row linking a user to a movie.
func (f *Fixtures) CreateWatched(ctx context.Context, userID, movieID string, duration, ads int64) models.Watched {
	f.t.Helper()

	now := time.Now().UTC()
	row := models.Watched{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		MovieID:    movieID,
		Duration:   duration,
		AdsWatched: ads,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("watched").InsertOne(ctx, row); err != nil {
		f.t.Fatalf("failed to create test watched row: %v", err)
	}
	return row
}
