package userstore_test

import (
	"testing"
	"time"

	userstore "github.com/dalemusser/reelhub/internal/app/store/users"
	"github.com/dalemusser/reelhub/internal/app/system/indexes"
	"github.com/dalemusser/reelhub/internal/domain/models"
	"github.com/dalemusser/reelhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := models.User{
		Name:     "Asha Rao",
		Email:    models.Email{Address: "asha@example.com"},
		Phone:    models.Phone{Number: "9123456780"},
		Password: "$2a$10$hash",
	}

	created, err := store.Create(ctx, user)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Status != models.UserActive {
		t.Errorf("status: got %q, want %q", created.Status, models.UserActive)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	user := models.User{
		Name:     "Asha Rao",
		Email:    models.Email{Address: "asha@example.com"},
		Password: "$2a$10$hash",
	}

	if _, err := store.Create(ctx, user); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	if _, err := store.Create(ctx, user); err != userstore.ErrDuplicateEmail {
		t.Fatalf("second Create: got %v, want ErrDuplicateEmail", err)
	}
}

func TestStore_GetByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	seeded := fixtures.CreateUser(ctx, "Asha Rao", "asha@example.com")

	got, err := store.GetByEmail(ctx, "asha@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.ID != seeded.ID {
		t.Errorf("ID: got %v, want %v", got.ID, seeded.ID)
	}
	if got.Password == "" {
		t.Error("expected password hash for credential check")
	}

	if _, err := store.GetByEmail(ctx, "nobody@example.com"); err != mongo.ErrNoDocuments {
		t.Errorf("missing user: got %v, want ErrNoDocuments", err)
	}
}

func TestStore_FetchByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	seeded := fixtures.CreateUser(ctx, "Asha Rao", "asha@example.com")

	got, err := store.FetchByID(ctx, seeded.ID.Hex())
	if err != nil {
		t.Fatalf("FetchByID failed: %v", err)
	}
	if got.ID != seeded.ID {
		t.Errorf("ID: got %v, want %v", got.ID, seeded.ID)
	}

	// Malformed hex reads as not-found, not as an internal error.
	if _, err := store.FetchByID(ctx, "not-a-hex-id"); err != mongo.ErrNoDocuments {
		t.Errorf("malformed id: got %v, want ErrNoDocuments", err)
	}
}

func TestStore_List_ExcludesDeletedAndPasswords(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "Asha Rao", "asha@example.com")
	fixtures.CreateUser(ctx, "Ben Okafor", "ben@example.com")
	fixtures.CreateDeletedUser(ctx, "Gone User", "gone@example.com")

	users, err := store.List(ctx, 100)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	for _, u := range users {
		if u.Status == models.UserDeleted {
			t.Errorf("deleted user %q leaked into list", u.Name)
		}
		if u.Password != "" {
			t.Errorf("password hash leaked for %q", u.Name)
		}
	}
}

func TestStore_SoftDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	seeded := fixtures.CreateUser(ctx, "Asha Rao", "asha@example.com")

	matched, err := store.SoftDelete(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}
	if matched != 1 {
		t.Fatalf("matched: got %d, want 1", matched)
	}

	// The record remains for analytics joins; only the status changes.
	got, err := store.GetByID(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("GetByID after delete failed: %v", err)
	}
	if got.Status != models.UserDeleted {
		t.Errorf("status: got %q, want %q", got.Status, models.UserDeleted)
	}

	matched, err = store.SoftDelete(ctx, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("SoftDelete missing failed: %v", err)
	}
	if matched != 0 {
		t.Errorf("matched for missing user: got %d, want 0", matched)
	}
}

func TestStore_Count(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "Asha Rao", "asha@example.com")
	fixtures.CreateDeletedUser(ctx, "Gone User", "gone@example.com")

	n, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("count: got %d, want 1", n)
	}
}

func TestStore_SignupsPerMonth(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "Asha Rao", "asha@example.com")
	fixtures.CreateUser(ctx, "Ben Okafor", "ben@example.com")

	year := time.Now().UTC().Year()
	month := int(time.Now().UTC().Month())

	counts, err := store.SignupsPerMonth(ctx, year)
	if err != nil {
		t.Fatalf("SignupsPerMonth failed: %v", err)
	}
	if len(counts) != 1 {
		t.Fatalf("expected 1 month bucket, got %d", len(counts))
	}
	if counts[0].Month != month {
		t.Errorf("month: got %d, want %d", counts[0].Month, month)
	}
	if counts[0].Count != 2 {
		t.Errorf("count: got %d, want 2", counts[0].Count)
	}

	// A year with no sign-ups produces no buckets.
	empty, err := store.SignupsPerMonth(ctx, year-1)
	if err != nil {
		t.Fatalf("SignupsPerMonth (empty year) failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no buckets for empty year, got %d", len(empty))
	}
}
