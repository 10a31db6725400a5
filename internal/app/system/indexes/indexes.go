// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureEmployees(ctx, db); err != nil {
		problems = append(problems, "employees: "+err.Error())
	}
	if err := ensureMovies(ctx, db); err != nil {
		problems = append(problems, "movies: "+err.Error())
	}
	if err := ensureWatched(ctx, db); err != nil {
		problems = append(problems, "watched: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ----------------- core helper: ensure one collection's set ----------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	av := a != nil && *a
	bv := b != nil && *b
	return av == bv
}

func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

// ensureIndexSet reconciles the desired indexes against what exists: reuse
// when keys and uniqueness match, otherwise drop and recreate.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	existing := map[string]existingIndex{} // key signature -> index
	cur, err := coll.Indexes().List(ctx)
	if err == nil {
		defer cur.Close(ctx)
		for cur.Next(ctx) {
			var idx existingIndex
			if err := cur.Decode(&idx); err != nil {
				zap.L().Warn("failed to decode existing index",
					zap.String("collection", coll.Name()),
					zap.Error(err))
				continue
			}
			existing[keySig(idx.Key)] = idx
		}
	}

	var errs []string
	for _, m := range models {
		var desiredName string
		var desiredUnique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				desiredName = *m.Options.Name
			}
			desiredUnique = m.Options.Unique
		}
		sig := keySig(m.Keys.(bson.D))

		if ex, ok := existing[sig]; ok {
			if sameBoolPtr(desiredUnique, ex.Unique) {
				zap.L().Info("reusing existing index",
					zap.String("collection", coll.Name()),
					zap.String("name", ex.Name),
					zap.String("keys", sig))
				continue
			}
			// Options mismatch (e.g. upgrading to unique): drop & recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), desiredName, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if isDuplicateKeyErr(err) && desiredUnique != nil && *desiredUnique {
				errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index (duplicates present)", coll.Name(), desiredName))
			} else {
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
			}
			continue
		}
		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", sig),
			zap.Bool("unique", desiredUnique != nil && *desiredUnique))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* ----------------------- collection-specific index sets ---------------------- */

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("users")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Email is the login id; globally unique (addresses are lowercased
		// before insert).
		{
			Keys:    bson.D{{Key: "email.email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
		},
		// Admin user lists: status filter + newest-first.
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("idx_users_status_created"),
		},
	})
}

func ensureEmployees(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("employees")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "empId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_employees_empid"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_employees_email"),
		},
		{
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_employees_phone"),
		},
		// Identity documents are optional; sparse so absent values don't
		// collide.
		{
			Keys:    bson.D{{Key: "aadharNo", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true).SetName("uniq_employees_aadhar"),
		},
		{
			Keys:    bson.D{{Key: "panNo", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true).SetName("uniq_employees_pan"),
		},
	})
}

func ensureMovies(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("movies")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// A movie is identified by (title, year, director); director is
		// stored case-folded so the check is case-insensitive.
		{
			Keys: bson.D{
				{Key: "title", Value: 1},
				{Key: "year", Value: 1},
				{Key: "director", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_movies_title_year_director"),
		},
		// Catalog lists: newest-first.
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("idx_movies_created"),
		},
		{
			Keys:    bson.D{{Key: "genre", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("idx_movies_genre_created"),
		},
		{
			Keys:    bson.D{{Key: "language", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("idx_movies_language_created"),
		},
	})
}

func ensureWatched(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("watched")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// NOT unique: the analytics path appends one row per playback while
		// the progress path upserts a single checkpoint per pair.
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "movieId", Value: 1}},
			Options: options.Index().SetName("idx_watched_user_movie"),
		},
		// Dashboard: latest watch activity.
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("idx_watched_created"),
		},
	})
}
