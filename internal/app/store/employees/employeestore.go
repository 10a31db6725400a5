// internal/app/store/employees/employeestore.go
package employeestore

import (
	"context"
	"errors"
	"fmt"
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

var ErrDuplicate = errors.New("an employee with this email, phone or id already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("employees")}
}

// MintEmpID derives a business id from the current clock: "EMP" plus the
// last eight digits of the millisecond timestamp. The unique index turns
// the (unlikely) same-millisecond collision into ErrDuplicate on insert.
func MintEmpID(now time.Time) string {
	return fmt.Sprintf("EMP%08d", now.UnixMilli()%100_000_000)
}

// Create inserts a new employee. The caller supplies a fully validated
// record; Create fills the id, empId, joining date and timestamps.
func (s *Store) Create(ctx context.Context, e models.Employee) (models.Employee, error) {
	now := time.Now().UTC()
	e.ID = primitive.NewObjectID()
	if e.EmpID == "" {
		e.EmpID = MintEmpID(now)
	}
	if e.Role == "" {
		e.Role = models.RoleEmployee
	}
	if e.Status == "" {
		e.Status = models.EmployeeActive
	}
	e.JoiningDate = now
	e.CreatedAt = now
	e.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, e); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Employee{}, ErrDuplicate
		}
		return models.Employee{}, err
	}
	return e, nil
}

// GetByEmail returns the employee with the given (normalized) address,
// including the password hash for credential checks.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.Employee, error) {
	var e models.Employee
	err := s.c.FindOne(ctx, bson.M{"email": email}).Decode(&e)
	return e, err
}

// FetchByEmpID implements gates.EmployeeFetcher. The password hash is
// excluded; the gate only needs role and the elevation window.
func (s *Store) FetchByEmpID(ctx context.Context, empID string) (*models.Employee, error) {
	var e models.Employee
	opts := options.FindOne().SetProjection(bson.M{"password": 0})
	if err := s.c.FindOne(ctx, bson.M{"empId": empID}, opts).Decode(&e); err != nil {
		return nil, err
	}
	return &e, nil
}

// ExistsByEmail reports whether any employee uses the address.
func (s *Store) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"email": email}, options.Count().SetLimit(1))
	return n > 0, err
}

// List returns all employees without password hashes.
func (s *Store) List(ctx context.Context) ([]models.Employee, error) {
	opts := options.Find().SetProjection(bson.M{"password": 0})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Employee
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateByEmpID applies a $set patch and returns the updated document.
// mongo.ErrNoDocuments means no such employee.
func (s *Store) UpdateByEmpID(ctx context.Context, empID string, set bson.M) (models.Employee, error) {
	set["updatedAt"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"password": 0})

	var e models.Employee
	err := s.c.FindOneAndUpdate(ctx, bson.M{"empId": empID}, bson.M{"$set": set}, opts).Decode(&e)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Employee{}, ErrDuplicate
		}
		return models.Employee{}, err
	}
	return e, nil
}

// DeleteByEmpID removes an employee record. Returns the number deleted
// (0 or 1).
func (s *Store) DeleteByEmpID(ctx context.Context, empID string) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"empId": empID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Count returns the total number of employees.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// MakeAdmin grants the permanent admin role and clears any elevation window.
func (s *Store) MakeAdmin(ctx context.Context, empID string) (models.Employee, error) {
	return s.UpdateByEmpID(ctx, empID, bson.M{
		"role":             models.RoleAdmin,
		"adminAccessStart": nil,
		"adminAccessEnd":   nil,
	})
}

// RemoveAdmin reverts the employee role and clears any elevation window.
func (s *Store) RemoveAdmin(ctx context.Context, empID string) (models.Employee, error) {
	return s.UpdateByEmpID(ctx, empID, bson.M{
		"role":             models.RoleEmployee,
		"adminAccessStart": nil,
		"adminAccessEnd":   nil,
	})
}

// SetAccessWindow grants admin-equivalent privilege for [start, end) while
// keeping the employee role, so privilege lapses on its own when the
// window closes.
func (s *Store) SetAccessWindow(ctx context.Context, empID string, start, end time.Time) (models.Employee, error) {
	return s.UpdateByEmpID(ctx, empID, bson.M{
		"role":             models.RoleEmployee,
		"adminAccessStart": start.UTC(),
		"adminAccessEnd":   end.UTC(),
	})
}

// ClearAccessWindow revokes a temporary elevation without touching the role.
func (s *Store) ClearAccessWindow(ctx context.Context, empID string) (models.Employee, error) {
	return s.UpdateByEmpID(ctx, empID, bson.M{
		"adminAccessStart": nil,
		"adminAccessEnd":   nil,
	})
}

// ClearElapsedAccessWindows unsets every elevation window that ended at or
// before now. Elapsed windows already deny access on their own; this keeps
// stale grants from lingering in the records.
func (s *Store) ClearElapsedAccessWindows(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{"adminAccessEnd": bson.M{"$ne": nil, "$lte": now.UTC()}},
		bson.M{"$set": bson.M{"adminAccessStart": nil, "adminAccessEnd": nil}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
