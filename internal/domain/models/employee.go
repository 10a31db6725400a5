// internal/domain/models/employee.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Employee privilege roles.
const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

// Employee lifecycle statuses.
const (
	EmployeeActive     = "active"
	EmployeeInactive   = "inactive"
	EmployeeTerminated = "terminated"
	EmployeeResigned   = "resigned"
)

// Employee is a staff record, created and mutated only through the
// admin-gated endpoints.
//
// An employee with Role "employee" is treated as admin-equivalent while
// the current time falls inside [AdminAccessStart, AdminAccessEnd); both
// pointers nil means no elevation window. EmpID is the human-facing
// business id ("EMP" + 8 digits) embedded in employee tokens.
//
// Password holds the bcrypt hash; stores exclude it from projections
// unless explicitly requested for a credential check.
type Employee struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Phone string             `bson:"phone" json:"phone"`
	Email string             `bson:"email" json:"email"`
	EmpID string             `bson:"empId" json:"empId"`

	Department string `bson:"department" json:"department"`
	Post       string `bson:"post" json:"post"`
	Role       string `bson:"role" json:"role"` // employee | admin

	AdminAccessStart *time.Time `bson:"adminAccessStart,omitempty" json:"adminAccessStart,omitempty"`
	AdminAccessEnd   *time.Time `bson:"adminAccessEnd,omitempty" json:"adminAccessEnd,omitempty"`

	Address     string    `bson:"address" json:"address"`
	Salary      float64   `bson:"salary" json:"salary"`
	TotalLeaves int       `bson:"totalLeaves" json:"totalLeaves"`
	Age         int       `bson:"age" json:"age"`
	DOB         time.Time `bson:"dob" json:"dob"`
	AadharNo    string    `bson:"aadharNo,omitempty" json:"aadharNo,omitempty"`
	PanNo       string    `bson:"panNo,omitempty" json:"panNo,omitempty"`
	JoiningDate time.Time `bson:"joiningDate" json:"joiningDate"`
	Status      string    `bson:"status" json:"status"` // active | inactive | terminated | resigned

	Password string `bson:"password,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// AdminEquivalentAt reports whether the employee holds admin privilege at
// the given instant: either the admin role outright, or the employee role
// inside a live elevation window. The window is half-open: an AdminAccessEnd
// exactly equal to now no longer grants access.
func (e *Employee) AdminEquivalentAt(now time.Time) bool {
	if e.Role == RoleAdmin {
		return true
	}
	if e.Role != RoleEmployee {
		return false
	}
	if e.AdminAccessStart != nil && now.Before(*e.AdminAccessStart) {
		return false
	}
	return e.AdminAccessEnd != nil && now.Before(*e.AdminAccessEnd)
}
