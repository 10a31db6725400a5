// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User lifecycle statuses. Users are only ever soft-deleted: the record
// stays in the collection with Status set to UserDeleted.
const (
	UserActive  = "active"
	UserBanned  = "banned"
	UserDeleted = "deleted"
)

// Phone is a phone number plus its verification flag.
type Phone struct {
	Number   string `bson:"number,omitempty" json:"number,omitempty"`
	Verified bool   `bson:"verified" json:"verified"`
}

// Email is an address plus its verification flag. Address is stored
// lowercased; uniqueness is enforced on email.email.
type Email struct {
	Address  string `bson:"email" json:"email"`
	Verified bool   `bson:"verified" json:"verified"`
}

// User represents an end-user of the streaming platform.
//
// Password holds the bcrypt hash and is never serialized to JSON.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Phone    Phone              `bson:"phone" json:"phone"`
	Email    Email              `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
	Status   string             `bson:"status" json:"status"` // active | banned | deleted

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
