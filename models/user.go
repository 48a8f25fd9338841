package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the single authoritative record for an account. The role stored
// here is the one the rest of the system trusts.
type User struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name       string              `bson:"name" json:"name"`
	Email      string              `bson:"email,omitempty" json:"email,omitempty"`
	Phone      string              `bson:"phone" json:"phone"`
	Pin        string              `bson:"pin" json:"-"`
	Role       Role                `bson:"role" json:"role"`
	CustomerID primitive.ObjectID  `bson:"customer_id,omitempty" json:"customerId,omitempty"`
	CreatedBy  *primitive.ObjectID `bson:"created_by,omitempty" json:"createdBy,omitempty"`
	UpdatedBy  *primitive.ObjectID `bson:"updated_by,omitempty" json:"updatedBy,omitempty"`
	CreatedAt  time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time           `bson:"updatedAt" json:"updatedAt"`
}
