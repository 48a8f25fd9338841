package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customer is the tenant grouping users, teams and tasks ("organization" to
// the mobile clients).
type Customer struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name       string               `bson:"name" json:"name"`
	Email      string               `bson:"email" json:"email"`
	CreatedBy  primitive.ObjectID   `bson:"created_by" json:"createdBy"`
	Admin      primitive.ObjectID   `bson:"admin" json:"admin"`
	Members    []primitive.ObjectID `bson:"members" json:"members"`
	Supervisor *primitive.ObjectID  `bson:"supervisor" json:"supervisor"`
	CreatedAt  time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time            `bson:"updatedAt" json:"updatedAt"`
}
