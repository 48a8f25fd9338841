package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Team groups members under at most one supervisor. Version guards the
// supervisor/member sets: every mutation of those sets must go through a
// conditional update on {_id, version}.
type Team struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	CustomerID  primitive.ObjectID   `bson:"customer_id" json:"customerId"`
	Supervisors []primitive.ObjectID `bson:"supervisors" json:"supervisors"`
	Members     []primitive.ObjectID `bson:"members" json:"members"`
	Tasks       []primitive.ObjectID `bson:"tasks" json:"tasks"`
	Version     int64                `bson:"version" json:"-"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// Supervisor returns the current supervisor id, if the team has one.
func (t *Team) Supervisor() *primitive.ObjectID {
	if len(t.Supervisors) == 0 {
		return nil
	}
	id := t.Supervisors[0]
	return &id
}
