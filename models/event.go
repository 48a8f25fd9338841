package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Event struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	CustomerID     primitive.ObjectID   `bson:"customer_id" json:"customerId"`
	Title          string               `bson:"title" json:"title"`
	Description    string               `bson:"description" json:"description"`
	EventDate      time.Time            `bson:"eventDate" json:"eventDate"`
	EventStartTime string               `bson:"eventStartTime" json:"eventStartTime"`
	EventEndTime   string               `bson:"eventEndTime" json:"eventEndTime"`
	Location       string               `bson:"location,omitempty" json:"location,omitempty"`
	Members        []primitive.ObjectID `bson:"members" json:"members"`
}
