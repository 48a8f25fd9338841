package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportReviewed ReportStatus = "reviewed"
)

// Report is filed by a member and addressed to a supervisor or admin.
type Report struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"userId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	CustomerID  primitive.ObjectID `bson:"customer_id" json:"customerId"`
	Recipient   primitive.ObjectID `bson:"recipient" json:"recipient"`
	Status      ReportStatus       `bson:"status" json:"status"`
}
