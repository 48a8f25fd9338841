package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessageThread is a conversation between a set of people. Entries reference
// the thread by thread_id; the thread keeps the entry ids for ordering.
type MessageThread struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Subject    string               `bson:"subject" json:"subject"`
	CustomerID primitive.ObjectID   `bson:"customer_id" json:"customerId"`
	CreatedBy  primitive.ObjectID   `bson:"created_by" json:"createdBy"`
	UpdatedBy  primitive.ObjectID   `bson:"updated_by" json:"updatedBy"`
	People     []primitive.ObjectID `bson:"people" json:"people"`
	Messages   []primitive.ObjectID `bson:"messages" json:"messages"`
	CreatedAt  time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time            `bson:"updatedAt" json:"updatedAt"`
	DeletedAt  *time.Time           `bson:"deletedAt" json:"deletedAt,omitempty"`
}

type MessageEntry struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	ThreadID    primitive.ObjectID   `bson:"thread_id" json:"threadId"`
	SenderID    primitive.ObjectID   `bson:"sender_id" json:"senderId"`
	SenderName  string               `bson:"sender_name" json:"senderName"`
	Content     string               `bson:"content" json:"content"`
	SentAt      time.Time            `bson:"sentAt" json:"sentAt"`
	IsRead      bool                 `bson:"isRead" json:"isRead"`
	Attachments []primitive.ObjectID `bson:"attachments" json:"attachments"`
}
