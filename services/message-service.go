package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/UtopicUnicorn995/teamstarAPI/db"
	"github.com/UtopicUnicorn995/teamstarAPI/errs"
	"github.com/UtopicUnicorn995/teamstarAPI/logging"
	"github.com/UtopicUnicorn995/teamstarAPI/models"
)

type MessageService struct {
	threads *mongo.Collection
	entries *mongo.Collection
}

func NewMessageService(store *db.Store) *MessageService {
	return &MessageService{
		threads: store.Messages,
		entries: store.MessageEntries,
	}
}

// CreateMessageRequest either appends to an existing thread (MessageID set)
// or opens a new one (MessageID empty, Subject and Recipients describing
// the conversation).
type CreateMessageRequest struct {
	MessageID  string   `json:"messageId"`
	Subject    string   `json:"subject"`
	CustomerID string   `json:"customer_id"`
	Message    string   `json:"message"`
	Recipient  []string `json:"recipient"`
}

// CreateMessageResult carries the entry and, for a fresh conversation, the
// thread that was opened for it.
type CreateMessageResult struct {
	Thread *models.MessageThread `json:"thread,omitempty"`
	Entry  *models.MessageEntry  `json:"entry"`
}

// CreateMessage writes one message. With no thread id a new thread is
// created first and the entry becomes its opening message.
func (s *MessageService) CreateMessage(ctx context.Context, req CreateMessageRequest, actor *Claims, actorName string) (*CreateMessageResult, error) {
	if req.Message == "" {
		return nil, fmt.Errorf("message content is required: %w", errs.ErrValidation)
	}

	actorObjectID, err := primitive.ObjectIDFromHex(actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid actor ID: %w", errs.ErrValidation)
	}

	if req.MessageID == "" {
		return s.createThreadWithMessage(ctx, req, actorObjectID, actorName)
	}

	threadObjectID, err := primitive.ObjectIDFromHex(req.MessageID)
	if err != nil {
		return nil, fmt.Errorf("invalid thread ID format: %w", errs.ErrValidation)
	}

	entry := newMessageEntry(threadObjectID, actorObjectID, actorName, req.Message)
	if _, err := s.entries.InsertOne(ctx, entry); err != nil {
		return nil, fmt.Errorf("insert message entry: %v: %w", err, errs.ErrStore)
	}

	result, err := s.threads.UpdateOne(ctx, bson.M{"_id": threadObjectID}, bson.M{
		"$set":  bson.M{"updatedAt": time.Now()},
		"$push": bson.M{"messages": entry.ID},
	})
	if err != nil {
		return nil, fmt.Errorf("link entry to thread: %v: %w", err, errs.ErrStore)
	}
	if result.MatchedCount == 0 {
		return nil, fmt.Errorf("thread not found: %w", errs.ErrNotFound)
	}

	return &CreateMessageResult{Entry: entry}, nil
}

func (s *MessageService) createThreadWithMessage(ctx context.Context, req CreateMessageRequest, sender primitive.ObjectID, senderName string) (*CreateMessageResult, error) {
	if len(req.Recipient) == 0 {
		return nil, fmt.Errorf("at least one recipient is required for a new conversation: %w", errs.ErrValidation)
	}

	customerObjectID, err := primitive.ObjectIDFromHex(req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer ID format: %w", errs.ErrValidation)
	}

	people := make([]primitive.ObjectID, 0, len(req.Recipient))
	for _, id := range req.Recipient {
		personID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, fmt.Errorf("invalid recipient ID format: %w", errs.ErrValidation)
		}
		people = append(people, personID)
	}

	now := time.Now()
	thread := &models.MessageThread{
		ID:         primitive.NewObjectID(),
		Subject:    req.Subject,
		CustomerID: customerObjectID,
		CreatedBy:  sender,
		UpdatedBy:  sender,
		People:     people,
		Messages:   []primitive.ObjectID{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := s.threads.InsertOne(ctx, thread); err != nil {
		return nil, fmt.Errorf("insert thread: %v: %w", err, errs.ErrStore)
	}

	entry := newMessageEntry(thread.ID, sender, senderName, req.Message)
	if _, err := s.entries.InsertOne(ctx, entry); err != nil {
		return nil, fmt.Errorf("thread %s created but entry insert failed: %v: %w", thread.ID.Hex(), err, errs.ErrStore)
	}

	if _, err := s.threads.UpdateOne(ctx, bson.M{"_id": thread.ID}, bson.M{"$push": bson.M{"messages": entry.ID}}); err != nil {
		return nil, fmt.Errorf("link entry to new thread: %v: %w", err, errs.ErrStore)
	}
	thread.Messages = append(thread.Messages, entry.ID)

	logging.Logger.Infof("Event ID: THREAD_CREATED, Description: Conversation %s opened by %s", thread.ID.Hex(), sender.Hex())
	return &CreateMessageResult{Thread: thread, Entry: entry}, nil
}

func newMessageEntry(threadID, sender primitive.ObjectID, senderName, content string) *models.MessageEntry {
	return &models.MessageEntry{
		ID:          primitive.NewObjectID(),
		ThreadID:    threadID,
		SenderID:    sender,
		SenderName:  senderName,
		Content:     content,
		SentAt:      time.Now(),
		IsRead:      false,
		Attachments: []primitive.ObjectID{},
	}
}

// GetAllMessages returns every message entry.
func (s *MessageService) GetAllMessages(ctx context.Context) ([]models.MessageEntry, error) {
	cursor, err := s.entries.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find messages: %v: %w", err, errs.ErrStore)
	}
	defer cursor.Close(ctx)

	entries := []models.MessageEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode messages: %v: %w", err, errs.ErrStore)
	}
	return entries, nil
}
