// Package db owns the MongoDB connection and the set of named collections.
// The Store value is passed explicitly into every service so tests can swap
// collections and nothing reaches for a global client.
package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names match the documents the mobile clients already have in
// Atlas; renaming any of them is a data migration, not a refactor.
const (
	CollUsers           = "User"
	CollCustomers       = "Customer"
	CollTeams           = "Team"
	CollTasks           = "Task"
	CollTaskHistoryLogs = "TaskHistoryLog"
	CollTaskComments    = "TaskComment"
	CollTaskAttachments = "TaskAttachment"
	CollChecklists      = "Checklist"
	CollReports         = "Reports"
	CollMessages        = "Message"
	CollMessageEntries  = "MessageEntry"
	CollEvents          = "Event"
)

type Store struct {
	Client *mongo.Client

	Users           *mongo.Collection
	Customers       *mongo.Collection
	Teams           *mongo.Collection
	Tasks           *mongo.Collection
	TaskHistoryLogs *mongo.Collection
	TaskComments    *mongo.Collection
	TaskAttachments *mongo.Collection
	Checklists      *mongo.Collection
	Reports         *mongo.Collection
	Messages        *mongo.Collection
	MessageEntries  *mongo.Collection
	Events          *mongo.Collection
}

// Connect dials MongoDB, pings it and returns a Store bound to dbName.
func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return NewStore(client, dbName), nil
}

// NewStore binds the named collections on an already connected client.
func NewStore(client *mongo.Client, dbName string) *Store {
	database := client.Database(dbName)
	return &Store{
		Client:          client,
		Users:           database.Collection(CollUsers),
		Customers:       database.Collection(CollCustomers),
		Teams:           database.Collection(CollTeams),
		Tasks:           database.Collection(CollTasks),
		TaskHistoryLogs: database.Collection(CollTaskHistoryLogs),
		TaskComments:    database.Collection(CollTaskComments),
		TaskAttachments: database.Collection(CollTaskAttachments),
		Checklists:      database.Collection(CollChecklists),
		Reports:         database.Collection(CollReports),
		Messages:        database.Collection(CollMessages),
		MessageEntries:  database.Collection(CollMessageEntries),
		Events:          database.Collection(CollEvents),
	}
}

// Disconnect closes the underlying client.
func (s *Store) Disconnect(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}
