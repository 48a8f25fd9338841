package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskStatus string

const (
	StatusOpen       TaskStatus = "open"
	StatusInProgress TaskStatus = "in progress"
	StatusCompleted  TaskStatus = "completed"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

type Task struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title            string              `bson:"title" json:"title"`
	Description      string              `bson:"description,omitempty" json:"description,omitempty"`
	Due              *time.Time          `bson:"due" json:"due,omitempty"`
	StartTime        string              `bson:"startTime" json:"startTime"`
	EndTime          string              `bson:"endTime" json:"endTime"`
	Duration         float64             `bson:"duration" json:"duration"`
	Recurring        string              `bson:"recurring,omitempty" json:"recurring,omitempty"`
	NextSchedules    string              `bson:"nextSchedules" json:"nextSchedules"`
	PriorityLevel    TaskPriority        `bson:"priorityLevel" json:"priorityLevel"`
	Status           TaskStatus          `bson:"status" json:"status"`
	TeamID           primitive.ObjectID  `bson:"team_id" json:"teamId"`
	Assignee         *primitive.ObjectID `bson:"assignee" json:"assignee,omitempty"`
	Location         *primitive.ObjectID `bson:"location" json:"location,omitempty"`
	LinkURL          string              `bson:"linkURL" json:"linkURL"`
	CustomerID       primitive.ObjectID  `bson:"customer_id" json:"customerId"`
	CreatedBy        primitive.ObjectID  `bson:"created_by" json:"createdBy"`
	UpdatedBy        *primitive.ObjectID `bson:"updated_by" json:"updatedBy,omitempty"`
	CompletedAt      *time.Time          `bson:"completedAt" json:"completedAt,omitempty"`
	NotificationSent bool                `bson:"notificationSent" json:"notificationSent"`
	CreatedAt        time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time           `bson:"updatedAt" json:"updatedAt"`
	DeletedAt        *time.Time          `bson:"deletedAt" json:"deletedAt,omitempty"`
}

// TaskHistoryLog, TaskComment, TaskAttachment and ChecklistItem hang off a
// task by task_id and are removed with it on cascade delete.

type TaskHistoryLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TaskID    primitive.ObjectID `bson:"task_id" json:"taskId"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	Action    string             `bson:"action" json:"action"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type TaskComment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TaskID    primitive.ObjectID `bson:"task_id" json:"taskId"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type TaskAttachment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TaskID    primitive.ObjectID `bson:"task_id" json:"taskId"`
	FileName  string             `bson:"fileName" json:"fileName"`
	FileURL   string             `bson:"fileURL" json:"fileURL"`
	CreatedBy primitive.ObjectID `bson:"created_by" json:"createdBy"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type ChecklistItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TaskID    primitive.ObjectID `bson:"task_id" json:"taskId"`
	Label     string             `bson:"label" json:"label"`
	Done      bool               `bson:"done" json:"done"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
