package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/UtopicUnicorn995/teamstarAPI/db"
	"github.com/UtopicUnicorn995/teamstarAPI/errs"
	"github.com/UtopicUnicorn995/teamstarAPI/logging"
	"github.com/UtopicUnicorn995/teamstarAPI/models"
)

type TaskService struct {
	tasks       *mongo.Collection
	teams       *mongo.Collection
	historyLogs *mongo.Collection
	comments    *mongo.Collection
	attachments *mongo.Collection
	checklists  *mongo.Collection
	notifier    *NotificationService
}

func NewTaskService(store *db.Store, notifier *NotificationService) *TaskService {
	return &TaskService{
		tasks:       store.Tasks,
		teams:       store.Teams,
		historyLogs: store.TaskHistoryLogs,
		comments:    store.TaskComments,
		attachments: store.TaskAttachments,
		checklists:  store.Checklists,
		notifier:    notifier,
	}
}

// CreateTaskRequest carries the client-supplied fields of a new task.
type CreateTaskRequest struct {
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	CustomerID    string              `json:"customer_id"`
	Due           *time.Time          `json:"due"`
	StartTime     string              `json:"startTime"`
	EndTime       string              `json:"endTime"`
	Duration      float64             `json:"duration"`
	Recurring     string              `json:"recurring"`
	NextSchedules string              `json:"nextSchedules"`
	PriorityLevel models.TaskPriority `json:"priorityLevel"`
	Status        models.TaskStatus   `json:"status"`
	TeamID        string              `json:"team_id"`
	Assignee      string              `json:"assignee"`
	Location      string              `json:"location"`
	LinkURL       string              `json:"linkURL"`
}

// newTaskDocument validates the request and fills defaults: open status,
// medium priority, the 08:00-09:00 working window.
func newTaskDocument(req CreateTaskRequest, actor *Claims) (*models.Task, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("title is required to create a task: %w", errs.ErrValidation)
	}
	if req.TeamID == "" {
		return nil, fmt.Errorf("team ID is required to create a task: %w", errs.ErrValidation)
	}

	teamObjectID, err := primitive.ObjectIDFromHex(req.TeamID)
	if err != nil {
		return nil, fmt.Errorf("invalid team ID format: %w", errs.ErrValidation)
	}
	customerObjectID, err := resolveCustomerID(req.CustomerID, actor)
	if err != nil {
		return nil, err
	}
	actorObjectID, err := primitive.ObjectIDFromHex(actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid actor ID: %w", errs.ErrValidation)
	}

	task := &models.Task{
		ID:            primitive.NewObjectID(),
		Title:         req.Title,
		Description:   req.Description,
		Due:           req.Due,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Duration:      req.Duration,
		Recurring:     req.Recurring,
		NextSchedules: req.NextSchedules,
		PriorityLevel: req.PriorityLevel,
		Status:        req.Status,
		TeamID:        teamObjectID,
		LinkURL:       req.LinkURL,
		CustomerID:    customerObjectID,
		CreatedBy:     actorObjectID,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if task.Status == "" {
		task.Status = models.StatusOpen
	}
	if task.PriorityLevel == "" {
		task.PriorityLevel = models.PriorityMedium
	}
	if task.StartTime == "" {
		task.StartTime = "08:00"
	}
	if task.EndTime == "" {
		task.EndTime = "09:00"
	}

	if req.Assignee != "" {
		assigneeID, err := primitive.ObjectIDFromHex(req.Assignee)
		if err != nil {
			return nil, fmt.Errorf("invalid assignee ID format: %w", errs.ErrValidation)
		}
		task.Assignee = &assigneeID
	}
	if req.Location != "" {
		locationID, err := primitive.ObjectIDFromHex(req.Location)
		if err != nil {
			return nil, fmt.Errorf("invalid location ID format: %w", errs.ErrValidation)
		}
		task.Location = &locationID
	}

	return task, nil
}

// CreateTask inserts the task and links its id into the owning team's task
// list. The push notification is best effort; a gateway failure never fails
// the create.
func (s *TaskService) CreateTask(ctx context.Context, req CreateTaskRequest, actor *Claims) (*models.Task, error) {
	task, err := newTaskDocument(req, actor)
	if err != nil {
		return nil, err
	}

	if _, err := s.tasks.InsertOne(ctx, task); err != nil {
		return nil, fmt.Errorf("insert task: %v: %w", err, errs.ErrStore)
	}

	if _, err := s.teams.UpdateOne(ctx, bson.M{"_id": task.TeamID}, bson.M{"$push": bson.M{"tasks": task.ID}}); err != nil {
		return nil, fmt.Errorf("task %s created but team link failed: %v: %w", task.ID.Hex(), err, errs.ErrStore)
	}

	if s.notifier.Notify(ctx, "task_created", task.ID.Hex(), task.Title) {
		task.NotificationSent = true
		if _, err := s.tasks.UpdateOne(ctx, bson.M{"_id": task.ID}, bson.M{"$set": bson.M{"notificationSent": true}}); err != nil {
			logging.Logger.Warnf("Event ID: NOTIFICATION_FLAG_FAILED, Description: Could not mark task %s as notified: %v", task.ID.Hex(), err)
		}
	}

	logging.Logger.Infof("Event ID: TASK_CREATED, Description: Task %s created in team %s", task.ID.Hex(), task.TeamID.Hex())
	return task, nil
}

// TaskPatch holds the updatable fields of a task. Nil means "leave as is";
// only supplied fields end up in the update document.
type TaskPatch struct {
	Title         *string              `json:"title"`
	Description   *string              `json:"description"`
	CustomerID    *string              `json:"customer_id"`
	Due           *time.Time           `json:"due"`
	StartTime     *string              `json:"startTime"`
	EndTime       *string              `json:"endTime"`
	Duration      *float64             `json:"duration"`
	Recurring     *string              `json:"recurring"`
	NextSchedules *string              `json:"nextSchedules"`
	PriorityLevel *models.TaskPriority `json:"priorityLevel"`
	Status        *models.TaskStatus   `json:"status"`
	TeamID        *string              `json:"team_id"`
	Assignee      *string              `json:"assignee"`
	LinkURL       *string              `json:"linkURL"`
	CompletedAt   *time.Time           `json:"completedAt"`
}

// buildTaskUpdate turns a patch into a $set document. Returns nil when the
// patch carries no fields at all, so callers can report NoChange without a
// round trip.
func buildTaskUpdate(patch TaskPatch, updatedBy primitive.ObjectID, now time.Time) (bson.M, error) {
	set := bson.M{}

	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.CustomerID != nil {
		id, err := primitive.ObjectIDFromHex(*patch.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("invalid customer ID format: %w", errs.ErrValidation)
		}
		set["customer_id"] = id
	}
	if patch.Due != nil {
		set["due"] = *patch.Due
	}
	if patch.StartTime != nil {
		set["startTime"] = *patch.StartTime
	}
	if patch.EndTime != nil {
		set["endTime"] = *patch.EndTime
	}
	if patch.Duration != nil {
		set["duration"] = *patch.Duration
	}
	if patch.Recurring != nil {
		set["recurring"] = *patch.Recurring
	}
	if patch.NextSchedules != nil {
		set["nextSchedules"] = *patch.NextSchedules
	}
	if patch.PriorityLevel != nil {
		set["priorityLevel"] = *patch.PriorityLevel
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.TeamID != nil {
		id, err := primitive.ObjectIDFromHex(*patch.TeamID)
		if err != nil {
			return nil, fmt.Errorf("invalid team ID format: %w", errs.ErrValidation)
		}
		set["team_id"] = id
	}
	if patch.Assignee != nil {
		id, err := primitive.ObjectIDFromHex(*patch.Assignee)
		if err != nil {
			return nil, fmt.Errorf("invalid assignee ID format: %w", errs.ErrValidation)
		}
		set["assignee"] = id
	}
	if patch.LinkURL != nil {
		set["linkURL"] = *patch.LinkURL
	}
	if patch.CompletedAt != nil {
		set["completedAt"] = *patch.CompletedAt
	}

	if len(set) == 0 {
		return nil, nil
	}

	set["updated_by"] = updatedBy
	set["updatedAt"] = now
	return set, nil
}

// UpdateTask merges the supplied fields over the stored task. An empty patch
// or a write that modifies nothing both come back as ErrNoChange, distinct
// from ErrNotFound.
func (s *TaskService) UpdateTask(ctx context.Context, taskID string, patch TaskPatch, actor *Claims) error {
	taskObjectID, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return fmt.Errorf("invalid task ID format: %w", errs.ErrValidation)
	}
	actorObjectID, err := primitive.ObjectIDFromHex(actor.UserID)
	if err != nil {
		return fmt.Errorf("invalid actor ID: %w", errs.ErrValidation)
	}

	set, err := buildTaskUpdate(patch, actorObjectID, time.Now())
	if err != nil {
		return err
	}
	if set == nil {
		return fmt.Errorf("no fields supplied: %w", errs.ErrNoChange)
	}

	result, err := s.tasks.UpdateOne(ctx, bson.M{"_id": taskObjectID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update task: %v: %w", err, errs.ErrStore)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("task not found: %w", errs.ErrNotFound)
	}
	if result.ModifiedCount == 0 {
		return fmt.Errorf("no changes made to the task: %w", errs.ErrNoChange)
	}

	return nil
}

// TaskDeleteResult reports the cascade: whether the task itself went away
// and how many dependent records each collection dropped. Failed lists the
// dependent collections whose delete did not run to completion.
type TaskDeleteResult struct {
	TaskDeleted        bool     `json:"taskDeleted"`
	HistoryLogsDeleted int64    `json:"historyLogsDeleted"`
	CommentsDeleted    int64    `json:"commentsDeleted"`
	AttachmentsDeleted int64    `json:"attachmentsDeleted"`
	ChecklistDeleted   int64    `json:"checklistDeleted"`
	Failed             []string `json:"failed,omitempty"`
}

// DeleteTask removes the task and cascades over its dependent collections.
// The cascade is not atomic: every dependent delete runs even if an earlier
// one failed, and any failure is surfaced alongside the counts.
func (s *TaskService) DeleteTask(ctx context.Context, taskID string) (*TaskDeleteResult, error) {
	taskObjectID, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return nil, fmt.Errorf("invalid task ID format: %w", errs.ErrValidation)
	}

	deleted, err := s.tasks.DeleteOne(ctx, bson.M{"_id": taskObjectID})
	if err != nil {
		return nil, fmt.Errorf("delete task: %v: %w", err, errs.ErrStore)
	}
	if deleted.DeletedCount == 0 {
		return nil, fmt.Errorf("task not found: %w", errs.ErrNotFound)
	}

	result := &TaskDeleteResult{TaskDeleted: true}
	filter := bson.M{"task_id": taskObjectID}

	cascade := []struct {
		name       string
		collection *mongo.Collection
		count      *int64
	}{
		{db.CollTaskHistoryLogs, s.historyLogs, &result.HistoryLogsDeleted},
		{db.CollTaskComments, s.comments, &result.CommentsDeleted},
		{db.CollTaskAttachments, s.attachments, &result.AttachmentsDeleted},
		{db.CollChecklists, s.checklists, &result.ChecklistDeleted},
	}

	for _, step := range cascade {
		res, err := step.collection.DeleteMany(ctx, filter)
		if err != nil {
			logging.Logger.Errorf("Event ID: TASK_CASCADE_FAILED, Description: Deleting %s records for task %s failed: %v", step.name, taskID, err)
			result.Failed = append(result.Failed, step.name)
			continue
		}
		*step.count = res.DeletedCount
	}

	if len(result.Failed) > 0 {
		return result, fmt.Errorf("task deleted but cascade failed for %s: %w", strings.Join(result.Failed, ", "), errs.ErrStore)
	}

	logging.Logger.Infof("Event ID: TASK_DELETED, Description: Task %s and dependent records removed", taskID)
	return result, nil
}

// GetAllTasks returns every task.
func (s *TaskService) GetAllTasks(ctx context.Context) ([]models.Task, error) {
	return s.findTasks(ctx, bson.M{}, nil)
}

// GetTaskByID returns one task.
func (s *TaskService) GetTaskByID(ctx context.Context, taskID string) (*models.Task, error) {
	taskObjectID, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return nil, fmt.Errorf("invalid task ID format: %w", errs.ErrValidation)
	}

	var task models.Task
	if err := s.tasks.FindOne(ctx, bson.M{"_id": taskObjectID}).Decode(&task); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("task not found: %w", errs.ErrNotFound)
		}
		return nil, fmt.Errorf("load task: %v: %w", err, errs.ErrStore)
	}
	return &task, nil
}

// GetTasksByCustomer lists an organization's tasks.
func (s *TaskService) GetTasksByCustomer(ctx context.Context, customerID string) ([]models.Task, error) {
	customerObjectID, err := primitive.ObjectIDFromHex(customerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer ID format: %w", errs.ErrValidation)
	}
	return s.findTasks(ctx, bson.M{"customer_id": customerObjectID}, nil)
}

// GetTasksByCreator lists tasks created by one user.
func (s *TaskService) GetTasksByCreator(ctx context.Context, userID string) ([]models.Task, error) {
	userObjectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format: %w", errs.ErrValidation)
	}
	return s.findTasks(ctx, bson.M{"created_by": userObjectID}, nil)
}

// GetTasksByTitle returns tasks matching a title, newest first.
func (s *TaskService) GetTasksByTitle(ctx context.Context, title string) ([]models.Task, error) {
	if title == "" {
		return nil, fmt.Errorf("title is required: %w", errs.ErrValidation)
	}
	sort := options.Find().SetSort(bson.M{"createdAt": -1})
	return s.findTasks(ctx, bson.M{"title": title}, sort)
}

// GetAllAttachments returns every task attachment.
func (s *TaskService) GetAllAttachments(ctx context.Context) ([]models.TaskAttachment, error) {
	return s.findAttachments(ctx, bson.M{})
}

// GetAttachmentByID returns one attachment.
func (s *TaskService) GetAttachmentByID(ctx context.Context, attachmentID string) (*models.TaskAttachment, error) {
	attachmentObjectID, err := primitive.ObjectIDFromHex(attachmentID)
	if err != nil {
		return nil, fmt.Errorf("invalid attachment ID format: %w", errs.ErrValidation)
	}

	var attachment models.TaskAttachment
	if err := s.attachments.FindOne(ctx, bson.M{"_id": attachmentObjectID}).Decode(&attachment); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("task attachment not found: %w", errs.ErrNotFound)
		}
		return nil, fmt.Errorf("load attachment: %v: %w", err, errs.ErrStore)
	}
	return &attachment, nil
}

// GetAttachmentsByTask lists the attachments hanging off one task.
func (s *TaskService) GetAttachmentsByTask(ctx context.Context, taskID string) ([]models.TaskAttachment, error) {
	taskObjectID, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return nil, fmt.Errorf("invalid task ID format: %w", errs.ErrValidation)
	}
	return s.findAttachments(ctx, bson.M{"task_id": taskObjectID})
}

func (s *TaskService) findAttachments(ctx context.Context, filter bson.M) ([]models.TaskAttachment, error) {
	cursor, err := s.attachments.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find attachments: %v: %w", err, errs.ErrStore)
	}
	defer cursor.Close(ctx)

	attachments := []models.TaskAttachment{}
	if err := cursor.All(ctx, &attachments); err != nil {
		return nil, fmt.Errorf("decode attachments: %v: %w", err, errs.ErrStore)
	}
	return attachments, nil
}

func (s *TaskService) findTasks(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Task, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = s.tasks.Find(ctx, filter, opts)
	} else {
		cursor, err = s.tasks.Find(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("find tasks: %v: %w", err, errs.ErrStore)
	}
	defer cursor.Close(ctx)

	tasks := []models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %v: %w", err, errs.ErrStore)
	}
	return tasks, nil
}
