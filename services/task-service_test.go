package services

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/UtopicUnicorn995/teamstarAPI/errs"
	"github.com/UtopicUnicorn995/teamstarAPI/models"
)

func testClaims(role models.Role) *Claims {
	return &Claims{
		UserID:     primitive.NewObjectID().Hex(),
		Role:       role,
		CustomerID: primitive.NewObjectID().Hex(),
	}
}

func TestNewTaskDocumentDefaults(t *testing.T) {
	actor := testClaims(models.RoleSupervisor)
	teamID := primitive.NewObjectID()

	task, err := newTaskDocument(CreateTaskRequest{
		Title:  "Restock shelves",
		TeamID: teamID.Hex(),
	}, actor)
	if err != nil {
		t.Fatalf("newTaskDocument: %v", err)
	}

	if task.Status != models.StatusOpen {
		t.Errorf("Status = %s, want open", task.Status)
	}
	if task.PriorityLevel != models.PriorityMedium {
		t.Errorf("PriorityLevel = %s, want medium", task.PriorityLevel)
	}
	if task.StartTime != "08:00" || task.EndTime != "09:00" {
		t.Errorf("working window = %s-%s, want 08:00-09:00", task.StartTime, task.EndTime)
	}
	if task.TeamID != teamID {
		t.Errorf("TeamID = %s, want %s", task.TeamID.Hex(), teamID.Hex())
	}
	if task.CustomerID.Hex() != actor.CustomerID {
		t.Errorf("CustomerID = %s, want actor's %s", task.CustomerID.Hex(), actor.CustomerID)
	}
	if task.CreatedBy.Hex() != actor.UserID {
		t.Errorf("CreatedBy = %s, want actor's %s", task.CreatedBy.Hex(), actor.UserID)
	}
	if task.NotificationSent {
		t.Error("NotificationSent = true on a fresh task")
	}
}

func TestNewTaskDocumentKeepsSuppliedValues(t *testing.T) {
	actor := testClaims(models.RoleAdmin)

	task, err := newTaskDocument(CreateTaskRequest{
		Title:         "Close month",
		TeamID:        primitive.NewObjectID().Hex(),
		Status:        models.StatusInProgress,
		PriorityLevel: models.PriorityHigh,
		StartTime:     "13:00",
		EndTime:       "17:30",
	}, actor)
	if err != nil {
		t.Fatalf("newTaskDocument: %v", err)
	}

	if task.Status != models.StatusInProgress {
		t.Errorf("Status = %s, want in progress", task.Status)
	}
	if task.PriorityLevel != models.PriorityHigh {
		t.Errorf("PriorityLevel = %s, want high", task.PriorityLevel)
	}
	if task.StartTime != "13:00" || task.EndTime != "17:30" {
		t.Errorf("working window = %s-%s, want 13:00-17:30", task.StartTime, task.EndTime)
	}
}

func TestNewTaskDocumentValidation(t *testing.T) {
	actor := testClaims(models.RoleAdmin)
	teamID := primitive.NewObjectID().Hex()

	tests := []struct {
		name string
		req  CreateTaskRequest
	}{
		{"missing title", CreateTaskRequest{TeamID: teamID}},
		{"blank title", CreateTaskRequest{Title: "   ", TeamID: teamID}},
		{"missing team", CreateTaskRequest{Title: "x"}},
		{"bad team id", CreateTaskRequest{Title: "x", TeamID: "not-hex"}},
		{"bad assignee id", CreateTaskRequest{Title: "x", TeamID: teamID, Assignee: "nope"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := newTaskDocument(test.req, actor)
			if !errors.Is(err, errs.ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestBuildTaskUpdateEmptyPatch(t *testing.T) {
	set, err := buildTaskUpdate(TaskPatch{}, primitive.NewObjectID(), time.Now())
	if err != nil {
		t.Fatalf("buildTaskUpdate: %v", err)
	}
	if set != nil {
		t.Errorf("empty patch produced update %v, want nil", set)
	}
}

func TestBuildTaskUpdateOnlySuppliedFields(t *testing.T) {
	title := "New title"
	status := models.StatusCompleted
	updatedBy := primitive.NewObjectID()
	now := time.Now()

	set, err := buildTaskUpdate(TaskPatch{Title: &title, Status: &status}, updatedBy, now)
	if err != nil {
		t.Fatalf("buildTaskUpdate: %v", err)
	}

	if set["title"] != title {
		t.Errorf(`set["title"] = %v, want %q`, set["title"], title)
	}
	if set["status"] != status {
		t.Errorf(`set["status"] = %v, want %q`, set["status"], status)
	}
	if set["updated_by"] != updatedBy {
		t.Errorf(`set["updated_by"] = %v, want %s`, set["updated_by"], updatedBy.Hex())
	}
	if set["updatedAt"] != now {
		t.Errorf(`set["updatedAt"] = %v, want %v`, set["updatedAt"], now)
	}
	// Exactly title, status + the two audit fields.
	if len(set) != 4 {
		t.Errorf("update has %d fields (%v), want 4", len(set), set)
	}
	if _, ok := set["description"]; ok {
		t.Error("unsupplied field description leaked into the update")
	}
}

func TestBuildTaskUpdateBadIDs(t *testing.T) {
	bad := "not-hex"
	for _, patch := range []TaskPatch{
		{CustomerID: &bad},
		{TeamID: &bad},
		{Assignee: &bad},
	} {
		if _, err := buildTaskUpdate(patch, primitive.NewObjectID(), time.Now()); !errors.Is(err, errs.ErrValidation) {
			t.Errorf("buildTaskUpdate(%+v) error = %v, want ErrValidation", patch, err)
		}
	}
}
