package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/UtopicUnicorn995/teamstarAPI/errs"
	"github.com/UtopicUnicorn995/teamstarAPI/middleware"
	"github.com/UtopicUnicorn995/teamstarAPI/models"
	"github.com/UtopicUnicorn995/teamstarAPI/services"
)

// stubTaskStore records calls and plays back canned results.
type stubTaskStore struct {
	createCalls int
	updateErr   error
	deleteRes   *services.TaskDeleteResult
	deleteErr   error
}

func (s *stubTaskStore) CreateTask(ctx context.Context, req services.CreateTaskRequest, actor *services.Claims) (*models.Task, error) {
	s.createCalls++
	return &models.Task{ID: primitive.NewObjectID(), Title: req.Title}, nil
}

func (s *stubTaskStore) UpdateTask(ctx context.Context, taskID string, patch services.TaskPatch, actor *services.Claims) error {
	return s.updateErr
}

func (s *stubTaskStore) DeleteTask(ctx context.Context, taskID string) (*services.TaskDeleteResult, error) {
	return s.deleteRes, s.deleteErr
}

func (s *stubTaskStore) GetAllTasks(ctx context.Context) ([]models.Task, error) { return nil, nil }
func (s *stubTaskStore) GetTaskByID(ctx context.Context, taskID string) (*models.Task, error) {
	return nil, fmt.Errorf("task not found: %w", errs.ErrNotFound)
}
func (s *stubTaskStore) GetTasksByCustomer(ctx context.Context, customerID string) ([]models.Task, error) {
	return nil, nil
}
func (s *stubTaskStore) GetTasksByCreator(ctx context.Context, userID string) ([]models.Task, error) {
	return nil, nil
}
func (s *stubTaskStore) GetTasksByTitle(ctx context.Context, title string) ([]models.Task, error) {
	return nil, nil
}
func (s *stubTaskStore) GetAllAttachments(ctx context.Context) ([]models.TaskAttachment, error) {
	return nil, nil
}
func (s *stubTaskStore) GetAttachmentByID(ctx context.Context, attachmentID string) (*models.TaskAttachment, error) {
	return nil, nil
}
func (s *stubTaskStore) GetAttachmentsByTask(ctx context.Context, taskID string) ([]models.TaskAttachment, error) {
	return nil, nil
}

func authedRequest(method, target, body string, role models.Role) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	return middleware.WithClaims(r, &services.Claims{
		UserID:     primitive.NewObjectID().Hex(),
		Role:       role,
		CustomerID: primitive.NewObjectID().Hex(),
	})
}

func TestCreateTaskForbiddenForMember(t *testing.T) {
	stub := &stubTaskStore{}
	handler := NewTaskHandler(stub)

	r := authedRequest(http.MethodPost, "/api/createTask/", `{"title":"x","team_id":"abc"}`, models.RoleMember)
	w := httptest.NewRecorder()

	handler.CreateTask(w, r)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
	if stub.createCalls != 0 {
		t.Errorf("service called %d times for a forbidden request, want 0", stub.createCalls)
	}
}

func TestCreateTaskAllowedForSupervisor(t *testing.T) {
	stub := &stubTaskStore{}
	handler := NewTaskHandler(stub)

	r := authedRequest(http.MethodPost, "/api/createTask/", `{"title":"x","team_id":"abc"}`, models.RoleSupervisor)
	w := httptest.NewRecorder()

	handler.CreateTask(w, r)

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", w.Code)
	}
	if stub.createCalls != 1 {
		t.Errorf("service called %d times, want 1", stub.createCalls)
	}
}

func TestUpdateTaskStatuses(t *testing.T) {
	tests := []struct {
		name       string
		role       models.Role
		updateErr  error
		wantStatus int
	}{
		{"member forbidden", models.RoleMember, nil, http.StatusForbidden},
		{"supervisor forbidden", models.RoleSupervisor, nil, http.StatusForbidden},
		{"admin no change", models.RoleAdmin, fmt.Errorf("nothing: %w", errs.ErrNoChange), http.StatusNotModified},
		{"admin not found", models.RoleAdmin, fmt.Errorf("missing: %w", errs.ErrNotFound), http.StatusNotFound},
		{"admin ok", models.RoleAdmin, nil, http.StatusOK},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			handler := NewTaskHandler(&stubTaskStore{updateErr: test.updateErr})

			r := authedRequest(http.MethodPut, "/api/updateTask/abc", `{"title":"y"}`, test.role)
			w := httptest.NewRecorder()

			handler.UpdateTask(w, r)

			if w.Code != test.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, test.wantStatus)
			}
			// 304 responses are bodyless; anything written after the
			// status line would be discarded by net/http anyway.
			if test.wantStatus == http.StatusNotModified && w.Body.Len() != 0 {
				t.Errorf("304 response carried a body: %q", w.Body.String())
			}
		})
	}
}

func TestDeleteTaskReportsPartialCascade(t *testing.T) {
	stub := &stubTaskStore{
		deleteRes: &services.TaskDeleteResult{
			TaskDeleted:        true,
			HistoryLogsDeleted: 2,
			Failed:             []string{"TaskComment"},
		},
		deleteErr: fmt.Errorf("cascade failed for TaskComment: %w", errs.ErrStore),
	}
	handler := NewTaskHandler(stub)

	r := authedRequest(http.MethodDelete, "/api/deleteTask/abc", "", models.RoleAdmin)
	w := httptest.NewRecorder()

	handler.DeleteTask(w, r)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), "TaskComment") {
		t.Errorf("partial-failure response %q does not name the failed collection", w.Body.String())
	}
}

func TestDeleteTaskFullCascade(t *testing.T) {
	stub := &stubTaskStore{
		deleteRes: &services.TaskDeleteResult{TaskDeleted: true, CommentsDeleted: 3},
	}
	handler := NewTaskHandler(stub)

	r := authedRequest(http.MethodDelete, "/api/deleteTask/abc", "", models.RoleSupervisor)
	w := httptest.NewRecorder()

	handler.DeleteTask(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	for _, key := range []string{"historyLogsDeleted", "commentsDeleted", "attachmentsDeleted", "checklistDeleted"} {
		if !strings.Contains(w.Body.String(), key) {
			t.Errorf("response missing count %q even when zero", key)
		}
	}
}

func TestDeleteTaskForbiddenForMember(t *testing.T) {
	handler := NewTaskHandler(&stubTaskStore{})

	r := authedRequest(http.MethodDelete, "/api/deleteTask/abc", "", models.RoleMember)
	w := httptest.NewRecorder()

	handler.DeleteTask(w, r)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}
