package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/UtopicUnicorn995/teamstarAPI/middleware"
	"github.com/UtopicUnicorn995/teamstarAPI/models"
	"github.com/UtopicUnicorn995/teamstarAPI/services"
)

// TaskStore is the slice of the task service the HTTP layer uses.
type TaskStore interface {
	CreateTask(ctx context.Context, req services.CreateTaskRequest, actor *services.Claims) (*models.Task, error)
	UpdateTask(ctx context.Context, taskID string, patch services.TaskPatch, actor *services.Claims) error
	DeleteTask(ctx context.Context, taskID string) (*services.TaskDeleteResult, error)
	GetAllTasks(ctx context.Context) ([]models.Task, error)
	GetTaskByID(ctx context.Context, taskID string) (*models.Task, error)
	GetTasksByCustomer(ctx context.Context, customerID string) ([]models.Task, error)
	GetTasksByCreator(ctx context.Context, userID string) ([]models.Task, error)
	GetTasksByTitle(ctx context.Context, title string) ([]models.Task, error)
	GetAllAttachments(ctx context.Context) ([]models.TaskAttachment, error)
	GetAttachmentByID(ctx context.Context, attachmentID string) (*models.TaskAttachment, error)
	GetAttachmentsByTask(ctx context.Context, taskID string) ([]models.TaskAttachment, error)
}

type TaskHandler struct {
	Service TaskStore
}

func NewTaskHandler(service TaskStore) *TaskHandler {
	return &TaskHandler{Service: service}
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Missing credentials")
		return
	}
	if !models.CanCreateTask(claims.Role) {
		writeMessage(w, http.StatusForbidden, "Members are not allowed to create a task")
		return
	}

	var req services.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	task, err := h.Service.CreateTask(r.Context(), req, claims)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Task created successfully",
		"task":    task.ID,
	})
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Missing credentials")
		return
	}
	if !models.CanUpdateTask(claims.Role) {
		writeMessage(w, http.StatusForbidden, "Only admins are authorized to update tasks")
		return
	}

	taskID := mux.Vars(r)["id"]

	var patch services.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.Service.UpdateTask(r.Context(), taskID, patch, claims); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Task updated successfully",
		"taskId":  taskID,
	})
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Missing credentials")
		return
	}
	if !models.CanDeleteTask(claims.Role) {
		writeMessage(w, http.StatusForbidden, "User is not authorized to delete task")
		return
	}

	result, err := h.Service.DeleteTask(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		// A partial cascade still reports its counts so the caller can see
		// which dependent records survived.
		if result != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
				"message": "Task deleted but some related data could not be removed",
				"result":  result,
			})
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":            "Task and related data deleted successfully",
		"taskDeleted":        result.TaskDeleted,
		"historyLogsDeleted": result.HistoryLogsDeleted,
		"commentsDeleted":    result.CommentsDeleted,
		"attachmentsDeleted": result.AttachmentsDeleted,
		"checklistDeleted":   result.ChecklistDeleted,
	})
}

func (h *TaskHandler) GetAllTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.Service.GetAllTasks(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.Service.GetTaskByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) GetOrganizationTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.Service.GetTasksByCustomer(r.Context(), mux.Vars(r)["customer_id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) GetCreatedTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.Service.GetTasksByCreator(r.Context(), mux.Vars(r)["user_id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) GetTaskByTitle(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.Service.GetTasksByTitle(r.Context(), r.URL.Query().Get("title"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) GetAllAttachments(w http.ResponseWriter, r *http.Request) {
	attachments, err := h.Service.GetAllAttachments(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, attachments)
}

func (h *TaskHandler) GetAttachment(w http.ResponseWriter, r *http.Request) {
	attachment, err := h.Service.GetAttachmentByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, attachment)
}

func (h *TaskHandler) GetTaskAttachments(w http.ResponseWriter, r *http.Request) {
	attachments, err := h.Service.GetAttachmentsByTask(r.Context(), mux.Vars(r)["task_id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, attachments)
}
