package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/task-manager/internal/auth"
	"github.com/sakif/task-manager/internal/dto"
)

// TaskService is what TaskHandler needs from the service layer.
type TaskService interface {
	Create(ctx context.Context, ownerID int64, req dto.CreateTaskRequest) (*dto.TaskResponse, error)
	List(ctx context.Context, ownerID int64) ([]dto.TaskResponse, error)
	Get(ctx context.Context, id, ownerID int64) (*dto.TaskResponse, error)
	Update(ctx context.Context, id, ownerID int64, req dto.CreateTaskRequest) (*dto.TaskResponse, error)
	UpdateStatus(ctx context.Context, id, ownerID int64, req dto.UpdateStatusRequest) error
	UpdatePriority(ctx context.Context, id, ownerID int64, req dto.UpdatePriorityRequest) error
	Delete(ctx context.Context, id, ownerID int64) error
}

// TaskHandler serves the /task endpoints. All of them sit behind
// auth.RequireAuth, so the caller's user ID is always in the context.
type TaskHandler struct {
	tasks  TaskService
	logger *slog.Logger
}

// NewTaskHandler creates a TaskHandler.
func NewTaskHandler(tasks TaskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, logger: logger}
}

// HandleList returns every task of the caller.
//
// HTTP: GET /task/getall
// RESPONSE: 200 [task, ...] or 404 when the caller has no tasks.
func (h *TaskHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireUser(w, r)
	if !ok {
		return
	}

	tasks, err := h.tasks.List(r.Context(), ownerID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, tasks)
}

// HandleGet returns one task.
//
// HTTP: GET /task/getid/{id}
func (h *TaskHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	task, err := h.tasks.Get(r.Context(), id, ownerID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, task)
}

// HandleCreate stores a new task for the caller.
//
// HTTP: POST /task/create
// REQUEST BODY: {"title": "Buy milk", "description": "", "priority": "Alta", "status": "Pendente"}
// RESPONSE:     201 task, with Location: /task/getid/{id}
func (h *TaskHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	task, err := h.tasks.Create(r.Context(), ownerID, req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.Header().Set("Location", "/task/getid/"+strconv.FormatInt(task.ID, 10))
	writeJSON(w, h.logger, http.StatusCreated, task)
}

// HandleUpdate replaces the editable fields of a task.
//
// HTTP: PUT /task/update/{id}
func (h *TaskHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	task, err := h.tasks.Update(r.Context(), id, ownerID, req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, task)
}

// HandleUpdateStatus changes only the status.
//
// HTTP: PATCH /task/updatestatus/{id}
// REQUEST BODY: {"status": "Concluida"}
func (h *TaskHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	if err := h.tasks.UpdateStatus(r.Context(), id, ownerID, req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// HandleUpdatePriority changes only the priority.
//
// HTTP: PATCH /task/updatepriority/{id}
// REQUEST BODY: {"priority": "Baixa"}
func (h *TaskHandler) HandleUpdatePriority(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	var req dto.UpdatePriorityRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	if err := h.tasks.UpdatePriority(r.Context(), id, ownerID, req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// HandleDelete removes a task.
//
// HTTP: DELETE /task/{id}
// RESPONSE: 204 No Content
func (h *TaskHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	if err := h.tasks.Delete(r.Context(), id, ownerID); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// requireUser reads the caller's ID put there by auth.RequireAuth.
// A missing ID means the route was mounted without the middleware; the
// request is refused the same way the middleware would refuse it.
func requireUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return 0, false
	}
	return id, true
}

// taskID parses the {id} URL parameter. Anything but an integer is a 400.
func (h *TaskHandler) taskID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, h.logger, http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "task id must be an integer",
		})
		return 0, false
	}
	return id, true
}
