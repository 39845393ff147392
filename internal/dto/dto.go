// Package dto holds the request and response bodies of the HTTP API and the
// functions that copy them to and from the model types.
//
// Keeping the wire shapes here (instead of putting json tags on the model
// and decoding straight into it) means a client can never set fields it does
// not own, like a task's ID, owner or creation date.
package dto

import (
	"encoding/json"
	"time"

	"github.com/sakif/task-manager/internal/model"
)

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is returned by register and login.
type TokenResponse struct {
	Token string `json:"token"`
}

// CreateTaskRequest is the body of POST /task/create and PUT /task/update/{id}.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
}

// UnmarshalJSON also accepts the legacy "descriptions" key that older
// clients send. When both keys are present "description" wins.
func (r *CreateTaskRequest) UnmarshalJSON(data []byte) error {
	// plain has the same fields but no methods, so decoding into it does
	// not recurse back into UnmarshalJSON.
	type plain CreateTaskRequest
	var aux struct {
		plain
		Descriptions *string `json:"descriptions"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*r = CreateTaskRequest(aux.plain)
	if r.Description == "" && aux.Descriptions != nil {
		r.Description = *aux.Descriptions
	}
	return nil
}

// UpdateStatusRequest is the body of PATCH /task/updatestatus/{id}.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdatePriorityRequest is the body of PATCH /task/updatepriority/{id}.
type UpdatePriorityRequest struct {
	Priority string `json:"priority"`
}

// TaskResponse is the JSON shape of a task returned to its owner.
type TaskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	DateCreated time.Time `json:"dateCreated"`
}

// ToTask copies the request fields onto a new task.
//
// Priority and status are copied verbatim; callers that persist the task
// canonicalise them with model.ParsePriority / model.ParseStatus first.
func (r CreateTaskRequest) ToTask() *model.Task {
	return &model.Task{
		Title:       r.Title,
		Description: r.Description,
		Priority:    model.Priority(r.Priority),
		Status:      model.Status(r.Status),
	}
}

// Apply overwrites the editable fields of t with the request fields.
// ID, owner and creation date are left untouched.
func (r CreateTaskRequest) Apply(t *model.Task) {
	t.Title = r.Title
	t.Description = r.Description
	t.Priority = model.Priority(r.Priority)
	t.Status = model.Status(r.Status)
}

// FromTask builds the response body for t.
func FromTask(t *model.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		DateCreated: t.DateCreated,
	}
}

// FromTasks maps a slice of tasks, preserving order.
func FromTasks(tasks []model.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, FromTask(&tasks[i]))
	}
	return out
}

// ToRequest is the inverse of ToTask, used when a stored task has to be
// sent back in request form (and in the mapping round-trip tests).
func ToRequest(t *model.Task) CreateTaskRequest {
	return CreateTaskRequest{
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
	}
}
