package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sakif/task-manager/internal/apperror"
	"github.com/sakif/task-manager/internal/dto"
	"github.com/sakif/task-manager/internal/model"
	"github.com/sakif/task-manager/internal/repository"
	"github.com/sakif/task-manager/internal/validation"
)

// TaskService handles the task use cases. Every method takes the ID of the
// authenticated caller and only ever touches that caller's tasks.
type TaskService struct {
	tasks  repository.TaskRepository
	logger *slog.Logger
	today  func() time.Time
}

// NewTaskService creates a TaskService.
func NewTaskService(tasks repository.TaskRepository, logger *slog.Logger) *TaskService {
	return &TaskService{
		tasks:  tasks,
		logger: logger,
		today:  model.Today,
	}
}

// Create validates req and stores a new task owned by ownerID, dated today (UTC).
//
// Priority and status are stored in canonical casing, so "alta" is saved as "Alta".
func (s *TaskService) Create(ctx context.Context, ownerID int64, req dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if msgs := validation.Task(req.Title, req.Description, req.Priority, req.Status); len(msgs) > 0 {
		return nil, apperror.Validation(msgs)
	}

	task := req.ToTask()
	task.UserID = ownerID
	task.DateCreated = s.today()
	canonicalise(task)

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, logInternal(s.logger, "creating task", err, slog.Int64("userID", ownerID))
	}

	s.logger.Info("task created",
		slog.Int64("taskID", task.ID),
		slog.Int64("userID", ownerID),
	)

	resp := dto.FromTask(task)
	return &resp, nil
}

// List returns the caller's tasks ordered by ID.
//
// An empty result is NotFound, not an empty list. Clients rely on the 404.
func (s *TaskService) List(ctx context.Context, ownerID int64) ([]dto.TaskResponse, error) {
	tasks, err := s.tasks.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, logInternal(s.logger, "listing tasks", err, slog.Int64("userID", ownerID))
	}
	if len(tasks) == 0 {
		return nil, apperror.NotFoundMessage("no tasks found for user")
	}
	return dto.FromTasks(tasks), nil
}

// Get returns one of the caller's tasks.
func (s *TaskService) Get(ctx context.Context, id, ownerID int64) (*dto.TaskResponse, error) {
	task, err := s.fetch(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromTask(task)
	return &resp, nil
}

// Update replaces title, description, priority and status of a task.
// ID, owner and creation date never change.
func (s *TaskService) Update(ctx context.Context, id, ownerID int64, req dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if msgs := validation.Task(req.Title, req.Description, req.Priority, req.Status); len(msgs) > 0 {
		return nil, apperror.Validation(msgs)
	}

	task, err := s.fetch(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	req.Apply(task)
	canonicalise(task)

	if err := s.save(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info("task updated", slog.Int64("taskID", id), slog.Int64("userID", ownerID))

	resp := dto.FromTask(task)
	return &resp, nil
}

// UpdateStatus changes only the status. Any status may follow any other.
func (s *TaskService) UpdateStatus(ctx context.Context, id, ownerID int64, req dto.UpdateStatusRequest) error {
	if msgs := validation.Status(req.Status); len(msgs) > 0 {
		return apperror.Validation(msgs)
	}

	task, err := s.fetch(ctx, id, ownerID)
	if err != nil {
		return err
	}

	task.Status, _ = model.ParseStatus(req.Status)
	if err := s.save(ctx, task); err != nil {
		return err
	}

	s.logger.Info("task status updated",
		slog.Int64("taskID", id),
		slog.String("status", string(task.Status)),
	)
	return nil
}

// UpdatePriority changes only the priority.
func (s *TaskService) UpdatePriority(ctx context.Context, id, ownerID int64, req dto.UpdatePriorityRequest) error {
	if msgs := validation.Priority(req.Priority); len(msgs) > 0 {
		return apperror.Validation(msgs)
	}

	task, err := s.fetch(ctx, id, ownerID)
	if err != nil {
		return err
	}

	task.Priority, _ = model.ParsePriority(req.Priority)
	if err := s.save(ctx, task); err != nil {
		return err
	}

	s.logger.Info("task priority updated",
		slog.Int64("taskID", id),
		slog.String("priority", string(task.Priority)),
	)
	return nil
}

// Delete removes one of the caller's tasks.
//
// The task is looked up first so a missing or foreign task is reported as
// NotFound before anything is written.
func (s *TaskService) Delete(ctx context.Context, id, ownerID int64) error {
	if _, err := s.fetch(ctx, id, ownerID); err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, id, ownerID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return err
		}
		return logInternal(s.logger, "deleting task", err, slog.Int64("taskID", id))
	}

	s.logger.Info("task deleted", slog.Int64("taskID", id), slog.Int64("userID", ownerID))
	return nil
}

// fetch loads a task scoped to its owner. NotFound passes through untouched;
// anything else becomes Internal.
func (s *TaskService) fetch(ctx context.Context, id, ownerID int64) (*model.Task, error) {
	task, err := s.tasks.GetByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		return nil, logInternal(s.logger, "getting task", err, slog.Int64("taskID", id))
	}
	return task, nil
}

// save writes a fetched task back. A concurrent delete between fetch and
// save surfaces as NotFound from the store.
func (s *TaskService) save(ctx context.Context, task *model.Task) error {
	if err := s.tasks.Update(ctx, task); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return err
		}
		return logInternal(s.logger, "updating task", err, slog.Int64("taskID", task.ID))
	}
	return nil
}

// canonicalise rewrites priority and status in their stored casing.
// Callers have already validated both, so the lookups cannot fail.
func canonicalise(t *model.Task) {
	if p, ok := model.ParsePriority(string(t.Priority)); ok {
		t.Priority = p
	}
	if st, ok := model.ParseStatus(string(t.Status)); ok {
		t.Status = st
	}
}
