// Package repository declares the storage contracts the service layer depends on.
//
// The services never import a concrete database package. They accept these
// interfaces, so the same business logic runs against SQLite, Postgres or an
// in-memory fake in tests.
//
// Every method returns an *apperror.AppError tagged ErrNotFound or ErrConflict
// for the expected failures listed on it. Anything else is an unexpected
// storage error and the caller treats it as internal.
package repository

import (
	"context"

	"github.com/sakif/task-manager/internal/model"
)

// UserRepository stores accounts. Users are only ever created and read.
type UserRepository interface {
	// GetByEmail returns the user whose email matches exactly, or ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// ExistsByEmail reports whether any user has this exact email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Create inserts the user and sets user.ID. A duplicate email that slips
	// past ExistsByEmail surfaces as ErrConflict from the unique index.
	Create(ctx context.Context, user *model.User) error
}

// TaskRepository stores tasks. Every read and write is scoped to the owner,
// so a task belonging to someone else is indistinguishable from a missing one.
type TaskRepository interface {
	// ListByOwner returns the owner's tasks ordered by ID. It never returns
	// ErrNotFound; an owner with no tasks gets an empty slice.
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Task, error)

	// GetByIDAndOwner returns the task or ErrNotFound.
	GetByIDAndOwner(ctx context.Context, id, ownerID int64) (*model.Task, error)

	// Create inserts the task and sets task.ID.
	Create(ctx context.Context, task *model.Task) error

	// Update overwrites title, description, priority and status of the task
	// matching task.ID and task.UserID. DateCreated is never changed.
	// Returns ErrNotFound when no row matched.
	Update(ctx context.Context, task *model.Task) error

	// Delete removes the task matching id and ownerID, or returns ErrNotFound.
	Delete(ctx context.Context, id, ownerID int64) error
}
