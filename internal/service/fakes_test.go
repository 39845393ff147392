package service

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"sync"

	"github.com/sakif/task-manager/internal/apperror"
	"github.com/sakif/task-manager/internal/model"
	"github.com/sakif/task-manager/internal/repository"
)

// =========================================================================
// FAKES
// =========================================================================
//
// Hand-written in-memory implementations of the repository interfaces.
// Each one counts writes so tests can assert "nothing was stored", and
// exposes an error field to simulate a database failure.

var (
	_ repository.UserRepository = (*fakeUserRepo)(nil)
	_ repository.TaskRepository = (*fakeTaskRepo)(nil)
)

type fakeUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]*model.User
	nextID  int64
	creates int

	// set to simulate failures
	existsErr error
	getErr    error
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*model.User)}
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, apperror.NotFound("user", email)
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.byEmail[email]
	return ok, nil
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byEmail[user.Email]; ok {
		return apperror.ConflictMessage("email already registered")
	}
	f.nextID++
	f.creates++
	user.ID = f.nextID
	copied := *user
	f.byEmail[user.Email] = &copied
	return nil
}

type fakeTaskRepo struct {
	mu     sync.Mutex
	tasks  map[int64]*model.Task
	nextID int64
	writes int

	listErr   error
	getErr    error
	createErr error
	updateErr error
	deleteErr error
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[int64]*model.Task)}
}

func (f *fakeTaskRepo) ListByOwner(_ context.Context, ownerID int64) ([]model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []model.Task{}
	for _, t := range f.tasks {
		if t.UserID == ownerID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeTaskRepo) GetByIDAndOwner(_ context.Context, id, ownerID int64) (*model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	t, ok := f.tasks[id]
	if !ok || t.UserID != ownerID {
		return nil, apperror.NotFound("task", strconv.FormatInt(id, 10))
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTaskRepo) Create(_ context.Context, task *model.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	f.writes++
	task.ID = f.nextID
	copied := *task
	f.tasks[task.ID] = &copied
	return nil
}

func (f *fakeTaskRepo) Update(_ context.Context, task *model.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	stored, ok := f.tasks[task.ID]
	if !ok || stored.UserID != task.UserID {
		return apperror.NotFound("task", strconv.FormatInt(task.ID, 10))
	}
	f.writes++
	stored.Title = task.Title
	stored.Description = task.Description
	stored.Priority = task.Priority
	stored.Status = task.Status
	return nil
}

func (f *fakeTaskRepo) Delete(_ context.Context, id, ownerID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	t, ok := f.tasks[id]
	if !ok || t.UserID != ownerID {
		return apperror.NotFound("task", strconv.FormatInt(id, 10))
	}
	f.writes++
	delete(f.tasks, id)
	return nil
}

// stored returns the persisted copy of a task, bypassing ownership.
func (f *fakeTaskRepo) stored(id int64) (model.Task, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[id]
	if !ok {
		return model.Task{}, false
	}
	return *t, true
}

// quietLogger discards everything; the services log on every call.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
