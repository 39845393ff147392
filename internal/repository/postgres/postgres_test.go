package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/task-manager/internal/apperror"
	"github.com/sakif/task-manager/internal/model"
)

// These tests need a real server. Point TASKMANAGER_TEST_POSTGRES_DSN at a
// throwaway database; every test truncates both tables before it runs.
const dsnEnv = "TASKMANAGER_TEST_POSTGRES_DSN"

func newTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv(dsnEnv)
	if dsn == "" {
		t.Skipf("%s not set, skipping postgres integration test", dsnEnv)
	}

	ctx := context.Background()
	db, err := New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.conn.ExecContext(ctx, `TRUNCATE "Tarefas", "Usuarios" RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return db
}

func createUser(t *testing.T, db *DB, name, email string) *model.User {
	t.Helper()
	u := &model.User{Name: name, Email: email, PasswordHash: "hash"}
	require.NoError(t, db.Users().Create(context.Background(), u))
	return u
}

func TestUserStore(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	users := db.Users()

	ana := createUser(t, db, "Ana", "ana@x.com")
	assert.Positive(t, ana.ID)

	got, err := users.GetByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.Equal(t, *ana, *got)

	exists, err := users.ExistsByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = users.GetByEmail(ctx, "ANA@x.com")
	assert.True(t, errors.Is(err, apperror.ErrNotFound), "email match must be exact")

	err = users.Create(ctx, &model.User{Name: "Dup", Email: "ana@x.com", PasswordHash: "h"})
	assert.True(t, errors.Is(err, apperror.ErrConflict), "got %v", err)
}

func TestTaskStore(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	tasks := db.Tasks()
	ana := createUser(t, db, "Ana", "ana@x.com")
	bruno := createUser(t, db, "Bruno", "bruno@x.com")
	day := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)

	task := &model.Task{
		Title:       "Buy milk",
		Priority:    model.PriorityHigh,
		Status:      model.StatusPending,
		DateCreated: day,
		UserID:      ana.ID,
	}
	require.NoError(t, tasks.Create(ctx, task))
	assert.Positive(t, task.ID)

	got, err := tasks.GetByIDAndOwner(ctx, task.ID, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, "", got.Description)
	assert.True(t, got.DateCreated.Equal(day))

	_, err = tasks.GetByIDAndOwner(ctx, task.ID, bruno.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	list, err := tasks.ListByOwner(ctx, bruno.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	task.Status = model.StatusDone
	require.NoError(t, tasks.Update(ctx, task))
	got, err = tasks.GetByIDAndOwner(ctx, task.ID, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDone, got.Status)

	assert.True(t, errors.Is(tasks.Delete(ctx, task.ID, bruno.ID), apperror.ErrNotFound))
	require.NoError(t, tasks.Delete(ctx, task.ID, ana.ID))
	assert.True(t, errors.Is(tasks.Delete(ctx, task.ID, ana.ID), apperror.ErrNotFound))
}
