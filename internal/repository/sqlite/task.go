package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sakif/task-manager/internal/apperror"
	"github.com/sakif/task-manager/internal/model"
	"github.com/sakif/task-manager/internal/repository"
)

var _ repository.TaskRepository = (*TaskStore)(nil)

// TaskStore is the Tarefas table.
//
// Every query filters on UsuarioId as well as Id. A task owned by someone
// else therefore looks exactly like a task that does not exist.
type TaskStore struct {
	conn *sql.DB
}

// Tasks returns the task repository backed by this database.
func (db *DB) Tasks() *TaskStore {
	return &TaskStore{conn: db.conn}
}

const taskColumns = `Id, Title, COALESCE(Descriptions, ''), Priority, Status, DateCreated, UsuarioId`

// ListByOwner returns all tasks of ownerID ordered by Id.
func (s *TaskStore) ListByOwner(ctx context.Context, ownerID int64) ([]model.Task, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM Tarefas WHERE UsuarioId = ? ORDER BY Id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing tasks: %w", err)
	}
	// ALWAYS close rows, or the pooled connection is never released.
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning task: %w", err)
		}
		tasks = append(tasks, *t)
	}

	// rows.Next() returns false on both "no more rows" and "error".
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating tasks: %w", err)
	}

	return tasks, nil
}

// GetByIDAndOwner returns the task with id owned by ownerID.
// Returns apperror.ErrNotFound if there is none.
func (s *TaskStore) GetByIDAndOwner(ctx context.Context, id, ownerID int64) (*model.Task, error) {
	row := s.conn.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM Tarefas WHERE Id = ? AND UsuarioId = ?`,
		id, ownerID,
	)

	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("task", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("sqlite: getting task %d: %w", id, err)
	}
	return t, nil
}

// Create inserts the task and sets task.ID.
//
// DateCreated is stored as TEXT in model.DateLayout. An empty description
// is stored as NULL and read back as "".
func (s *TaskStore) Create(ctx context.Context, task *model.Task) error {
	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO Tarefas (Title, Descriptions, Priority, Status, DateCreated, UsuarioId)
		 VALUES (?, NULLIF(?, ''), ?, ?, ?, ?)`,
		task.Title,
		task.Description,
		string(task.Priority),
		string(task.Status),
		task.DateCreated.Format(model.DateLayout),
		task.UserID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting task: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading task id: %w", err)
	}
	task.ID = id
	return nil
}

// Update overwrites the mutable fields of the task matching task.ID and task.UserID.
//
// RowsAffected tells us whether the WHERE clause matched. Zero means the
// task is missing or belongs to someone else; both become ErrNotFound.
func (s *TaskStore) Update(ctx context.Context, task *model.Task) error {
	res, err := s.conn.ExecContext(ctx,
		`UPDATE Tarefas
		 SET Title = ?, Descriptions = NULLIF(?, ''), Priority = ?, Status = ?
		 WHERE Id = ? AND UsuarioId = ?`,
		task.Title,
		task.Description,
		string(task.Priority),
		string(task.Status),
		task.ID,
		task.UserID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating task %d: %w", task.ID, err)
	}

	return requireOneRow(res, task.ID)
}

// Delete removes the task matching id and ownerID.
func (s *TaskStore) Delete(ctx context.Context, id, ownerID int64) error {
	res, err := s.conn.ExecContext(ctx,
		`DELETE FROM Tarefas WHERE Id = ? AND UsuarioId = ?`,
		id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting task %d: %w", id, err)
	}

	return requireOneRow(res, id)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows, so one scan
// function serves single-row and multi-row queries.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(r rowScanner) (*model.Task, error) {
	var (
		t        model.Task
		priority string
		status   string
		date     string
	)
	if err := r.Scan(&t.ID, &t.Title, &t.Description, &priority, &status, &date, &t.UserID); err != nil {
		return nil, err
	}

	created, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("parsing DateCreated %q: %w", date, err)
	}

	t.Priority = model.Priority(priority)
	t.Status = model.Status(status)
	t.DateCreated = created
	return &t, nil
}

func requireOneRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if n == 0 {
		return apperror.NotFound("task", strconv.FormatInt(id, 10))
	}
	return nil
}
