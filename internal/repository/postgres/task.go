package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/sakif/task-manager/internal/apperror"
	"github.com/sakif/task-manager/internal/model"
	"github.com/sakif/task-manager/internal/repository"
)

var _ repository.TaskRepository = (*TaskStore)(nil)

// TaskStore is the "Tarefas" table. Every statement is scoped to the owner.
type TaskStore struct {
	conn *sql.DB
}

// Tasks returns the task repository backed by this database.
func (db *DB) Tasks() *TaskStore {
	return &TaskStore{conn: db.conn}
}

const taskColumns = `"Id", "Title", COALESCE("Descriptions", ''), "Priority", "Status", "DateCreated", "UsuarioId"`

func (s *TaskStore) ListByOwner(ctx context.Context, ownerID int64) ([]model.Task, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM "Tarefas" WHERE "UsuarioId" = $1 ORDER BY "Id"`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: listing tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scanning task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterating tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskStore) GetByIDAndOwner(ctx context.Context, id, ownerID int64) (*model.Task, error) {
	row := s.conn.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM "Tarefas" WHERE "Id" = $1 AND "UsuarioId" = $2`,
		id, ownerID,
	)

	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("task", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("postgres: getting task %d: %w", id, err)
	}
	return t, nil
}

func (s *TaskStore) Create(ctx context.Context, task *model.Task) error {
	err := s.conn.QueryRowContext(ctx,
		`INSERT INTO "Tarefas" ("Title", "Descriptions", "Priority", "Status", "DateCreated", "UsuarioId")
		 VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6)
		 RETURNING "Id"`,
		task.Title,
		task.Description,
		string(task.Priority),
		string(task.Status),
		model.TruncateDate(task.DateCreated),
		task.UserID,
	).Scan(&task.ID)
	if err != nil {
		return fmt.Errorf("postgres: inserting task: %w", err)
	}
	return nil
}

// Update never touches "DateCreated".
func (s *TaskStore) Update(ctx context.Context, task *model.Task) error {
	res, err := s.conn.ExecContext(ctx,
		`UPDATE "Tarefas"
		 SET "Title" = $1, "Descriptions" = NULLIF($2, ''), "Priority" = $3, "Status" = $4
		 WHERE "Id" = $5 AND "UsuarioId" = $6`,
		task.Title,
		task.Description,
		string(task.Priority),
		string(task.Status),
		task.ID,
		task.UserID,
	)
	if err != nil {
		return fmt.Errorf("postgres: updating task %d: %w", task.ID, err)
	}
	return requireOneRow(res, task.ID)
}

func (s *TaskStore) Delete(ctx context.Context, id, ownerID int64) error {
	res, err := s.conn.ExecContext(ctx,
		`DELETE FROM "Tarefas" WHERE "Id" = $1 AND "UsuarioId" = $2`,
		id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("postgres: deleting task %d: %w", id, err)
	}
	return requireOneRow(res, id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask reads one row. DATE columns arrive as time.Time at UTC midnight.
func scanTask(r rowScanner) (*model.Task, error) {
	var (
		t        model.Task
		priority string
		status   string
	)
	if err := r.Scan(&t.ID, &t.Title, &t.Description, &priority, &status, &t.DateCreated, &t.UserID); err != nil {
		return nil, err
	}
	t.Priority = model.Priority(priority)
	t.Status = model.Status(status)
	t.DateCreated = model.TruncateDate(t.DateCreated)
	return &t, nil
}

func requireOneRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("postgres: checking rows affected: %w", err)
	}
	if n == 0 {
		return apperror.NotFound("task", strconv.FormatInt(id, 10))
	}
	return nil
}
