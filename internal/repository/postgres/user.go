package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sakif/task-manager/internal/apperror"
	"github.com/sakif/task-manager/internal/model"
	"github.com/sakif/task-manager/internal/repository"
)

var _ repository.UserRepository = (*UserStore)(nil)

// UserStore is the "Usuarios" table.
type UserStore struct {
	conn *sql.DB
}

// Users returns the user repository backed by this database.
func (db *DB) Users() *UserStore {
	return &UserStore{conn: db.conn}
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User

	err := s.conn.QueryRowContext(ctx,
		`SELECT "Id", "Nome", "Email", "SenhaHash" FROM "Usuarios" WHERE "Email" = $1`,
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("user", email)
		}
		return nil, fmt.Errorf("postgres: getting user by email: %w", err)
	}
	return &u, nil
}

func (s *UserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.conn.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM "Usuarios" WHERE "Email" = $1)`,
		email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("postgres: checking email: %w", err)
	}
	return exists, nil
}

// Create inserts the user. Postgres has no LastInsertId, so the key comes
// back through RETURNING.
func (s *UserStore) Create(ctx context.Context, user *model.User) error {
	err := s.conn.QueryRowContext(ctx,
		`INSERT INTO "Usuarios" ("Nome", "Email", "SenhaHash") VALUES ($1, $2, $3) RETURNING "Id"`,
		user.Name,
		user.Email,
		user.PasswordHash,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.ConflictMessage("email already registered")
		}
		return fmt.Errorf("postgres: inserting user: %w", err)
	}
	return nil
}
