package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sakif/task-manager/internal/apperror"
	"github.com/sakif/task-manager/internal/model"
	"github.com/sakif/task-manager/internal/repository"
)

// compile-time check that *UserStore implements repository.UserRepository
var _ repository.UserRepository = (*UserStore)(nil)

// UserStore is the Usuarios table. It shares the connection pool of the DB
// that created it.
//
// WHY A SEPARATE TYPE?
// Both repositories have a Create method with different argument types.
// Go has no overloading, so each table gets its own receiver.
type UserStore struct {
	conn *sql.DB
}

// Users returns the user repository backed by this database.
func (db *DB) Users() *UserStore {
	return &UserStore{conn: db.conn}
}

// GetByEmail retrieves a user by exact email match.
// Returns apperror.ErrNotFound if no user has that email.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User

	err := s.conn.QueryRowContext(ctx,
		`SELECT Id, Nome, Email, SenhaHash FROM Usuarios WHERE Email = ?`,
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("user", email)
		}
		return nil, fmt.Errorf("sqlite: getting user by email: %w", err)
	}

	return &u, nil
}

// ExistsByEmail reports whether a user with exactly this email exists.
func (s *UserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.conn.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM Usuarios WHERE Email = ?)`,
		email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("sqlite: checking email: %w", err)
	}
	return exists, nil
}

// Create inserts a new user and sets user.ID to the generated key.
//
// The unique index on Email is the last line of defence against two
// concurrent registrations with the same address: the loser gets ErrConflict.
func (s *UserStore) Create(ctx context.Context, user *model.User) error {
	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO Usuarios (Nome, Email, SenhaHash) VALUES (?, ?, ?)`,
		user.Name,
		user.Email,
		user.PasswordHash,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.ConflictMessage("email already registered")
		}
		return fmt.Errorf("sqlite: inserting user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading user id: %w", err)
	}
	user.ID = id
	return nil
}
