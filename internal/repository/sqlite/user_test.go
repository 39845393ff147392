package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/task-manager/internal/apperror"
	"github.com/sakif/task-manager/internal/model"
)

// createUser is a test helper that inserts a user and fails the test if it errors.
func createUser(t *testing.T, u *UserStore, name, email string) *model.User {
	t.Helper()
	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: "$2a$04$not-a-real-hash",
	}
	if err := u.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// =========================================================================
// CREATE TESTS
// =========================================================================

func TestUserCreate_AssignsIncreasingIDs(t *testing.T) {
	u := newTestDB(t).Users()

	first := createUser(t, u, "Ana", "ana@x.com")
	second := createUser(t, u, "Bruno", "bruno@x.com")

	if first.ID <= 0 {
		t.Errorf("first.ID = %d, want > 0", first.ID)
	}
	if second.ID <= first.ID {
		t.Errorf("second.ID = %d, want > %d", second.ID, first.ID)
	}
}

func TestUserCreate_DuplicateEmailIsConflict(t *testing.T) {
	u := newTestDB(t).Users()
	createUser(t, u, "Ana", "ana@x.com")

	err := u.Create(context.Background(), &model.User{
		Name:         "Other Ana",
		Email:        "ana@x.com",
		PasswordHash: "hash",
	})
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("Create() error = %v, want ErrConflict", err)
	}
}

// =========================================================================
// LOOKUP TESTS
// =========================================================================

func TestGetByEmail(t *testing.T) {
	u := newTestDB(t).Users()
	created := createUser(t, u, "Ana", "ana@x.com")

	got, err := u.GetByEmail(context.Background(), "ana@x.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}

	if got.ID != created.ID || got.Name != "Ana" || got.Email != "ana@x.com" {
		t.Errorf("GetByEmail() = %+v, want %+v", got, created)
	}
	if got.PasswordHash != created.PasswordHash {
		t.Error("GetByEmail() did not return the stored hash")
	}
}

func TestGetByEmail_NotFound(t *testing.T) {
	u := newTestDB(t).Users()

	_, err := u.GetByEmail(context.Background(), "nobody@x.com")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("GetByEmail() error = %v, want ErrNotFound", err)
	}
}

func TestGetByEmail_IsCaseSensitive(t *testing.T) {
	u := newTestDB(t).Users()
	createUser(t, u, "Ana", "ana@x.com")

	_, err := u.GetByEmail(context.Background(), "ANA@x.com")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("GetByEmail() error = %v, want ErrNotFound (exact match only)", err)
	}
}

func TestExistsByEmail(t *testing.T) {
	u := newTestDB(t).Users()
	createUser(t, u, "Ana", "ana@x.com")
	ctx := context.Background()

	exists, err := u.ExistsByEmail(ctx, "ana@x.com")
	if err != nil {
		t.Fatalf("ExistsByEmail() error = %v", err)
	}
	if !exists {
		t.Error("ExistsByEmail(ana@x.com) = false, want true")
	}

	exists, err = u.ExistsByEmail(ctx, "bruno@x.com")
	if err != nil {
		t.Fatalf("ExistsByEmail() error = %v", err)
	}
	if exists {
		t.Error("ExistsByEmail(bruno@x.com) = true, want false")
	}
}
