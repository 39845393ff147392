package server

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sakif/task-manager/internal/config"
	"github.com/sakif/task-manager/internal/repository/postgres"
	sqliteRepo "github.com/sakif/task-manager/internal/repository/sqlite"
)

// OpenStore connects to the backend named by cfg.Driver and applies its
// migrations. The caller owns the returned Store and must close Store.DB.
//
// IMPORT ALIAS:
// repository/sqlite is imported as sqliteRepo so it is never confused with
// the modernc.org/sqlite driver package.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig) (Store, error) {
	switch cfg.Driver {
	case "sqlite":
		if err := ensureDir(cfg.DSN); err != nil {
			return Store{}, err
		}
		db, err := sqliteRepo.New(ctx, cfg.DSN)
		if err != nil {
			return Store{}, err
		}
		return Store{Users: db.Users(), Tasks: db.Tasks(), DB: db}, nil

	case "postgres":
		db, err := postgres.New(ctx, cfg.DSN)
		if err != nil {
			return Store{}, err
		}
		return Store{Users: db.Users(), Tasks: db.Tasks(), DB: db}, nil

	default:
		return Store{}, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// ensureDir creates the parent directory of a SQLite file path, like
// `mkdir -p`. In-memory and URI-style DSNs are left alone.
func ensureDir(dsn string) error {
	if dsn == ":memory:" || strings.HasPrefix(dsn, "file:") {
		return nil
	}
	dir := filepath.Dir(dsn)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating database directory %s: %w", dir, err)
	}
	return nil
}
