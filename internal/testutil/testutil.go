package testutil

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"userResourceService/internal/db"
	"userResourceService/repository"
)

// OpenInMemoryDB opens an in-memory SQLite database and applies migrations.
// The database name is derived from name so parallel tests do not share state.
// The DB is closed via t.Cleanup.
func OpenInMemoryDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	name = strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(name)
	d, err := db.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// Backends returns one fresh, empty repository per store implementation,
// keyed by backend name.
func Backends(t *testing.T) map[string]repository.UserRepositoryI {
	t.Helper()
	return map[string]repository.UserRepositoryI{
		"memory": repository.NewMemoryUserRepository(),
		"sqlite": repository.NewUserRepository(OpenInMemoryDB(t, t.Name())),
	}
}

// SeededMemoryRepo returns a memory repository holding the six fixture users.
func SeededMemoryRepo(t *testing.T) *repository.MemoryUserRepository {
	t.Helper()
	r := repository.NewMemoryUserRepository()
	if err := repository.Seed(context.Background(), r); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return r
}
