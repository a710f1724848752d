package db

import "testing"

func TestOpen_AppliesMigrationsOnce(t *testing.T) {
	dsn := "file:dbtest_migrations?mode=memory&cache=shared"
	d, err := Open(dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	got, err := AppliedVersions(d)
	if err != nil {
		t.Fatalf("applied versions: %v", err)
	}
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("expected [1], got %v", got)
	}

	// A second pass over the same database must be a no-op.
	if err := applyMigrations(d); err != nil {
		t.Fatalf("reapply: %v", err)
	}
	got, _ = AppliedVersions(d)
	if len(got) != 1 {
		t.Fatalf("migration applied twice: %v", got)
	}

	var n int
	if err := d.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		t.Fatalf("users table missing: %v", err)
	}
}

func TestOpen_EmptyDSNUsesDefault(t *testing.T) {
	d, err := Open("")
	if err != nil {
		t.Fatalf("open default: %v", err)
	}
	defer d.Close()
	if err := d.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestRollbackLast_RevertsAndReapplies(t *testing.T) {
	dsn := "file:dbtest_rollback?mode=memory&cache=shared"
	d, err := Open(dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	if _, err := d.Exec(`INSERT INTO users (id, user_name) VALUES (1, 'Vitalii')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := RollbackLast(d); err != nil {
		t.Fatalf("rollback: %v", err)
	}
	got, err := AppliedVersions(d)
	if err != nil {
		t.Fatalf("applied versions: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no applied versions, got %v", got)
	}
	var n int
	if err := d.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'users'`).Scan(&n); err != nil {
		t.Fatalf("inspect schema: %v", err)
	}
	if n != 0 {
		t.Fatalf("users table still present")
	}

	// Nothing left to revert.
	if err := RollbackLast(d); err != nil {
		t.Fatalf("second rollback: %v", err)
	}

	if err := applyMigrations(d); err != nil {
		t.Fatalf("reapply: %v", err)
	}
	if err := d.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n); err != nil || n != 0 {
		t.Fatalf("users after reapply: n=%d err=%v", n, err)
	}
}

func TestRollbackLast_NilDB(t *testing.T) {
	if err := RollbackLast(nil); err == nil {
		t.Fatalf("expected error for nil db")
	}
}

func TestLoadMigrations_PairsUpAndDown(t *testing.T) {
	migs, err := loadMigrations()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	m, ok := migs[1]
	if !ok || m.upFile == "" || m.downFile == "" {
		t.Fatalf("version 1 incomplete: %+v", m)
	}
}
