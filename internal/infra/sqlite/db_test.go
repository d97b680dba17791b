package sqlite

import (
	"path/filepath"
	"testing"
)

func TestNewDB_InMemory(t *testing.T) {
	db, err := NewDB(":memory:")
	if err != nil {
		t.Fatalf("NewDB(:memory:) error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	var fk int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("query foreign_keys pragma: %v", err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys = %d, want 1", fk)
	}
}

func TestNewDB_FileAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relay.db")

	db, err := NewDB(path)
	if err != nil {
		t.Fatalf("NewDB(%q) error = %v", path, err)
	}
	if _, err := db.Exec("CREATE TABLE probe (id INTEGER)"); err != nil {
		t.Fatalf("create table: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	db2, err := NewDB(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	t.Cleanup(func() { _ = db2.Close() })

	var count int
	if err := db2.QueryRow("SELECT COUNT(*) FROM probe").Scan(&count); err != nil {
		t.Fatalf("table did not persist: %v", err)
	}
}

func TestNewDB_MissingParentDir(t *testing.T) {
	_, err := NewDB("/nonexistent-dir-for-test/relay.db")
	if err == nil {
		t.Fatal("expected error for missing parent directory")
	}
}
