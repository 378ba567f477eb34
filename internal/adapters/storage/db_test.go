package storage_test

import (
	"database/sql"
	"sort"
	"testing"

	_ "modernc.org/sqlite"

	"sangha/internal/adapters/storage"
)

// openTestDB creates an in-memory SQLite database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// getTableNames returns sorted table names from sqlite_master, excluding internal tables.
func getTableNames(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		t.Fatalf("failed to query sqlite_master: %v", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("failed to scan table name: %v", err)
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// expectedTables is the sorted list of tables after initialization.
var expectedTables = []string{
	"account",
	"event",
	"event_interest",
	"notification_log",
	"notification_outcome",
}

// TestInitDB_CreatesTables verifies the full schema is created.
func TestInitDB_CreatesTables(t *testing.T) {
	db := openTestDB(t)
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}

	got := getTableNames(t, db)
	if len(got) != len(expectedTables) {
		t.Fatalf("got %d tables %v, want %d %v", len(got), got, len(expectedTables), expectedTables)
	}
	for i, name := range expectedTables {
		if got[i] != name {
			t.Errorf("table[%d] = %q, want %q", i, got[i], name)
		}
	}
}

// TestInitDB_Idempotent verifies running initialization twice is safe.
func TestInitDB_Idempotent(t *testing.T) {
	db := openTestDB(t)
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("first InitDB failed: %v", err)
	}
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("second InitDB failed: %v", err)
	}
}

// TestInitDB_UniquePairIndex verifies the ledger's uniqueness index exists.
func TestInitDB_UniquePairIndex(t *testing.T) {
	db := openTestDB(t)
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}

	var n int
	err := db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name='idx_event_interest_pair'").Scan(&n)
	if err != nil {
		t.Fatalf("failed to query sqlite_master: %v", err)
	}
	if n != 1 {
		t.Errorf("idx_event_interest_pair count = %d, want 1", n)
	}
}
