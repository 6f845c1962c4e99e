package tx

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "tx.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec("CREATE TABLE items (name TEXT NOT NULL)"); err != nil {
		t.Fatalf("create table: %v", err)
	}
	return db
}

func countItems(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM items").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestRunCommitsOnSuccess(t *testing.T) {
	db := openTestDB(t)

	err := Run(context.Background(), db, func(tx *sql.Tx) error {
		_, err := tx.Exec("INSERT INTO items (name) VALUES (?)", "a")
		return err
	})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if n := countItems(t, db); n != 1 {
		t.Errorf("items = %d, want 1 (committed)", n)
	}
}

func TestRunRollsBackOnFailure(t *testing.T) {
	db := openTestDB(t)
	boom := errors.New("boom")

	err := Run(context.Background(), db, func(tx *sql.Tx) error {
		if _, err := tx.Exec("INSERT INTO items (name) VALUES (?)", "a"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Run() error = %v, want the body's error unchanged", err)
	}

	if n := countItems(t, db); n != 0 {
		t.Errorf("items = %d, want 0 (rolled back)", n)
	}
}

func TestRunBodyErrorNotWrapped(t *testing.T) {
	db := openTestDB(t)
	boom := errors.New("boom")

	err := Run(context.Background(), db, func(tx *sql.Tx) error {
		return boom
	})
	if err != boom {
		t.Errorf("Run() error = %v, want identical error value", err)
	}
}
