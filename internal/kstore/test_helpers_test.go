package kstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/roach88/dones/internal/conn"
)

// createTestStore creates a store over a fresh temp-file sqlite database
// with its table already created.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	s := createUninitializedStore(t)
	if err := s.Create(context.Background()); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	return s
}

// createUninitializedStore creates a store without creating its table.
func createUninitializedStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dones.db")
	p := conn.NewProvider("sqlite3", path, 1, 10*time.Millisecond)
	s, err := New(p, "dones_test")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return s
}
