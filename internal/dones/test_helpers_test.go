package dones

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/roach88/dones/internal/conn"
	"github.com/roach88/dones/internal/kstore"
	"github.com/roach88/dones/internal/logstore"
)

// createDBDones builds a relational facade over a fresh temp sqlite file.
func createDBDones(t *testing.T) (*DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dones.db")
	provider := conn.NewProvider("sqlite3", path, 1, 10*time.Millisecond)
	store, err := kstore.New(provider, "dones_t1")
	if err != nil {
		t.Fatalf("kstore.New() failed: %v", err)
	}
	return NewDB(store), path
}

// createFileDones builds an append-log facade in a fresh temp dir.
func createFileDones(t *testing.T) *File {
	t.Helper()
	return NewFile(logstore.New(filepath.Join(t.TempDir(), "dones_t1.log")))
}

// facadeConstructors lets shared contract tests run against both backings.
var facadeConstructors = map[string]func(t *testing.T) Dones{
	"db": func(t *testing.T) Dones {
		d, _ := createDBDones(t)
		return d
	},
	"file": func(t *testing.T) Dones {
		return createFileDones(t)
	},
}
