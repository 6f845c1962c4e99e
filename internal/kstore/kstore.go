package kstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"github.com/roach88/dones/internal/conn"
	"github.com/roach88/dones/internal/key"
	"github.com/roach88/dones/internal/tx"
)

// Table names are spliced into SQL, so they must be plain identifiers.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Store is a namespaced table of encoded keys.
type Store struct {
	provider *conn.Provider
	table    string
}

// New creates a store over the given provider. table must be a valid SQL
// identifier for the backend.
func New(provider *conn.Provider, table string) (*Store, error) {
	if !identPattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &Store{provider: provider, table: table}, nil
}

// Table returns the backing table name.
func (s *Store) Table() string { return s.table }

// Create idempotently ensures the table and its name index exist.
// Safe to call when the table is already present.
func (s *Store) Create(ctx context.Context) error {
	stmts := s.createSQL()
	err := s.provider.With(ctx, func(db *sql.DB) error {
		return tx.Run(ctx, db, func(t *sql.Tx) error {
			for _, stmt := range stmts {
				if _, err := t.ExecContext(ctx, stmt); err != nil {
					return err
				}
			}
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("create %s: %w", s.table, err)
	}
	return nil
}

// Drop idempotently removes the table if present.
func (s *Store) Drop(ctx context.Context) error {
	err := s.provider.With(ctx, func(db *sql.DB) error {
		return tx.Run(ctx, db, func(t *sql.Tx) error {
			_, err := t.ExecContext(ctx, "DROP TABLE IF EXISTS "+s.table)
			return err
		})
	})
	if err != nil {
		return fmt.Errorf("drop %s: %w", s.table, err)
	}
	return nil
}

// Reset drops and recreates the table.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.Drop(ctx); err != nil {
		return err
	}
	return s.Create(ctx)
}

// Exists reports whether a row for the key is present.
func (s *Store) Exists(ctx context.Context, k any) (bool, error) {
	encoded, err := key.Encode(k)
	if err != nil {
		return false, err
	}

	var found bool
	err = s.provider.With(ctx, func(db *sql.DB) error {
		var id int64
		row := db.QueryRowContext(ctx, "SELECT id FROM "+s.table+" WHERE name = ?", encoded)
		switch err := row.Scan(&id); {
		case err == nil:
			found = true
			return nil
		case errors.Is(err, sql.ErrNoRows):
			found = false
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return false, fmt.Errorf("exists in %s: %w", s.table, err)
	}
	return found, nil
}

// Add inserts the key, ignoring a duplicate. Returns the new row id and
// whether a row was inserted; adding a key that is already present is a
// no-op, never an error.
func (s *Store) Add(ctx context.Context, k any) (id int64, inserted bool, err error) {
	encoded, err := key.Encode(k)
	if err != nil {
		return 0, false, err
	}

	err = s.provider.With(ctx, func(db *sql.DB) error {
		return tx.Run(ctx, db, func(t *sql.Tx) error {
			res, err := t.ExecContext(ctx, s.insertSQL(), encoded)
			if err != nil {
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if n == 0 {
				return nil
			}
			inserted = true
			id, err = res.LastInsertId()
			return err
		})
	})
	if err != nil {
		return 0, false, fmt.Errorf("add to %s: %w", s.table, err)
	}
	return id, inserted, nil
}

// Remove deletes the key's row and returns the number of rows affected.
// Removing a key that was never added affects zero rows.
func (s *Store) Remove(ctx context.Context, k any) (int64, error) {
	encoded, err := key.Encode(k)
	if err != nil {
		return 0, err
	}

	var affected int64
	err = s.provider.With(ctx, func(db *sql.DB) error {
		return tx.Run(ctx, db, func(t *sql.Tx) error {
			res, err := t.ExecContext(ctx, "DELETE FROM "+s.table+" WHERE name = ?", encoded)
			if err != nil {
				return err
			}
			affected, err = res.RowsAffected()
			return err
		})
	})
	if err != nil {
		return 0, fmt.Errorf("remove from %s: %w", s.table, err)
	}
	return affected, nil
}

// createSQL returns the schema statements for the provider's dialect.
func (s *Store) createSQL() []string {
	if s.provider.Driver() == "mysql" {
		return []string{fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			create_time TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			INDEX %s_name_idx (name)
		)`, s.table, s.table)}
	}
	// sqlite3: table-level UNIQUE already creates an internal index, but the
	// named index keeps the schema shape identical across dialects.
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			create_time TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`, s.table),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s_name_idx ON %s(name)", s.table, s.table),
	}
}

// insertSQL returns the insert-or-ignore statement for the dialect.
func (s *Store) insertSQL() string {
	if s.provider.Driver() == "mysql" {
		return "INSERT IGNORE INTO " + s.table + " (name) VALUES (?)"
	}
	return "INSERT INTO " + s.table + " (name) VALUES (?) ON CONFLICT(name) DO NOTHING"
}
