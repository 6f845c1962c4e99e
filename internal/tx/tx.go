// Package tx wraps a unit of work in begin/commit/rollback semantics.
package tx

import (
	"context"
	"database/sql"
	"fmt"
)

// Run executes body inside a transaction. Exactly one of commit or rollback
// is issued per invocation: rollback when body or the begin fails, commit
// otherwise. A failing body's error is returned unchanged so callers can
// inspect it; a commit failure is wrapped and returned.
//
// The original explicit START TRANSACTION statement maps onto BeginTx here:
// database/sql connections have no autocommit mode to suppress.
func Run(ctx context.Context, db *sql.DB, body func(*sql.Tx) error) error {
	t, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer t.Rollback() // No-op if committed

	if err := body(t); err != nil {
		return err
	}

	if err := t.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
