// Package conn opens scoped database connections with bounded retry.
//
// A Provider holds a driver name and DSN and opens a fresh *sql.DB per
// acquisition. Operations that need a connection use With, which guarantees
// the handle is closed on every exit path. Retries use a fixed delay with
// no jitter or backoff growth; the retry count bounds every open attempt,
// so no call blocks indefinitely.
package conn

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

// ConnectionError reports a backend that stayed unreachable after every
// configured attempt.
type ConnectionError struct {
	Driver   string
	Attempts int
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connect %s: %v (after %d attempts)", e.Driver, e.Err, e.Attempts)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// Provider opens connections to one backend target.
type Provider struct {
	driver  string
	dsn     string
	retries int
	delay   time.Duration
}

// NewProvider creates a provider for the given driver and DSN.
// retries is the number of extra attempts beyond the first; delay is the
// fixed pause between attempts. Negative values are treated as zero.
func NewProvider(driver, dsn string, retries int, delay time.Duration) *Provider {
	if retries < 0 {
		retries = 0
	}
	if delay < 0 {
		delay = 0
	}
	return &Provider{driver: driver, dsn: dsn, retries: retries, delay: delay}
}

// Driver returns the database/sql driver name this provider opens.
func (p *Provider) Driver() string { return p.driver }

// Open returns a verified connection handle. The caller owns the handle
// and must close it. Each failed attempt either closes its handle or never
// obtained one, so partial failures leak nothing.
func (p *Provider) Open(ctx context.Context) (*sql.DB, error) {
	attempts := 0
	for {
		attempts++
		db, err := p.open(ctx)
		if err == nil {
			return db, nil
		}
		if attempts > p.retries {
			return nil, &ConnectionError{Driver: p.driver, Attempts: attempts, Err: err}
		}
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return nil, &ConnectionError{Driver: p.driver, Attempts: attempts, Err: ctx.Err()}
		}
	}
}

func (p *Provider) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open(p.driver, p.dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if p.driver == "sqlite3" {
		// Single writer avoids SQLITE_BUSY within one handle; the busy
		// timeout covers writers in other handles and processes.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
			db.Close()
			return nil, err
		}
	}
	return db, nil
}

// With runs fn with an open connection and closes it when fn returns,
// on success and failure alike.
func (p *Provider) With(ctx context.Context, fn func(*sql.DB) error) error {
	db, err := p.Open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}
