package dones

import (
	"context"
	"sync"

	"github.com/roach88/dones/internal/kstore"
)

// DB is the relational-backed facade. The underlying table is created
// lazily on the first operation, not at construction, so building a DB for
// a namespace that is never used costs nothing on the backend. Clear drops
// the table and resets readiness; the next operation recreates it.
type DB struct {
	store *kstore.Store

	mu    sync.Mutex
	ready bool
}

// NewDB wraps a key store. No backend work happens here.
func NewDB(store *kstore.Store) *DB {
	return &DB{store: store}
}

// get returns the store with its schema guaranteed to exist.
func (d *DB) get(ctx context.Context) (*kstore.Store, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.ready {
		if err := d.store.Create(ctx); err != nil {
			return nil, &NotReadyError{Namespace: d.store.Table(), Err: err}
		}
		d.ready = true
	}
	return d.store, nil
}

func (d *DB) Mark(ctx context.Context, key any) error {
	k, err := d.get(ctx)
	if err != nil {
		return err
	}
	_, _, err = k.Add(ctx, key)
	return err
}

func (d *DB) Unmark(ctx context.Context, key any) error {
	k, err := d.get(ctx)
	if err != nil {
		return err
	}
	_, err = k.Remove(ctx, key)
	return err
}

func (d *DB) Done(ctx context.Context, key any) (bool, error) {
	k, err := d.get(ctx)
	if err != nil {
		return false, err
	}
	return k.Exists(ctx, key)
}

func (d *DB) AllDone(ctx context.Context, keys []any) (bool, error) {
	for _, key := range keys {
		done, err := d.Done(ctx, key)
		if err != nil {
			return false, err
		}
		if !done {
			return false, nil
		}
	}
	return true, nil
}

func (d *DB) AnyDone(ctx context.Context, keys []any) (bool, error) {
	for _, key := range keys {
		done, err := d.Done(ctx, key)
		if err != nil {
			return false, err
		}
		if done {
			return true, nil
		}
	}
	return false, nil
}

// Clear drops the table. The next operation recreates the schema.
func (d *DB) Clear(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.store.Drop(ctx); err != nil {
		return err
	}
	d.ready = false
	return nil
}
