package dones

import (
	"context"

	"github.com/roach88/dones/internal/logstore"
)

// File is the append-log-backed facade. There is no readiness state: the
// backing file appears on the first append and disappears on Clear.
//
// File operations are not cancellable mid-append (a record is one write);
// ctx is checked before touching the file.
type File struct {
	store *logstore.Store
}

// NewFile wraps a log store.
func NewFile(store *logstore.Store) *File {
	return &File{store: store}
}

func (f *File) Mark(ctx context.Context, key any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return f.store.Mark(key)
}

func (f *File) Unmark(ctx context.Context, key any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return f.store.Unmark(key)
}

func (f *File) Done(ctx context.Context, key any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return f.store.Done(key)
}

// AreDone answers every key in a single pass over the log. Element-wise
// equal to calling Done per key, at one scan instead of N.
func (f *File) AreDone(ctx context.Context, keys []any) ([]bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.store.AreDone(keys)
}

func (f *File) AllDone(ctx context.Context, keys []any) (bool, error) {
	for _, key := range keys {
		done, err := f.Done(ctx, key)
		if err != nil {
			return false, err
		}
		if !done {
			return false, nil
		}
	}
	return true, nil
}

// AnyDone uses the batch scan: one pass answers all keys, and any hit
// makes the whole call true.
func (f *File) AnyDone(ctx context.Context, keys []any) (bool, error) {
	status, err := f.AreDone(ctx, keys)
	if err != nil {
		return false, err
	}
	for _, done := range status {
		if done {
			return true, nil
		}
	}
	return false, nil
}

func (f *File) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return f.store.Clear()
}
