package dones

import (
	"context"
	"fmt"
)

// Dones is the done-marker contract shared by both backings.
//
// Keys are arbitrary values encodable by internal/key; an unencodable key
// fails with *key.EncodingError before anything is written.
type Dones interface {
	// Mark records the key as done. Marking twice is a no-op.
	Mark(ctx context.Context, key any) error

	// Unmark records the key as not done. Unmarking a key that was never
	// marked is a no-op.
	Unmark(ctx context.Context, key any) error

	// Done reports whether the key is marked done.
	Done(ctx context.Context, key any) (bool, error)

	// AllDone reports whether every key is done. It stops at the first
	// key that is not.
	AllDone(ctx context.Context, keys []any) (bool, error)

	// AnyDone reports whether at least one key is done.
	AnyDone(ctx context.Context, keys []any) (bool, error)

	// Clear removes every marker in the namespace.
	Clear(ctx context.Context) error
}

// NotReadyError reports that an operation could not bring its backing
// schema into existence. The wrapped error is the backend failure from the
// attempted creation.
type NotReadyError struct {
	Namespace string
	Err       error
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("namespace %s not ready: %v", e.Namespace, e.Err)
}

func (e *NotReadyError) Unwrap() error { return e.Err }
