package logstore

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/roach88/dones/internal/key"
)

const (
	donePrefix   = "DONE "
	undonePrefix = "UNDONE "
)

// Store is a namespaced append-only done-marker file.
type Store struct {
	path string
}

// New creates a store over the given file path. The file itself is created
// on the first append.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file location.
func (s *Store) Path() string { return s.path }

// Mark appends a DONE record for the key.
func (s *Store) Mark(k any) error {
	encoded, err := key.Encode(k)
	if err != nil {
		return err
	}
	return s.append(donePrefix + encoded + "\n")
}

// Unmark appends an UNDONE record for the key.
func (s *Store) Unmark(k any) error {
	encoded, err := key.Encode(k)
	if err != nil {
		return err
	}
	return s.append(undonePrefix + encoded + "\n")
}

// Done reports whether the key's last record is DONE. A missing file means
// nothing is marked. The whole file is scanned; a later record always
// overrides an earlier one.
func (s *Store) Done(k any) (bool, error) {
	encoded, err := key.Encode(k)
	if err != nil {
		return false, err
	}

	doneLine := donePrefix + encoded
	undoneLine := undonePrefix + encoded

	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	isDone := false
	err = scanLines(f, func(line string) {
		switch line {
		case doneLine:
			isDone = true
		case undoneLine:
			isDone = false
		}
	})
	if err != nil {
		return false, fmt.Errorf("scan %s: %w", s.path, err)
	}
	return isDone, nil
}

// AreDone reports the status of every key in one pass over the file.
// The result is element-wise identical to calling Done per key, but costs
// a single scan instead of one per key. Keys with no record are false.
func (s *Store) AreDone(keys []any) ([]bool, error) {
	encoded := make([]string, len(keys))
	for i, k := range keys {
		e, err := key.Encode(k)
		if err != nil {
			return nil, err
		}
		encoded[i] = e
	}

	status := make(map[string]bool, len(keys))

	f, err := os.Open(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	if err == nil {
		defer f.Close()

		doneLines := make(map[string]string, len(keys))
		undoneLines := make(map[string]string, len(keys))
		for _, e := range encoded {
			doneLines[donePrefix+e] = e
			undoneLines[undonePrefix+e] = e
		}

		err = scanLines(f, func(line string) {
			if e, ok := doneLines[line]; ok {
				status[e] = true
			} else if e, ok := undoneLines[line]; ok {
				status[e] = false
			}
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.path, err)
		}
	}

	out := make([]bool, len(keys))
	for i, e := range encoded {
		out[i] = status[e]
	}
	return out, nil
}

// Clear removes the file if present. Until new marks are appended,
// every key reads as not done.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear %s: %w", s.path, err)
	}
	return nil
}

// Compact is intentionally unimplemented. Rewriting the log to drop
// superseded records would change the file in place under concurrent
// appenders; until that is designed, the log only grows.
func (s *Store) Compact() error {
	return nil
}

// scanLines calls fn for each newline-terminated record. bufio.Reader has
// no line length limit, so any record Mark accepted reads back.
func scanLines(f *os.File, fn func(line string)) error {
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			fn(strings.TrimSuffix(line, "\n"))
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// append writes one record as a single unbuffered write so concurrent
// appenders interleave at line granularity, then closes the file so the
// record is visible to readers opening the file fresh.
func (s *Store) append(line string) error {
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s for append: %w", s.path, err)
	}
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return fmt.Errorf("append to %s: %w", s.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", s.path, err)
	}
	return nil
}
