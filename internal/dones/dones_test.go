package dones

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dones/internal/conn"
	"github.com/roach88/dones/internal/kstore"
)

// TestContract runs the behavioral contract against both backings.
func TestContract(t *testing.T) {
	for name, construct := range facadeConstructors {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			t.Run("mark is idempotent", func(t *testing.T) {
				d := construct(t)
				require.NoError(t, d.Mark(ctx, "k"))
				require.NoError(t, d.Mark(ctx, "k"))
				done, err := d.Done(ctx, "k")
				require.NoError(t, err)
				assert.True(t, done)
			})

			t.Run("unmark never-marked key", func(t *testing.T) {
				d := construct(t)
				require.NoError(t, d.Unmark(ctx, "k"))
				done, err := d.Done(ctx, "k")
				require.NoError(t, err)
				assert.False(t, done)
			})

			t.Run("mark unmark mark", func(t *testing.T) {
				d := construct(t)
				require.NoError(t, d.Mark(ctx, "k"))
				require.NoError(t, d.Unmark(ctx, "k"))
				require.NoError(t, d.Mark(ctx, "k"))
				done, err := d.Done(ctx, "k")
				require.NoError(t, err)
				assert.True(t, done)
			})

			t.Run("mark mark unmark", func(t *testing.T) {
				d := construct(t)
				require.NoError(t, d.Mark(ctx, "k"))
				require.NoError(t, d.Mark(ctx, "k"))
				require.NoError(t, d.Unmark(ctx, "k"))
				done, err := d.Done(ctx, "k")
				require.NoError(t, err)
				assert.False(t, done)
			})

			t.Run("clear resets all state", func(t *testing.T) {
				d := construct(t)
				for _, k := range []string{"a", "b", "c"} {
					require.NoError(t, d.Mark(ctx, k))
				}
				require.NoError(t, d.Clear(ctx))
				for _, k := range []string{"a", "b", "c"} {
					done, err := d.Done(ctx, k)
					require.NoError(t, err)
					assert.False(t, done, "key %q survived Clear()", k)
				}
			})

			t.Run("all/any with subset marked", func(t *testing.T) {
				d := construct(t)
				require.NoError(t, d.Mark(ctx, "a"))
				keys := []any{"a", "b"}

				all, err := d.AllDone(ctx, keys)
				require.NoError(t, err)
				assert.False(t, all)

				any, err := d.AnyDone(ctx, keys)
				require.NoError(t, err)
				assert.True(t, any)
			})

			t.Run("all/any with none marked", func(t *testing.T) {
				d := construct(t)
				keys := []any{"a", "b"}

				all, err := d.AllDone(ctx, keys)
				require.NoError(t, err)
				assert.False(t, all)

				any, err := d.AnyDone(ctx, keys)
				require.NoError(t, err)
				assert.False(t, any)
			})

			t.Run("all/any with all marked", func(t *testing.T) {
				d := construct(t)
				keys := []any{"a", "b"}
				for _, k := range keys {
					require.NoError(t, d.Mark(ctx, k))
				}

				all, err := d.AllDone(ctx, keys)
				require.NoError(t, err)
				assert.True(t, all)

				any, err := d.AnyDone(ctx, keys)
				require.NoError(t, err)
				assert.True(t, any)
			})

			t.Run("all/any with no keys", func(t *testing.T) {
				d := construct(t)

				all, err := d.AllDone(ctx, nil)
				require.NoError(t, err)
				assert.True(t, all, "vacuous AllDone")

				any, err := d.AnyDone(ctx, nil)
				require.NoError(t, err)
				assert.False(t, any)
			})

			t.Run("end to end scenario", func(t *testing.T) {
				d := construct(t)

				done, err := d.Done(ctx, "foo")
				require.NoError(t, err)
				assert.False(t, done)

				require.NoError(t, d.Mark(ctx, "foo"))
				done, err = d.Done(ctx, "foo")
				require.NoError(t, err)
				assert.True(t, done)

				require.NoError(t, d.Mark(ctx, "foo"))
				done, err = d.Done(ctx, "foo")
				require.NoError(t, err)
				assert.True(t, done)

				require.NoError(t, d.Unmark(ctx, "foo"))
				done, err = d.Done(ctx, "foo")
				require.NoError(t, err)
				assert.False(t, done)

				require.NoError(t, d.Clear(ctx))
				done, err = d.Done(ctx, "foo")
				require.NoError(t, err)
				assert.False(t, done)

				// Storage reinitializes cleanly after Clear.
				require.NoError(t, d.Mark(ctx, "foo"))
				done, err = d.Done(ctx, "foo")
				require.NoError(t, err)
				assert.True(t, done)
			})
		})
	}
}

func TestDBLazySchemaCreation(t *testing.T) {
	ctx := context.Background()
	d, path := createDBDones(t)

	// Construction must not touch the backend.
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "database created at construction time")

	done, err := d.Done(ctx, "foo")
	require.NoError(t, err)
	assert.False(t, done)

	_, err = os.Stat(path)
	assert.NoError(t, err, "database missing after first operation")
}

func TestDBClearResetsReadiness(t *testing.T) {
	ctx := context.Background()
	d, _ := createDBDones(t)

	require.NoError(t, d.Mark(ctx, "foo"))
	require.NoError(t, d.Clear(ctx))

	// The table is gone; the next operation must recreate it rather than
	// fail on the missing schema.
	require.NoError(t, d.Mark(ctx, "bar"))
	done, err := d.Done(ctx, "bar")
	require.NoError(t, err)
	assert.True(t, done)
}

func TestDBNotReadyOnCreationFailure(t *testing.T) {
	ctx := context.Background()

	// A database path inside a directory that does not exist cannot be
	// created, so lazy schema creation fails on first use.
	path := filepath.Join(t.TempDir(), "missing", "dones.db")
	provider := conn.NewProvider("sqlite3", path, 0, 0)
	store, err := kstore.New(provider, "dones_t1")
	require.NoError(t, err)
	d := NewDB(store)

	err = d.Mark(ctx, "foo")
	require.Error(t, err)
	var nrErr *NotReadyError
	assert.ErrorAs(t, err, &nrErr)
}

func TestFileAreDoneBatch(t *testing.T) {
	ctx := context.Background()
	d := createFileDones(t)

	require.NoError(t, d.Mark(ctx, "a"))
	require.NoError(t, d.Mark(ctx, "b"))
	require.NoError(t, d.Unmark(ctx, "a"))

	got, err := d.AreDone(ctx, []any{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, false}, got)
}

func TestFileHonorsCancelledContext(t *testing.T) {
	d := createFileDones(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, d.Mark(ctx, "k"), context.Canceled)
	_, err := d.Done(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}
