package cache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/xwstats/internal/domain"
)

type countingLookup struct {
	answers map[string]bool
	err     error
	calls   map[string]int
}

func newCountingLookup(answers map[string]bool) *countingLookup {
	return &countingLookup{answers: answers, calls: make(map[string]int)}
}

func (l *countingLookup) Exists(_ context.Context, title string) (bool, error) {
	l.calls[title]++
	if l.err != nil {
		return false, l.err
	}
	return l.answers[title], nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openTestDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLookupCache_CachesPositiveAndNegative(t *testing.T) {
	t.Parallel()

	next := newCountingLookup(map[string]bool{"usher": true})
	c := NewLookupCache(openTestDB(t), next, 0, testLogger())
	ctx := context.Background()

	for range 3 {
		ok, err := c.Exists(ctx, "usher")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = c.Exists(ctx, "esnex")
		require.NoError(t, err)
		assert.False(t, ok)
	}

	assert.Equal(t, 1, next.calls["usher"])
	assert.Equal(t, 1, next.calls["esnex"])
}

func TestLookupCache_KeyIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	next := newCountingLookup(map[string]bool{"Ice cream": true})
	c := NewLookupCache(openTestDB(t), next, 0, testLogger())

	ok, err := c.Exists(context.Background(), "Ice cream")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.Exists(context.Background(), " ICE CREAM ")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Zero(t, next.calls[" ICE CREAM "])
}

func TestLookupCache_FailuresNotCached(t *testing.T) {
	t.Parallel()

	next := newCountingLookup(map[string]bool{"usher": true})
	next.err = domain.ErrLookupFailed
	c := NewLookupCache(openTestDB(t), next, 0, testLogger())

	_, err := c.Exists(context.Background(), "usher")
	assert.True(t, errors.Is(err, domain.ErrLookupFailed))

	next.err = nil
	ok, err := c.Exists(context.Background(), "usher")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, next.calls["usher"])
}

func TestLookupCache_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	next := newCountingLookup(map[string]bool{"cbs": true})

	db, err := Open(Config{Path: dir})
	require.NoError(t, err)
	_, err = NewLookupCache(db, next, 0, testLogger()).Exists(context.Background(), "cbs")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(Config{Path: dir})
	require.NoError(t, err)
	defer db.Close()

	ok, err := NewLookupCache(db, next, 0, testLogger()).Exists(context.Background(), "cbs")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, next.calls["cbs"])
}

func TestOpen_RequiresPath(t *testing.T) {
	t.Parallel()

	_, err := Open(Config{})
	assert.Error(t, err)
}
