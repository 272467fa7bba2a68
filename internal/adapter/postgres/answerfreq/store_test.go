package answerfreq_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	postgres "github.com/heartmarshall/xwstats/internal/adapter/postgres"
	"github.com/heartmarshall/xwstats/internal/adapter/postgres/answerfreq"
	"github.com/heartmarshall/xwstats/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/xwstats/internal/freqdb"
)

// Tests in this file share one table and truncate it, so they do not run in
// parallel.

func newStore(t *testing.T) (*answerfreq.Store, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	testhelper.Truncate(t, pool)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return answerfreq.New(pool, postgres.NewTxManager(pool), logger), pool
}

func TestStore_LoadEmpty(t *testing.T) {
	store, _ := newStore(t)

	db, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, db.IsEmpty())
}

func TestStore_RoundTrip(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	want := freqdb.FromCounts(map[string]int64{"ERA": 12, "ORE": 7, "ESNE": 1})
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want.Counts(), got.Counts())
	assert.Equal(t, want.Entries(), got.Entries())
}

func TestStore_SaveNeverLowersCounts(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, freqdb.FromCounts(map[string]int64{"ERA": 10})))

	// A stale copy with a lower count and a new answer.
	require.NoError(t, store.Save(ctx, freqdb.FromCounts(map[string]int64{"ERA": 3, "OLIO": 2})))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"ERA": 10, "OLIO": 2}, got.Counts())
}

func TestStore_MergeThenSave(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	db, err := store.Load(ctx)
	require.NoError(t, err)
	db.Merge([]string{"usher", "USHER", "cbs"})
	require.NoError(t, store.Save(ctx, db))

	db, err = store.Load(ctx)
	require.NoError(t, err)
	db.Merge([]string{"usher"})
	require.NoError(t, store.Save(ctx, db))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"USHER": 3, "CBS": 1}, got.Counts())
}

func TestStore_SaveEmptyIsNoop(t *testing.T) {
	store, pool := newStore(t)

	require.NoError(t, store.Save(context.Background(), freqdb.New()))

	var n int
	require.NoError(t, pool.QueryRow(context.Background(), `SELECT count(*) FROM answer_frequencies`).Scan(&n))
	assert.Zero(t, n)
}

func TestStore_ReplaceDropsStaleRows(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	// First build from a large corpus.
	require.NoError(t, store.Save(ctx, freqdb.FromCounts(map[string]int64{"ERA": 10, "OLIO": 3})))

	// Rebuild from a smaller one.
	require.NoError(t, store.Replace(ctx, freqdb.FromCounts(map[string]int64{"ERA": 2, "ESNE": 1})))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"ERA": 2, "ESNE": 1}, got.Counts())
}

func TestStore_ReplaceWithEmptyClears(t *testing.T) {
	store, pool := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, freqdb.FromCounts(map[string]int64{"ERA": 10})))
	require.NoError(t, store.Replace(ctx, freqdb.New()))

	var n int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM answer_frequencies`).Scan(&n))
	assert.Zero(t, n)
}

func TestStore_ImplementsFreqDBStore(t *testing.T) {
	var _ freqdb.Store = (*answerfreq.Store)(nil)
}
