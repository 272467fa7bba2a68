package novelty

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/xwstats/internal/domain"
	"github.com/heartmarshall/xwstats/internal/freqdb"
)

func mustNew(t *testing.T, name string) Func {
	t.Helper()
	fn, err := New(name, DefaultParams())
	require.NoError(t, err)
	return fn
}

func TestEmptyDatabase_EverythingNovel(t *testing.T) {
	t.Parallel()

	for _, name := range Names() {
		fn := mustNew(t, name)
		assert.Equal(t, 1.0, fn("USHER", freqdb.New()), name)
		assert.Equal(t, 1.0, fn("ERA", freqdb.New()), name)
	}
}

func TestLinear(t *testing.T) {
	t.Parallel()

	db := freqdb.FromCounts(map[string]int64{"ERA": 101, "ORE": 51, "ESNE": 1})
	fn := mustNew(t, Linear)

	assert.Equal(t, 0.0, fn("era", db))
	assert.Equal(t, 0.5, fn("ORE", db))
	assert.Equal(t, 1.0, fn("ESNE", db))
	assert.Equal(t, 1.0, fn("NEWWORD", db))
}

func TestLinear_EqualCounts(t *testing.T) {
	t.Parallel()

	db := freqdb.FromCounts(map[string]int64{"CAT": 10, "DOG": 10})
	assert.Equal(t, 1.0, mustNew(t, Linear)("CAT", db), "epsilon keeps min==max finite")
}

func TestLogarithmic(t *testing.T) {
	t.Parallel()

	// smoothed counts 1, 5, 25 are 0, 1, 2 in base 5
	db := freqdb.FromCounts(map[string]int64{"A": 0, "B": 4, "C": 24})
	fn := mustNew(t, Logarithmic)

	assert.Equal(t, 1.0, fn("A", db))
	assert.Equal(t, 0.5, fn("B", db))
	assert.Equal(t, 0.0, fn("C", db))
}

func TestLogarithmic_EqualCounts(t *testing.T) {
	t.Parallel()

	db := freqdb.FromCounts(map[string]int64{"CAT": 10, "DOG": 10})
	fn := mustNew(t, Logarithmic)

	assert.Equal(t, 0.0, fn("CAT", db))
	assert.Equal(t, 0.0, fn("DOG", db))
	assert.Equal(t, 1.0, fn("EMU", db))
}

func TestUnseenValueIsConfigurable(t *testing.T) {
	t.Parallel()

	p := DefaultParams()
	p.Unseen = 0.9
	db := freqdb.FromCounts(map[string]int64{"CAT": 10, "DOG": 3})
	for _, name := range Names() {
		fn, err := New(name, p)
		require.NoError(t, err)
		assert.Equal(t, 0.9, fn("EMU", db), name)
		assert.Equal(t, 0.9, fn("EMU", freqdb.New()), name)
	}
}

func TestBounds(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))
	words := []string{"A", "B", "C", "D", "E", "F", "G"}
	for range 100 {
		counts := make(map[string]int64)
		for _, w := range words[:1+rng.IntN(len(words))] {
			counts[w] = rng.Int64N(1000)
		}
		db := freqdb.FromCounts(counts)
		for _, name := range Names() {
			fn := mustNew(t, name)
			for _, w := range words {
				n := fn(w, db)
				require.GreaterOrEqual(t, n, 0.0)
				require.LessOrEqual(t, n, 1.0)
				require.Equal(t, domain.RoundScore(n), n)
				if _, ok := db.Count(w); !ok {
					require.Equal(t, 1.0, n)
				}
			}
		}
	}
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	_, err := New("cubic", DefaultParams())
	assert.ErrorIs(t, err, domain.ErrUnknownAlgorithm)

	p := DefaultParams()
	p.LogBase = 1
	_, err = New(Logarithmic, p)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = New("logarithmic", DefaultParams())
	assert.NoError(t, err)
}
