// Package freqdb holds the historical answer-frequency database: how many
// times each answer has appeared in past puzzles.
package freqdb

import (
	"context"
	"sort"

	"github.com/heartmarshall/xwstats/internal/domain"
)

// Store loads and persists a DB.
type Store interface {
	// Load returns the persisted database. A store with nothing persisted yet
	// returns an empty DB, not an error.
	Load(ctx context.Context) (*DB, error)
	// Save writes db. A shared backend may keep stored answers missing from
	// db and never lowers a stored count.
	Save(ctx context.Context, db *DB) error
	// Replace makes db the whole persisted content: stored answers missing
	// from db are dropped and counts may go down.
	Replace(ctx context.Context, db *DB) error
}

// Entry is one answer and its occurrence count.
type Entry struct {
	Answer string `json:"answer" yaml:"answer"`
	Count  int64  `json:"count"  yaml:"count"`
}

// Stats summarises the counts of a non-empty DB.
type Stats struct {
	Min   int64
	Max   int64
	Total int64
}

// DB maps uppercase answers to occurrence counts. Counts only grow.
// Not safe for concurrent mutation.
type DB struct {
	counts map[string]int64
	stats  *Stats // cached; nil when stale
}

// New returns an empty DB.
func New() *DB {
	return &DB{counts: make(map[string]int64)}
}

// FromCounts builds a DB from an answer → count mapping. Keys are normalized;
// blank keys and negative counts are dropped, duplicate keys are summed.
func FromCounts(counts map[string]int64) *DB {
	db := New()
	for answer, c := range counts {
		db.add(answer, c)
	}
	return db
}

func (db *DB) add(answer string, n int64) bool {
	key := domain.NormalizeAnswer(answer)
	if key == "" || n < 0 {
		return false
	}
	db.counts[key] += n
	db.stats = nil
	return true
}

// MergeResult describes one Merge call.
type MergeResult struct {
	Added    int // non-blank answers counted, repeats included
	Distinct int // distinct answers touched
}

// Merge counts the occurrences in words (upper-cased, blanks ignored) and adds
// them onto the existing counts.
func (db *DB) Merge(words []string) MergeResult {
	var res MergeResult
	touched := make(map[string]struct{})
	for _, w := range words {
		key := domain.NormalizeAnswer(w)
		if key == "" {
			continue
		}
		db.add(key, 1)
		res.Added++
		touched[key] = struct{}{}
	}
	res.Distinct = len(touched)
	return res
}

// MergeDB adds every count of other onto db.
func (db *DB) MergeDB(other *DB) {
	for answer, c := range other.counts {
		db.add(answer, c)
	}
}

// Count returns the count of answer (normalized) and whether it is present.
func (db *DB) Count(answer string) (int64, bool) {
	c, ok := db.counts[domain.NormalizeAnswer(answer)]
	return c, ok
}

// Len returns the number of distinct answers.
func (db *DB) Len() int { return len(db.counts) }

// IsEmpty reports whether the database holds no answers. Callers treat an
// empty DB as "no prior data": every answer is maximally novel.
func (db *DB) IsEmpty() bool { return len(db.counts) == 0 }

// Stats returns min, max and total over all counts. ok is false for an empty DB.
func (db *DB) Stats() (Stats, bool) {
	if len(db.counts) == 0 {
		return Stats{}, false
	}
	if db.stats == nil {
		s := Stats{Min: -1}
		for _, c := range db.counts {
			if s.Min < 0 || c < s.Min {
				s.Min = c
			}
			if c > s.Max {
				s.Max = c
			}
			s.Total += c
		}
		db.stats = &s
	}
	return *db.stats, true
}

// Counts returns a copy of the underlying mapping.
func (db *DB) Counts() map[string]int64 {
	out := make(map[string]int64, len(db.counts))
	for k, v := range db.counts {
		out[k] = v
	}
	return out
}

// Entries returns every answer sorted by descending count. Equal counts are
// ordered alphabetically so that output is reproducible.
func (db *DB) Entries() []Entry {
	out := make([]Entry, 0, len(db.counts))
	for answer, c := range db.counts {
		out = append(out, Entry{Answer: answer, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Answer < out[j].Answer
	})
	return out
}
