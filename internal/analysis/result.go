package analysis

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/xwstats/internal/aggregate"
	"github.com/heartmarshall/xwstats/internal/domain"
)

// ScoreRecord is the score triple of one answer in one run.
type ScoreRecord struct {
	Span         domain.WordSpan
	Word         string
	Rarity       float64
	Novelty      float64
	Crosswordese float64
	Count        int64 // occurrences in the frequency database before this run
}

// Summary highlights the notable answers of a run.
type Summary struct {
	MostNovel        []ScoreRecord // up to three, most novel first
	Hardest          *ScoreRecord  // highest rarity
	MostCrosswordese *ScoreRecord
}

// Report is the outcome of one analysis.
type Report struct {
	RunID      uuid.UUID
	Algorithms Algorithms
	Answers    []string // every extracted answer, including failed ones
	Records    []ScoreRecord
	WordErrors []*domain.WordError
	Maps       *aggregate.Maps
	Summary    Summary
}

// HasWordErrors reports whether any answer failed to score.
func (r *Report) HasWordErrors() bool { return len(r.WordErrors) > 0 }

// CommitResult describes a merge into the frequency database.
type CommitResult struct {
	Answers  int // answers merged, counting repeats
	Distinct int // distinct answers touched
	Total    int // distinct answers in the database afterwards
}
