package analysis

import (
	"context"
	"fmt"

	"github.com/heartmarshall/xwstats/internal/freqdb"
)

// Commit merges every answer of report into db and persists it through store.
// It is never called by Analyze.
func Commit(ctx context.Context, store freqdb.Store, db *freqdb.DB, report *Report) (CommitResult, error) {
	return CommitAnswers(ctx, store, db, report.Answers)
}

// CommitAnswers merges answers into db and persists it through store.
func CommitAnswers(ctx context.Context, store freqdb.Store, db *freqdb.DB, answers []string) (CommitResult, error) {
	if db == nil {
		return CommitResult{}, fmt.Errorf("commit: nil database")
	}

	merged := db.Merge(answers)
	if err := store.Save(ctx, db); err != nil {
		return CommitResult{}, fmt.Errorf("commit: %w", err)
	}

	return CommitResult{
		Answers:  merged.Added,
		Distinct: merged.Distinct,
		Total:    db.Len(),
	}, nil
}
