package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/heartmarshall/xwstats/internal/aggregate"
	"github.com/heartmarshall/xwstats/internal/crosswordese"
	"github.com/heartmarshall/xwstats/internal/domain"
	"github.com/heartmarshall/xwstats/internal/extract"
	"github.com/heartmarshall/xwstats/internal/freqdb"
	"github.com/heartmarshall/xwstats/pkg/ctxutil"
)

const summaryTopN = 3

// Analyze scores every answer of g against db. A failure to score one answer
// is recorded in Report.WordErrors and that answer contributes nothing to the
// maps; only cancellation aborts the run. db is read, never modified.
func (a *Analyzer) Analyze(ctx context.Context, g *domain.Grid, db *freqdb.DB) (*Report, error) {
	if g == nil {
		return nil, &domain.MalformedGridError{Row: -1, Reason: "grid is nil"}
	}
	if db == nil {
		db = freqdb.New()
	}

	runID := uuid.New()
	ctx = ctxutil.WithRunID(ctx, runID)

	spans := extract.All(g)
	stats, _ := db.Stats()

	report := &Report{
		RunID:      runID,
		Algorithms: a.algorithms,
		Answers:    make([]string, 0, len(spans)),
	}
	scored := make([]aggregate.Scored, 0, len(spans))

	for _, span := range spans {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("analyze: %w", err)
		}
		report.Answers = append(report.Answers, span.Text)

		r, err := a.rarity(ctx, span.Text)
		if err != nil {
			a.log.WarnContext(ctx, "answer not scored",
				slog.String("answer", span.String()),
				slog.String("error", err.Error()),
			)
			report.WordErrors = append(report.WordErrors, &domain.WordError{Word: span.Text, Err: err})
			continue
		}

		lr := r
		if a.language != nil {
			if lr, err = a.language(ctx, span.Text); err != nil {
				a.log.WarnContext(ctx, "answer not scored",
					slog.String("answer", span.String()),
					slog.String("error", err.Error()),
				)
				report.WordErrors = append(report.WordErrors, &domain.WordError{Word: span.Text, Err: err})
				continue
			}
		}

		n := a.novelty(span.Text, db)
		count, _ := db.Count(span.Text)
		xw := a.crosswordese(crosswordese.Input{
			Word:    span.Text,
			Rarity:  lr,
			Novelty: n,
			Count:   count,
			Total:   stats.Total,
		})

		report.Records = append(report.Records, ScoreRecord{
			Span:         span,
			Word:         span.Text,
			Rarity:       r,
			Novelty:      n,
			Crosswordese: xw,
			Count:        count,
		})
		scored = append(scored, aggregate.Scored{
			Span:   span,
			Scores: aggregate.Scores{Rarity: r, Novelty: n, Crosswordese: xw},
		})
	}

	report.Maps = aggregate.Aggregate(g, scored)
	report.Summary = summarize(report.Records)

	a.log.InfoContext(ctx, "analysis complete",
		slog.Int("answers", len(spans)),
		slog.Int("scored", len(report.Records)),
		slog.Int("word_errors", len(report.WordErrors)),
		slog.String("rarity", a.algorithms.Rarity),
		slog.String("novelty", a.algorithms.Novelty),
		slog.String("crosswordese", a.algorithms.Crosswordese),
	)
	return report, nil
}

func summarize(records []ScoreRecord) Summary {
	if len(records) == 0 {
		return Summary{}
	}

	byNovelty := make([]ScoreRecord, len(records))
	copy(byNovelty, records)
	sort.SliceStable(byNovelty, func(i, j int) bool {
		return byNovelty[i].Novelty > byNovelty[j].Novelty
	})
	if len(byNovelty) > summaryTopN {
		byNovelty = byNovelty[:summaryTopN]
	}

	hardest, mostXW := records[0], records[0]
	for _, rec := range records[1:] {
		if rec.Rarity > hardest.Rarity {
			hardest = rec
		}
		if rec.Crosswordese > mostXW.Crosswordese {
			mostXW = rec
		}
	}

	return Summary{
		MostNovel:        byNovelty,
		Hardest:          &hardest,
		MostCrosswordese: &mostXW,
	}
}
