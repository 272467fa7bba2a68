package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/heartmarshall/xwstats/internal/analysis"
	"github.com/heartmarshall/xwstats/internal/crosswordese"
)

var (
	recordHeader  = []string{"answer", "row", "col", "direction", "count", "rarity", "novelty", "crosswordese"}
	rankingHeader = []string{"rank", "answer", "count", "rarity", "crosswordese"}
)

func formatScore(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// writeRecordsCSV writes one row per scored answer. Per-cell maps and word
// errors have no tabular form and are left out.
func writeRecordsCSV(w io.Writer, rep *analysis.Report) error {
	rows := make([][]string, 0, len(rep.Records)+1)
	rows = append(rows, recordHeader)
	for _, rec := range rep.Records {
		rows = append(rows, []string{
			rec.Word,
			strconv.Itoa(rec.Span.Row),
			strconv.Itoa(rec.Span.Col),
			rec.Span.Direction.String(),
			strconv.FormatInt(rec.Count, 10),
			formatScore(rec.Rarity),
			formatScore(rec.Novelty),
			formatScore(rec.Crosswordese),
		})
	}
	return writeCSVRows(w, rows)
}

func writeRankingCSV(w io.Writer, ranked []crosswordese.Ranked) error {
	rows := make([][]string, 0, len(ranked)+1)
	rows = append(rows, rankingHeader)
	for _, r := range ranked {
		rows = append(rows, []string{
			strconv.Itoa(r.Rank),
			r.Answer,
			strconv.FormatInt(r.Count, 10),
			formatScore(r.Rarity),
			formatScore(r.Crosswordese),
		})
	}
	return writeCSVRows(w, rows)
}

func writeCSVRows(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("report: write csv: %w", err)
	}
	return nil
}
