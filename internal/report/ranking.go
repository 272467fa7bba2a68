package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/heartmarshall/xwstats/internal/crosswordese"
)

// WriteRanking renders a crosswordese ranking. Heatmap falls back to text.
func WriteRanking(w io.Writer, ranked []crosswordese.Ranked, format Format) error {
	if ranked == nil {
		ranked = []crosswordese.Ranked{}
	}

	switch format {
	case FormatJSON:
		return encodeJSON(w, ranked)
	case FormatYAML:
		return encodeYAML(w, ranked)
	case FormatCSV:
		return writeRankingCSV(w, ranked)
	case FormatText, FormatHeatmap, "":
	default:
		_, err := ParseFormat(string(format))
		return err
	}

	if len(ranked) == 0 {
		_, err := io.WriteString(w, "No answers in the frequency database.\n")
		return err
	}

	rows := make([][]string, 0, len(ranked))
	for _, r := range ranked {
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.Rank),
			r.Answer,
			fmt.Sprintf("%d", r.Count),
			fmt.Sprintf("%.3f", r.Rarity),
			fmt.Sprintf("%.3f", r.Crosswordese),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("RANK", "ANSWER", "SEEN", "RARITY", "XWORDESE").
		Rows(rows...)

	_, err := fmt.Fprintln(w, t.String())
	return err
}
