// Package report renders analysis results as text, JSON, YAML, CSV or a
// terminal heatmap.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/xwstats/internal/aggregate"
	"github.com/heartmarshall/xwstats/internal/analysis"
	"github.com/heartmarshall/xwstats/internal/domain"
)

// Format selects the output encoding.
type Format string

const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatHeatmap Format = "heatmap"
	FormatCSV     Format = "csv"
)

// Formats lists the accepted formats.
func Formats() []string {
	return []string{string(FormatText), string(FormatJSON), string(FormatYAML), string(FormatCSV), string(FormatHeatmap)}
}

// ParseFormat resolves a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatText, FormatJSON, FormatYAML, FormatCSV, FormatHeatmap:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", domain.NewValidationError("format",
			fmt.Sprintf("unknown format %q (known: %s)", s, strings.Join(Formats(), ", ")))
	}
}

// Write renders rep for grid g to w.
func Write(w io.Writer, rep *analysis.Report, g *domain.Grid, format Format) error {
	switch format {
	case FormatJSON:
		return encodeJSON(w, NewDocument(rep, g))
	case FormatYAML:
		return encodeYAML(w, NewDocument(rep, g))
	case FormatCSV:
		return writeRecordsCSV(w, rep)
	case FormatHeatmap:
		return writeHeatmap(w, rep, g, HeatmapOptions{})
	case FormatText, "":
		return writeText(w, rep, g)
	default:
		_, err := ParseFormat(string(format))
		return err
	}
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("report: encode json: %w", err)
	}
	return nil
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("report: encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("report: encode yaml: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Text
// ---------------------------------------------------------------------------

const (
	cellBlocked   = "#"
	cellUndefined = "-"
	cellWidth     = 7
)

func writeText(w io.Writer, rep *analysis.Report, g *domain.Grid) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Run %s\n", rep.RunID)
	fmt.Fprintf(&b, "Algorithms: rarity=%s novelty=%s crosswordese=%s\n\n",
		rep.Algorithms.Rarity, rep.Algorithms.Novelty, rep.Algorithms.Crosswordese)

	b.WriteString(wordTable(rep.Records))
	b.WriteString("\n")

	if len(rep.WordErrors) > 0 {
		b.WriteString("\nNot scored:\n")
		for _, we := range rep.WordErrors {
			fmt.Fprintf(&b, "  %s: %v\n", we.Word, we.Err)
		}
	}

	writeSummary(&b, rep.Summary)

	if rep.Maps != nil {
		for _, metric := range aggregate.Metrics {
			fmt.Fprintf(&b, "\n%s map:\n", metricTitle(metric))
			writeMatrix(&b, rep.Maps.Get(metric), g)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func wordTable(records []analysis.ScoreRecord) string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.Word,
			fmt.Sprintf("(%d,%d)", rec.Span.Row, rec.Span.Col),
			rec.Span.Direction.String(),
			fmt.Sprintf("%.3f", rec.Rarity),
			fmt.Sprintf("%.3f", rec.Novelty),
			fmt.Sprintf("%.3f", rec.Crosswordese),
			fmt.Sprintf("%d", rec.Count),
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("WORD", "START", "DIR", "RARITY", "NOVELTY", "XWORDESE", "SEEN").
		Rows(rows...).
		String()
}

func writeSummary(b *strings.Builder, s analysis.Summary) {
	if s.Hardest == nil {
		return
	}
	b.WriteString("\nMost novel:")
	for _, rec := range s.MostNovel {
		fmt.Fprintf(b, " %s (%.3f)", rec.Word, rec.Novelty)
	}
	fmt.Fprintf(b, "\nHardest: %s (%.3f)\n", s.Hardest.Word, s.Hardest.Rarity)
	fmt.Fprintf(b, "Most crosswordese: %s (%.3f)\n", s.MostCrosswordese.Word, s.MostCrosswordese.Crosswordese)
}

func writeMatrix(b *strings.Builder, m aggregate.ScoreMap, g *domain.Grid) {
	for r, row := range m {
		for c, v := range row {
			switch {
			case g != nil && g.IsBlocked(r, c):
				fmt.Fprintf(b, "%*s", cellWidth, cellBlocked)
			case math.IsNaN(v):
				fmt.Fprintf(b, "%*s", cellWidth, cellUndefined)
			default:
				fmt.Fprintf(b, "%*.3f", cellWidth, v)
			}
		}
		b.WriteString("\n")
	}
}

func metricTitle(m aggregate.Metric) string {
	s := m.String()
	return strings.ToUpper(s[:1]) + s[1:]
}
