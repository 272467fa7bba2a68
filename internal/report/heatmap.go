package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"github.com/heartmarshall/xwstats/internal/aggregate"
	"github.com/heartmarshall/xwstats/internal/analysis"
	"github.com/heartmarshall/xwstats/internal/domain"
)

// HeatmapOptions tunes heatmap rendering.
type HeatmapOptions struct {
	// ForceColor renders true-colour escapes even when w is not a terminal.
	ForceColor bool
	// NoColor renders plain letters. It wins over ForceColor.
	NoColor bool
}

var (
	heatLow  = colorful.Color{R: 1.0, G: 0.961, B: 0.922}   // #fff5eb
	heatHigh = colorful.Color{R: 0.498, G: 0.153, B: 0.016} // #7f2704
)

// WriteHeatmap renders each metric map as a coloured grid: the answer's
// letters on a background shaded from the map's minimum to its maximum.
func WriteHeatmap(w io.Writer, rep *analysis.Report, g *domain.Grid, opts HeatmapOptions) error {
	return writeHeatmap(w, rep, g, opts)
}

func writeHeatmap(w io.Writer, rep *analysis.Report, g *domain.Grid, opts HeatmapOptions) error {
	if rep.Maps == nil {
		return writeText(w, rep, g)
	}

	r := lipgloss.NewRenderer(w)
	switch {
	case opts.NoColor:
		r.SetColorProfile(termenv.Ascii)
	case opts.ForceColor:
		r.SetColorProfile(termenv.TrueColor)
	}

	title := r.NewStyle().Bold(true)
	blocked := r.NewStyle().Background(lipgloss.Color("#000000")).Foreground(lipgloss.Color("#000000"))
	undefined := r.NewStyle().Foreground(lipgloss.Color("#888888"))

	var b strings.Builder
	for i, metric := range aggregate.Metrics {
		if i > 0 {
			b.WriteString("\n")
		}
		m := rep.Maps.Get(metric)
		lo, hi := bounds(m)

		b.WriteString(title.Render(fmt.Sprintf("%s (%.3f to %.3f)", metricTitle(metric), lo, hi)))
		b.WriteString("\n")

		for row := range g.Rows() {
			for col := range g.Cols() {
				letter := " " + string(g.At(row, col)) + " "
				v := m[row][col]
				switch {
				case g.IsBlocked(row, col):
					b.WriteString(blocked.Render("   "))
				case math.IsNaN(v):
					b.WriteString(undefined.Render(letter))
				default:
					t := shade(v, lo, hi)
					fg := "#000000"
					if t > 0.5 {
						fg = "#ffffff"
					}
					style := r.NewStyle().
						Background(lipgloss.Color(heatLow.BlendLab(heatHigh, t).Clamped().Hex())).
						Foreground(lipgloss.Color(fg))
					b.WriteString(style.Render(letter))
				}
			}
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// bounds returns the smallest and largest defined value of m.
func bounds(m aggregate.ScoreMap) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range m {
		for _, v := range row {
			if math.IsNaN(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 0
	}
	return lo, hi
}

// shade maps v into [0,1] between lo and hi.
func shade(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0.5
	}
	return (v - lo) / (hi - lo)
}
