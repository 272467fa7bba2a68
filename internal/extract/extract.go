// Package extract finds the answers (maximal runs of playable cells) in a grid.
// Pure functions: grid in, spans out.
package extract

import (
	"github.com/heartmarshall/xwstats/internal/domain"
)

// minSpanLen is the shortest run that counts as an answer. Single letters are
// not crossword answers and are dropped silently.
const minSpanLen = 2

// Across returns the across spans in row-major order.
func Across(g *domain.Grid) []domain.WordSpan {
	var spans []domain.WordSpan
	for r := 0; r < g.Rows(); r++ {
		spans = scanLine(spans, g, domain.Across, g.Cols(), func(i int) (int, int) { return r, i })
	}
	return spans
}

// Down returns the down spans in column-major order.
func Down(g *domain.Grid) []domain.WordSpan {
	var spans []domain.WordSpan
	for c := 0; c < g.Cols(); c++ {
		spans = scanLine(spans, g, domain.Down, g.Rows(), func(i int) (int, int) { return i, c })
	}
	return spans
}

// All returns across spans followed by down spans.
func All(g *domain.Grid) []domain.WordSpan {
	across := Across(g)
	down := Down(g)
	out := make([]domain.WordSpan, 0, len(across)+len(down))
	out = append(out, across...)
	return append(out, down...)
}

// FromRows validates rows into a grid and extracts every span.
func FromRows(rows []string, blocked rune) (*domain.Grid, []domain.WordSpan, error) {
	g, err := domain.NewGrid(rows, blocked)
	if err != nil {
		return nil, nil, err
	}
	return g, All(g), nil
}

// scanLine walks one row or column. Position length is treated as a blocked
// sentinel so the final run is flushed.
func scanLine(
	spans []domain.WordSpan,
	g *domain.Grid,
	dir domain.Direction,
	length int,
	cell func(i int) (row, col int),
) []domain.WordSpan {
	var run []rune
	for i := 0; i <= length; i++ {
		blocked := i == length
		var ch rune
		if !blocked {
			r, c := cell(i)
			ch = g.At(r, c)
			blocked = ch == g.Blocked()
		}

		if !blocked {
			run = append(run, ch)
			continue
		}

		if len(run) >= minSpanLen {
			r, c := cell(i - len(run))
			spans = append(spans, domain.WordSpan{
				Row:       r,
				Col:       c,
				Direction: dir,
				Text:      string(run),
			})
		}
		run = run[:0]
	}
	return spans
}
