// Package aggregate folds per-word scores onto per-cell score maps.
package aggregate

import (
	"math"

	"github.com/heartmarshall/xwstats/internal/domain"
)

// Metric names one of the per-cell maps.
type Metric int

const (
	Rarity Metric = iota
	Novelty
	Crosswordese
)

// Metrics is the fixed iteration order over all maps.
var Metrics = []Metric{Rarity, Novelty, Crosswordese}

func (m Metric) String() string {
	switch m {
	case Rarity:
		return "rarity"
	case Novelty:
		return "novelty"
	case Crosswordese:
		return "crosswordese"
	default:
		return "unknown"
	}
}

// Scores is the score triple of one answer.
type Scores struct {
	Rarity       float64
	Novelty      float64
	Crosswordese float64
}

// Value returns the score for m.
func (s Scores) Value(m Metric) float64 {
	switch m {
	case Rarity:
		return s.Rarity
	case Novelty:
		return s.Novelty
	case Crosswordese:
		return s.Crosswordese
	default:
		return math.NaN()
	}
}

// Scored pairs a span with its scores.
type Scored struct {
	Span   domain.WordSpan
	Scores Scores
}

// ScoreMap is a rows × cols matrix of values; NaN means undefined.
type ScoreMap [][]float64

func newScoreMap(rows, cols int) ScoreMap {
	m := make(ScoreMap, rows)
	for r := range m {
		m[r] = make([]float64, cols)
		for c := range m[r] {
			m[r][c] = math.NaN()
		}
	}
	return m
}

// Maps holds one ScoreMap per metric.
type Maps struct {
	Rows int
	Cols int
	m    [3]ScoreMap
}

// NewMaps returns maps with every cell undefined.
func NewMaps(rows, cols int) *Maps {
	ms := &Maps{Rows: rows, Cols: cols}
	for _, metric := range Metrics {
		ms.m[metric] = newScoreMap(rows, cols)
	}
	return ms
}

// Get returns the map for metric.
func (ms *Maps) Get(metric Metric) ScoreMap { return ms.m[metric] }

// Fold writes the span's scores into every covered cell. A cell that already
// holds a value gets the mean of the old and new value. A cell is covered by
// at most one across and one down span, so the mean is order independent;
// it is not a running average over more contributions.
func (ms *Maps) Fold(span domain.WordSpan, s Scores) {
	for i := range span.Len() {
		row, col := span.Cell(i)
		if row < 0 || row >= ms.Rows || col < 0 || col >= ms.Cols {
			continue
		}
		for _, metric := range Metrics {
			v := s.Value(metric)
			cell := &ms.m[metric][row][col]
			if math.IsNaN(*cell) {
				*cell = v
			} else {
				*cell = (*cell + v) / 2
			}
		}
	}
}

// MaskBlocked forces every blocked cell of g to undefined.
func (ms *Maps) MaskBlocked(g *domain.Grid) {
	for r := 0; r < g.Rows() && r < ms.Rows; r++ {
		for c := 0; c < g.Cols() && c < ms.Cols; c++ {
			if !g.IsBlocked(r, c) {
				continue
			}
			for _, metric := range Metrics {
				ms.m[metric][r][c] = math.NaN()
			}
		}
	}
}

// Aggregate folds all scored spans onto fresh maps sized to g and masks its
// blocked cells.
func Aggregate(g *domain.Grid, scored []Scored) *Maps {
	ms := NewMaps(g.Rows(), g.Cols())
	for _, s := range scored {
		ms.Fold(s.Span, s.Scores)
	}
	ms.MaskBlocked(g)
	return ms
}
