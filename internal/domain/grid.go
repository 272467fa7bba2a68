package domain

import "fmt"

// DefaultBlocked marks a non-playable (black) cell.
const DefaultBlocked = '.'

// Direction is the orientation of an answer in the grid.
type Direction string

const (
	Across Direction = "across"
	Down   Direction = "down"
)

// IsValid reports whether d is one of the known directions.
func (d Direction) IsValid() bool {
	return d == Across || d == Down
}

func (d Direction) String() string { return string(d) }

// Grid is a rectangular crossword grid. It is immutable once created:
// accessors never hand out the underlying rows.
type Grid struct {
	cells   [][]rune
	blocked rune
}

// NewGrid validates rows and builds a Grid. Every row must be non-empty and
// all rows must have the same number of characters.
func NewGrid(rows []string, blocked rune) (*Grid, error) {
	if len(rows) == 0 {
		return nil, &MalformedGridError{Row: -1, Reason: "grid has no rows"}
	}

	cells := make([][]rune, len(rows))
	width := -1
	for i, row := range rows {
		r := []rune(row)
		if len(r) == 0 {
			return nil, &MalformedGridError{Row: i, Reason: "row is empty"}
		}
		if width < 0 {
			width = len(r)
		} else if len(r) != width {
			return nil, &MalformedGridError{
				Row:    i,
				Reason: fmt.Sprintf("row has %d cells, want %d", len(r), width),
			}
		}
		cells[i] = r
	}

	return &Grid{cells: cells, blocked: blocked}, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return len(g.cells) }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return len(g.cells[0]) }

// Blocked returns the blocked-cell marker.
func (g *Grid) Blocked() rune { return g.blocked }

// At returns the character at (row, col).
func (g *Grid) At(row, col int) rune { return g.cells[row][col] }

// IsBlocked reports whether (row, col) is a non-playable cell.
func (g *Grid) IsBlocked(row, col int) bool { return g.cells[row][col] == g.blocked }

// Lines returns a copy of the grid as strings, one per row.
func (g *Grid) Lines() []string {
	out := make([]string, len(g.cells))
	for i, row := range g.cells {
		out[i] = string(row)
	}
	return out
}

// WordSpan is one answer found in a grid: its start cell, orientation and text.
type WordSpan struct {
	Row       int       `json:"row"       yaml:"row"`
	Col       int       `json:"col"       yaml:"col"`
	Direction Direction `json:"direction" yaml:"direction"`
	Text      string    `json:"text"      yaml:"text"`
}

// Len returns the number of cells the span covers.
func (s WordSpan) Len() int { return len([]rune(s.Text)) }

// Cell returns the grid coordinates of the i-th letter of the span.
func (s WordSpan) Cell(i int) (row, col int) {
	if s.Direction == Down {
		return s.Row + i, s.Col
	}
	return s.Row, s.Col + i
}

func (s WordSpan) String() string {
	return fmt.Sprintf("%s@(%d,%d) %s", s.Text, s.Row, s.Col, s.Direction)
}
