// Package puzzle reads crossword grids from disk.
//
// Two sources are supported: NYT-style JSON files
// ({"size":{"rows":R,"cols":C},"grid":[...R*C cells...]}) and plain text with
// one grid row per line.
package puzzle

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/heartmarshall/xwstats/internal/domain"
)

// Size is the declared grid size.
type Size struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// Answers lists the solution words of a puzzle file, when present.
type Answers struct {
	Across []string `json:"across"`
	Down   []string `json:"down"`
}

// All returns across then down answers.
func (a *Answers) All() []string {
	if a == nil {
		return nil
	}
	out := make([]string, 0, len(a.Across)+len(a.Down))
	out = append(out, a.Across...)
	return append(out, a.Down...)
}

// File is a decoded puzzle JSON file.
type File struct {
	Publisher string   `json:"publisher,omitempty"`
	Date      string   `json:"date,omitempty"`
	Size      Size     `json:"size"`
	Grid      []string `json:"grid"`
	Answers   *Answers `json:"answers,omitempty"`
}

// Decode reads a puzzle file from r without validating the grid.
func Decode(r io.Reader) (*File, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("puzzle: decode json: %w", err)
	}
	return &f, nil
}

// Rows reshapes the flat cell list into rows. Rebus cells holding several
// letters keep their first letter.
func (f *File) Rows() ([]string, error) {
	if f.Size.Rows <= 0 || f.Size.Cols <= 0 {
		return nil, &domain.MalformedGridError{
			Row:    -1,
			Reason: fmt.Sprintf("invalid size %dx%d", f.Size.Rows, f.Size.Cols),
		}
	}
	if want := f.Size.Rows * f.Size.Cols; len(f.Grid) != want {
		return nil, &domain.MalformedGridError{
			Row:    -1,
			Reason: fmt.Sprintf("grid has %d cells, size %dx%d needs %d", len(f.Grid), f.Size.Rows, f.Size.Cols, want),
		}
	}

	rows := make([]string, f.Size.Rows)
	for r := range rows {
		var b strings.Builder
		for c := range f.Size.Cols {
			cell := []rune(f.Grid[r*f.Size.Cols+c])
			if len(cell) == 0 {
				return nil, &domain.MalformedGridError{Row: r, Reason: fmt.Sprintf("cell %d is empty", c)}
			}
			b.WriteRune(cell[0])
		}
		rows[r] = b.String()
	}
	return rows, nil
}

// ToGrid validates the file and builds a Grid.
func (f *File) ToGrid(blocked rune) (*domain.Grid, error) {
	rows, err := f.Rows()
	if err != nil {
		return nil, err
	}
	return domain.NewGrid(rows, blocked)
}

// LoadFile reads and decodes a puzzle JSON file.
func LoadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("puzzle: %w", err)
	}
	defer fh.Close()

	f, err := Decode(fh)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return f, nil
}

// LoadJSON reads a puzzle JSON file and returns its grid.
func LoadJSON(path string, blocked rune) (*domain.Grid, error) {
	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return f.ToGrid(blocked)
}

// ParseText reads one grid row per line. Blank lines and surrounding
// whitespace are ignored.
func ParseText(r io.Reader, blocked rune) (*domain.Grid, error) {
	var rows []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("puzzle: read text grid: %w", err)
	}
	return domain.NewGrid(rows, blocked)
}

// LoadGrid reads a grid from path, choosing the format by extension:
// .json files are puzzle JSON, anything else is plain text.
func LoadGrid(path string, blocked rune) (*domain.Grid, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return LoadJSON(path, blocked)
	}

	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("puzzle: %w", err)
	}
	defer fh.Close()
	return ParseText(fh, blocked)
}
