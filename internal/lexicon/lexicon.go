// Package lexicon provides general-English word frequencies on the Zipf scale
// (log10 of occurrences per billion words: ~1 rare, ~7 very common, 0 unknown)
// and a frequency-driven segmenter for answers written without spaces.
package lexicon

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/heartmarshall/xwstats/internal/domain"
)

//go:embed data/en_zipf.tsv
var bundledTable string

// Table answers language-frequency queries.
type Table interface {
	// Zipf returns the Zipf frequency of word, or 0 if it is unknown.
	Zipf(word string) float64
}

// FreqTable is an in-memory Table. Safe for concurrent reads.
type FreqTable struct {
	zipf  map[string]float64
	ranks []string // words by descending frequency
}

// NewFreqTable builds a table from a word → Zipf mapping. Keys are normalized.
func NewFreqTable(entries map[string]float64) *FreqTable {
	t := &FreqTable{zipf: make(map[string]float64, len(entries))}
	for w, z := range entries {
		w = domain.NormalizeWord(w)
		if w == "" || z <= 0 {
			continue
		}
		if old, ok := t.zipf[w]; !ok || z > old {
			t.zipf[w] = z
		}
	}

	t.ranks = make([]string, 0, len(t.zipf))
	for w := range t.zipf {
		t.ranks = append(t.ranks, w)
	}
	sort.Slice(t.ranks, func(i, j int) bool {
		zi, zj := t.zipf[t.ranks[i]], t.zipf[t.ranks[j]]
		if zi != zj {
			return zi > zj
		}
		return t.ranks[i] < t.ranks[j]
	})
	return t
}

// Zipf implements Table.
func (t *FreqTable) Zipf(word string) float64 {
	return t.zipf[domain.NormalizeWord(word)]
}

// Len returns the number of known words.
func (t *FreqTable) Len() int { return len(t.zipf) }

// Ranked returns the known words ordered by descending frequency.
func (t *FreqTable) Ranked() []string {
	out := make([]string, len(t.ranks))
	copy(out, t.ranks)
	return out
}

// Bundled returns the small table compiled into the binary.
func Bundled() *FreqTable {
	t, err := Parse(strings.NewReader(bundledTable))
	if err != nil {
		panic(fmt.Sprintf("lexicon: bundled table is invalid: %v", err))
	}
	return t
}

// Load reads a table from path. An empty path returns the bundled table.
func Load(path string) (*FreqTable, error) {
	if path == "" {
		return Bundled(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lexicon: %w", err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse lexicon %s: %w", path, err)
	}
	return t, nil
}

// Parse reads "word<TAB>zipf" lines. Comma- or space-separated lines are also
// accepted (the frequency is the last field). Blank lines and lines starting
// with '#' are skipped.
func Parse(r io.Reader) (*FreqTable, error) {
	entries := make(map[string]float64)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		word, freq, ok := splitLine(line)
		if !ok {
			return nil, fmt.Errorf("line %d: expected word and frequency", lineNo)
		}
		z, err := strconv.ParseFloat(freq, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: frequency %q: %w", lineNo, freq, err)
		}
		if z < 0 {
			return nil, fmt.Errorf("line %d: frequency must be >= 0 (got %v)", lineNo, z)
		}
		entries[word] = z
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}

	return NewFreqTable(entries), nil
}

func splitLine(line string) (word, freq string, ok bool) {
	if i := strings.LastIndexByte(line, '\t'); i > 0 {
		return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:]), true
	}
	if i := strings.LastIndexByte(line, ','); i > 0 {
		return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:]), true
	}
	if i := strings.LastIndexByte(line, ' '); i > 0 {
		return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:]), true
	}
	return "", "", false
}
