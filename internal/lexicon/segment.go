package lexicon

import (
	"math"
	"unicode/utf8"
)

// unknownCost is charged for a chunk that is not a known word. It dwarfs any
// known-word cost, so a segmentation is only chosen when every piece is known;
// otherwise the whole word comes back as a single token.
const unknownCost = 1e9

// Segmenter splits run-together text into the most probable word sequence,
// assuming word frequencies follow Zipf's law: the word at rank r costs
// log((r+1)·log N). The cheapest segmentation is found by dynamic programming.
type Segmenter struct {
	cost    map[string]float64
	maxWord int
}

// NewSegmenter builds a segmenter from words ordered by descending frequency.
func NewSegmenter(ranked []string) *Segmenter {
	s := &Segmenter{cost: make(map[string]float64, len(ranked))}
	n := float64(len(ranked))
	logN := math.Log(math.Max(n, 2))
	for i, w := range ranked {
		if _, dup := s.cost[w]; dup {
			continue
		}
		s.cost[w] = math.Log(float64(i+1) * logN)
		if l := utf8.RuneCountInString(w); l > s.maxWord {
			s.maxWord = l
		}
	}
	return s
}

// SegmenterFor builds a segmenter over the words of t.
func SegmenterFor(t *FreqTable) *Segmenter {
	return NewSegmenter(t.Ranked())
}

// Split returns the cheapest segmentation of text (expected lower-case).
// Text that cannot be covered by known words is returned as one token.
func (s *Segmenter) Split(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	// best[i] is the cheapest cost of runes[:i]; back[i] the length of its last token.
	best := make([]float64, len(runes)+1)
	back := make([]int, len(runes)+1)
	for i := 1; i <= len(runes); i++ {
		best[i] = math.Inf(1)
		for k := 1; k <= i; k++ {
			c, known := 0.0, false
			if k <= s.maxWord {
				c, known = s.cost[string(runes[i-k:i])]
			}
			if !known {
				if k != i {
					continue
				}
				c = unknownCost
			}
			// Ties prefer the longer token (fewer pieces).
			if total := best[i-k] + c; total < best[i] || (total == best[i] && k > back[i]) {
				best[i] = total
				back[i] = k
			}
		}
	}

	var tokens []string
	for i := len(runes); i > 0; i -= back[i] {
		tokens = append(tokens, string(runes[i-back[i]:i]))
	}
	for l, r := 0, len(tokens)-1; l < r; l, r = l+1, r-1 {
		tokens[l], tokens[r] = tokens[r], tokens[l]
	}
	return tokens
}
