// Package novelty scores how unfamiliar an answer is to the puzzle corpus:
// 1.0 means never seen before, 0.0 means the most frequently seen answer.
package novelty

import (
	"math"
	"strings"

	"github.com/heartmarshall/xwstats/internal/domain"
	"github.com/heartmarshall/xwstats/internal/freqdb"
)

// Algorithm names.
const (
	Linear      = "linear"
	Logarithmic = "log"
)

var aliases = map[string]string{
	"logarithmic": Logarithmic,
}

// Func scores a word against a frequency database.
type Func func(word string, db *freqdb.DB) float64

// Params configures the scorers.
type Params struct {
	// Epsilon keeps linear normalization finite when min == max.
	Epsilon float64
	// LogBase is the logarithm base of the logarithmic scorer.
	LogBase float64
	// Unseen is the score of answers missing from the database.
	Unseen float64
}

// DefaultParams returns the standard parameters.
func DefaultParams() Params {
	return Params{Epsilon: 1e-6, LogBase: 5, Unseen: 1.0}
}

// Names lists the registered scorers.
func Names() []string {
	return []string{Linear, Logarithmic}
}

// Canonical resolves aliases to a registered name.
func Canonical(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if c, ok := aliases[name]; ok {
		return c
	}
	return name
}

// New selects a scorer by name.
func New(name string, params Params) (Func, error) {
	if params.LogBase <= 1 {
		return nil, domain.NewValidationError("log_base", "must be > 1")
	}
	if params.Epsilon <= 0 {
		return nil, domain.NewValidationError("epsilon", "must be > 0")
	}

	switch Canonical(name) {
	case Linear:
		return func(word string, db *freqdb.DB) float64 { return linear(word, db, params) }, nil
	case Logarithmic:
		return func(word string, db *freqdb.DB) float64 { return logarithmic(word, db, params) }, nil
	default:
		return nil, &domain.UnknownAlgorithmError{Kind: "novelty", Name: name, Known: Names()}
	}
}

func linear(word string, db *freqdb.DB, p Params) float64 {
	count, ok := db.Count(word)
	if !ok {
		return p.Unseen
	}
	stats, _ := db.Stats()

	n := 1 - float64(count-stats.Min)/(float64(stats.Max-stats.Min)+p.Epsilon)
	return domain.RoundScore(clamp01(n))
}

func logarithmic(word string, db *freqdb.DB, p Params) float64 {
	count, ok := db.Count(word)
	if !ok {
		return p.Unseen
	}
	stats, _ := db.Stats()

	logOf := func(c int64) float64 { return math.Log(float64(c)+1) / math.Log(p.LogBase) }
	lo, hi := logOf(stats.Min), logOf(stats.Max)
	if hi == lo {
		// Every known answer is equally common: treat them as maximally common.
		return 0
	}

	n := 1 - (logOf(count)-lo)/(hi-lo)
	return domain.RoundScore(clamp01(n))
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
