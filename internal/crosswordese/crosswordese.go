// Package crosswordese scores how overrepresented an answer is in puzzles
// relative to general English.
//
// Two formulations exist and one is chosen per run:
//
//   - ratio: log10 of (corpus share / estimated language frequency), shifted
//     up so typical values are positive. Answers with no language frequency
//     at all get the ceiling value.
//   - product: min(rarity/7, 1) × (1 − novelty). An answer is crosswordese only
//     when it is both rare in English and familiar to the puzzle corpus.
package crosswordese

import (
	"fmt"
	"math"
	"strings"

	"github.com/heartmarshall/xwstats/internal/domain"
	"github.com/heartmarshall/xwstats/internal/rarity"
)

// Mode selects the formulation.
type Mode string

const (
	ModeRatio   Mode = "ratio"
	ModeProduct Mode = "product"
)

// Modes lists the accepted formulations.
func Modes() []string {
	return []string{string(ModeRatio), string(ModeProduct)}
}

// ParseMode resolves a configuration value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeRatio:
		return ModeRatio, nil
	case ModeProduct:
		return ModeProduct, nil
	default:
		return "", &domain.UnknownAlgorithmError{Kind: "crosswordese", Name: s, Known: Modes()}
	}
}

// Language selects which rarity the ratio form turns into a language
// frequency when scoring a grid.
type Language string

const (
	// LanguageUnsplit uses the whole answer's own frequency, so answers the
	// word list lacks get the ceiling even when they split into known words.
	LanguageUnsplit Language = "unsplit"
	// LanguageRarity reuses the run's selected rarity algorithm.
	LanguageRarity Language = "rarity"
)

// Languages lists the accepted language settings.
func Languages() []string {
	return []string{string(LanguageUnsplit), string(LanguageRarity)}
}

// ParseLanguage resolves a configuration value to a Language. Empty means
// LanguageUnsplit.
func ParseLanguage(s string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case LanguageUnsplit, "":
		return LanguageUnsplit, nil
	case LanguageRarity:
		return LanguageRarity, nil
	default:
		return "", domain.NewValidationError("scoring.crosswordese_language",
			fmt.Sprintf("unknown value %q (known: %s)", s, strings.Join(Languages(), ", ")))
	}
}

// Params holds the ratio-form constants.
type Params struct {
	Shift   float64 // added to the log ratio
	Ceiling float64 // score for answers with zero language frequency
	Floor   float64 // added inside the log to keep it finite
}

// DefaultParams returns the standard constants.
func DefaultParams() Params {
	return Params{Shift: 6, Ceiling: 7, Floor: 1e-12}
}

// Input carries everything either formulation may need for one answer.
type Input struct {
	Word    string
	Rarity  float64 // language frequency source in ratio form
	Novelty float64
	Count   int64 // occurrences in the puzzle corpus
	Total   int64 // sum of all corpus counts
}

// Func scores one answer.
type Func func(in Input) float64

// New returns the scorer for mode.
func New(mode Mode, params Params) (Func, error) {
	switch mode {
	case ModeRatio:
		return func(in Input) float64 { return ratio(in, params) }, nil
	case ModeProduct:
		return product, nil
	default:
		return nil, &domain.UnknownAlgorithmError{Kind: "crosswordese", Name: string(mode), Known: Modes()}
	}
}

// LanguageFrequency converts a rarity score to an estimated probability of
// the word in running English text.
func LanguageFrequency(r float64) float64 {
	zipf := rarity.ToZipf(r)
	if zipf <= 0 {
		return 0
	}
	return math.Pow(10, zipf-6)
}

func ratio(in Input, p Params) float64 {
	lang := LanguageFrequency(in.Rarity)
	if lang == 0 {
		return p.Ceiling
	}

	total := in.Total
	if total <= 0 {
		total = 1
	}
	corpus := float64(in.Count) / float64(total)

	return domain.RoundScore(math.Log10(corpus/lang+p.Floor) + p.Shift)
}

func product(in Input) float64 {
	r := math.Min(math.Max(in.Rarity, 0)/domain.MaxZipf, 1)
	return domain.RoundScore(r * (1 - in.Novelty))
}
