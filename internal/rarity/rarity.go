// Package rarity scores how rare a word is in general English ("stretch").
// Scores are 7 − Zipf frequency: higher is rarer, nominally 0–7.
//
// Several interchangeable algorithms are available by name:
//
//   - unsplit: the word taken as one token.
//   - split_avg: also segments run-together phrases ("icecream" → "ice cream")
//     and uses the mean token frequency when that is higher.
//   - split_penalty: like split_avg, but the split frequency is reduced by a
//     fixed penalty so single words win unless the split signal is strong.
//   - split_wiki: like split_avg, but both forms are weighted up or down by
//     whether an encyclopedia article exists for them.
package rarity

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/xwstats/internal/domain"
	"github.com/heartmarshall/xwstats/internal/lexicon"
)

// Algorithm names.
const (
	Unsplit      = "unsplit"
	SplitAverage = "split_avg"
	SplitPenalty = "split_penalty"
	SplitWiki    = "split_wiki"
)

// aliases maps accepted alternative spellings to canonical names.
var aliases = map[string]string{
	"split_average": SplitAverage,
	"single":        Unsplit,
}

// Func scores one word. Errors are per word and never abort a whole analysis.
type Func func(ctx context.Context, word string) (float64, error)

// Segmenter splits run-together text into tokens.
type Segmenter interface {
	Split(text string) []string
}

// Lookup reports whether an encyclopedia article exists for a title.
// A non-nil error means the lookup itself failed, not that the article is missing.
type Lookup interface {
	Exists(ctx context.Context, title string) (bool, error)
}

// Deps are the collaborators an algorithm may need.
type Deps struct {
	Table     lexicon.Table
	Segmenter Segmenter // required by split_* algorithms
	Wiki      Lookup    // required by split_wiki
	Logger    *slog.Logger
}

// Params holds the tuning constants of the split algorithms.
type Params struct {
	SplitPenalty float64 // subtracted from the split frequency by split_penalty
	WikiBoost    float64 // frequency multiplier when an article exists
	WikiDiscount float64 // frequency multiplier when no article exists
}

// DefaultParams returns the standard tuning constants.
func DefaultParams() Params {
	return Params{SplitPenalty: 0.2, WikiBoost: 1.2, WikiDiscount: 0.8}
}

// Names lists the registered algorithms in a stable order.
func Names() []string {
	return []string{SplitAverage, Unsplit, SplitPenalty, SplitWiki}
}

// Canonical resolves aliases to a registered name. Unknown names are returned unchanged.
func Canonical(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if c, ok := aliases[name]; ok {
		return c
	}
	return name
}

// New selects an algorithm by name. Unknown names fail with
// *domain.UnknownAlgorithmError; there is no fallback.
func New(name string, deps Deps, params Params) (Func, error) {
	if deps.Table == nil {
		return nil, domain.NewValidationError("table", "a frequency table is required")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	s := &scorer{deps: deps, params: params, log: deps.Logger.With("component", "rarity")}

	switch Canonical(name) {
	case Unsplit:
		return s.unsplit, nil
	case SplitAverage:
		if deps.Segmenter == nil {
			return nil, domain.NewValidationError("segmenter", name+" requires a segmenter")
		}
		return s.splitAverage, nil
	case SplitPenalty:
		if deps.Segmenter == nil {
			return nil, domain.NewValidationError("segmenter", name+" requires a segmenter")
		}
		return s.splitPenalty, nil
	case SplitWiki:
		if deps.Segmenter == nil {
			return nil, domain.NewValidationError("segmenter", name+" requires a segmenter")
		}
		if deps.Wiki == nil {
			return nil, domain.NewValidationError("wiki", name+" requires an encyclopedia lookup")
		}
		return s.splitWiki, nil
	default:
		return nil, &domain.UnknownAlgorithmError{Kind: "rarity", Name: name, Known: Names()}
	}
}

// FromZipf converts a language frequency into a rarity score.
func FromZipf(zipf float64) float64 {
	return domain.RoundScore(domain.MaxZipf - zipf)
}

// ToZipf converts a rarity score back into an estimated language frequency.
func ToZipf(rarity float64) float64 {
	return domain.MaxZipf - rarity
}

type scorer struct {
	deps   Deps
	params Params
	log    *slog.Logger
}

func prepare(word string) (string, error) {
	w := domain.NormalizeWord(word)
	if !domain.HasLetter(w) {
		return "", fmt.Errorf("%w: %q has no letters", domain.ErrInvalidWord, word)
	}
	return w, nil
}

// split returns the segmentation of w and the mean Zipf frequency of its
// tokens. ok is false when w does not split into two or more tokens.
func (s *scorer) split(w string) (tokens []string, mean float64, ok bool) {
	tokens = s.deps.Segmenter.Split(w)
	if len(tokens) < 2 {
		return tokens, 0, false
	}
	var sum float64
	for _, tok := range tokens {
		sum += s.deps.Table.Zipf(tok)
	}
	return tokens, sum / float64(len(tokens)), true
}

func (s *scorer) unsplit(_ context.Context, word string) (float64, error) {
	w, err := prepare(word)
	if err != nil {
		return 0, err
	}
	return FromZipf(s.deps.Table.Zipf(w)), nil
}

func (s *scorer) splitAverage(ctx context.Context, word string) (float64, error) {
	return s.splitWithPenalty(ctx, word, 0)
}

func (s *scorer) splitPenalty(ctx context.Context, word string) (float64, error) {
	return s.splitWithPenalty(ctx, word, s.params.SplitPenalty)
}

func (s *scorer) splitWithPenalty(ctx context.Context, word string, penalty float64) (float64, error) {
	w, err := prepare(word)
	if err != nil {
		return 0, err
	}

	best := s.deps.Table.Zipf(w)
	tokens, mean, ok := s.split(w)
	usedSplit := false
	if ok && mean-penalty > best {
		best = mean - penalty
		usedSplit = true
	}

	rarity := FromZipf(best)
	s.log.DebugContext(ctx, "rarity scored",
		slog.String("word", w),
		slog.String("tokens", strings.Join(tokens, " ")),
		slog.Bool("used_split", usedSplit),
		slog.Float64("rarity", rarity),
	)
	return rarity, nil
}

func (s *scorer) splitWiki(ctx context.Context, word string) (float64, error) {
	w, err := prepare(word)
	if err != nil {
		return 0, err
	}

	unsplitFreq := s.deps.Table.Zipf(w) * s.weight(ctx, w)

	best := unsplitFreq
	tokens, mean, ok := s.split(w)
	usedSplit := false
	if ok {
		splitFreq := mean * s.weight(ctx, strings.Join(tokens, " "))
		if splitFreq > best {
			best = splitFreq
			usedSplit = true
		}
	}

	rarity := FromZipf(best)
	s.log.DebugContext(ctx, "rarity scored",
		slog.String("word", w),
		slog.String("tokens", strings.Join(tokens, " ")),
		slog.Bool("used_split", usedSplit),
		slog.Float64("rarity", rarity),
	)
	return rarity, nil
}

// weight returns the boost or discount for title. A failed lookup counts as
// "no article" so the analysis carries on with the discounted score.
func (s *scorer) weight(ctx context.Context, title string) float64 {
	exists, err := s.deps.Wiki.Exists(ctx, title)
	if err != nil {
		s.log.WarnContext(ctx, "wiki lookup failed, treating as not found",
			slog.String("title", title),
			slog.String("error", err.Error()),
		)
		return s.params.WikiDiscount
	}
	if !exists {
		s.log.DebugContext(ctx, "wiki article not found", slog.String("title", title))
		return s.params.WikiDiscount
	}
	return s.params.WikiBoost
}

