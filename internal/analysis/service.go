// Package analysis runs the scoring pipeline over one grid: extract answers,
// score each one, and fold the scores onto per-cell maps. Merging the
// answers into the frequency database is a separate, explicit step.
package analysis

import (
	"log/slog"

	"github.com/heartmarshall/xwstats/internal/crosswordese"
	"github.com/heartmarshall/xwstats/internal/lexicon"
	"github.com/heartmarshall/xwstats/internal/novelty"
	"github.com/heartmarshall/xwstats/internal/rarity"
)

// ---------------------------------------------------------------------------
// Configuration
// ---------------------------------------------------------------------------

// Config selects the algorithms of one run.
type Config struct {
	Rarity       string
	Novelty      string
	Crosswordese crosswordese.Mode
	// Language picks the rarity behind the ratio form's language frequency.
	Language crosswordese.Language

	RarityParams       rarity.Params
	NoveltyParams      novelty.Params
	CrosswordeseParams crosswordese.Params
}

// DefaultConfig returns the standard algorithm selection.
func DefaultConfig() Config {
	return Config{
		Rarity:             rarity.SplitAverage,
		Novelty:            novelty.Linear,
		Crosswordese:       crosswordese.ModeRatio,
		Language:           crosswordese.LanguageUnsplit,
		RarityParams:       rarity.DefaultParams(),
		NoveltyParams:      novelty.DefaultParams(),
		CrosswordeseParams: crosswordese.DefaultParams(),
	}
}

// Deps are the collaborators of the rarity algorithms.
type Deps struct {
	Table     lexicon.Table
	Segmenter rarity.Segmenter
	Wiki      rarity.Lookup // only needed by split_wiki
}

// Algorithms records the canonical names used by a run.
type Algorithms struct {
	Rarity       string `json:"rarity"       yaml:"rarity"`
	Novelty      string `json:"novelty"      yaml:"novelty"`
	Crosswordese string `json:"crosswordese" yaml:"crosswordese"`
	Language     string `json:"crosswordese_language,omitempty" yaml:"crosswordese_language,omitempty"`
}

// ---------------------------------------------------------------------------
// Analyzer
// ---------------------------------------------------------------------------

// Analyzer scores grids with one fixed algorithm selection.
type Analyzer struct {
	log          *slog.Logger
	algorithms   Algorithms
	rarity       rarity.Func
	novelty      novelty.Func
	crosswordese crosswordese.Func
	// language scores the ratio form's language frequency; nil reuses rarity.
	language rarity.Func
}

// New resolves the configured algorithms. Unknown names fail here with
// domain.ErrUnknownAlgorithm, before any grid is touched.
func New(logger *slog.Logger, cfg Config, deps Deps) (*Analyzer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	rDeps := rarity.Deps{
		Table:     deps.Table,
		Segmenter: deps.Segmenter,
		Wiki:      deps.Wiki,
		Logger:    logger,
	}
	rarityFn, err := rarity.New(cfg.Rarity, rDeps, cfg.RarityParams)
	if err != nil {
		return nil, err
	}

	noveltyFn, err := novelty.New(cfg.Novelty, cfg.NoveltyParams)
	if err != nil {
		return nil, err
	}

	mode := cfg.Crosswordese
	if mode == "" {
		mode = crosswordese.ModeRatio
	}
	xwFn, err := crosswordese.New(mode, cfg.CrosswordeseParams)
	if err != nil {
		return nil, err
	}

	var languageFn rarity.Func
	var language string
	if mode == crosswordese.ModeRatio {
		lang, err := crosswordese.ParseLanguage(string(cfg.Language))
		if err != nil {
			return nil, err
		}
		language = string(lang)
		if lang == crosswordese.LanguageUnsplit && rarity.Canonical(cfg.Rarity) != rarity.Unsplit {
			if languageFn, err = rarity.New(rarity.Unsplit, rDeps, cfg.RarityParams); err != nil {
				return nil, err
			}
		}
	}

	return &Analyzer{
		log: logger.With("service", "analysis"),
		algorithms: Algorithms{
			Rarity:       rarity.Canonical(cfg.Rarity),
			Novelty:      novelty.Canonical(cfg.Novelty),
			Crosswordese: string(mode),
			Language:     language,
		},
		rarity:       rarityFn,
		novelty:      noveltyFn,
		crosswordese: xwFn,
		language:     languageFn,
	}, nil
}

// Algorithms returns the canonical names of the selected algorithms.
func (a *Analyzer) Algorithms() Algorithms { return a.algorithms }
