// Package app wires configuration, storage and scoring collaborators
// together for the command-line entry points.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/xwstats/internal/adapter/cache"
	"github.com/heartmarshall/xwstats/internal/adapter/postgres"
	"github.com/heartmarshall/xwstats/internal/adapter/postgres/answerfreq"
	"github.com/heartmarshall/xwstats/internal/adapter/provider/wikipedia"
	"github.com/heartmarshall/xwstats/internal/analysis"
	"github.com/heartmarshall/xwstats/internal/config"
	"github.com/heartmarshall/xwstats/internal/crosswordese"
	"github.com/heartmarshall/xwstats/internal/domain"
	"github.com/heartmarshall/xwstats/internal/freqdb"
	"github.com/heartmarshall/xwstats/internal/lexicon"
	"github.com/heartmarshall/xwstats/internal/novelty"
	"github.com/heartmarshall/xwstats/internal/rarity"
)

// App owns the resources opened on behalf of one command. Close releases
// them in reverse order.
type App struct {
	cfg     *config.Config
	log     *slog.Logger
	table   *lexicon.FreqTable
	closers []func() error
}

// New creates an App. Nothing is opened until a collaborator is requested.
func New(cfg *config.Config, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{cfg: cfg, log: logger}
}

// Config returns the configuration the App was built with.
func (a *App) Config() *config.Config { return a.cfg }

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger { return a.log }

// Close releases every opened resource.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// ---------------------------------------------------------------------------
// Frequency database
// ---------------------------------------------------------------------------

// Store opens the configured frequency database backend.
func (a *App) Store(ctx context.Context) (freqdb.Store, error) {
	switch a.cfg.FreqDB.Backend {
	case config.BackendPostgres:
		return a.postgresStore(ctx)
	case config.BackendCSV, "":
		return freqdb.NewCSVStore(a.cfg.FreqDB.Path, a.log), nil
	default:
		return nil, domain.NewValidationError("freqdb.backend", fmt.Sprintf("unknown backend %q", a.cfg.FreqDB.Backend))
	}
}

// CSVStore returns a CSV store at path regardless of the configured backend.
func (a *App) CSVStore(path string) *freqdb.CSVStore {
	return freqdb.NewCSVStore(path, a.log)
}

func (a *App) postgresStore(ctx context.Context) (freqdb.Store, error) {
	pool, err := postgres.NewPool(ctx, a.cfg.Database, a.log)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	a.closers = append(a.closers, func() error {
		pool.Close()
		return nil
	})

	if a.cfg.Database.Migrate {
		if err := postgres.Migrate(ctx, pool, a.log); err != nil {
			return nil, err
		}
	}

	a.log.Debug("frequency database connected", slog.String("backend", config.BackendPostgres))
	return answerfreq.New(pool, postgres.NewTxManager(pool), a.log), nil
}

// ---------------------------------------------------------------------------
// Scoring
// ---------------------------------------------------------------------------

// AnalysisConfig maps the scoring section onto an analysis.Config.
func (a *App) AnalysisConfig() (analysis.Config, error) {
	s := a.cfg.Scoring

	mode, err := crosswordese.ParseMode(s.Crosswordese)
	if err != nil {
		return analysis.Config{}, err
	}
	language, err := crosswordese.ParseLanguage(s.CrosswordeseLanguage)
	if err != nil {
		return analysis.Config{}, err
	}

	return analysis.Config{
		Rarity:       s.Rarity,
		Novelty:      s.Novelty,
		Crosswordese: mode,
		Language:     language,
		RarityParams: rarity.Params{
			SplitPenalty: s.SplitPenalty,
			WikiBoost:    s.WikiBoost,
			WikiDiscount: s.WikiDiscount,
		},
		NoveltyParams: novelty.Params{
			Epsilon: s.NoveltyEpsilon,
			LogBase: s.NoveltyLogBase,
			Unseen:  s.NoveltyUnseen,
		},
		CrosswordeseParams: crosswordese.Params{
			Shift:   s.CrosswordeseShift,
			Ceiling: s.CrosswordeseCeiling,
			Floor:   s.CrosswordeseFloor,
		},
	}, nil
}

// Analyzer builds an analyzer for the configured algorithms. The
// encyclopedia client is only created when split_wiki is selected.
func (a *App) Analyzer() (*analysis.Analyzer, error) {
	cfg, err := a.AnalysisConfig()
	if err != nil {
		return nil, err
	}
	deps, err := a.rarityDeps(cfg.Rarity)
	if err != nil {
		return nil, err
	}
	return analysis.New(a.log, cfg, analysis.Deps{
		Table:     deps.Table,
		Segmenter: deps.Segmenter,
		Wiki:      deps.Wiki,
	})
}

// RarityFunc builds the configured rarity algorithm on its own, for
// whole-database ranking.
func (a *App) RarityFunc() (rarity.Func, error) {
	cfg, err := a.AnalysisConfig()
	if err != nil {
		return nil, err
	}
	deps, err := a.rarityDeps(cfg.Rarity)
	if err != nil {
		return nil, err
	}
	return rarity.New(cfg.Rarity, deps, cfg.RarityParams)
}

func (a *App) rarityDeps(name string) (rarity.Deps, error) {
	table, err := a.lexicon()
	if err != nil {
		return rarity.Deps{}, err
	}

	deps := rarity.Deps{
		Table:     table,
		Segmenter: lexicon.SegmenterFor(table),
		Logger:    a.log,
	}

	if rarity.Canonical(name) == rarity.SplitWiki {
		wiki, err := a.Lookup()
		if err != nil {
			return rarity.Deps{}, err
		}
		deps.Wiki = wiki
	}
	return deps, nil
}

func (a *App) lexicon() (*lexicon.FreqTable, error) {
	if a.table != nil {
		return a.table, nil
	}
	t, err := lexicon.Load(a.cfg.Lexicon.Path)
	if err != nil {
		return nil, err
	}
	if a.cfg.Lexicon.Path == "" {
		// The bundled table only covers a few hundred words; everything else
		// scores as maximally rare.
		a.log.Warn("using the bundled sample lexicon; set lexicon.path to a full word-frequency list",
			slog.Int("words", t.Len()),
		)
	} else {
		a.log.Debug("lexicon loaded",
			slog.String("path", a.cfg.Lexicon.Path),
			slog.Int("words", t.Len()),
		)
	}
	a.table = t
	return t, nil
}

// Lookup returns the encyclopedia lookup, behind the Badger cache when the
// cache is enabled.
func (a *App) Lookup() (rarity.Lookup, error) {
	if !a.cfg.Wiki.Enabled {
		return nil, domain.NewValidationError("wiki.enabled", "split_wiki needs encyclopedia lookups; enable the wiki section")
	}

	w := a.cfg.Wiki
	client := wikipedia.NewClient(wikipedia.Options{
		APIURL:        w.APIURL,
		PageviewURL:   w.PageviewURL,
		UserAgent:     w.UserAgent,
		Timeout:       w.Timeout,
		RatePerSecond: w.RatePerSecond,
		Burst:         w.Burst,
	}, a.log)

	if !a.cfg.Cache.Enabled {
		return client, nil
	}

	db, err := cache.Open(cache.Config{
		Path:     a.cfg.Cache.Path,
		InMemory: a.cfg.Cache.InMemory,
		Logger:   a.log,
	})
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, db.Close)

	return cache.NewLookupCache(db, client, a.cfg.Cache.TTL, a.log), nil
}
