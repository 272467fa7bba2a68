package config

import (
	"fmt"
	"slices"
	"strings"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "text"}

	crosswordeseLanguages = []string{"unsplit", "rarity"}
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically. Algorithm
// names are checked when the analyzer is built, not here.
func (c *Config) Validate() error {
	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := c.Scoring.validate(); err != nil {
		return fmt.Errorf("scoring: %w", err)
	}
	if err := c.FreqDB.validate(); err != nil {
		return fmt.Errorf("freqdb: %w", err)
	}
	if c.FreqDB.Backend == BackendPostgres {
		if err := c.Database.validate(); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}
	if c.Wiki.Enabled {
		if err := c.Wiki.validate(); err != nil {
			return fmt.Errorf("wiki: %w", err)
		}
	}
	if c.Cache.Enabled {
		if err := c.Cache.validate(); err != nil {
			return fmt.Errorf("cache: %w", err)
		}
	}
	return nil
}

func (l *LogConfig) validate() error {
	if !slices.Contains(logLevels, strings.ToLower(l.Level)) {
		return fmt.Errorf("level must be one of %s (got %q)", strings.Join(logLevels, ", "), l.Level)
	}
	if !slices.Contains(logFormats, strings.ToLower(l.Format)) {
		return fmt.Errorf("format must be one of %s (got %q)", strings.Join(logFormats, ", "), l.Format)
	}
	return nil
}

func (s *ScoringConfig) validate() error {
	if s.SplitPenalty < 0 {
		return fmt.Errorf("split_penalty must be >= 0 (got %v)", s.SplitPenalty)
	}
	if s.WikiBoost <= 0 {
		return fmt.Errorf("wiki_boost must be > 0 (got %v)", s.WikiBoost)
	}
	if s.WikiDiscount <= 0 {
		return fmt.Errorf("wiki_discount must be > 0 (got %v)", s.WikiDiscount)
	}
	if s.NoveltyEpsilon <= 0 {
		return fmt.Errorf("novelty_epsilon must be > 0 (got %v)", s.NoveltyEpsilon)
	}
	if s.NoveltyLogBase <= 1 {
		return fmt.Errorf("novelty_log_base must be > 1 (got %v)", s.NoveltyLogBase)
	}
	if s.NoveltyUnseen < 0 || s.NoveltyUnseen > 1 {
		return fmt.Errorf("novelty_unseen must be within [0, 1] (got %v)", s.NoveltyUnseen)
	}
	if s.CrosswordeseFloor <= 0 {
		return fmt.Errorf("crosswordese_floor must be > 0 (got %v)", s.CrosswordeseFloor)
	}
	if !slices.Contains(crosswordeseLanguages, strings.ToLower(s.CrosswordeseLanguage)) {
		return fmt.Errorf("crosswordese_language must be one of %v (got %q)", crosswordeseLanguages, s.CrosswordeseLanguage)
	}
	return nil
}

func (f *FreqDBConfig) validate() error {
	switch f.Backend {
	case BackendCSV:
		if f.Path == "" {
			return fmt.Errorf("path is required for the csv backend")
		}
	case BackendPostgres:
	default:
		return fmt.Errorf("backend must be %q or %q (got %q)", BackendCSV, BackendPostgres, f.Backend)
	}
	return nil
}

func (d *DatabaseConfig) validate() error {
	if d.DSN == "" {
		return fmt.Errorf("dsn is required for the postgres backend")
	}
	if d.MaxConns <= 0 {
		return fmt.Errorf("max_conns must be > 0 (got %d)", d.MaxConns)
	}
	if d.MinConns < 0 || d.MinConns > d.MaxConns {
		return fmt.Errorf("min_conns must be within [0, max_conns] (got %d)", d.MinConns)
	}
	return nil
}

func (w *WikiConfig) validate() error {
	if w.APIURL == "" {
		return fmt.Errorf("api_url is required")
	}
	if w.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", w.Timeout)
	}
	if w.RatePerSecond < 0 {
		return fmt.Errorf("rate_per_second must be >= 0 (got %v)", w.RatePerSecond)
	}
	return nil
}

func (c *CacheConfig) validate() error {
	if !c.InMemory && c.Path == "" {
		return fmt.Errorf("path is required unless in_memory is set")
	}
	if c.TTL < 0 {
		return fmt.Errorf("ttl must be >= 0 (got %v)", c.TTL)
	}
	return nil
}
