package config

import "time"

// Config is the root application configuration.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Lexicon  LexiconConfig  `yaml:"lexicon"`
	FreqDB   FreqDBConfig   `yaml:"freqdb"`
	Database DatabaseConfig `yaml:"database"`
	Wiki     WikiConfig     `yaml:"wiki"`
	Cache    CacheConfig    `yaml:"cache"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// ScoringConfig selects the algorithms and holds their tuning constants.
type ScoringConfig struct {
	Rarity       string `yaml:"rarity"       env:"SCORING_RARITY"       env-default:"split_avg"`
	Novelty      string `yaml:"novelty"      env:"SCORING_NOVELTY"      env-default:"linear"`
	Crosswordese string `yaml:"crosswordese" env:"SCORING_CROSSWORDESE" env-default:"ratio"`

	SplitPenalty float64 `yaml:"split_penalty" env:"SCORING_SPLIT_PENALTY" env-default:"0.2"`
	WikiBoost    float64 `yaml:"wiki_boost"    env:"SCORING_WIKI_BOOST"    env-default:"1.2"`
	WikiDiscount float64 `yaml:"wiki_discount" env:"SCORING_WIKI_DISCOUNT" env-default:"0.8"`

	NoveltyEpsilon float64 `yaml:"novelty_epsilon"  env:"SCORING_NOVELTY_EPSILON"  env-default:"0.000001"`
	NoveltyLogBase float64 `yaml:"novelty_log_base" env:"SCORING_NOVELTY_LOG_BASE" env-default:"5"`
	NoveltyUnseen  float64 `yaml:"novelty_unseen"   env:"SCORING_NOVELTY_UNSEEN"   env-default:"1.0"`

	CrosswordeseShift   float64 `yaml:"crosswordese_shift"   env:"SCORING_CROSSWORDESE_SHIFT"   env-default:"6"`
	CrosswordeseCeiling float64 `yaml:"crosswordese_ceiling" env:"SCORING_CROSSWORDESE_CEILING" env-default:"7"`
	CrosswordeseFloor   float64 `yaml:"crosswordese_floor"   env:"SCORING_CROSSWORDESE_FLOOR"   env-default:"0.000000000001"`
	// CrosswordeseLanguage is "unsplit" (the answer's own frequency) or
	// "rarity" (the selected rarity algorithm) for the ratio form.
	CrosswordeseLanguage string `yaml:"crosswordese_language" env:"SCORING_CROSSWORDESE_LANGUAGE" env-default:"unsplit"`
}

// LexiconConfig points at the language-frequency table. An empty path uses
// the bundled sample table.
type LexiconConfig struct {
	Path string `yaml:"path" env:"LEXICON_PATH"`
}

// Frequency database backends.
const (
	BackendCSV      = "csv"
	BackendPostgres = "postgres"
)

// FreqDBConfig selects where answer frequencies are persisted.
type FreqDBConfig struct {
	Backend string `yaml:"backend" env:"FREQDB_BACKEND" env-default:"csv"`
	Path    string `yaml:"path"    env:"FREQDB_PATH"    env-default:"answer_frequencies.csv"`
}

// DatabaseConfig holds PostgreSQL connection settings. Only used by the
// postgres frequency backend.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"4"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"0"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	Migrate         bool          `yaml:"migrate"            env:"DATABASE_MIGRATE"            env-default:"true"`
}

// WikiConfig holds encyclopedia lookup settings.
type WikiConfig struct {
	Enabled       bool          `yaml:"enabled"         env:"WIKI_ENABLED"         env-default:"true"`
	APIURL        string        `yaml:"api_url"         env:"WIKI_API_URL"         env-default:"https://en.wikipedia.org/w/api.php"`
	PageviewURL   string        `yaml:"pageview_url"    env:"WIKI_PAGEVIEW_URL"    env-default:"https://wikimedia.org/api/rest_v1/metrics/pageviews/per-article/en.wikipedia/all-access/user"`
	UserAgent     string        `yaml:"user_agent"      env:"WIKI_USER_AGENT"      env-default:"xwstats/1.0 (crossword answer statistics)"`
	Timeout       time.Duration `yaml:"timeout"         env:"WIKI_TIMEOUT"         env-default:"5s"`
	RatePerSecond float64       `yaml:"rate_per_second" env:"WIKI_RATE_PER_SECOND" env-default:"5"`
	Burst         int           `yaml:"burst"           env:"WIKI_BURST"           env-default:"1"`
}

// CacheConfig holds the lookup cache settings.
type CacheConfig struct {
	Enabled  bool          `yaml:"enabled"   env:"CACHE_ENABLED"   env-default:"true"`
	Path     string        `yaml:"path"      env:"CACHE_PATH"      env-default:".xwstats/cache"`
	InMemory bool          `yaml:"in_memory" env:"CACHE_IN_MEMORY" env-default:"false"`
	TTL      time.Duration `yaml:"ttl"       env:"CACHE_TTL"       env-default:"720h"`
}
