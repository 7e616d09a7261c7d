// Package config defines all configuration structures for the ADR-Intelligence
// backend.  No I/O or parsing logic lives here — only plain data types and
// validation.
package config

import (
	"fmt"
	"time"
)

// Version is the application version, overridden at build time via ldflags.
var Version = "dev"

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig holds PostgreSQL connection parameters for the report store.
// The production deployment points this at the managed Postgres instance that
// backs report submission; this backend only reads from it (plus the backfill
// upsert).
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"db_name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	MigrationPath   string        `mapstructure:"migration_path"`
}

// RedisConfig holds Redis connection parameters.  Redis caches computed label
// distributions at the hosting layer; the normalization core itself never
// touches it.
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	DefaultTTL   time.Duration `mapstructure:"default_ttl"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// VocabularyConfig holds the locations of the flat vocabulary resources.
// ReactionListPath is required; the other two degrade gracefully to empty
// containers when missing.
type VocabularyConfig struct {
	ReactionListPath string `mapstructure:"reaction_list_path"`
	GenericListPath  string `mapstructure:"generic_list_path"`
	BrandListPath    string `mapstructure:"brand_list_path"`
}

// NERConfig holds parameters for the optional entity-extraction backend.
// When Enabled is false (or Endpoint is empty) the cleaning pipeline runs
// with the fuzzy-list fallback only.
type NERConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	Endpoint          string        `mapstructure:"endpoint"`
	ModelID           string        `mapstructure:"model_id"`
	MaxSequenceLength int           `mapstructure:"max_sequence_length"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

// AnalyticsConfig holds normalization thresholds and policy selection.
type AnalyticsConfig struct {
	// MedicineThreshold is the minimum fuzzy score [0,100] for medicine
	// matching (brand keys and generic list).
	MedicineThreshold int `mapstructure:"medicine_threshold"`

	// ReactionThreshold is the minimum fuzzy score for whole-string reaction
	// matching.  Looser than the list threshold on purpose: a whole free-text
	// string has more noise headroom than a pre-split comma item.
	ReactionThreshold int `mapstructure:"reaction_threshold"`

	// ReactionListThreshold is the minimum fuzzy score applied to each item
	// of a multi-valued reaction string.
	ReactionListThreshold int `mapstructure:"reaction_list_threshold"`

	// UnmatchedPolicy selects what happens to mentions that match no
	// canonical term: "drop" (garbage/medical-like gating) or "unspecified"
	// (everything unmatched lands in an "Unspecified" bucket).
	UnmatchedPolicy string `mapstructure:"unmatched_policy"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level            string   `mapstructure:"level"`
	Format           string   `mapstructure:"format"`
	OutputPaths      []string `mapstructure:"output_paths"`
	ErrorOutputPaths []string `mapstructure:"error_output_paths"`
}

// Config is the root configuration object.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Vocabulary VocabularyConfig `mapstructure:"vocabulary"`
	NER        NERConfig        `mapstructure:"ner"`
	Analytics  AnalyticsConfig  `mapstructure:"analytics"`
	Log        LogConfig        `mapstructure:"log"`
}

// Validate checks cross-field consistency.  It runs after defaults are
// applied, so zero values that defaults fill in are never reported.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in (0, 65535], got %d", c.Server.Port)
	}
	if c.Vocabulary.ReactionListPath == "" {
		return fmt.Errorf("vocabulary.reaction_list_path is required")
	}
	if err := validateThreshold("analytics.medicine_threshold", c.Analytics.MedicineThreshold); err != nil {
		return err
	}
	if err := validateThreshold("analytics.reaction_threshold", c.Analytics.ReactionThreshold); err != nil {
		return err
	}
	if err := validateThreshold("analytics.reaction_list_threshold", c.Analytics.ReactionListThreshold); err != nil {
		return err
	}
	switch c.Analytics.UnmatchedPolicy {
	case "drop", "unspecified":
	default:
		return fmt.Errorf("analytics.unmatched_policy must be \"drop\" or \"unspecified\", got %q", c.Analytics.UnmatchedPolicy)
	}
	if c.NER.Enabled && c.NER.Endpoint == "" {
		return fmt.Errorf("ner.endpoint is required when ner.enabled is true")
	}
	return nil
}

func validateThreshold(name string, v int) error {
	if v < 0 || v > 100 {
		return fmt.Errorf("%s must be in [0, 100], got %d", name, v)
	}
	return nil
}
