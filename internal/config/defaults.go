package config

import "time"

// Default normalization thresholds.  These mirror the values the vocabulary
// was calibrated against; change them only together with a recalibration run
// over the labelled report corpus.
const (
	DefaultMedicineThreshold     = 85
	DefaultReactionThreshold     = 70
	DefaultReactionListThreshold = 85
)

// ApplyDefaults fills in zero-valued fields with platform defaults.  It never
// overwrites a value the operator set explicitly.
func ApplyDefaults(c *Config) {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 30 * time.Second
	}

	if c.Database.Host == "" {
		c.Database.Host = "localhost"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.DBName == "" {
		c.Database.DBName = "adr_reports"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 10
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 30 * time.Minute
	}
	if c.Database.ConnMaxIdleTime == 0 {
		c.Database.ConnMaxIdleTime = 5 * time.Minute
	}
	if c.Database.MigrationPath == "" {
		c.Database.MigrationPath = "migrations"
	}

	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Redis.PoolSize == 0 {
		c.Redis.PoolSize = 10
	}
	if c.Redis.DialTimeout == 0 {
		c.Redis.DialTimeout = 5 * time.Second
	}
	if c.Redis.ReadTimeout == 0 {
		c.Redis.ReadTimeout = 3 * time.Second
	}
	if c.Redis.WriteTimeout == 0 {
		c.Redis.WriteTimeout = 3 * time.Second
	}
	if c.Redis.DefaultTTL == 0 {
		c.Redis.DefaultTTL = 5 * time.Minute
	}
	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = "adr:"
	}

	if c.Vocabulary.ReactionListPath == "" {
		c.Vocabulary.ReactionListPath = "assets/vocab/ADR_LIST.txt"
	}
	if c.Vocabulary.GenericListPath == "" {
		c.Vocabulary.GenericListPath = "assets/vocab/GENERIC_LIST.txt"
	}
	if c.Vocabulary.BrandListPath == "" {
		c.Vocabulary.BrandListPath = "assets/vocab/BRAND_LIST.txt"
	}

	if c.NER.ModelID == "" {
		c.NER.ModelID = "adr-mbert-ner-v1"
	}
	if c.NER.MaxSequenceLength == 0 {
		c.NER.MaxSequenceLength = 256
	}
	if c.NER.Timeout == 0 {
		c.NER.Timeout = 2 * time.Second
	}

	if c.Analytics.MedicineThreshold == 0 {
		c.Analytics.MedicineThreshold = DefaultMedicineThreshold
	}
	if c.Analytics.ReactionThreshold == 0 {
		c.Analytics.ReactionThreshold = DefaultReactionThreshold
	}
	if c.Analytics.ReactionListThreshold == 0 {
		c.Analytics.ReactionListThreshold = DefaultReactionListThreshold
	}
	if c.Analytics.UnmatchedPolicy == "" {
		c.Analytics.UnmatchedPolicy = "drop"
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if len(c.Log.OutputPaths) == 0 {
		c.Log.OutputPaths = []string{"stdout"}
	}
	if len(c.Log.ErrorOutputPaths) == 0 {
		c.Log.ErrorOutputPaths = []string{"stderr"}
	}
}

// NewDefaultConfig returns a Config populated entirely with defaults.
// Used by cmd/* when no config file is present.
func NewDefaultConfig() *Config {
	c := &Config{}
	ApplyDefaults(c)
	return c
}
