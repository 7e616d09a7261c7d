// Package config provides configuration loading, defaults, and validation for
// the ADR-Intelligence backend.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all backend settings.
const envPrefix = "ADR"

// newViper builds a pre-configured Viper instance with the backend's standard
// settings: YAML file type, ADR_ env prefix, automatic env binding, and a key
// replacer that maps "." → "_" so that nested keys like "database.host"
// resolve to "ADR_DATABASE_HOST".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	registerKeys(v)
	return v
}

// registerKeys declares every supported configuration key to viper.  Without
// this, AutomaticEnv cannot surface ADR_* overrides during Unmarshal for keys
// that never appear in the config file.
func registerKeys(v *viper.Viper) {
	for _, key := range []string{
		"server.port", "server.read_timeout", "server.write_timeout",
		"server.idle_timeout", "server.shutdown_timeout",
		"database.host", "database.port", "database.user", "database.password",
		"database.db_name", "database.ssl_mode", "database.max_open_conns",
		"database.max_idle_conns", "database.conn_max_lifetime",
		"database.conn_max_idle_time", "database.migration_path",
		"redis.enabled", "redis.addr", "redis.password", "redis.db",
		"redis.pool_size", "redis.dial_timeout", "redis.read_timeout",
		"redis.write_timeout", "redis.default_ttl", "redis.key_prefix",
		"vocabulary.reaction_list_path", "vocabulary.generic_list_path",
		"vocabulary.brand_list_path",
		"ner.enabled", "ner.endpoint", "ner.model_id",
		"ner.max_sequence_length", "ner.timeout",
		"analytics.medicine_threshold", "analytics.reaction_threshold",
		"analytics.reaction_list_threshold", "analytics.unmatched_policy",
		"log.level", "log.format", "log.output_paths", "log.error_output_paths",
	} {
		v.SetDefault(key, nil)
	}
}

// Load reads the YAML file at configPath, merges any ADR_* environment
// variable overrides, applies defaults for unset fields, and validates the
// result.  It returns a fully-populated *Config or a descriptive error.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from ADR_* environment variables, with
// no config file required.  This is the preferred loading strategy for
// containerised deployments.
//
// Environment variable naming convention:
//
//	ADR_<SECTION>_<FIELD>   e.g.  ADR_DATABASE_HOST, ADR_REDIS_ADDR
func LoadFromEnv() (*Config, error) {
	v := newViper()
	return unmarshalAndFinalize(v)
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}

// MustLoad is a convenience wrapper around Load that panics on any error.
// Intended for use in main() where a config-load failure is always fatal.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}
