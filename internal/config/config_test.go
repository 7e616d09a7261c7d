package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults_FillsUnsetFields(t *testing.T) {
	c := &Config{}
	ApplyDefaults(c)

	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, 5432, c.Database.Port)
	assert.Equal(t, DefaultMedicineThreshold, c.Analytics.MedicineThreshold)
	assert.Equal(t, DefaultReactionThreshold, c.Analytics.ReactionThreshold)
	assert.Equal(t, DefaultReactionListThreshold, c.Analytics.ReactionListThreshold)
	assert.Equal(t, "drop", c.Analytics.UnmatchedPolicy)
	assert.Equal(t, "assets/vocab/ADR_LIST.txt", c.Vocabulary.ReactionListPath)
}

func TestApplyDefaults_DoesNotOverwrite(t *testing.T) {
	c := &Config{}
	c.Server.Port = 9000
	c.Analytics.ReactionThreshold = 60
	ApplyDefaults(c)

	assert.Equal(t, 9000, c.Server.Port)
	assert.Equal(t, 60, c.Analytics.ReactionThreshold)
}

func TestValidate_RejectsBadPolicy(t *testing.T) {
	c := NewDefaultConfig()
	c.Analytics.UnmatchedPolicy = "keep-everything"
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmatched_policy")
}

func TestValidate_RejectsOutOfRangeThreshold(t *testing.T) {
	c := NewDefaultConfig()
	c.Analytics.MedicineThreshold = 101
	assert.Error(t, c.Validate())
}

func TestValidate_RequiresReactionListPath(t *testing.T) {
	c := NewDefaultConfig()
	c.Vocabulary.ReactionListPath = ""
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reaction_list_path")
}

func TestValidate_NEREndpointRequiredWhenEnabled(t *testing.T) {
	c := NewDefaultConfig()
	c.NER.Enabled = true
	c.NER.Endpoint = ""
	assert.Error(t, c.Validate())

	c.NER.Endpoint = "localhost:8001"
	assert.NoError(t, c.Validate())
}

func TestLoad_ReadsYAMLAndAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := []byte(`
server:
  port: 9090
analytics:
  reaction_threshold: 65
  unmatched_policy: unspecified
`)
	require.NoError(t, os.WriteFile(path, yaml, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 65, cfg.Analytics.ReactionThreshold)
	assert.Equal(t, "unspecified", cfg.Analytics.UnmatchedPolicy)
	// Unset sections pick up defaults.
	assert.Equal(t, DefaultMedicineThreshold, cfg.Analytics.MedicineThreshold)
	assert.Equal(t, "localhost", cfg.Database.Host)
}

func TestLoad_MissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFromEnv_UsesEnvOverrides(t *testing.T) {
	t.Setenv("ADR_SERVER_PORT", "7070")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
}
