package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamotph/adr-intelligence/internal/config"
	"github.com/gamotph/adr-intelligence/internal/infrastructure/monitoring/logging"
)

func TestBuildLogConfig_MapsAllFields(t *testing.T) {
	got := buildLogConfig(config.LogConfig{
		Level:            "debug",
		Format:           "console",
		OutputPaths:      []string{"stdout", "/var/log/adr.log"},
		ErrorOutputPaths: []string{"stderr"},
	})

	assert.Equal(t, logging.LogConfig{
		Level:            "debug",
		Format:           "console",
		OutputPaths:      []string{"stdout", "/var/log/adr.log"},
		ErrorOutputPaths: []string{"stderr"},
	}, got)
}

func TestBuildLogConfig_DefaultsBuildWorkingLogger(t *testing.T) {
	cfg := config.NewDefaultConfig()

	logger, err := logging.NewLogger(buildLogConfig(cfg.Log))
	require.NoError(t, err)
	assert.NotNil(t, logger)
}
