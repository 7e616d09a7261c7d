package logging

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger(level zapcore.Level) (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return NewLoggerFromCore(core), logs
}

func TestLogger_EmitsFieldsAndMessage(t *testing.T) {
	log, recorded := newObservedLogger(zapcore.DebugLevel)

	log.Info("vocabulary loaded",
		String("list", "reactions"),
		Int("terms", 120),
		Duration("elapsed", 3*time.Millisecond),
	)

	entries := recorded.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "vocabulary loaded", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "reactions", fields["list"])
	assert.Equal(t, int64(120), fields["terms"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	log, recorded := newObservedLogger(zapcore.WarnLevel)

	log.Debug("noise")
	log.Info("still noise")
	log.Warn("slow NER backend")
	log.Error("backend failed", Err(errors.New("timeout")))

	assert.Equal(t, 2, recorded.Len())
}

func TestLogger_WithAttachesFieldsToChildren(t *testing.T) {
	log, recorded := newObservedLogger(zapcore.InfoLevel)

	child := log.With(String("component", "cleaning"))
	child.Info("bucket normalized")

	entries := recorded.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "cleaning", entries[0].ContextMap()["component"])
}

func TestLogger_NamedAppendsName(t *testing.T) {
	log, recorded := newObservedLogger(zapcore.InfoLevel)

	log.Named("analytics").Info("top adrs computed")

	entries := recorded.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "analytics", entries[0].LoggerName)
}

func TestErr_NilError(t *testing.T) {
	f := Err(nil)
	assert.Equal(t, "error", f.Key)
	assert.Equal(t, "<nil>", f.Value)
}

func TestNewLogger_DefaultsApplied(t *testing.T) {
	log, err := NewLogger(LogConfig{})
	require.NoError(t, err)
	require.NotNil(t, log)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("WARN"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}

func TestSetDefault_IgnoresNil(t *testing.T) {
	orig := Default()
	SetDefault(nil)
	assert.Equal(t, orig, Default())
}
