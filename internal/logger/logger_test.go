package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	log, err := New(true, true)
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	log, err = New(false, false)
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
}

func TestWithCandidate(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	WithCandidate(zap.New(core), "  jane ").Info("matched")

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "jane", entries[0].ContextMap()[FieldCandidate])
}

func TestWithCandidate_EmptyIDAddsNoField(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	WithCandidate(zap.New(core), " ").Info("matched")

	require.Len(t, observed.All(), 1)
	assert.Empty(t, observed.All()[0].Context)
}

func TestWithFields_NilLogger(t *testing.T) {
	log := WithFields(nil, zap.String("k", "v"))
	require.NotNil(t, log)
	log.Info("no panic")
}

func TestTruncateForLog(t *testing.T) {
	assert.Equal(t, "abc...", TruncateForLog("abcdef", 3))
	assert.Equal(t, "abc", TruncateForLog("  abc  ", 10))
	assert.Equal(t, "", TruncateForLog("abc", 0))
}
