package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSanitizeKVs_RedactsSecrets(t *testing.T) {
	got := sanitizeKVs([]any{"provider", "gemini", "api_key", "sk-123", "OPENAI_TOKEN", "abc"})
	assert.Equal(t, []any{"provider", "gemini", "api_key", "[REDACTED]", "OPENAI_TOKEN", "[REDACTED]"}, got)
}

func TestSanitizeKVs_OddLength(t *testing.T) {
	got := sanitizeKVs([]any{"model", "m", "dangling"})
	assert.Equal(t, []any{"model", "m", "dangling"}, got)
}

func TestLogger_WarnReachesCore(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.With("component", "llm").Warn("event not recorded", "apikey", "x", "purpose", "quiz-gen")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "event not recorded", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "llm", fields["component"])
	assert.Equal(t, "[REDACTED]", fields["apikey"])
	assert.Equal(t, "quiz-gen", fields["purpose"])
}

func TestNew_Modes(t *testing.T) {
	for _, mode := range []string{"dev", "prod", "quiet", ""} {
		l, err := New(mode)
		require.NoError(t, err, mode)
		require.NotNil(t, l)
	}
	Nop().Info("discarded")
}
