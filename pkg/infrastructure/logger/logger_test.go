package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	log, err := New("debug", "json")
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	log, err = New("warn", "console")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("chatty", "console")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestMust(t *testing.T) {
	assert.Panics(t, func() { Must(New("chatty", "json")) })
	assert.NotPanics(t, func() { Must(New("info", "json")) })
}

func TestNamed(t *testing.T) {
	assert.NotNil(t, Named(nil, "ledger"))
	assert.Equal(t, "cli", Named(Must(New("info", "json")), "cli").Name())
}
