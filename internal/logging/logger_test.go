package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("warn", &buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Warn("shown", zap.String("key", "value"))
	require.NoError(t, logger.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, `"key": "value"`)
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("chatty", &bytes.Buffer{})
	assert.Error(t, err)
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, "debug", LevelFor("error", true))
	assert.Equal(t, "error", LevelFor("error", false))
	assert.Equal(t, "warn", LevelFor("", false))
}
