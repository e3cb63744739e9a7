package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	logger, err := New("warn", "json", "catalog")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	_, err = New("debug", "console", "catalog")
	require.NoError(t, err)
}

func TestNew_Invalid(t *testing.T) {
	_, err := New("loud", "json", "catalog")
	assert.Error(t, err)

	_, err = New("info", "xml", "catalog")
	assert.Error(t, err)
}
