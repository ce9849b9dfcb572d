package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLoggerIsUsable(t *testing.T) {
	require.NotNil(t, Logger)
	assert.NotPanics(t, func() {
		Logger.Debugw("ignored", "tag", "food:egg")
	})
}

func TestInitialize(t *testing.T) {
	original := Logger
	t.Cleanup(func() { Logger = original })

	require.NoError(t, Initialize(Options{Verbose: true}))
	assert.NotNil(t, Named("store"))

	require.NoError(t, Initialize(Options{JSON: true}))
	assert.NotNil(t, Logger)
}
