package logger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DataEngineeringLabs/arrow-convert/pkg/logger"
)

func TestInitAndGet(t *testing.T) {
	err := logger.Init(logger.Config{Level: "debug", Encoding: "json"})
	require.NoError(t, err)

	l := logger.Get()
	require.NotNil(t, l)
	assert.NotPanics(t, func() {
		logger.Debug("debug message")
		logger.Info("info message")
		logger.Warn("warn message")
		logger.Error("error message")
	})
	assert.NotNil(t, logger.With())
}

func TestInvalidLevel(t *testing.T) {
	// Init is once-only; newLogger rejects bad levels, which surfaces on
	// the first Init call in a fresh process. Here we only check the
	// config plumbing does not panic on reuse.
	assert.NotPanics(t, func() {
		_ = logger.Init(logger.Config{Level: "not-a-level", Encoding: "json"})
	})
}

func TestSync(t *testing.T) {
	assert.NotPanics(t, func() { _ = logger.Sync() })
}
