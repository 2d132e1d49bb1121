package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_BuildsLoggerWithRunID(t *testing.T) {
	log, err := New(zapcore.InfoLevel, "test-run")
	require.NoError(t, err)
	require.NotNil(t, log)
}

func TestNewRunID_ProducesDistinctValues(t *testing.T) {
	a := NewRunID()
	b := NewRunID()
	require.NotEqual(t, a, b)
}

func TestNop_NeverPanics(t *testing.T) {
	log := Nop()
	require.NotPanics(t, func() {
		log.Info("discarded")
	})
}
