package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_WithAddsFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	child := l.With("remote", "10.0.0.7:5123")
	child.Infow("stream client connected", "ticker", "AAPL")
	l.Infow("plain")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "10.0.0.7:5123", entries[0].ContextMap()["remote"])
	assert.Equal(t, "AAPL", entries[0].ContextMap()["ticker"])
	assert.NotContains(t, entries[1].ContextMap(), "remote")
}

func TestGet_NoopBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() { Get().Infow("before init") })
}
