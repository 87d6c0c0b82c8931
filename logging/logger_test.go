package logging

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFlowLogger_ComponentAttribute(t *testing.T) {
	var buf bytes.Buffer
	logger := NewFlowLogger(NewTextLogger(&buf, slog.LevelDebug)).WithComponent("swarm")

	logger.Info("Agent joined the swarm", "agent", "Stylist")

	out := buf.String()
	assert.Contains(t, out, "component=swarm")
	assert.Contains(t, out, "agent=Stylist")
	assert.Contains(t, out, "Agent joined the swarm")
}

func TestFlowLogger_NilLoggerDegradesToNoOp(t *testing.T) {
	logger := NewFlowLogger(nil)

	assert.NotPanics(t, func() {
		logger.Info("safe")
		logger.LogModelCall("m", 10, time.Second, nil)
	})
}

func TestFlowLogger_LogModelCall(t *testing.T) {
	var buf bytes.Buffer
	logger := NewFlowLogger(NewTextLogger(&buf, slog.LevelDebug))

	logger.LogModelCall("mock-model", 42, 100*time.Millisecond, nil)
	assert.Contains(t, buf.String(), "token_count=42")

	buf.Reset()
	logger.LogModelCall("mock-model", 0, time.Millisecond, assert.AnError)
	assert.Contains(t, buf.String(), "level=ERROR")
}

func TestNewTextLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewTextLogger(&buf, slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
