package logging

import (
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger defines the minimal logging interface for FlowSwarm.
// This allows users to provide their own logger implementation or use the
// built-in adapters.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// SlogAdapter wraps *slog.Logger to implement the Logger interface.
type SlogAdapter struct {
	*slog.Logger
}

// Debug logs a debug message.
func (s *SlogAdapter) Debug(msg string, args ...any) { s.Logger.Debug(msg, args...) }

// Info logs an informational message.
func (s *SlogAdapter) Info(msg string, args ...any) { s.Logger.Info(msg, args...) }

// Warn logs a warning message.
func (s *SlogAdapter) Warn(msg string, args ...any) { s.Logger.Warn(msg, args...) }

// Error logs an error message.
func (s *SlogAdapter) Error(msg string, args ...any) { s.Logger.Error(msg, args...) }

// NewSlogAdapter creates a Logger from *slog.Logger.
func NewSlogAdapter(logger *slog.Logger) Logger {
	return &SlogAdapter{Logger: logger}
}

// NewDefaultSlogLogger creates a Logger using slog.Default().
func NewDefaultSlogLogger() Logger {
	return NewSlogAdapter(slog.Default())
}

// NoOpLogger discards all log messages. Useful for testing or when logging
// is disabled.
type NoOpLogger struct{}

// Debug logs a debug message.
func (NoOpLogger) Debug(string, ...any) {}

// Info logs an informational message.
func (NoOpLogger) Info(string, ...any) {}

// Warn logs a warning message.
func (NoOpLogger) Warn(string, ...any) {}

// Error logs an error message.
func (NoOpLogger) Error(string, ...any) {}

// FlowLogger wraps a Logger adding a component attribute and domain
// convenience methods. It is cheap to copy via WithComponent.
type FlowLogger struct {
	logger    Logger
	component string
}

// NewFlowLogger wraps the given logger; a nil logger degrades to NoOp.
func NewFlowLogger(l Logger) *FlowLogger {
	if l == nil {
		l = NoOpLogger{}
	}
	return &FlowLogger{logger: l}
}

// WithComponent returns a copy tagged with the logical component
// (agent, swarm, completion, memory).
func (l *FlowLogger) WithComponent(c string) *FlowLogger {
	return &FlowLogger{logger: l.logger, component: c}
}

func (l *FlowLogger) attrs(args []any) []any {
	if l.component == "" {
		return args
	}
	return append([]any{"component", l.component}, args...)
}

// Debug logs at debug level.
func (l *FlowLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, l.attrs(args)...) }

// Info logs at info level.
func (l *FlowLogger) Info(msg string, args ...any) { l.logger.Info(msg, l.attrs(args)...) }

// Warn logs at warn level.
func (l *FlowLogger) Warn(msg string, args ...any) { l.logger.Warn(msg, l.attrs(args)...) }

// Error logs at error level.
func (l *FlowLogger) Error(msg string, args ...any) { l.logger.Error(msg, l.attrs(args)...) }

// LogModelCall records completion call latency, token usage and success.
func (l *FlowLogger) LogModelCall(model string, tokens int, dur time.Duration, err error) {
	if err != nil {
		l.Error("Completion call failed", "model", model, "duration", dur, "error", err.Error())
		return
	}
	l.Info("Completion call completed", "model", model, "token_count", tokens, "duration", dur)
}

// LogAgentTask records one agent task execution.
func (l *FlowLogger) LogAgentTask(agent, task string, dur time.Duration, err error) {
	if err != nil {
		l.Error("Agent task failed", "agent", agent, "task", task, "duration", dur, "error", err.Error())
		return
	}
	l.Info("Agent task completed", "agent", agent, "task", task, "duration", dur)
}

// LogSwarmRun records aggregate swarm execution metrics.
func (l *FlowLogger) LogSwarmRun(topology string, agents int, dur time.Duration, err error) {
	if err != nil {
		l.Error("Swarm execution failed", "topology", topology, "agent_count", agents, "duration", dur, "error", err.Error())
		return
	}
	l.Info("Swarm execution completed", "topology", topology, "agent_count", agents, "duration", dur)
}

// NewTextLogger builds a Logger writing human readable lines to w at the
// given level. Convenience for CLI wiring.
func NewTextLogger(w io.Writer, level slog.Level) Logger {
	if w == nil {
		w = os.Stderr
	}
	return NewSlogAdapter(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
