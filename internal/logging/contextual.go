package logging

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// ContextualLogger attaches a run id and operation name to every record
type ContextualLogger struct {
	runID     string
	operation string
	logger    *slog.Logger
}

// NewRunID returns a short identifier for one CLI invocation
func NewRunID() string {
	return uuid.NewString()[:8]
}

// NewContextualLogger creates a logger for the given run and operation.
// An empty runID gets a fresh one.
func NewContextualLogger(runID, operation string) *ContextualLogger {
	if runID == "" {
		runID = NewRunID()
	}
	return &ContextualLogger{
		runID:     runID,
		operation: operation,
		logger:    slog.Default().With("run", runID, "op", operation),
	}
}

// RunID returns the logger's run id
func (l *ContextualLogger) RunID() string {
	return l.runID
}

// With returns a child logger with additional attributes
func (l *ContextualLogger) With(args ...any) *ContextualLogger {
	return &ContextualLogger{
		runID:     l.runID,
		operation: l.operation,
		logger:    l.logger.With(args...),
	}
}

func (l *ContextualLogger) Trace(msg string, args ...any) {
	l.logger.Log(context.Background(), LevelTrace, msg, args...)
}

func (l *ContextualLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

func (l *ContextualLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

func (l *ContextualLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

func (l *ContextualLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

// Timer measures a single operation
type Timer struct {
	operation string
	runID     string
	start     time.Time
}

// StartTimer starts timing an operation
func StartTimer(operation, runID string) *Timer {
	Debug("Operation started", "operation", operation, "run", runID)
	return &Timer{operation: operation, runID: runID, start: time.Now()}
}

// Stop records the operation outcome and returns its duration
func (t *Timer) Stop(success bool, fields map[string]interface{}) time.Duration {
	d := time.Since(t.start)
	args := []any{"operation", t.operation, "run", t.runID, "success", success, "duration", d}
	for k, v := range fields {
		args = append(args, k, v)
	}
	Debug("Operation finished", args...)
	return d
}

// StopWithError records a failed operation
func (t *Timer) StopWithError(err error, fields map[string]interface{}) time.Duration {
	if fields == nil {
		fields = map[string]interface{}{}
	}
	fields["error"] = err
	return t.Stop(false, fields)
}
