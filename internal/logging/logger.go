package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
)

// LevelTrace is below slog.LevelDebug and is used for per-pixel and per-cell detail
const LevelTrace = slog.Level(-8)

var (
	// Minimum level that will be written
	minLevel = slog.LevelInfo

	// Default logger instance
	logger *slog.Logger

	// Writers used for user-facing messages
	userOut io.Writer = os.Stdout
	errOut  io.Writer = os.Stderr

	// Colors for different log levels
	infoColor    = color.New(color.FgGreen).SprintFunc()
	warnColor    = color.New(color.FgYellow).SprintFunc()
	errorColor   = color.New(color.FgRed).SprintFunc()
	debugColor   = color.New(color.FgCyan).SprintFunc()
	traceColor   = color.New(color.FgMagenta).SprintFunc()
	successColor = color.New(color.FgGreen, color.Bold).SprintFunc()
)

// ColorTextHandler is a simple handler that adds colors to log output
type ColorTextHandler struct {
	w     io.Writer
	attrs []slog.Attr
}

// NewColorTextHandler creates a new ColorTextHandler
func NewColorTextHandler(w io.Writer) *ColorTextHandler {
	return &ColorTextHandler{w: w}
}

// Handle handles the log record
func (h *ColorTextHandler) Handle(ctx context.Context, r slog.Record) error {
	var levelText string
	switch {
	case r.Level < slog.LevelDebug:
		levelText = traceColor("TRACE")
	case r.Level == slog.LevelDebug:
		levelText = debugColor("DEBUG")
	case r.Level == slog.LevelInfo:
		levelText = infoColor("INFO")
	case r.Level == slog.LevelWarn:
		levelText = warnColor("WARN")
	case r.Level == slog.LevelError:
		levelText = errorColor("ERROR")
	default:
		levelText = r.Level.String()
	}

	var sb strings.Builder
	for _, a := range h.attrs {
		sb.WriteString(" " + a.Key + "=" + formatAttrValue(a.Value))
	}
	r.Attrs(func(a slog.Attr) bool {
		// Skip the source attribute
		if a.Key == "source" {
			return true
		}
		sb.WriteString(" " + a.Key + "=" + formatAttrValue(a.Value))
		return true
	})

	_, err := fmt.Fprintf(h.w, "%s %s%s\n", levelText, r.Message, sb.String())
	return err
}

// formatAttrValue formats a slog.Value as a string
func formatAttrValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindInt64:
		return fmt.Sprintf("%d", v.Int64())
	case slog.KindUint64:
		return fmt.Sprintf("%d", v.Uint64())
	case slog.KindFloat64:
		return fmt.Sprintf("%.4f", v.Float64())
	case slog.KindBool:
		return fmt.Sprintf("%t", v.Bool())
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format("15:04:05")
	case slog.KindAny:
		return fmt.Sprintf("%v", v.Any())
	default:
		return v.String()
	}
}

// WithAttrs returns a new handler with the given attributes
func (h *ColorTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &ColorTextHandler{w: h.w, attrs: merged}
}

// WithGroup returns a new handler with the given group
func (h *ColorTextHandler) WithGroup(name string) slog.Handler {
	return h
}

// Enabled reports whether the handler handles records at the given level
func (h *ColorTextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= minLevel
}

// ParseLevel converts a level name to a slog level. Unknown names map to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// InitWithLevel initializes the logger at the named level.
// Log records go to stderr so that stdout stays clean for results.
func InitWithLevel(level string) {
	minLevel = ParseLevel(level)

	logger = slog.New(NewColorTextHandler(os.Stderr))
	slog.SetDefault(logger)

	Debug("Logging initialized", "level", level)
}

// SetOutput sets the output writer for the logger
func SetOutput(w io.Writer) {
	logger = slog.New(NewColorTextHandler(w))
	slog.SetDefault(logger)
}

// SetUserOutput sets the writer used by the user-facing helpers
func SetUserOutput(w io.Writer) {
	userOut = w
}

// SetErrorOutput sets the writer used for user warnings and errors
func SetErrorOutput(w io.Writer) {
	errOut = w
}

// IsDebugEnabled reports whether debug records are written
func IsDebugEnabled() bool {
	return minLevel <= slog.LevelDebug
}

// Trace logs a trace message
func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	slog.Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	slog.Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	slog.Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	slog.Error(msg, args...)
}

// UserInfof prints an informational message for the user
func UserInfof(format string, args ...any) {
	fmt.Fprintf(userOut, format+"\n", args...)
}

// Successf prints a success message for the user
func Successf(format string, args ...any) {
	fmt.Fprintln(userOut, successColor(fmt.Sprintf(format, args...)))
}

// UserWarnf prints a warning for the user, on stderr by default
func UserWarnf(format string, args ...any) {
	fmt.Fprintln(errOut, warnColor(fmt.Sprintf(format, args...)))
}

// UserErrorf prints an error for the user, on stderr by default
func UserErrorf(format string, args ...any) {
	fmt.Fprintln(errOut, errorColor(fmt.Sprintf(format, args...)))
}
