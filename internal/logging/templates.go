package logging

import "fmt"

// LogTemplate represents a logging template with standardized emoji and formatting
type LogTemplate struct {
	emoji  string
	prefix string
	level  LogLevel
}

// LogLevel represents the logging level for templates
type LogLevel int

const (
	LevelInfo LogLevel = iota
	LevelSuccess
	LevelWarn
	LevelError
	LevelDebug
)

// Common logging templates with standardized emojis and formats
var (
	LoadTemplate      = LogTemplate{emoji: "📂", prefix: "Loading", level: LevelInfo}
	DetectTemplate    = LogTemplate{emoji: "🔍", prefix: "Detected grid", level: LevelInfo}
	FallbackTemplate  = LogTemplate{emoji: "⚠️", prefix: "No grid found", level: LevelWarn}
	RecognizeTemplate = LogTemplate{emoji: "🔤", prefix: "Recognizing", level: LevelInfo}
	SaveTemplate      = LogTemplate{emoji: "💾", prefix: "Saved", level: LevelSuccess}
	CompleteTemplate  = LogTemplate{emoji: "✅", prefix: "Completed", level: LevelSuccess}
	FailTemplate      = LogTemplate{emoji: "❌", prefix: "Failed", level: LevelError}
)

// Format formats the template with the provided message
func (t LogTemplate) Format(message string) string {
	if t.prefix != "" {
		return fmt.Sprintf("%s %s: %s", t.emoji, t.prefix, message)
	}
	return fmt.Sprintf("%s %s", t.emoji, message)
}

// Log logs the message using the appropriate logging function based on level
func (t LogTemplate) Log(message string) {
	formatted := t.Format(message)
	switch t.level {
	case LevelInfo:
		UserInfof("%s", formatted)
	case LevelSuccess:
		Successf("%s", formatted)
	case LevelWarn:
		UserWarnf("%s", formatted)
	case LevelError:
		UserErrorf("%s", formatted)
	case LevelDebug:
		Debug(formatted)
	}
}

// Logf logs the message using printf-style formatting
func (t LogTemplate) Logf(format string, args ...interface{}) {
	t.Log(fmt.Sprintf(format, args...))
}

// LoadFile logs an image load
func LoadFile(path string) {
	LoadTemplate.Log(path)
}

// DetectedGrid logs the resolved grid rectangle
func DetectedGrid(rect string) {
	DetectTemplate.Log(rect)
}

// NoGridFound logs that detection fell back to the full image
func NoGridFound(reason string) {
	FallbackTemplate.Log(reason)
}

// Recognize logs the start of text recognition
func Recognize(mode string, cells int) {
	RecognizeTemplate.Logf("%d regions (%s mode)", cells, mode)
}

// SaveFile logs file save operation
func SaveFile(path string, details string) {
	if details != "" {
		SaveTemplate.Logf("%s (%s)", path, details)
	} else {
		SaveTemplate.Log(path)
	}
}

// Complete logs successful completion
func Complete(operation string) {
	CompleteTemplate.Log(operation)
}

// Fail logs operation failure
func Fail(operation string, reason string) {
	if reason != "" {
		FailTemplate.Logf("%s: %s", operation, reason)
	} else {
		FailTemplate.Log(operation)
	}
}
