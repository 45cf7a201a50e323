package core

import "strings"

// Level represents the severity of a log record. Levels are ordered; a
// record is emitted only when its Level is >= the effective level of its
// logger. None disables a logger entirely.
type Level int8

const (
	// TraceLevel for very fine-grained diagnostic events.
	TraceLevel Level = iota
	// DebugLevel for detailed debugging information.
	DebugLevel
	// InfoLevel for general informational messages (default).
	InfoLevel
	// WarnLevel for warning messages.
	WarnLevel
	// ErrorLevel for error messages.
	ErrorLevel
	// FatalLevel for fatal messages.
	FatalLevel
	// NoneLevel disables a logger: no record is ever enabled at this level.
	NoneLevel
)

// String returns the upper-case name of the level, as used by %level in
// the prefix pattern language.
func (l Level) String() string {
	switch l {
	case TraceLevel:
		return "TRACE"
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	case NoneLevel:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a case-insensitive level name to a Level. Unknown
// names resolve to InfoLevel, matching the teacher's default-on-unknown
// behavior.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return TraceLevel
	case "DEBUG":
		return DebugLevel
	case "INFO":
		return InfoLevel
	case "WARN", "WARNING":
		return WarnLevel
	case "ERROR":
		return ErrorLevel
	case "FATAL":
		return FatalLevel
	case "NONE", "OFF":
		return NoneLevel
	default:
		return InfoLevel
	}
}
