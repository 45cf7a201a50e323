package logger

import "github.com/kdevops/pulselog/core"

// Level re-exports core.Level so callers of this package rarely need to
// import core directly.
type Level = core.Level

const (
	TraceLevel = core.TraceLevel
	DebugLevel = core.DebugLevel
	InfoLevel  = core.InfoLevel
	WarnLevel  = core.WarnLevel
	ErrorLevel = core.ErrorLevel
	FatalLevel = core.FatalLevel
	NoneLevel  = core.NoneLevel
)

// ParseLevel re-exports core.ParseLevel.
func ParseLevel(s string) Level { return core.ParseLevel(s) }
