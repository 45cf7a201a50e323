package resolver

import (
	"github.com/kdevops/pulselog/appender"
	"github.com/kdevops/pulselog/core"
	"github.com/kdevops/pulselog/formatter"
	"github.com/kdevops/pulselog/record"
)

// AppenderDef names a concrete appender so logger definitions can refer
// to it by name (spec.md §6 "Per-logger: Appenders"). The same Name may
// be referenced by several LoggerConfig entries; Tree.Reconfigure wraps it in a
// single shared appender.Guarded instance (spec.md §9 OQ1).
type AppenderDef struct {
	Name     string
	Appender appender.Appender
	// Level is an optional floor: the appender is skipped for records
	// below it even if the logger's own effective level would allow them.
	Level core.Level
	// Formatter renders records for this appender. Nil means the worker's
	// default (a TextFormatter) applies — most sinks want plain text;
	// only structured sinks like the JSON/XML-speaking ones need their own.
	Formatter formatter.Formatter
}

// LoggerConfig is one entry of the hierarchical configuration (spec.md
// §4.6/§6). The zero value for the root entry (Name == "") supplies the
// tree's defaults.
type LoggerConfig struct {
	Name      string
	Level     core.Level
	Appenders []string // names, resolved against Config.Appenders
	// IncludeParentAppenders defaults to true for every entry except the
	// root, per spec.md §6.
	IncludeParentAppenders *bool
	Strategy               record.ExhaustionStrategy
}

func (c LoggerConfig) includeParent(isRoot bool) bool {
	if c.IncludeParentAppenders != nil {
		return *c.IncludeParentAppenders
	}
	return !isRoot
}

// Config is the full resolver build input.
type Config struct {
	Appenders []AppenderDef
	Loggers   []LoggerConfig
	// Root supplies the defaults inherited by every logger with no more
	// specific configured ancestor.
	Root LoggerConfig
}

// Bool returns a pointer to b, for populating LoggerConfig.IncludeParentAppenders.
func Bool(b bool) *bool { return &b }

// Resolved is the effective configuration for a logger name, as returned
// by Tree.Resolve.
type Resolved struct {
	Level     core.Level
	Appenders []appender.Appender
	// Formatters is index-aligned with Appenders; an entry is nil if that
	// appender uses the worker's default formatter.
	Formatters []formatter.Formatter
	// MinLevels is index-aligned with Appenders: AppenderDef.Level floors
	// carried from build time, for the worker to filter against per record.
	MinLevels []core.Level
	Strategy  record.ExhaustionStrategy
}
