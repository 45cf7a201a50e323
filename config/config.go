// Package config loads a TOML file into the in-memory configuration the
// logger package needs (logger.Config / resolver.Config), and can watch
// that file for changes and push rebuilt configuration into a running
// Manager (see watch.go).
//
// The file format mirrors logger.Config/resolver.Config field-for-field,
// except that appenders are described declaratively (type + params)
// rather than as Go values — Build turns each AppenderSpec into a
// concrete appender.Appender before handing the result to logger.New.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/kdevops/pulselog/appender"
	"github.com/kdevops/pulselog/core"
	"github.com/kdevops/pulselog/formatter"
	"github.com/kdevops/pulselog/logger"
	"github.com/kdevops/pulselog/record"
	"github.com/kdevops/pulselog/resolver"
	"github.com/kdevops/pulselog/worker"
)

// ConfigurationError wraps a failure to parse or build a config file,
// matching the stack-trace-carrying style of resolver.ConfigurationError.
type ConfigurationError struct {
	Path string
	err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("config: %s: %v", e.Path, e.err)
}
func (e *ConfigurationError) Unwrap() error { return e.err }

func wrapErr(path string, err error) error {
	if err == nil {
		return nil
	}
	return &ConfigurationError{Path: path, err: errors.WithStack(err)}
}

// File is the root of the TOML document.
type File struct {
	Pool      PoolConfig     `toml:"pool"`
	Format    FormatConfig   `toml:"format"`
	Worker    WorkerConfig   `toml:"worker"`
	Appenders []AppenderSpec `toml:"appenders"`
	Root      LoggerSpec     `toml:"root"`
	Loggers   []LoggerSpec   `toml:"loggers"`
}

// PoolConfig maps onto logger.Config's buffer-pool fields.
type PoolConfig struct {
	Size           int `toml:"size"`
	BufferSize     int `toml:"buffer_size"`
	StringCapacity int `toml:"string_capacity"`
}

// FormatConfig maps onto logger.Config's rendering fields.
type FormatConfig struct {
	NullDisplayString      string `toml:"null_display_string"`
	TruncatedMessageSuffix string `toml:"truncated_message_suffix"`
	AutoRegisterEnums      bool   `toml:"auto_register_enums"`
	IncludeCaller          bool   `toml:"include_caller"`
	CallerSkip             int    `toml:"caller_skip"`
	// Pattern is the TextFormatter pattern for appenders declared with
	// format = "text". Appenders with no format use the worker's default
	// formatter, which does not read this field.
	Pattern string `toml:"pattern"`
}

// WorkerConfig maps onto worker.Config's scheduling fields.
type WorkerConfig struct {
	QuarantineDelay Duration `toml:"quarantine_delay"`
	FlushInterval   Duration `toml:"flush_interval"`
	FlushEvery      int      `toml:"flush_every"`
}

// Duration parses a TOML string ("15s", "1m") into a time.Duration —
// go-toml/v2 has no native duration type, so this follows the
// TextMarshaler/TextUnmarshaler pattern the retrieval pack already uses
// for the same problem.
type Duration struct{ time.Duration }

func (d Duration) MarshalText() ([]byte, error) { return []byte(d.Duration.String()), nil }

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// AppenderSpec declares one named appender and how to render for it.
// Exactly one of the concrete *Config fields (besides Type) is expected
// to be populated, matching Type.
type AppenderSpec struct {
	Name   string `toml:"name"`
	Type   string `toml:"type"` // "console" (or empty), "file", "udp"
	Level  string `toml:"level"`
	Format string `toml:"format"` // "text", "json", "xml"; empty = worker default

	File FileAppenderSpec `toml:"file"`
	UDP  UDPAppenderSpec  `toml:"udp"`
}

type FileAppenderSpec struct {
	Path           string   `toml:"path"`
	MaxSize        int64    `toml:"max_size"`
	MaxAge         Duration `toml:"max_age"`
	MaxBackups     int      `toml:"max_backups"`
	RotateInterval Duration `toml:"rotate_interval"`
}

type UDPAppenderSpec struct {
	Addr  string `toml:"addr"`
	Limit int    `toml:"limit"`
	Burst int    `toml:"burst"`
}

// LoggerSpec is one entry of the hierarchical logger configuration.
type LoggerSpec struct {
	Name                   string   `toml:"name"`
	Level                  string   `toml:"level"`
	Appenders              []string `toml:"appenders"`
	IncludeParentAppenders *bool    `toml:"include_parent_appenders"`
	Strategy               string   `toml:"strategy"` // "drop", "drop_and_notify", "wait"
}

// Load reads and parses path into a File. It does not build any
// appenders or formatters yet — call Build for that.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapErr(path, err)
	}
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, wrapErr(path, err)
	}
	return &f, nil
}

// Build turns f into a ready-to-use logger.Config, constructing every
// declared appender and formatter along the way.
func (f *File) Build() (logger.Config, error) {
	formatters := make(map[string]formatter.Formatter, 4)
	defaultPattern := f.Format.Pattern

	defs := make([]resolver.AppenderDef, 0, len(f.Appenders))
	for _, spec := range f.Appenders {
		a, err := buildAppender(spec)
		if err != nil {
			return logger.Config{}, wrapErr(spec.Name, err)
		}
		fm, err := namedFormatter(formatters, spec.Format, defaultPattern)
		if err != nil {
			return logger.Config{}, wrapErr(spec.Name, err)
		}
		defs = append(defs, resolver.AppenderDef{
			Name:      spec.Name,
			Appender:  a,
			Level:     floorLevel(spec.Level),
			Formatter: fm,
		})
	}

	root, err := buildLoggerConfig(f.Root)
	if err != nil {
		return logger.Config{}, err
	}
	loggers := make([]resolver.LoggerConfig, 0, len(f.Loggers))
	for _, spec := range f.Loggers {
		lc, err := buildLoggerConfig(spec)
		if err != nil {
			return logger.Config{}, err
		}
		loggers = append(loggers, lc)
	}

	return logger.Config{
		LogMessagePoolSize:       f.Pool.Size,
		LogMessageBufferSize:     f.Pool.BufferSize,
		LogMessageStringCapacity: f.Pool.StringCapacity,
		NullDisplayString:        f.Format.NullDisplayString,
		TruncatedMessageSuffix:   f.Format.TruncatedMessageSuffix,
		AppenderQuarantineDelay:  f.Worker.QuarantineDelay.Duration,
		AutoRegisterEnums:        f.Format.AutoRegisterEnums,
		IncludeCaller:            f.Format.IncludeCaller,
		CallerSkip:               f.Format.CallerSkip,
		Resolver: resolver.Config{
			Appenders: defs,
			Root:      root,
			Loggers:   loggers,
		},
		Worker: worker.Config{
			FlushInterval: f.Worker.FlushInterval.Duration,
			FlushEvery:    f.Worker.FlushEvery,
		},
	}, nil
}

func buildAppender(spec AppenderSpec) (appender.Appender, error) {
	switch spec.Type {
	case "console", "":
		return appender.NewConsole(nil), nil
	case "file":
		return appender.NewFile(appender.FileConfig{
			Filename:       spec.File.Path,
			MaxSize:        spec.File.MaxSize,
			MaxAge:         spec.File.MaxAge.Duration,
			MaxBackups:     spec.File.MaxBackups,
			RotateInterval: spec.File.RotateInterval.Duration,
		})
	case "udp":
		return appender.NewUDP(appender.UDPConfig{
			Addr:  spec.UDP.Addr,
			Limit: spec.UDP.Limit,
			Burst: spec.UDP.Burst,
		})
	default:
		return nil, fmt.Errorf("unknown appender type %q", spec.Type)
	}
}

func namedFormatter(cache map[string]formatter.Formatter, name, defaultPattern string) (formatter.Formatter, error) {
	if name == "" {
		return nil, nil
	}
	if fm, ok := cache[name]; ok {
		return fm, nil
	}
	var fm formatter.Formatter
	switch name {
	case "text":
		fm = formatter.NewTextFormatter(defaultPattern)
	case "json":
		fm = formatter.NewJSONFormatter()
	case "xml":
		fm = formatter.NewXMLFormatter()
	default:
		return nil, fmt.Errorf("unknown formatter %q", name)
	}
	cache[name] = fm
	return fm, nil
}

func buildLoggerConfig(spec LoggerSpec) (resolver.LoggerConfig, error) {
	strategy, err := parseStrategy(spec.Strategy)
	if err != nil {
		return resolver.LoggerConfig{}, err
	}
	return resolver.LoggerConfig{
		Name:                   spec.Name,
		Level:                  levelOrZero(spec.Level),
		Appenders:              spec.Appenders,
		IncludeParentAppenders: spec.IncludeParentAppenders,
		Strategy:               strategy,
	}, nil
}

// levelOrZero defaults an unset logger level to Info, the same default
// Tree.New/newRootNode apply.
func levelOrZero(s string) core.Level {
	if s == "" {
		return core.InfoLevel
	}
	return core.ParseLevel(s)
}

// floorLevel defaults an unset appender floor to Trace (core.Level's zero
// value), meaning no floor — the appender receives whatever the logger's
// own effective level already allows.
func floorLevel(s string) core.Level {
	if s == "" {
		return core.TraceLevel
	}
	return core.ParseLevel(s)
}

// parseStrategy defaults an unset strategy to DropAndNotify, matching
// ExhaustionStrategy's zero value and newRootNode's implicit default.
func parseStrategy(s string) (record.ExhaustionStrategy, error) {
	switch s {
	case "", "drop_and_notify":
		return record.DropAndNotify, nil
	case "drop":
		return record.Drop, nil
	case "wait":
		return record.WaitUntilAvailable, nil
	default:
		return 0, fmt.Errorf("unknown pool exhaustion strategy %q", s)
	}
}
