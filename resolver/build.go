package resolver

import (
	"sort"
	"strings"

	"github.com/kdevops/pulselog/appender"
	"github.com/kdevops/pulselog/core"
	"github.com/kdevops/pulselog/formatter"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// ConfigurationError wraps a build-time resolver failure (spec.md §7
// "ConfigurationError: detected at build time (unknown appender
// reference); surfaces synchronously from initialize"). Wrapped with
// github.com/pkg/errors so operators get a stack trace.
type ConfigurationError struct {
	cause error
}

func (e *ConfigurationError) Error() string { return "resolver: " + e.cause.Error() }
func (e *ConfigurationError) Unwrap() error { return e.cause }

func configErr(format string, args ...any) error {
	return &ConfigurationError{cause: errors.Errorf(format, args...)}
}

// Reconfigure builds a new tree from cfg, atomically swaps it in, then
// closes every appender the tree being replaced wrapped. An
// AppenderDef.Appender value present in both the old and new
// configuration is closed too (through its old Guarded) and wrapped in a
// fresh Guarded for the new tree — quarantine state
// does not survive a reconfiguration, which is consistent with "old tree
// retained until in-flight lookups complete" rather than being treated
// as a live resource to hand off.
func (t *Tree) Reconfigure(cfg Config) error {
	newRoot, live, liveNames, err := build(cfg)
	if err != nil {
		return err
	}

	t.mu.Lock()
	oldLive := t.liveAppenders
	t.liveAppenders = live
	t.liveAppenderNames = liveNames
	t.mu.Unlock()

	t.root.Store(newRoot)

	var closeErr error
	for _, a := range oldLive {
		closeErr = multierr.Append(closeErr, a.Close())
	}

	t.notify()
	return closeErr
}

func build(cfg Config) (*node, []appender.Appender, []string, error) {
	guardedByName := make(map[string]*appender.Guarded, len(cfg.Appenders))
	formatterByName := make(map[string]formatter.Formatter, len(cfg.Appenders))
	minLevelByName := make(map[string]core.Level, len(cfg.Appenders))
	var live []appender.Appender
	var liveNames []string
	for _, def := range cfg.Appenders {
		if def.Name == "" {
			return nil, nil, nil, configErr("appender definition missing a name")
		}
		if _, dup := guardedByName[def.Name]; dup {
			return nil, nil, nil, configErr("duplicate appender name %q", def.Name)
		}
		if def.Appender == nil {
			return nil, nil, nil, configErr("appender %q has a nil implementation", def.Name)
		}
		g := appender.NewGuarded(def.Appender)
		guardedByName[def.Name] = g
		formatterByName[def.Name] = def.Formatter
		minLevelByName[def.Name] = def.Level
		live = append(live, g)
		liveNames = append(liveNames, def.Name)
	}

	resolveNames := func(names []string) ([]appender.Appender, []formatter.Formatter, []core.Level, error) {
		appenders := make([]appender.Appender, 0, len(names))
		formatters := make([]formatter.Formatter, 0, len(names))
		minLevels := make([]core.Level, 0, len(names))
		for _, n := range names {
			g, ok := guardedByName[n]
			if !ok {
				return nil, nil, nil, configErr("logger references unknown appender %q", n)
			}
			appenders = append(appenders, g)
			formatters = append(formatters, formatterByName[n])
			minLevels = append(minLevels, minLevelByName[n])
		}
		return appenders, formatters, minLevels, nil
	}

	root := newRootNode()
	if cfg.Root.Level != 0 || cfg.Root.Strategy != 0 || len(cfg.Root.Appenders) > 0 {
		root.level = cfg.Root.Level
		root.strategy = cfg.Root.Strategy
		rootAppenders, rootFormatters, rootMinLevels, err := resolveNames(cfg.Root.Appenders)
		if err != nil {
			return nil, nil, nil, err
		}
		root.appenders = rootAppenders
		root.formatters = rootFormatters
		root.minLevels = rootMinLevels
	}

	loggers := append([]LoggerConfig{}, cfg.Loggers...)
	sort.Slice(loggers, func(i, j int) bool { return loggers[i].Name < loggers[j].Name })

	for _, def := range loggers {
		if def.Name == "" {
			return nil, nil, nil, configErr("logger definition missing a name")
		}
		cur := root
		for _, seg := range strings.Split(def.Name, ".") {
			cur = cur.inheritedChild(seg)
		}

		defined, definedFormatters, definedMinLevels, err := resolveNames(def.Appenders)
		if err != nil {
			return nil, nil, nil, err
		}

		cur.level = def.Level
		cur.strategy = def.Strategy
		if def.includeParent(false) {
			cur.appenders, cur.formatters, cur.minLevels = unionAppenders(
				defined, definedFormatters, definedMinLevels,
				cur.appenders, cur.formatters, cur.minLevels)
		} else {
			cur.appenders = defined
			cur.formatters = definedFormatters
			cur.minLevels = definedMinLevels
		}
	}

	return root, live, liveNames, nil
}

// unionAppenders returns defined followed by any entries of parent not
// already present, preserving order and avoiding duplicate delivery when
// the same appender is named in both the logger's own set and an
// ancestor's. formatters and minLevels stay index-aligned with the
// returned appenders.
func unionAppenders(
	defined []appender.Appender, definedFormatters []formatter.Formatter, definedMinLevels []core.Level,
	parent []appender.Appender, parentFormatters []formatter.Formatter, parentMinLevels []core.Level,
) ([]appender.Appender, []formatter.Formatter, []core.Level) {
	if len(parent) == 0 {
		return defined, definedFormatters, definedMinLevels
	}
	seen := make(map[appender.Appender]bool, len(defined))
	outA := make([]appender.Appender, len(defined), len(defined)+len(parent))
	outF := make([]formatter.Formatter, len(defined), len(defined)+len(parent))
	outL := make([]core.Level, len(defined), len(defined)+len(parent))
	copy(outA, defined)
	copy(outF, definedFormatters)
	copy(outL, definedMinLevels)
	for _, a := range defined {
		seen[a] = true
	}
	for i, a := range parent {
		if !seen[a] {
			outA = append(outA, a)
			outF = append(outF, parentFormatters[i])
			outL = append(outL, parentMinLevels[i])
			seen[a] = true
		}
	}
	return outA, outF, outL
}
