package resolver

import (
	"testing"

	"github.com/kdevops/pulselog/appender"
	"github.com/kdevops/pulselog/core"
)

func mustReconfigure(t *testing.T, tree *Tree, cfg Config) {
	t.Helper()
	if err := tree.Reconfigure(cfg); err != nil {
		t.Fatalf("Reconfigure: %v", err)
	}
}

func TestResolveLongestPrefixMatch(t *testing.T) {
	tree := New()
	cfg := Config{
		Root: LoggerConfig{Level: core.WarnLevel},
		Loggers: []LoggerConfig{
			{Name: "app", Level: core.InfoLevel},
			{Name: "app.db", Level: core.DebugLevel},
		},
	}
	mustReconfigure(t, tree, cfg)

	cases := map[string]core.Level{
		"":                  core.WarnLevel,
		"other":             core.WarnLevel,
		"app":               core.InfoLevel,
		"app.http":          core.InfoLevel,
		"app.db":            core.DebugLevel,
		"app.db.migrations": core.DebugLevel,
	}
	for name, want := range cases {
		if got := tree.Resolve(name).Level; got != want {
			t.Errorf("Resolve(%q).Level = %v, want %v", name, got, want)
		}
	}
}

func TestIncludeParentAppendersUnion(t *testing.T) {
	rootSink := appender.WriterAppender{}
	childSink := appender.WriterAppender{}
	tree := New()
	cfg := Config{
		Appenders: []AppenderDef{
			{Name: "root-sink", Appender: rootSink},
			{Name: "child-sink", Appender: childSink},
		},
		Root: LoggerConfig{Level: core.InfoLevel, Appenders: []string{"root-sink"}},
		Loggers: []LoggerConfig{
			{Name: "app", Level: core.InfoLevel, Appenders: []string{"child-sink"}, IncludeParentAppenders: Bool(true)},
			{Name: "app.quiet", Level: core.InfoLevel, Appenders: []string{"child-sink"}, IncludeParentAppenders: Bool(false)},
		},
	}
	mustReconfigure(t, tree, cfg)

	got := tree.Resolve("app").Appenders
	if len(got) != 2 {
		t.Fatalf("expected union of 2 appenders for app, got %d", len(got))
	}

	got = tree.Resolve("app.quiet").Appenders
	if len(got) != 1 {
		t.Fatalf("expected only the defined appender for app.quiet, got %d", len(got))
	}
}

func TestUnknownAppenderReferenceIsConfigurationError(t *testing.T) {
	tree := New()
	cfg := Config{
		Loggers: []LoggerConfig{{Name: "app", Appenders: []string{"missing"}}},
	}
	err := tree.Reconfigure(cfg)
	if err == nil {
		t.Fatalf("expected a configuration error")
	}
	var ce *ConfigurationError
	if !asConfigurationError(err, &ce) {
		t.Errorf("expected a *ConfigurationError, got %T: %v", err, err)
	}
}

func asConfigurationError(err error, target **ConfigurationError) bool {
	ce, ok := err.(*ConfigurationError)
	if ok {
		*target = ce
	}
	return ok
}

func TestReconfigureClosesOldAppendersAfterSwap(t *testing.T) {
	tree := New()
	first := &closeTrackingAppender{}
	mustReconfigure(t, tree, Config{
		Appenders: []AppenderDef{{Name: "a", Appender: first}},
		Root:      LoggerConfig{Appenders: []string{"a"}},
	})

	second := &closeTrackingAppender{}
	mustReconfigure(t, tree, Config{
		Appenders: []AppenderDef{{Name: "a", Appender: second}},
		Root:      LoggerConfig{Appenders: []string{"a"}},
	})

	if !first.closed {
		t.Errorf("expected the previous build's appender to be closed after the swap")
	}
	if second.closed {
		t.Errorf("did not expect the newly configured appender to be closed")
	}
}

func TestResolveDuringReconfigureNeverObservesPartialTree(t *testing.T) {
	tree := New()
	mustReconfigure(t, tree, Config{Loggers: []LoggerConfig{{Name: "app", Level: core.DebugLevel}}})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			_ = tree.Resolve("app")
		}
	}()
	for i := 0; i < 20; i++ {
		mustReconfigure(t, tree, Config{Loggers: []LoggerConfig{{Name: "app", Level: core.DebugLevel}}})
	}
	<-done
}

func TestAppenderFloorLevelIsIndexAlignedWithAppenders(t *testing.T) {
	verbose := appender.WriterAppender{}
	quiet := appender.WriterAppender{}
	tree := New()
	mustReconfigure(t, tree, Config{
		Appenders: []AppenderDef{
			{Name: "verbose", Appender: verbose},
			{Name: "quiet", Appender: quiet, Level: core.ErrorLevel},
		},
		Root: LoggerConfig{Level: core.TraceLevel, Appenders: []string{"verbose", "quiet"}},
	})

	resolved := tree.Resolve("")
	if len(resolved.MinLevels) != 2 {
		t.Fatalf("expected 2 index-aligned floor levels, got %d", len(resolved.MinLevels))
	}
	if resolved.MinLevels[0] != core.TraceLevel {
		t.Errorf("expected verbose's floor to default to Trace, got %v", resolved.MinLevels[0])
	}
	if resolved.MinLevels[1] != core.ErrorLevel {
		t.Errorf("expected quiet's floor to be Error, got %v", resolved.MinLevels[1])
	}
}

type closeTrackingAppender struct{ closed bool }

func (c *closeTrackingAppender) Write(appender.LoggedMessage) error { return nil }
func (c *closeTrackingAppender) Flush() error                       { return nil }
func (c *closeTrackingAppender) Close() error                       { c.closed = true; return nil }
func (c *closeTrackingAppender) SetEncoding(string) error           { return nil }
