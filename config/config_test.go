package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kdevops/pulselog/core"
	"github.com/kdevops/pulselog/record"
)

const sampleTOML = `
[pool]
size = 16
buffer_size = 128
string_capacity = 16

[format]
null_display_string = "NULL"
auto_register_enums = true
pattern = "%%date %%time %%level %%logger"

[worker]
quarantine_delay = "30s"
flush_every = 500

[[appenders]]
name = "console"
type = "console"

[[appenders]]
name = "audit"
type = "file"
format = "json"
[appenders.file]
path = "%s"
max_size = 1048576

[root]
level = "info"
appenders = ["console"]

[[loggers]]
name = "app.audit"
level = "debug"
appenders = ["audit"]
strategy = "drop_and_notify"
include_parent_appenders = false
`

func writeSample(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "pulselog.toml")
	logPath := filepath.Join(dir, "audit.log")
	content := fmt.Sprintf(sampleTOML, logPath)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoadParsesFields(t *testing.T) {
	path := writeSample(t)
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Pool.Size != 16 || f.Pool.BufferSize != 128 {
		t.Errorf("unexpected pool config: %+v", f.Pool)
	}
	if f.Worker.QuarantineDelay.Duration != 30*time.Second {
		t.Errorf("expected 30s quarantine delay, got %v", f.Worker.QuarantineDelay.Duration)
	}
	if len(f.Appenders) != 2 {
		t.Fatalf("expected 2 appenders, got %d", len(f.Appenders))
	}
	if f.Root.Level != "info" || len(f.Root.Appenders) != 1 {
		t.Errorf("unexpected root config: %+v", f.Root)
	}
}

func TestBuildProducesUsableLoggerConfig(t *testing.T) {
	path := writeSample(t)
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg, err := f.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if cfg.LogMessagePoolSize != 16 {
		t.Errorf("expected pool size 16, got %d", cfg.LogMessagePoolSize)
	}
	if cfg.AppenderQuarantineDelay != 30*time.Second {
		t.Errorf("expected 30s quarantine delay, got %v", cfg.AppenderQuarantineDelay)
	}
	if len(cfg.Resolver.Appenders) != 2 {
		t.Fatalf("expected 2 resolved appender defs, got %d", len(cfg.Resolver.Appenders))
	}
	var sawJSON bool
	for _, def := range cfg.Resolver.Appenders {
		if def.Name == "audit" {
			if def.Formatter == nil {
				t.Errorf("expected the audit appender to carry a JSON formatter")
			}
			sawJSON = true
		}
		if def.Appender == nil {
			t.Errorf("appender %q built to a nil Appender", def.Name)
		}
	}
	if !sawJSON {
		t.Errorf("never saw the audit appender def")
	}

	if len(cfg.Resolver.Loggers) != 1 {
		t.Fatalf("expected 1 logger entry, got %d", len(cfg.Resolver.Loggers))
	}
	lg := cfg.Resolver.Loggers[0]
	if lg.Name != "app.audit" || lg.Level != core.DebugLevel {
		t.Errorf("unexpected logger entry: %+v", lg)
	}
	if lg.Strategy != record.DropAndNotify {
		t.Errorf("expected drop_and_notify strategy, got %v", lg.Strategy)
	}
	if lg.IncludeParentAppenders == nil || *lg.IncludeParentAppenders {
		t.Errorf("expected include_parent_appenders=false to survive parsing")
	}
}

func TestBuildRejectsUnknownAppenderType(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	os.WriteFile(path, []byte(`
[[appenders]]
name = "x"
type = "carrier-pigeon"
[root]
appenders = ["x"]
`), 0o644)

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := f.Build(); err == nil {
		t.Errorf("expected Build to reject an unknown appender type")
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pulselog.toml")
	os.WriteFile(path, []byte(`
[root]
level = "info"
`), 0o644)

	reloaded := make(chan *File, 4)
	w, err := Watch(path, func(f *File) error {
		reloaded <- f
		return nil
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	time.Sleep(50 * time.Millisecond)
	os.WriteFile(path, []byte(`
[root]
level = "debug"
`), 0o644)

	select {
	case f := <-reloaded:
		if f.Root.Level != "debug" {
			t.Errorf("expected reloaded root level debug, got %q", f.Root.Level)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reload callback")
	}
}
