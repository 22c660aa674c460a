package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func isolate(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	for _, key := range []string{"BYTEME_DATA_DIR", "BYTEME_LOG_LEVEL", "BYTEME_LOG_FILE", "BYTEME_EVENT_DURATION"} {
		_ = os.Unsetenv(key)
	}
	return root
}

func TestLoadDefaults(t *testing.T) {
	root := isolate(t)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	wantDir := filepath.Join(root, "data", AppName)
	if cfg.DataDir != wantDir {
		t.Fatalf("unexpected data dir: %q", cfg.DataDir)
	}
	if cfg.LogFile != filepath.Join(wantDir, "byteme.log") {
		t.Fatalf("unexpected log file: %q", cfg.LogFile)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("unexpected log level: %q", cfg.LogLevel)
	}
	if cfg.EventDuration != time.Hour {
		t.Fatalf("unexpected event duration: %v", cfg.EventDuration)
	}
	if cfg.ShowVersion || len(cfg.Args) != 0 {
		t.Fatalf("unexpected flags: %+v", cfg)
	}
}

func TestLoadEnvironment(t *testing.T) {
	root := isolate(t)
	t.Setenv("BYTEME_DATA_DIR", filepath.Join(root, "elsewhere"))
	t.Setenv("BYTEME_LOG_LEVEL", "debug")
	t.Setenv("BYTEME_EVENT_DURATION", "30m")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DataDir != filepath.Join(root, "elsewhere") {
		t.Fatalf("unexpected data dir: %q", cfg.DataDir)
	}
	if cfg.LogLevel != "debug" || cfg.EventDuration != 30*time.Minute {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadConfigFile(t *testing.T) {
	root := isolate(t)
	dir := filepath.Join(root, "config", AppName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	content := "event_duration: 45m\nlog_level: warn\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.EventDuration != 45*time.Minute || cfg.LogLevel != "warn" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestFlagsOverrideAndStopAtCommand(t *testing.T) {
	root := isolate(t)
	t.Setenv("BYTEME_LOG_LEVEL", "debug")

	cfg, err := Load([]string{
		"--log-level", "error",
		"--data-dir", filepath.Join(root, "flag"),
		"--event-duration", "2h",
		"event", "standup", "/at", "2024-03-01 09:00",
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != "error" {
		t.Fatalf("flag did not override env: %q", cfg.LogLevel)
	}
	if cfg.DataDir != filepath.Join(root, "flag") || cfg.EventDuration != 2*time.Hour {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	want := []string{"event", "standup", "/at", "2024-03-01 09:00"}
	if len(cfg.Args) != len(want) {
		t.Fatalf("unexpected args: %q", cfg.Args)
	}
	for i := range want {
		if cfg.Args[i] != want[i] {
			t.Fatalf("arg %d: got %q, want %q", i, cfg.Args[i], want[i])
		}
	}
}

func TestVersionFlag(t *testing.T) {
	isolate(t)
	cfg, err := Load([]string{"-v"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.ShowVersion {
		t.Fatalf("expected ShowVersion")
	}
}

func TestValidateErrors(t *testing.T) {
	cases := []Config{
		{LogLevel: "info", EventDuration: time.Hour},
		{DataDir: "/tmp/x", LogLevel: "trace", EventDuration: time.Hour},
		{DataDir: "/tmp/x", LogLevel: "info", EventDuration: 0},
		{DataDir: "/tmp/x", LogLevel: "info", EventDuration: -time.Minute},
	}
	for _, tc := range cases {
		if err := tc.Validate(); err == nil {
			t.Fatalf("expected validation error for %+v", tc)
		}
	}
}

func TestLoadRejectsBadLevel(t *testing.T) {
	isolate(t)
	t.Setenv("BYTEME_LOG_LEVEL", "loud")
	if _, err := Load(nil); err == nil {
		t.Fatalf("expected error for invalid log level")
	}
}
