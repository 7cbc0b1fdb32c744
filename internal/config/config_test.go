package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.App.Backend != "auto" || cfg.App.Match != "substring" {
		t.Fatalf("unexpected defaults %+v", cfg.App)
	}
	if cfg.App.Refresh != 2*time.Second || !cfg.App.ShowPreview || cfg.App.FieldLimit != 0 {
		t.Fatalf("unexpected defaults %+v", cfg.App)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadArgsFlagsOverrideEnv(t *testing.T) {
	env := []string{
		"WINDOW_SWITCHER_BACKEND=tmux",
		"WINDOW_SWITCHER_SOCKET=/tmp/env.sock",
		"WINDOW_SWITCHER_WIDTH=100",
		"WINDOW_SWITCHER_REFRESH=5s",
		"WINDOW_SWITCHER_TRACE=true",
	}
	args := []string{"-socket", "/tmp/flag.sock", "--match", "Fuzzy", "-daemon", "-query", "code"}
	cfg, err := LoadArgs(args, env)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.App.Backend != "tmux" || cfg.App.SocketPath != "/tmp/flag.sock" {
		t.Fatalf("unexpected backend/socket %+v", cfg.App)
	}
	if cfg.App.Width != 100 || cfg.App.Refresh != 5*time.Second || !cfg.Logging.Trace {
		t.Fatalf("env values not applied %+v %+v", cfg.App, cfg.Logging)
	}
	if cfg.App.Match != "fuzzy" || !cfg.App.Daemon || cfg.App.Query != "code" {
		t.Fatalf("flag values not applied %+v", cfg.App)
	}
	if cfg.Flags["socket"] != "/tmp/flag.sock" || cfg.Flags["refresh"] != "5s" {
		t.Fatalf("unexpected flag map %v", cfg.Flags)
	}
	if len(cfg.Args) != len(args) {
		t.Fatalf("expected args to be recorded")
	}
}

func TestLoadArgsIgnoresMalformedEnv(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"WINDOW_SWITCHER_WIDTH=wide", "WINDOW_SWITCHER_REFRESH=soon", "BROKEN"})
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.App.Width != 0 || cfg.App.Refresh != 2*time.Second {
		t.Fatalf("expected fallbacks, got %+v", cfg.App)
	}
}

func TestLoadArgsRejectsNegativeSize(t *testing.T) {
	if _, err := LoadArgs([]string{"-width", "-1"}, nil); err == nil {
		t.Fatalf("expected width error")
	}
	if _, err := LoadArgs([]string{"-height=-3"}, nil); err == nil {
		t.Fatalf("expected height error")
	}
	if _, err := LoadArgs([]string{"-bogus"}, nil); err == nil {
		t.Fatalf("expected unknown flag error")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "switcher.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestConfigFileSeedsDefaults(t *testing.T) {
	path := writeConfig(t, "backend: x11\nmatch: fuzzy\nfield-limit: 40\nrefresh: 500ms\npreview: false\n")
	cfg, err := LoadArgs([]string{"--config", path, "-match", "substring"}, []string{"WINDOW_SWITCHER_FIELD_LIMIT=60"})
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.App.Backend != "x11" || cfg.App.Refresh != 500*time.Millisecond || cfg.App.ShowPreview {
		t.Fatalf("file values not applied %+v", cfg.App)
	}
	if cfg.App.Match != "substring" {
		t.Fatalf("flag should beat file, got %q", cfg.App.Match)
	}
	if cfg.App.FieldLimit != 60 {
		t.Fatalf("env should beat file, got %d", cfg.App.FieldLimit)
	}
	if cfg.File != path {
		t.Fatalf("expected config path to be recorded")
	}
}

func TestConfigFileFromEnvironment(t *testing.T) {
	path := writeConfig(t, "footer: true\n")
	cfg, err := LoadArgs(nil, []string{"WINDOW_SWITCHER_CONFIG=" + path})
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if !cfg.App.ShowFooter {
		t.Fatalf("expected footer from config file")
	}
}

func TestConfigFileErrors(t *testing.T) {
	if _, err := LoadArgs([]string{"-config=" + filepath.Join(t.TempDir(), "missing.yaml")}, nil); err == nil {
		t.Fatalf("expected missing file error")
	}
	if _, err := LoadArgs([]string{"-config", writeConfig(t, "colour: red\n")}, nil); err == nil {
		t.Fatalf("expected unknown key error")
	}
	if _, err := LoadArgs([]string{"-config", writeConfig(t, "refresh: later\n")}, nil); err == nil {
		t.Fatalf("expected refresh parse error")
	}
	if _, err := LoadArgs([]string{"-config", writeConfig(t, "")}, nil); err != nil {
		t.Fatalf("empty file should be accepted: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg, _ := LoadArgs([]string{"-backend", "wayland", "-match", "regex", "-field-limit", "-2", "-refresh", "-1s", "-daemon", "-list"}, nil)
	err := Validate(cfg)
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	for _, want := range []string{"backend", "match mode", "field-limit", "refresh", "daemon"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}
}

func TestScanFlag(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"-config", "a.yaml"}, "a.yaml"},
		{[]string{"--config=b.yaml"}, "b.yaml"},
		{[]string{"-trace", "--", "-config", "c.yaml"}, ""},
		{[]string{"config", "d.yaml"}, ""},
	}
	for _, tc := range cases {
		if got := scanFlag(tc.args, "config"); got != tc.want {
			t.Fatalf("scanFlag(%v) = %q, want %q", tc.args, got, tc.want)
		}
	}
}
