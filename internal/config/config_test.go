package config

import (
	"os"
	"path/filepath"
	"testing"
)

func isolate(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmp, "data"))
	t.Setenv("HOME", filepath.Join(tmp, "home"))
	for _, key := range []string{"VSLAUNCH_HISTORY_PATH", "VSLAUNCH_EDITOR", "VSLAUNCH_STRATEGY", "VSLAUNCH_HIDE_INFO"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return tmp
}

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	confDir := filepath.Join(dir, "vslaunch")
	if err := os.MkdirAll(confDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(confDir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	tmp := isolate(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Editor != "code" {
		t.Fatalf("editor mismatch: %s", cfg.Editor)
	}
	if cfg.Strategy != "detect" {
		t.Fatalf("strategy mismatch: %s", cfg.Strategy)
	}
	want := filepath.Join(tmp, "data", "vslaunch", ".history.json")
	if cfg.HistoryPath != want {
		t.Fatalf("history path mismatch: %s", cfg.HistoryPath)
	}
}

func TestLoadYAMLConfig(t *testing.T) {
	tmp := isolate(t)
	writeConfig(t, tmp, "config.yaml", `history_path: /tmp/h.json
editor: codium
strategy: force-classic
hide_instructions: true
hide_info: true`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.HistoryPath != "/tmp/h.json" {
		t.Fatalf("history_path mismatch: %s", cfg.HistoryPath)
	}
	if cfg.Editor != "codium" {
		t.Fatalf("editor mismatch: %s", cfg.Editor)
	}
	if cfg.Strategy != "force-classic" {
		t.Fatalf("strategy mismatch: %s", cfg.Strategy)
	}
	if !cfg.HideInstructions || !cfg.HideInfo {
		t.Fatalf("hide flags not applied: %+v", cfg)
	}
	if cfg.InsidersEditor != "code-insiders" {
		t.Fatalf("insiders default lost: %s", cfg.InsidersEditor)
	}
}

func TestLoadTOMLConfig(t *testing.T) {
	tmp := isolate(t)
	writeConfig(t, tmp, "config.toml", `editor = "cursor"
hide_info = true`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Editor != "cursor" {
		t.Fatalf("editor mismatch: %s", cfg.Editor)
	}
	if !cfg.HideInfo {
		t.Fatalf("hide_info not applied")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	tmp := isolate(t)
	writeConfig(t, tmp, "config.yaml", "editor: codium\n")
	t.Setenv("VSLAUNCH_EDITOR", "zed")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Editor != "zed" {
		t.Fatalf("env override ignored: %s", cfg.Editor)
	}
}

func TestLoadLegacyShellConfig(t *testing.T) {
	tmp := isolate(t)
	writeConfig(t, tmp, "config", `# old style
export VSLAUNCH_EDITOR="codium"
export VSLAUNCH_HIDE_INFO=true
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Editor != "codium" {
		t.Fatalf("legacy editor mismatch: %s", cfg.Editor)
	}
	if !cfg.HideInfo {
		t.Fatalf("legacy hide_info not applied")
	}
}
