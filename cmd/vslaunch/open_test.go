package main

import (
	"strings"
	"testing"
)

func TestSplitOpenArgs(t *testing.T) {
	path, extra, err := splitOpenArgs(nil, -1)
	if err != nil || path != "." || len(extra) != 0 {
		t.Fatalf("defaults mismatch: %q %v %v", path, extra, err)
	}

	path, extra, err = splitOpenArgs([]string{"src", "--new-window", "-g"}, 1)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if path != "src" || len(extra) != 2 || extra[0] != "--new-window" {
		t.Fatalf("split mismatch: %q %v", path, extra)
	}

	path, extra, err = splitOpenArgs([]string{"--reuse-window"}, 0)
	if err != nil || path != "." || len(extra) != 1 {
		t.Fatalf("args only mismatch: %q %v %v", path, extra, err)
	}

	if _, _, err := splitOpenArgs([]string{"a", "b"}, -1); err == nil {
		t.Fatalf("two paths should fail")
	}
}

func TestValidateIndex(t *testing.T) {
	if err := validateIndex(0); err != nil {
		t.Fatalf("unset index rejected: %v", err)
	}
	if err := validateIndex(2); err != nil {
		t.Fatalf("positive index rejected: %v", err)
	}
	if err := validateIndex(-1); err == nil {
		t.Fatalf("negative index accepted")
	}
}

func TestConfigAndIndexConflict(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	rootCmd.SetArgs([]string{"open", "--dry-run", "--config", "x.json", "--index", "1", t.TempDir()})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	if err == nil {
		t.Fatalf("--config with --index should fail")
	}
	if !strings.Contains(err.Error(), "config") || !strings.Contains(err.Error(), "index") {
		t.Fatalf("unexpected error: %v", err)
	}
}
