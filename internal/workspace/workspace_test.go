package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func mkfile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestFromPathCanonicalizes(t *testing.T) {
	dir := t.TempDir()
	project := filepath.Join(dir, "project")
	if err := os.MkdirAll(project, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	link := filepath.Join(dir, "link")
	if err := os.Symlink(project, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	ws, err := FromPath(link)
	if err != nil {
		t.Fatalf("from path: %v", err)
	}
	want, _ := filepath.EvalSymlinks(project)
	if ws.Path != want {
		t.Fatalf("path mismatch: %s", ws.Path)
	}
	if ws.Name != "project" {
		t.Fatalf("name mismatch: %s", ws.Name)
	}
}

func TestFromPathMissing(t *testing.T) {
	_, err := FromPath(filepath.Join(t.TempDir(), "gone"))
	if !errors.Is(err, ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestDevContainerConfigs(t *testing.T) {
	dir := t.TempDir()
	mkfile(t, filepath.Join(dir, ".devcontainer.json"))
	mkfile(t, filepath.Join(dir, ".devcontainer", "devcontainer.json"))
	mkfile(t, filepath.Join(dir, ".devcontainer", "rust", "devcontainer.json"))
	mkfile(t, filepath.Join(dir, ".devcontainer", "go", "devcontainer.json"))
	mkfile(t, filepath.Join(dir, ".devcontainer", "go", "deeper", "devcontainer.json"))

	ws := Workspace{Path: dir, Name: "x"}
	got := ws.DevContainerConfigs()
	want := []string{
		filepath.Join(dir, ".devcontainer.json"),
		filepath.Join(dir, ".devcontainer", "devcontainer.json"),
		filepath.Join(dir, ".devcontainer", "go", "devcontainer.json"),
		filepath.Join(dir, ".devcontainer", "rust", "devcontainer.json"),
	}
	if len(got) != len(want) {
		t.Fatalf("configs mismatch: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("config %d mismatch: %s", i, got[i])
		}
	}
}

func TestContainerName(t *testing.T) {
	if n := ContainerName("/w/.devcontainer/rust/devcontainer.json"); n == nil || *n != "rust" {
		t.Fatalf("nested name mismatch: %v", n)
	}
	if n := ContainerName("/w/.devcontainer/devcontainer.json"); n != nil {
		t.Fatalf("top-level config should be unnamed: %s", *n)
	}
	if n := ContainerName("/w/.devcontainer.json"); n != nil {
		t.Fatalf("direct config should be unnamed: %s", *n)
	}
}
