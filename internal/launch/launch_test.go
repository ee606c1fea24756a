package launch

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/nicobailon/vslaunch/internal/history"
	"github.com/nicobailon/vslaunch/internal/shell"
	"github.com/nicobailon/vslaunch/internal/workspace"
)

var fixedNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func newTestLauncher() (*Launcher, *shell.DryRunCommander) {
	cmd := &shell.DryRunCommander{}
	l := New(cmd)
	l.Now = func() time.Time { return fixedNow }
	return l, cmd
}

func testWorkspace(t *testing.T, configs ...string) workspace.Workspace {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("editor is wrapped in cmd /c on windows")
	}
	dir := t.TempDir()
	for _, c := range configs {
		p := filepath.Join(dir, c)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte("{}"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return workspace.Workspace{Path: dir, Name: "demo"}
}

func TestDetectWithoutConfigOpensClassic(t *testing.T) {
	ws := testWorkspace(t)
	l, cmd := newTestLauncher()

	rec, err := l.Launch(Request{
		Workspace: ws,
		Options:   history.LaunchOptions{Strategy: history.StrategyDetect, Args: []string{"-n"}, Command: "code"},
	})
	if err != nil {
		t.Fatalf("launch: %v", err)
	}
	if len(cmd.Calls) != 1 {
		t.Fatalf("expected one call, got %d", len(cmd.Calls))
	}
	if got := cmd.Calls[0].String(); got != "code "+ws.Path+" -n" {
		t.Fatalf("classic call mismatch: %s", got)
	}
	if rec.ContainerConfigPath != nil {
		t.Fatalf("classic launch recorded a config: %s", *rec.ContainerConfigPath)
	}
	if !rec.LastOpened.Equal(fixedNow) || rec.WorkspaceName != "demo" {
		t.Fatalf("record mismatch: %+v", rec)
	}
}

func TestDetectWithConfigOpensContainer(t *testing.T) {
	ws := testWorkspace(t, ".devcontainer/rust/devcontainer.json")
	l, cmd := newTestLauncher()

	rec, err := l.Launch(Request{Workspace: ws, Options: history.LaunchOptions{Command: "code-insiders"}})
	if err != nil {
		t.Fatalf("launch: %v", err)
	}
	call := cmd.Calls[0]
	if call.Name != "code-insiders" || len(call.Args) != 2 || call.Args[0] != "--folder-uri" {
		t.Fatalf("container call mismatch: %s", call)
	}
	if !strings.HasPrefix(call.Args[1], "vscode-remote://dev-container+") || !strings.HasSuffix(call.Args[1], "/workspaces/demo") {
		t.Fatalf("uri mismatch: %s", call.Args[1])
	}
	if rec.ContainerConfigPath == nil || filepath.Base(filepath.Dir(*rec.ContainerConfigPath)) != "rust" {
		t.Fatalf("config path not recorded: %+v", rec)
	}
	if rec.ContainerName == nil || *rec.ContainerName != "rust" {
		t.Fatalf("container name not recorded")
	}
}

func TestForceContainerWithoutConfig(t *testing.T) {
	ws := testWorkspace(t)
	l, cmd := newTestLauncher()
	_, err := l.Launch(Request{Workspace: ws, Options: history.LaunchOptions{Strategy: history.StrategyForceContainer}})
	if !errors.Is(err, ErrNoDevContainer) {
		t.Fatalf("expected ErrNoDevContainer, got %v", err)
	}
	if len(cmd.Calls) != 0 {
		t.Fatalf("nothing should run")
	}
}

func TestForceClassicIgnoresConfig(t *testing.T) {
	ws := testWorkspace(t, ".devcontainer.json")
	l, cmd := newTestLauncher()
	rec, err := l.Launch(Request{Workspace: ws, Options: history.LaunchOptions{Strategy: history.StrategyForceClassic}})
	if err != nil {
		t.Fatalf("launch: %v", err)
	}
	if cmd.Calls[0].Args[0] != ws.Path {
		t.Fatalf("classic call mismatch: %s", cmd.Calls[0])
	}
	if rec.ContainerConfigPath != nil || rec.Options.Command != "code" {
		t.Fatalf("record mismatch: %+v", rec)
	}
}

func TestAmbiguousConfigsNeedIndex(t *testing.T) {
	ws := testWorkspace(t, ".devcontainer/a/devcontainer.json", ".devcontainer/b/devcontainer.json")
	l, _ := newTestLauncher()

	_, err := l.Launch(Request{Workspace: ws})
	if !errors.Is(err, ErrAmbiguousConfig) {
		t.Fatalf("expected ErrAmbiguousConfig, got %v", err)
	}

	rec, err := l.Launch(Request{Workspace: ws, Index: 2})
	if err != nil {
		t.Fatalf("launch with index: %v", err)
	}
	if rec.ContainerName == nil || *rec.ContainerName != "b" {
		t.Fatalf("index 2 should pick b")
	}

	if _, err := l.Launch(Request{Workspace: ws, Index: 3}); err == nil {
		t.Fatalf("expected out of range error")
	}
}

func TestFolderURIArgRejected(t *testing.T) {
	ws := testWorkspace(t, ".devcontainer.json")
	l, _ := newTestLauncher()
	_, err := l.Launch(Request{Workspace: ws, Options: history.LaunchOptions{Args: []string{"--folder-uri", "x"}}})
	if !errors.Is(err, ErrFolderURIArg) {
		t.Fatalf("expected ErrFolderURIArg, got %v", err)
	}
}

func TestFromRecordRelaunchesSameTarget(t *testing.T) {
	ws := testWorkspace(t, ".devcontainer/a/devcontainer.json", ".devcontainer/b/devcontainer.json")
	l, _ := newTestLauncher()
	first, err := l.Launch(Request{Workspace: ws, Index: 2})
	if err != nil {
		t.Fatalf("launch: %v", err)
	}

	again, err := l.Launch(FromRecord(first))
	if err != nil {
		t.Fatalf("relaunch: %v", err)
	}
	if !again.Equal(first) {
		t.Fatalf("relaunch should produce an equal record")
	}
}

func TestFolderURIEncoding(t *testing.T) {
	uri, err := FolderURI(workspace.Workspace{Path: "/home/me/demo", Name: "demo"}, "/home/me/demo/.devcontainer.json")
	if err != nil {
		t.Fatalf("uri: %v", err)
	}
	payload := strings.TrimSuffix(strings.TrimPrefix(uri, "vscode-remote://dev-container+"), "/workspaces/demo")
	raw, err := hex.DecodeString(payload)
	if err != nil {
		t.Fatalf("hex: %v", err)
	}
	want := `{"hostPath":"/home/me/demo","configFile":{"scheme":"file","path":"/home/me/demo/.devcontainer.json"}}`
	if string(raw) != want {
		t.Fatalf("payload mismatch: %s", raw)
	}
}
