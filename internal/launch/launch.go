package launch

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/nicobailon/vslaunch/internal/history"
	"github.com/nicobailon/vslaunch/internal/logging"
	"github.com/nicobailon/vslaunch/internal/shell"
	"github.com/nicobailon/vslaunch/internal/workspace"
)

var (
	ErrNoDevContainer  = errors.New("dev container not found, but was forced to open it")
	ErrFolderURIArg    = errors.New("--folder-uri cannot be passed when opening a dev container")
	ErrAmbiguousConfig = errors.New("multiple dev container configs found")
)

var log = logging.ForComponent(logging.CompLaunch)

// Request describes one editor launch.
type Request struct {
	Workspace workspace.Workspace
	Options   history.LaunchOptions
	// ConfigPath pins the dev container config. Empty means discover.
	ConfigPath string
	// Index picks among discovered configs, starting at 1. Zero means unset.
	Index int
}

// FromRecord rebuilds the request that produced r.
func FromRecord(r history.Record) Request {
	req := Request{
		Workspace: workspace.Workspace{Path: r.WorkspacePath, Name: r.WorkspaceName},
		Options:   r.Options,
	}
	if r.ContainerConfigPath != nil {
		req.ConfigPath = *r.ContainerConfigPath
	}
	return req
}

type Launcher struct {
	Cmd shell.Commander
	Now func() time.Time
}

func New(cmd shell.Commander) *Launcher {
	return &Launcher{Cmd: cmd, Now: time.Now}
}

// Launch opens the workspace according to its strategy and returns the
// history record describing what was opened.
func (l *Launcher) Launch(req Request) (history.Record, error) {
	config, err := resolveConfig(req)
	if err != nil {
		return history.Record{}, err
	}

	rec := history.Record{
		WorkspaceName: req.Workspace.Name,
		WorkspacePath: req.Workspace.Path,
		Options:       req.Options,
		LastOpened:    l.Now().UTC(),
	}
	if rec.Options.Command == "" {
		rec.Options.Command = history.DefaultCommand
	}

	switch req.Options.Strategy {
	case history.StrategyDetect:
		if config == "" {
			log.Info("dev container not found, opening the classic way")
			err = l.openClassic(req)
			break
		}
		log.Info("opening dev container", "config", config)
		err = l.openContainer(req, config)
	case history.StrategyForceContainer:
		if config == "" {
			return history.Record{}, ErrNoDevContainer
		}
		log.Info("opening dev container", "config", config)
		err = l.openContainer(req, config)
	case history.StrategyForceClassic:
		log.Info("opening the classic way")
		err = l.openClassic(req)
	default:
		return history.Record{}, fmt.Errorf("unhandled launch strategy %d", req.Options.Strategy)
	}
	if err != nil {
		return history.Record{}, err
	}

	if config != "" {
		rec.ContainerConfigPath = &config
		rec.ContainerName = workspace.ContainerName(config)
	}
	return rec, nil
}

func resolveConfig(req Request) (string, error) {
	if req.Options.Strategy == history.StrategyForceClassic {
		return "", nil
	}
	if req.ConfigPath != "" {
		abs, err := filepath.Abs(req.ConfigPath)
		if err != nil {
			return "", fmt.Errorf("resolve config %s: %w", req.ConfigPath, err)
		}
		return abs, nil
	}

	configs := req.Workspace.DevContainerConfigs()
	switch {
	case req.Index > 0:
		if req.Index > len(configs) {
			return "", fmt.Errorf("dev container index %d out of range (found %d)", req.Index, len(configs))
		}
		return configs[req.Index-1], nil
	case len(configs) == 0:
		return "", nil
	case len(configs) == 1:
		return configs[0], nil
	}
	return "", fmt.Errorf("%w, pick one with --index:\n  %s", ErrAmbiguousConfig, strings.Join(numbered(configs), "\n  "))
}

func numbered(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = fmt.Sprintf("%d: %s", i+1, p)
	}
	return out
}

func (l *Launcher) openClassic(req Request) error {
	args := append([]string{req.Workspace.Path}, req.Options.Args...)
	if err := l.exec(req.Options.Command, args); err != nil {
		return fmt.Errorf("open %s the classic way: %w", req.Workspace.Path, err)
	}
	return nil
}

func (l *Launcher) openContainer(req Request, config string) error {
	if slices.Contains(req.Options.Args, "--folder-uri") {
		return ErrFolderURIArg
	}
	uri, err := FolderURI(req.Workspace, config)
	if err != nil {
		return err
	}
	args := append(slices.Clone(req.Options.Args), "--folder-uri", uri)
	if err := l.exec(req.Options.Command, args); err != nil {
		return fmt.Errorf("open %s in dev container: %w", req.Workspace.Path, err)
	}
	return nil
}

func (l *Launcher) exec(command string, args []string) error {
	if command == "" {
		command = history.DefaultCommand
	}
	name := command
	if runtime.GOOS == "windows" {
		args = append([]string{"/c", command}, args...)
		name = "cmd"
	}
	log.Debug("exec", "name", name, "args", args)
	out, err := l.Cmd.Run(name, args...)
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

type fileURI struct {
	Scheme string `json:"scheme"`
	Path   string `json:"path"`
}

type containerURI struct {
	HostPath   string  `json:"hostPath"`
	ConfigFile fileURI `json:"configFile"`
}

// FolderURI is the --folder-uri value that opens ws inside the dev container
// described by config. The container folder follows the editor's default
// /workspaces/<name> mount.
func FolderURI(ws workspace.Workspace, config string) (string, error) {
	data, err := json.Marshal(containerURI{
		HostPath:   ws.Path,
		ConfigFile: fileURI{Scheme: "file", Path: filepath.ToSlash(config)},
	})
	if err != nil {
		return "", err
	}
	return "vscode-remote://dev-container+" + hex.EncodeToString(data) + "/workspaces/" + ws.Name, nil
}
