package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

var ErrNotExist = errors.New("workspace path does not exist")

// Workspace is a folder opened in the editor.
type Workspace struct {
	Path string
	Name string
}

// FromPath resolves path to an absolute path with symlinks evaluated.
func FromPath(path string) (Workspace, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Workspace{}, fmt.Errorf("resolve %s: %w", path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return Workspace{}, fmt.Errorf("%w: %s", ErrNotExist, path)
		}
		return Workspace{}, err
	}
	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return Workspace{}, fmt.Errorf("canonicalize %s: %w", path, err)
	}
	name := filepath.Base(canonical)
	if name == string(filepath.Separator) || name == "." {
		return Workspace{}, fmt.Errorf("cannot derive a workspace name from %s", canonical)
	}
	return Workspace{Path: canonical, Name: name}, nil
}

// DevContainerConfigs lists dev container config files in the places the
// editor looks: .devcontainer.json, .devcontainer/devcontainer.json and
// .devcontainer/<name>/devcontainer.json.
func (w Workspace) DevContainerConfigs() []string {
	var configs []string

	direct := filepath.Join(w.Path, ".devcontainer.json")
	if isFile(direct) {
		configs = append(configs, direct)
	}

	dir := filepath.Join(w.Path, ".devcontainer")
	if top := filepath.Join(dir, "devcontainer.json"); isFile(top) {
		configs = append(configs, top)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return configs
	}
	var nested []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		candidate := filepath.Join(dir, e.Name(), "devcontainer.json")
		if isFile(candidate) {
			nested = append(nested, candidate)
		}
	}
	sort.Strings(nested)
	return append(configs, nested...)
}

// ContainerName names a config after its folder when it lives in a
// .devcontainer/<name>/ subfolder. Config contents are not read.
func ContainerName(configPath string) *string {
	parent := filepath.Dir(configPath)
	if filepath.Base(filepath.Dir(parent)) != ".devcontainer" {
		return nil
	}
	name := filepath.Base(parent)
	return &name
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
