package deps

import (
	"runtime"

	"github.com/nicobailon/vslaunch/internal/shell"
)

type Dependency struct {
	Name       string
	Command    string
	InstallCmd map[string]string
}

type MissingDep struct {
	Dependency
}

var editors = map[string]Dependency{
	"code": {
		Name:    "Visual Studio Code",
		Command: "code",
		InstallCmd: map[string]string{
			"darwin": "brew install --cask visual-studio-code",
			"linux":  "sudo snap install code --classic",
		},
	},
	"code-insiders": {
		Name:    "Visual Studio Code Insiders",
		Command: "code-insiders",
		InstallCmd: map[string]string{
			"darwin": "brew install --cask visual-studio-code@insiders",
			"linux":  "sudo snap install code-insiders --classic",
		},
	},
}

// Check reports the editor as missing when it cannot be found on PATH.
func Check(cmd shell.Commander, editor string) []MissingDep {
	dep, ok := editors[editor]
	if !ok {
		dep = Dependency{Name: editor, Command: editor}
	}
	if _, err := cmd.LookPath(dep.Command); err != nil {
		return []MissingDep{{dep}}
	}
	return nil
}

func InstallHint(dep MissingDep) string {
	goos := runtime.GOOS
	if cmd, ok := dep.InstallCmd[goos]; ok {
		return cmd
	}
	return "install " + dep.Name + " and make sure `" + dep.Command + "` is on your PATH"
}
