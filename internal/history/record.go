package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// DefaultCommand is the editor executable used when a record does not name one.
const DefaultCommand = "code"

// Strategy decides whether a workspace is opened inside its dev container.
type Strategy int

const (
	StrategyDetect Strategy = iota
	StrategyForceContainer
	StrategyForceClassic
)

func (s Strategy) String() string {
	switch s {
	case StrategyForceContainer:
		return "force-container"
	case StrategyForceClassic:
		return "force-classic"
	default:
		return "detect"
	}
}

// ParseStrategy accepts the canonical names plus the short and CamelCase
// spellings older history files used.
func ParseStrategy(s string) (Strategy, error) {
	norm := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(s))
	switch norm {
	case "", "detect":
		return StrategyDetect, nil
	case "forcecontainer", "container":
		return StrategyForceContainer, nil
	case "forceclassic", "classic":
		return StrategyForceClassic, nil
	}
	return StrategyDetect, fmt.Errorf("unknown launch strategy %q (want detect, force-container or force-classic)", s)
}

func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Strategy) UnmarshalText(b []byte) error {
	v, err := ParseStrategy(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Set and Type let a Strategy be used directly as a command-line flag.
func (s *Strategy) Set(v string) error { return s.UnmarshalText([]byte(v)) }
func (s *Strategy) Type() string       { return "strategy" }

// LaunchOptions is how a workspace was opened.
type LaunchOptions struct {
	Strategy Strategy `json:"strategy"`
	Args     []string `json:"args"`
	Command  string   `json:"command"`
}

func (o LaunchOptions) Equal(other LaunchOptions) bool {
	return o.Strategy == other.Strategy &&
		o.Command == other.Command &&
		slices.Equal(o.Args, other.Args)
}

// Record is one previously launched workspace.
type Record struct {
	WorkspaceName       string
	WorkspacePath       string
	ContainerName       *string
	ContainerConfigPath *string
	Options             LaunchOptions
	LastOpened          time.Time
}

// Equal reports whether two records describe the same launch target. Names
// and LastOpened are ignored so reopening a workspace updates its entry.
func (r Record) Equal(other Record) bool {
	return r.WorkspacePath == other.WorkspacePath &&
		equalOptString(r.ContainerConfigPath, other.ContainerConfigPath) &&
		r.Options.Equal(other.Options)
}

// Compare is zero for equal records and otherwise orders by LastOpened.
func (r Record) Compare(other Record) int {
	if r.Equal(other) {
		return 0
	}
	return r.LastOpened.Compare(other.LastOpened)
}

func equalOptString(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

type optionsJSON struct {
	Strategy Strategy `json:"strategy"`
	Args     []string `json:"args"`
	Command  string   `json:"command"`
	Insiders bool     `json:"insiders,omitempty"`
}

type recordJSON struct {
	WorkspaceName string       `json:"workspace_name"`
	ContainerName *string      `json:"dev_container_name,omitempty"`
	WorkspacePath string       `json:"workspace_path"`
	ConfigPath    *string      `json:"config_path,omitempty"`
	Behavior      *optionsJSON `json:"behavior,omitempty"`
	Behaviour     *optionsJSON `json:"behaviour,omitempty"`
	LastOpened    time.Time    `json:"last_opened"`

	// pre-container history files
	Name string `json:"name,omitempty"`
	Path string `json:"path,omitempty"`
}

var errMissingPath = errors.New("history record has no workspace path")

func (r Record) MarshalJSON() ([]byte, error) {
	args := r.Options.Args
	if args == nil {
		args = []string{}
	}
	return json.Marshal(recordJSON{
		WorkspaceName: r.WorkspaceName,
		ContainerName: r.ContainerName,
		WorkspacePath: r.WorkspacePath,
		ConfigPath:    r.ContainerConfigPath,
		Behavior: &optionsJSON{
			Strategy: r.Options.Strategy,
			Args:     args,
			Command:  r.Options.Command,
		},
		LastOpened: r.LastOpened.UTC(),
	})
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var raw recordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	rec := Record{
		WorkspaceName:       raw.WorkspaceName,
		WorkspacePath:       raw.WorkspacePath,
		ContainerName:       raw.ContainerName,
		ContainerConfigPath: raw.ConfigPath,
		LastOpened:          raw.LastOpened.UTC(),
	}
	if rec.WorkspacePath == "" {
		rec.WorkspacePath = raw.Path
	}
	if rec.WorkspaceName == "" {
		rec.WorkspaceName = raw.Name
	}
	if rec.WorkspacePath == "" {
		return errMissingPath
	}

	opts := raw.Behavior
	if opts == nil {
		opts = raw.Behaviour
	}
	if opts != nil {
		rec.Options = LaunchOptions{Strategy: opts.Strategy, Args: opts.Args, Command: opts.Command}
		if rec.Options.Command == "" && opts.Insiders {
			rec.Options.Command = "code-insiders"
		}
	}
	if rec.Options.Command == "" {
		rec.Options.Command = DefaultCommand
	}
	if rec.Options.Args == nil {
		rec.Options.Args = []string{}
	}

	*r = rec
	return nil
}
