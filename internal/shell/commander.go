package shell

import (
	"os/exec"
	"strings"
)

// Commander runs external programs.
type Commander interface {
	Run(name string, args ...string) ([]byte, error)
	LookPath(name string) (string, error)
}

type ExecCommander struct{}

func (e *ExecCommander) Run(name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	return cmd.CombinedOutput()
}

func (e *ExecCommander) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Call is one invocation seen by a DryRunCommander.
type Call struct {
	Name string
	Args []string
}

func (c Call) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// DryRunCommander records invocations instead of running them. Every
// executable is reported as found.
type DryRunCommander struct {
	Calls []Call
}

func (d *DryRunCommander) Run(name string, args ...string) ([]byte, error) {
	d.Calls = append(d.Calls, Call{Name: name, Args: append([]string(nil), args...)})
	return nil, nil
}

func (d *DryRunCommander) LookPath(name string) (string, error) {
	return name, nil
}
