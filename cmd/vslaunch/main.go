package main

import (
	"fmt"
	"os"

	"github.com/nicobailon/vslaunch/internal/config"
	"github.com/nicobailon/vslaunch/internal/deps"
	"github.com/nicobailon/vslaunch/internal/history"
	"github.com/nicobailon/vslaunch/internal/launch"
	"github.com/nicobailon/vslaunch/internal/logging"
	"github.com/nicobailon/vslaunch/internal/shell"
	"github.com/nicobailon/vslaunch/pkg/version"
	"github.com/spf13/cobra"
)

var (
	historyPath string
	dryRun      bool
	verbosity   int
)

var log = logging.ForComponent(logging.CompCLI)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "vslaunch",
	Short:         "Open folders in VS Code, in a dev container when there is one",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(os.Stderr, verbosity)
	},
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.PersistentFlags().StringVarP(&historyPath, "history-path", "s", "", "Location of the history file")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "d", false, "Print the editor command instead of running it")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "More output per occurrence")

	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(listCmd)
}

// env bundles what every subcommand needs.
type env struct {
	cfg   *config.Config
	store *history.Store
	cmd   shell.Commander
}

func loadEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	path := cfg.HistoryPath
	if historyPath != "" {
		path = historyPath
	}
	log.Debug("using history file", "path", path)

	store, err := history.Load(path)
	if err != nil {
		return nil, err
	}
	if q := store.Quarantined(); q != "" {
		fmt.Fprintf(os.Stderr, "History file was unreadable and has been moved to %s\n", q)
	}

	var cmd shell.Commander = &shell.ExecCommander{}
	if dryRun {
		cmd = &shell.DryRunCommander{}
	}
	return &env{cfg: cfg, store: store, cmd: cmd}, nil
}

func ensureEditor(cmd shell.Commander, editor string) error {
	missing := deps.Check(cmd, editor)
	if len(missing) == 0 {
		return nil
	}
	for _, dep := range missing {
		fmt.Fprintf(os.Stderr, "Missing dependency: %s (%s)\n", dep.Name, deps.InstallHint(dep))
	}
	return fmt.Errorf("editor %q not found", editor)
}

// launchAndRecord opens req, stores the resulting record and saves history.
func (e *env) launchAndRecord(req launch.Request) error {
	if err := ensureEditor(e.cmd, req.Options.Command); err != nil {
		return err
	}
	rec, err := launch.New(e.cmd).Launch(req)
	if err != nil {
		return err
	}
	if dr, ok := e.cmd.(*shell.DryRunCommander); ok {
		for _, call := range dr.Calls {
			fmt.Println(call.String())
		}
	}
	e.store.Upsert(rec)
	return e.store.Save()
}
