package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/nicobailon/vslaunch/internal/launch"
	"github.com/nicobailon/vslaunch/internal/tui"
	"github.com/spf13/cobra"
)

var (
	hideInstructions bool
	hideInfo         bool
)

var recentCmd = &cobra.Command{
	Use:     "recent",
	Aliases: []string{"ui"},
	Short:   "Pick a recently opened workspace and open it again",
	RunE:    runRecent,
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Print recently opened workspaces",
	RunE:    runList,
}

func init() {
	recentCmd.Flags().BoolVar(&hideInstructions, "hide-instructions", false, "Hide the key bindings line")
	recentCmd.Flags().BoolVar(&hideInfo, "hide-info", false, "Hide details about the selected entry")
}

func runRecent(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	opts := tui.Options{
		HideInstructions: e.cfg.HideInstructions || hideInstructions,
		HideInfo:         e.cfg.HideInfo || hideInfo,
	}
	chosen, err := tui.New(e.store, opts).Run()
	if err != nil {
		return err
	}
	if chosen == nil {
		// deletions made in the selector still need to reach disk
		return e.store.Save()
	}

	log.Info("reopening", "path", chosen.Record.WorkspacePath)
	if err := e.launchAndRecord(launch.FromRecord(chosen.Record)); err != nil {
		return errors.Join(err, e.store.Save())
	}
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	entries := e.store.Recent(0)
	if len(entries) == 0 {
		fmt.Println("No recent workspaces.")
		return nil
	}

	now := time.Now()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WORKSPACE\tDEV CONTAINER\tPATH\tOPENED")
	for _, entry := range entries {
		r := entry.Record
		container := "-"
		if r.ContainerName != nil {
			container = *r.ContainerName
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.WorkspaceName, container, r.WorkspacePath, humanize.RelTime(r.LastOpened, now, "ago", "from now"))
	}
	return w.Flush()
}
