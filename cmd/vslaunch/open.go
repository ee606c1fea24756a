package main

import (
	"fmt"

	"github.com/nicobailon/vslaunch/internal/history"
	"github.com/nicobailon/vslaunch/internal/launch"
	"github.com/nicobailon/vslaunch/internal/workspace"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	openStrategy history.Strategy
	openConfig   string
	openIndex    int
	openInsiders bool
)

var openCmd = &cobra.Command{
	Use:     "open [path] [-- editor args...]",
	Aliases: []string{"o"},
	Short:   "Open a folder, in its dev container if it has one",
	RunE:    runOpen,
}

func init() {
	openCmd.Flags().VarP(&openStrategy, "behavior", "b", "Launch strategy: detect, force-container or force-classic")
	openCmd.Flags().StringVarP(&openConfig, "config", "c", "", "Dev container config to use")
	openCmd.Flags().IntVarP(&openIndex, "index", "i", 0, "Pick the n-th discovered dev container config (from 1)")
	openCmd.Flags().BoolVarP(&openInsiders, "insiders", "n", false, "Use the Insiders build")
	openCmd.Flags().SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "behaviour" {
			name = "behavior"
		}
		return pflag.NormalizedName(name)
	})
	openCmd.MarkFlagsMutuallyExclusive("config", "index")
}

func validateIndex(index int) error {
	if index < 0 {
		return fmt.Errorf("--index must be 1 or more, got %d", index)
	}
	return nil
}

// splitOpenArgs separates the folder from the arguments after "--".
func splitOpenArgs(args []string, dash int) (string, []string, error) {
	var positional, extra []string
	if dash < 0 {
		positional = args
	} else {
		positional, extra = args[:dash], args[dash:]
	}
	if len(positional) > 1 {
		return "", nil, fmt.Errorf("expected at most one path, got %d (put editor args after --)", len(positional))
	}
	path := "."
	if len(positional) == 1 {
		path = positional[0]
	}
	if extra == nil {
		extra = []string{}
	}
	return path, extra, nil
}

func runOpen(cmd *cobra.Command, args []string) error {
	if err := validateIndex(openIndex); err != nil {
		return err
	}
	e, err := loadEnv()
	if err != nil {
		return err
	}

	path, extra, err := splitOpenArgs(args, cmd.ArgsLenAtDash())
	if err != nil {
		return err
	}
	ws, err := workspace.FromPath(path)
	if err != nil {
		return err
	}

	strategy := openStrategy
	if !cmd.Flags().Changed("behavior") {
		if strategy, err = history.ParseStrategy(e.cfg.Strategy); err != nil {
			return fmt.Errorf("config strategy: %w", err)
		}
	}
	command := e.cfg.Editor
	if openInsiders {
		command = e.cfg.InsidersEditor
	}

	return e.launchAndRecord(launch.Request{
		Workspace:  ws,
		Options:    history.LaunchOptions{Strategy: strategy, Args: extra, Command: command},
		ConfigPath: openConfig,
		Index:      openIndex,
	})
}
