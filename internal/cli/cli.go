// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Root command and shared setup.

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jeranaias/rigrun-elements/internal/config"
	"github.com/jeranaias/rigrun-elements/internal/logging"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// app carries state shared by every command: the persistent flags and the
// configuration loaded for this run.
type app struct {
	configPath string
	logLevel   string

	cfg      *config.Config
	closeLog io.Closer
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "elements",
		Short: "Terminal AI elements for chat assistants",
		Long: `elements renders the building blocks of an AI chat transcript in the
terminal: collapsible Reasoning and Chain of Thought panels, code blocks with
copy, shimmering loading text and generated images. It also assembles the
system prompt and tool list a research assistant sends to the model.`,
		Version:            Version,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}
	root.SetVersionTemplate(fmt.Sprintf("elements %s (commit %s, built %s)\n", Version, GitCommit, BuildDate))

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default $ELEMENTS_CONFIG or ~/.rigrun-elements/config.toml)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		a.demoCmd(),
		a.promptCmd(),
		a.modelsCmd(),
		a.configCmd(),
	)
	return root
}

// Execute runs the CLI with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	if a.configPath == "" {
		p, err := config.ConfigPath()
		if err != nil {
			return err
		}
		a.configPath = p
	}

	cfg, err := config.LoadFromPath(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	return a.configureLogging(cfg.Log.File)
}

func (a *app) configureLogging(file string) error {
	level := a.cfg.Log.Level
	if a.logLevel != "" {
		level = a.logLevel
	}
	if a.closeLog != nil {
		a.closeLog.Close()
	}
	closer, err := logging.Configure(level, file)
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	a.closeLog = closer
	logging.With("cli").Debug("config loaded", "path", a.configPath, "level", level)
	return nil
}

func (a *app) teardown(*cobra.Command, []string) error {
	if a.closeLog != nil {
		return a.closeLog.Close()
	}
	return nil
}
