// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// demo_cmd.go - Interactive showcase.
//
// Command: demo [section]
// Short:   Run the interactive elements demo
//
// Sections: reasoning, chain, code, shimmer, image, skeleton, all (default)
//
// Examples:
//   elements demo                     Every element
//   elements demo reasoning           Streamed reasoning panel only
//   elements demo chain --step 500ms  Faster chain of thought
//   elements demo --tps 0             Stream as fast as possible
//
// The config file is watched while the demo runs; edits to panel delays,
// code block settings, shimmer timing and DeepDive apply live.

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jeranaias/rigrun-elements/internal/config"
	"github.com/jeranaias/rigrun-elements/internal/logging"
	"github.com/jeranaias/rigrun-elements/internal/stream"
	"github.com/jeranaias/rigrun-elements/internal/ui/demo"
	"github.com/jeranaias/rigrun-elements/internal/ui/styles"
	"github.com/jeranaias/rigrun-elements/internal/util"
)

// DemoLogFile is used when no log file is configured; stderr is hidden
// behind the alt screen.
const DemoLogFile = "elements.log"

func (a *app) demoCmd() *cobra.Command {
	var (
		tps     float64
		step    time.Duration
		noWatch bool
	)

	names := make([]string, len(demo.Sections))
	for i, s := range demo.Sections {
		names[i] = string(s)
	}

	cmd := &cobra.Command{
		Use:       "demo [reasoning|chain|code|shimmer|image|all]",
		Short:     "Run the interactive elements demo",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) > 0 {
				name = args[0]
			}
			section, err := demo.ParseSection(name)
			if err != nil {
				return err
			}
			if !IsStdoutTTY() {
				return &TTYRequiredError{Operation: "run the demo"}
			}

			cfg, err := config.EnsurePreferences(a.configPath)
			if err != nil {
				return fmt.Errorf("load preferences: %w", err)
			}
			a.cfg = cfg

			if cfg.Log.File == "" {
				dir := filepath.Dir(a.configPath)
				if err := os.MkdirAll(dir, util.DirPerm); err != nil {
					return fmt.Errorf("create log dir: %w", err)
				}
				if err := a.configureLogging(filepath.Join(dir, DemoLogFile)); err != nil {
					return err
				}
			}
			logger := logging.With("cli")

			if tps == 0 {
				tps = -1
			}

			m := demo.New(demo.Options{
				Section:         section,
				Config:          cfg,
				ConfigPath:      a.configPath,
				Theme:           styles.NewThemeWithProfile(styles.IsDarkMode(cfg.UI.Theme), GetColorProfile()),
				TokensPerSecond: tps,
				StepInterval:    step,
			})
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

			if !noWatch {
				w, err := config.NewWatcher(a.configPath, config.DefaultWatchDebounce, func(c *config.Config) {
					p.Send(demo.ConfigMsg{Config: c})
				})
				if err != nil {
					logger.Warn("config watch unavailable", "err", err)
				} else {
					defer w.Close()
					if err := w.Watch(); err != nil {
						logger.Warn("config watch unavailable", "err", err)
					}
				}
			}

			logger.Info("demo start", "section", section, "config", a.configPath)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run demo: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&tps, "tps", stream.DefaultTokensPerSecond, "simulated tokens per second (0 = unlimited)")
	cmd.Flags().DurationVar(&step, "step", demo.DefaultStepInterval, "delay between chain of thought steps")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload the config file on change")
	return cmd
}
