// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Config command implementation.
//
// Command: config [subcommand]
// Short:   View and modify configuration
//
// Subcommands:
//   show (default)      Display current configuration
//   path                Show configuration file path
//   init                Write a default config file
//   get <key>           Print one value
//   set <key> <value>   Set and save one value
//
// Examples:
//   elements config
//   elements config show --json
//   elements config set reasoning.auto_close_ms 800
//   elements config set ui.deep_dive true
//   elements config init --force

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeranaias/rigrun-elements/internal/config"
)

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View and modify configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.showConfig(cmd, false)
		},
	}

	var asJSON bool
	show := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.showConfig(cmd, asJSON)
		},
	}
	show.Flags().BoolVar(&asJSON, "json", false, "output as JSON")

	path := &cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), a.configPath)
			return err
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(a.configPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", a.configPath)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			if err := config.SaveTOML(config.Default(), a.configPath); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), RenderConditional(SuccessStyle, "[OK]")+" wrote "+a.configPath)
			return err
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	get := &cobra.Command{
		Use:       "get <key>",
		Short:     "Print one value",
		Args:      cobra.ExactArgs(1),
		ValidArgs: config.Keys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.cfg.Get(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), v)
			return err
		},
	}

	set := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set and save one value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			if err := config.SaveTOML(a.cfg, a.configPath); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), RenderConditional(SuccessStyle, "[OK]")+" "+args[0]+" = "+args[1])
			return err
		},
	}

	cmd.AddCommand(show, path, initCmd, get, set)
	return cmd
}

func (a *app) showConfig(cmd *cobra.Command, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		b, err := json.MarshalIndent(a.cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		_, err = fmt.Fprintln(out, string(b))
		return err
	}

	fmt.Fprintln(out, RenderConditional(TitleStyle, "Configuration"))
	fmt.Fprintln(out, RenderConditional(DimStyle, a.configPath))
	width := RuleWidth()
	fmt.Fprintln(out, RenderSeparator(width))
	for _, key := range config.Keys() {
		v, err := a.cfg.Get(key)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, RenderKeyValue(key, fmt.Sprint(v), width))
	}
	return nil
}
