// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// prompt_cmd.go - Print the request a research assistant would send.
//
// Command: prompt [message...]
// Short:   Assemble the system prompt and tools for a model
//
// Flags default to the [model] and [ui] config sections.
//
// Examples:
//   elements prompt "what is new in Go 1.24"
//   elements prompt --model qwq:32b --deep-dive "prove it"
//   elements prompt --model llama3.1:8b --search=false
//   elements prompt --manual --system

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/rigrun-elements/internal/prompt"
)

func (a *app) promptCmd() *cobra.Command {
	var (
		model      string
		search     bool
		deepDive   bool
		manual     bool
		systemOnly bool
	)

	cmd := &cobra.Command{
		Use:   "prompt [message...]",
		Short: "Assemble the system prompt and tools for a model",
		Long: `prompt builds the chat request a research assistant would send and prints it
as an Ollama /api/chat body. Native tool-calling models get the search,
retrieve, videoSearch and ask_question tools; manual models get sampling
settings instead. DeepDive switches reasoning models to the step-by-step
reasoning prompt.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			cfg := prompt.Config{
				Model:    a.cfg.Model.ID,
				Search:   a.cfg.Model.Search,
				DeepDive: a.cfg.UI.DeepDive,
			}
			if flags.Changed("model") {
				cfg.Model = model
			}
			if flags.Changed("search") {
				cfg.Search = search
			}
			if flags.Changed("deep-dive") {
				cfg.DeepDive = deepDive
			}
			if msg := strings.TrimSpace(strings.Join(args, " ")); msg != "" {
				cfg.Messages = []prompt.Message{{Role: "user", Content: msg}}
			}

			req, err := prompt.Build(cfg, manual || a.cfg.Model.Manual)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if systemOnly {
				_, err := fmt.Fprintln(out, req.System)
				return err
			}
			b, err := req.JSON()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, string(b))
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&model, "model", "m", "", "model id (default from config)")
	flags.BoolVar(&search, "search", true, "enable search tools or the search-results prompt")
	flags.BoolVar(&deepDive, "deep-dive", false, "use the DeepDive prompt for reasoning models")
	flags.BoolVar(&manual, "manual", false, "build a manual (no tool calling) request")
	flags.BoolVar(&systemOnly, "system", false, "print only the system prompt")
	return cmd
}

func (a *app) modelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List known models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			width := RuleWidth()
			fmt.Fprintln(out, RenderConditional(TitleStyle, "Models"))
			fmt.Fprintln(out, RenderSeparator(width))
			for _, m := range prompt.EnabledModels() {
				traits := []string{string(m.ToolCallType)}
				if prompt.IsReasoningModel(m.ID) {
					traits = append(traits, "reasoning")
				}
				if m.ID == a.cfg.Model.ID {
					traits = append(traits, "default")
				}
				fmt.Fprintln(out, RenderKeyValue(m.Key(), strings.Join(traits, ", ")+"  "+m.Name, width))
			}
			return nil
		},
	}
}
