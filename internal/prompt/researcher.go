// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prompt

import (
	"fmt"
	"time"

	"github.com/jeranaias/rigrun-elements/internal/logging"
)

// Sampling settings for ManualResearcher.
const (
	ManualTemperature = 0.6
	ManualTopP        = 1.0
	ManualTopK        = 40
)

// Step limits for Researcher.
const (
	MaxStepsSearch   = 5
	MaxStepsNoSearch = 1
)

// DateLayout renders the current time the way a US locale string does.
const DateLayout = "1/2/2006, 3:04:05 PM"

// Config selects the model and modes for a request.
type Config struct {
	Messages []Message
	Model    string

	// Search enables the research tools (Researcher) or the search-results
	// prompt (ManualResearcher).
	Search   bool
	DeepDive bool

	// Now defaults to time.Now.
	Now func() time.Time
}

func (c Config) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func withDate(system string, t time.Time) string {
	return system + "\nCurrent date and time: " + t.Format(DateLayout)
}

// Researcher builds a request for a native tool-calling model.
func Researcher(cfg Config) (Request, error) {
	m, err := Lookup(cfg.Model)
	if err != nil {
		return Request{}, fmt.Errorf("researcher: %w", err)
	}

	deepDive := cfg.DeepDive && IsReasoningModel(cfg.Model)
	system := SystemPrompt
	if deepDive {
		system = DeepDivePrompt
	}

	req := Request{
		Model:    m,
		System:   withDate(system, cfg.now()),
		Messages: cfg.Messages,
		Tools:    ResearchTools(),
		MaxSteps: MaxStepsNoSearch,
		DeepDive: deepDive,
	}
	if cfg.Search {
		req.ActiveTools = append([]string(nil), ToolNames...)
		req.MaxSteps = MaxStepsSearch
	} else {
		req.ActiveTools = []string{}
	}

	logging.With("prompt").Debug("researcher request", "model", m.ID, "search", cfg.Search, "deep_dive", deepDive)
	return req, nil
}

// ManualResearcher builds a request for a model without tool calling.
func ManualResearcher(cfg Config) (Request, error) {
	m, err := Lookup(cfg.Model)
	if err != nil {
		return Request{}, fmt.Errorf("manual researcher: %w", err)
	}

	deepDive := cfg.DeepDive && IsReasoningModel(cfg.Model)
	var system string
	switch {
	case deepDive:
		system = ManualDeepDivePrompt
	case cfg.Search:
		system = SearchEnabledPrompt
	default:
		system = SearchDisabledPrompt
	}

	logging.With("prompt").Debug("manual researcher request", "model", m.ID, "search", cfg.Search, "deep_dive", deepDive)
	return Request{
		Model:    m,
		System:   withDate(system, cfg.now()),
		Messages: cfg.Messages,
		MaxSteps: MaxStepsNoSearch,
		Options: &Options{
			Temperature: ManualTemperature,
			TopP:        ManualTopP,
			TopK:        ManualTopK,
		},
		DeepDive: deepDive,
	}, nil
}

// Build picks Researcher or ManualResearcher from the model's tool-call
// type. forceManual overrides a native model.
func Build(cfg Config, forceManual bool) (Request, error) {
	m, err := Lookup(cfg.Model)
	if err != nil {
		return Request{}, fmt.Errorf("build request: %w", err)
	}
	if forceManual || m.ToolCallType == ToolCallManual {
		return ManualResearcher(cfg)
	}
	return Researcher(cfg)
}
