// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prompt

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownModel is returned when a model id is not in the registry.
var ErrUnknownModel = errors.New("unknown model")

// ToolCallType describes how a model invokes tools.
type ToolCallType string

const (
	// ToolCallNative models receive tool schemas and call them directly.
	ToolCallNative ToolCallType = "native"
	// ToolCallManual models get search results pasted into the prompt.
	ToolCallManual ToolCallType = "manual"
)

// CapabilityReasoning marks a model that emits <think> blocks.
const CapabilityReasoning = "reasoning"

// =============================================================================
// MODEL TYPE
// =============================================================================

// Model describes a selectable chat model.
type Model struct {
	// ID is the provider-side model identifier
	ID string `json:"id"`

	// Name is the human-readable display name
	Name string `json:"name"`

	// Provider is the display name of the provider
	Provider string `json:"provider"`

	// ProviderID is the short provider key ("ollama", "openai", ...)
	ProviderID string `json:"providerId"`

	Enabled bool `json:"enabled"`

	ToolCallType ToolCallType `json:"toolCallType"`

	// ToolCallModel optionally names a different model used for tool calls
	ToolCallModel string `json:"toolCallModel,omitempty"`

	// Avatar overrides the provider logo
	Avatar string `json:"avatar,omitempty"`

	Capabilities  []string `json:"capabilities,omitempty"`
	ContextWindow int      `json:"contextWindow,omitempty"`
}

// HasCapability reports whether the model lists the capability.
func (m Model) HasCapability(c string) bool {
	for _, have := range m.Capabilities {
		if strings.EqualFold(have, c) {
			return true
		}
	}
	return false
}

// Key returns "providerId:id".
func (m Model) Key() string {
	return m.ProviderID + ":" + m.ID
}

// =============================================================================
// MODEL REGISTRY
// =============================================================================

// Models is the registry of known models keyed by ID.
var Models = map[string]Model{
	// Local reasoning models
	"deepseek-r1:14b": {
		ID:            "deepseek-r1:14b",
		Name:          "DeepSeek R1 14B",
		Provider:      "Ollama",
		ProviderID:    "ollama",
		Enabled:       true,
		ToolCallType:  ToolCallManual,
		Capabilities:  []string{"completion", CapabilityReasoning},
		ContextWindow: 131072,
	},
	"qwq:32b": {
		ID:            "qwq:32b",
		Name:          "QwQ 32B",
		Provider:      "Ollama",
		ProviderID:    "ollama",
		Enabled:       true,
		ToolCallType:  ToolCallNative,
		Capabilities:  []string{"completion", "tools", CapabilityReasoning},
		ContextWindow: 40960,
	},

	// Local tool-calling models
	"qwen2.5-coder:14b": {
		ID:            "qwen2.5-coder:14b",
		Name:          "Qwen 2.5 Coder 14B",
		Provider:      "Ollama",
		ProviderID:    "ollama",
		Enabled:       true,
		ToolCallType:  ToolCallNative,
		Capabilities:  []string{"completion", "tools"},
		ContextWindow: 32768,
	},
	"llama3.1:8b": {
		ID:            "llama3.1:8b",
		Name:          "Llama 3.1 8B",
		Provider:      "Ollama",
		ProviderID:    "ollama",
		Enabled:       true,
		ToolCallType:  ToolCallNative,
		Capabilities:  []string{"completion", "tools"},
		ContextWindow: 131072,
	},
	"gemma2:9b": {
		ID:            "gemma2:9b",
		Name:          "Gemma 2 9B",
		Provider:      "Ollama",
		ProviderID:    "ollama",
		Enabled:       true,
		ToolCallType:  ToolCallManual,
		Capabilities:  []string{"completion"},
		ContextWindow: 8192,
	},

	// Cloud
	"gpt-4o": {
		ID:           "gpt-4o",
		Name:         "GPT-4o",
		Provider:     "OpenAI",
		ProviderID:   "openai",
		Enabled:      true,
		ToolCallType: ToolCallNative,
	},
	"o3-mini": {
		ID:           "o3-mini",
		Name:         "o3 mini",
		Provider:     "OpenAI",
		ProviderID:   "openai",
		Enabled:      true,
		ToolCallType: ToolCallNative,
	},
}

// reasoningPrefixes are id families that reason even without a capability tag.
var reasoningPrefixes = []string{"deepseek-r1", "o1", "o3", "qwq"}

// Lookup returns the registry entry for id. A "providerId:" prefix is
// accepted and stripped when the full string is not registered.
func Lookup(id string) (Model, error) {
	if m, ok := Models[id]; ok {
		return m, nil
	}
	if provider, rest, ok := strings.Cut(id, ":"); ok {
		if m, ok := Models[rest]; ok && m.ProviderID == provider {
			return m, nil
		}
	}
	return Model{}, fmt.Errorf("lookup %q: %w", id, ErrUnknownModel)
}

// IsReasoningModel reports whether id names a reasoning model. Unregistered
// ids are matched by family name.
func IsReasoningModel(id string) bool {
	if m, err := Lookup(id); err == nil && m.HasCapability(CapabilityReasoning) {
		return true
	}
	name := strings.ToLower(id)
	if provider, rest, ok := strings.Cut(name, ":"); ok && isProvider(provider) {
		name = rest
	}
	for _, p := range reasoningPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

func isProvider(s string) bool {
	switch s {
	case "ollama", "openai", "anthropic", "deepseek", "groq":
		return true
	}
	return false
}

// EnabledModels returns enabled models sorted by ID.
func EnabledModels() []Model {
	out := make([]Model, 0, len(Models))
	for _, m := range Models {
		if m.Enabled {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
