// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prompt

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = func() time.Time {
	return time.Date(2025, time.March, 4, 15, 6, 7, 0, time.Local)
}

func TestLookup(t *testing.T) {
	m, err := Lookup("deepseek-r1:14b")
	require.NoError(t, err)
	assert.Equal(t, "ollama", m.ProviderID)

	m, err = Lookup("ollama:qwen2.5-coder:14b")
	require.NoError(t, err)
	assert.Equal(t, "qwen2.5-coder:14b", m.ID)

	_, err = Lookup("openai:qwen2.5-coder:14b")
	assert.True(t, errors.Is(err, ErrUnknownModel))

	_, err = Lookup("nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownModel)
	assert.Contains(t, err.Error(), `"nope"`)
}

func TestIsReasoningModel(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"deepseek-r1:14b", true},
		{"ollama:deepseek-r1:14b", true},
		{"deepseek-r1:70b", true},
		{"qwq:32b", true},
		{"o3-mini", true},
		{"openai:o1", true},
		{"gpt-4o", false},
		{"llama3.1:8b", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, IsReasoningModel(tt.id))
		})
	}
}

func TestEnabledModelsSorted(t *testing.T) {
	ms := EnabledModels()
	require.NotEmpty(t, ms)
	for i := 1; i < len(ms); i++ {
		assert.Less(t, ms[i-1].ID, ms[i].ID)
	}
}

func TestResearcherSearchMode(t *testing.T) {
	req, err := Researcher(Config{Model: "qwen2.5-coder:14b", Search: true, Now: fixedNow})
	require.NoError(t, err)

	assert.Equal(t, ToolNames, req.ActiveTools)
	assert.Equal(t, MaxStepsSearch, req.MaxSteps)
	assert.Len(t, req.Tools, 4)
	assert.Nil(t, req.Options)
	assert.True(t, strings.HasPrefix(req.System, SystemPrompt))
	assert.True(t, strings.HasSuffix(req.System, "\nCurrent date and time: 3/4/2025, 3:06:07 PM"))
}

func TestResearcherNoSearch(t *testing.T) {
	req, err := Researcher(Config{Model: "qwen2.5-coder:14b", Now: fixedNow})
	require.NoError(t, err)

	assert.Empty(t, req.ActiveTools)
	assert.NotNil(t, req.ActiveTools)
	assert.Equal(t, MaxStepsNoSearch, req.MaxSteps)
	assert.Len(t, req.Tools, 4, "tools stay declared")
	assert.Empty(t, req.ChatRequest().Tools)
}

func TestResearcherDeepDive(t *testing.T) {
	tests := []struct {
		name     string
		model    string
		deepDive bool
		want     string
	}{
		{"reasoning model", "qwq:32b", true, DeepDivePrompt},
		{"deep dive off", "qwq:32b", false, SystemPrompt},
		{"plain model", "llama3.1:8b", true, SystemPrompt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := Researcher(Config{Model: tt.model, DeepDive: tt.deepDive, Now: fixedNow})
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(req.System, tt.want))
			assert.Equal(t, tt.want == DeepDivePrompt, req.DeepDive)
		})
	}
}

func TestManualResearcherPrompts(t *testing.T) {
	tests := []struct {
		name     string
		model    string
		search   bool
		deepDive bool
		want     string
	}{
		{"deep dive reasoning", "deepseek-r1:14b", true, true, ManualDeepDivePrompt},
		{"deep dive non reasoning", "gemma2:9b", true, true, SearchEnabledPrompt},
		{"search", "gemma2:9b", true, false, SearchEnabledPrompt},
		{"no search", "gemma2:9b", false, false, SearchDisabledPrompt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ManualResearcher(Config{Model: tt.model, Search: tt.search, DeepDive: tt.deepDive, Now: fixedNow})
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\nCurrent date and time: 3/4/2025, 3:06:07 PM", req.System)
			assert.Empty(t, req.Tools)
			require.NotNil(t, req.Options)
			assert.Equal(t, 0.6, req.Options.Temperature)
			assert.Equal(t, 1.0, req.Options.TopP)
			assert.Equal(t, 40, req.Options.TopK)
		})
	}
}

func TestManualPromptsShareBase(t *testing.T) {
	assert.True(t, strings.HasPrefix(SearchEnabledPrompt, "\n"+BaseSystemPrompt+"\nWhen analyzing search results:"))
	assert.True(t, strings.HasPrefix(SearchDisabledPrompt, "\n"+BaseSystemPrompt+"\nImportant:"))
}

func TestUnknownModel(t *testing.T) {
	_, err := Researcher(Config{Model: "missing"})
	assert.ErrorIs(t, err, ErrUnknownModel)

	_, err = ManualResearcher(Config{Model: "missing"})
	assert.ErrorIs(t, err, ErrUnknownModel)

	_, err = Build(Config{Model: "missing"}, false)
	assert.ErrorIs(t, err, ErrUnknownModel)
}

func TestBuildSelectsByToolCallType(t *testing.T) {
	req, err := Build(Config{Model: "deepseek-r1:14b", Search: true, Now: fixedNow}, false)
	require.NoError(t, err)
	assert.NotNil(t, req.Options, "manual model")

	req, err = Build(Config{Model: "llama3.1:8b", Search: true, Now: fixedNow}, false)
	require.NoError(t, err)
	assert.Nil(t, req.Options)
	assert.Len(t, req.ActiveTools, 4)

	req, err = Build(Config{Model: "llama3.1:8b", Search: true, Now: fixedNow}, true)
	require.NoError(t, err)
	assert.NotNil(t, req.Options)
}

func TestChatRequestJSON(t *testing.T) {
	req, err := ManualResearcher(Config{
		Model:    "deepseek-r1:14b",
		Messages: []Message{{Role: "user", Content: "hi"}},
		Now:      fixedNow,
	})
	require.NoError(t, err)

	b, err := req.JSON()
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(b, &body))
	assert.Equal(t, "deepseek-r1:14b", body["model"])
	assert.Equal(t, true, body["stream"])
	assert.NotContains(t, body, "tools")

	msgs := body["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "hi", msgs[1].(map[string]any)["content"])

	opts := body["options"].(map[string]any)
	assert.Equal(t, 0.6, opts["temperature"])
	assert.Equal(t, float64(40), opts["top_k"])
	assert.Equal(t, float64(131072), opts["num_ctx"])
}

func TestChatRequestDoesNotMutateOptions(t *testing.T) {
	req, err := ManualResearcher(Config{Model: "deepseek-r1:14b", Now: fixedNow})
	require.NoError(t, err)
	_ = req.ChatRequest()
	assert.Zero(t, req.Options.NumCtx)
}

func TestResearchToolsSchema(t *testing.T) {
	tools := ResearchTools()
	for i, tool := range tools {
		assert.Equal(t, "function", tool.Type)
		assert.Equal(t, ToolNames[i], tool.Function.Name)
		assert.Equal(t, "object", tool.Function.Parameters.Type)
		for _, r := range tool.Function.Parameters.Required {
			assert.Contains(t, tool.Function.Parameters.Properties, r)
		}
	}
}
