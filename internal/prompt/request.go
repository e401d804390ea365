// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prompt

import (
	"encoding/json"
	"fmt"
)

// Message is a chat message.
type Message struct {
	Role    string `json:"role"` // "system", "user", "assistant", "tool"
	Content string `json:"content"`
}

// Options contains sampling parameters.
type Options struct {
	Temperature float64 `json:"temperature,omitempty"`
	TopK        int     `json:"top_k,omitempty"`
	TopP        float64 `json:"top_p,omitempty"`
	NumCtx      int     `json:"num_ctx,omitempty"`
}

// Request is the assembled, provider-neutral call.
type Request struct {
	Model    Model
	System   string
	Messages []Message

	// Tools are declared; ActiveTools are the ones the model may call.
	Tools       []Tool
	ActiveTools []string

	MaxSteps int
	Options  *Options
	DeepDive bool
}

// ChatRequest is the body for Ollama's /api/chat endpoint.
type ChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
	Options  *Options  `json:"options,omitempty"`
	Tools    []Tool    `json:"tools,omitempty"`
}

// IsActive reports whether the named tool may be called.
func (r Request) IsActive(name string) bool {
	for _, n := range r.ActiveTools {
		if n == name {
			return true
		}
	}
	return false
}

// ChatRequest converts r into an Ollama chat body. The system prompt
// becomes the first message and only active tools are sent.
func (r Request) ChatRequest() ChatRequest {
	msgs := make([]Message, 0, len(r.Messages)+1)
	msgs = append(msgs, Message{Role: "system", Content: r.System})
	msgs = append(msgs, r.Messages...)

	var tools []Tool
	for _, t := range r.Tools {
		if r.IsActive(t.Function.Name) {
			tools = append(tools, t)
		}
	}

	opts := r.Options
	if r.Model.ContextWindow > 0 {
		o := Options{}
		if opts != nil {
			o = *opts
		}
		o.NumCtx = r.Model.ContextWindow
		opts = &o
	}

	return ChatRequest{
		Model:    r.Model.ID,
		Messages: msgs,
		Stream:   true,
		Options:  opts,
		Tools:    tools,
	}
}

// JSON returns the indented chat body.
func (r Request) JSON() ([]byte, error) {
	b, err := json.MarshalIndent(r.ChatRequest(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}
	return b, nil
}
