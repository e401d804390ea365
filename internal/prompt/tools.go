// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prompt

// Tool names as the model sees them.
const (
	ToolSearch      = "search"
	ToolRetrieve    = "retrieve"
	ToolVideoSearch = "videoSearch"
	ToolAskQuestion = "ask_question"
)

// ToolNames lists every research tool in declaration order.
var ToolNames = []string{ToolSearch, ToolRetrieve, ToolVideoSearch, ToolAskQuestion}

// Tool is a function tool definition in Ollama's format.
type Tool struct {
	Type     string     `json:"type"` // always "function"
	Function ToolSchema `json:"function"`
}

// ToolSchema defines a tool's interface.
type ToolSchema struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  ToolParameters `json:"parameters"`
}

// ToolParameters is the JSON Schema object for a tool's arguments.
type ToolParameters struct {
	Type       string                  `json:"type"`
	Properties map[string]ToolProperty `json:"properties"`
	Required   []string                `json:"required,omitempty"`
}

// ToolProperty is a single argument.
type ToolProperty struct {
	Type        string        `json:"type"`
	Description string        `json:"description"`
	Enum        []string      `json:"enum,omitempty"`
	Default     any           `json:"default,omitempty"`
	Items       *ToolProperty `json:"items,omitempty"`
}

func function(name, desc string, props map[string]ToolProperty, required ...string) Tool {
	return Tool{
		Type: "function",
		Function: ToolSchema{
			Name:        name,
			Description: desc,
			Parameters: ToolParameters{
				Type:       "object",
				Properties: props,
				Required:   required,
			},
		},
	}
}

var stringList = &ToolProperty{Type: "string"}

// ResearchTools returns fresh definitions of the four research tools.
func ResearchTools() []Tool {
	return []Tool{
		function(ToolSearch, "Search the web for information", map[string]ToolProperty{
			"query":           {Type: "string", Description: "The query to search for"},
			"max_results":     {Type: "integer", Description: "The maximum number of results to return", Default: 20},
			"search_depth":    {Type: "string", Description: "The depth of the search", Enum: []string{"basic", "advanced"}, Default: "basic"},
			"include_domains": {Type: "array", Description: "A list of domains to specifically include in the search results", Items: stringList},
			"exclude_domains": {Type: "array", Description: "A list of domains to specifically exclude from the search results", Items: stringList},
		}, "query"),
		function(ToolRetrieve, "Retrieve content from the web", map[string]ToolProperty{
			"url": {Type: "string", Description: "The url to retrieve"},
		}, "url"),
		function(ToolVideoSearch, "Search for videos from YouTube", map[string]ToolProperty{
			"query": {Type: "string", Description: "The query to search for"},
		}, "query"),
		function(ToolAskQuestion, "Ask a clarifying question with multiple options when more information is needed", map[string]ToolProperty{
			"question":         {Type: "string", Description: "The main question to ask the user"},
			"options":          {Type: "array", Description: "Available options for the user to choose from", Items: stringList},
			"allowsInput":      {Type: "boolean", Description: "Whether to allow free-form text input"},
			"inputLabel":       {Type: "string", Description: "Label for free-form input field"},
			"inputPlaceholder": {Type: "string", Description: "Placeholder text for input field"},
		}, "question", "options", "allowsInput"),
	}
}
