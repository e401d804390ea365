// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prompt assembles the system prompt, tool list and sampling
// settings for a research-style LLM call.
//
// Two builders exist:
//
//   - Researcher for models with native tool calling. Tools are always
//     declared; search mode decides which are active and how many
//     steps the model may take.
//   - ManualResearcher for models without tool calling. Search results
//     are injected by the caller, so the prompt only changes wording.
//
// Both switch to the DeepDive reasoning prompt when DeepDive is on and the
// model is a reasoning model. The result is a Request that converts to an
// Ollama /api/chat body via ChatRequest.
package prompt
