// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stream

import "strings"

const (
	ThinkOpen  = "<think>"
	ThinkClose = "</think>"
)

// Phase is where a ThinkParser is in the response.
type Phase int

const (
	// PhaseStart: nothing but whitespace seen yet.
	PhaseStart Phase = iota
	// PhaseThinking: inside a <think> block.
	PhaseThinking
	// PhaseAnswer: past the reasoning, or there was none.
	PhaseAnswer
)

// ThinkParser splits a token stream into reasoning and answer text. Tags
// may be split across tokens. Only a leading <think> block counts as
// reasoning.
type ThinkParser struct {
	phase   Phase
	pending string
}

// Phase returns the current phase.
func (p *ThinkParser) Phase() Phase { return p.phase }

// Thinking reports whether the parser is inside the reasoning block.
func (p *ThinkParser) Thinking() bool { return p.phase == PhaseThinking }

// Feed consumes a token and returns the new reasoning and answer text.
func (p *ThinkParser) Feed(token string) (reasoning, answer string) {
	s := p.pending + token
	p.pending = ""

	for s != "" {
		switch p.phase {
		case PhaseStart:
			trimmed := strings.TrimLeft(s, " \t\r\n")
			switch {
			case strings.HasPrefix(trimmed, ThinkOpen):
				p.phase = PhaseThinking
				s = strings.TrimLeft(trimmed[len(ThinkOpen):], "\r\n")
			case trimmed == "" || strings.HasPrefix(ThinkOpen, trimmed):
				// whitespace or a partial tag: wait for more
				p.pending = s
				return reasoning, answer
			default:
				p.phase = PhaseAnswer
				s = trimmed
			}
		case PhaseThinking:
			if i := strings.Index(s, ThinkClose); i >= 0 {
				reasoning += s[:i]
				s = strings.TrimLeft(s[i+len(ThinkClose):], "\r\n")
				p.phase = PhaseAnswer
				continue
			}
			keep := partialSuffix(s, ThinkClose)
			reasoning += s[:len(s)-keep]
			p.pending = s[len(s)-keep:]
			return reasoning, answer
		case PhaseAnswer:
			answer += s
			s = ""
		}
	}
	return reasoning, answer
}

// Flush returns held-back text at end of stream.
func (p *ThinkParser) Flush() (reasoning, answer string) {
	s := p.pending
	p.pending = ""
	switch p.phase {
	case PhaseThinking:
		return s, ""
	case PhaseStart:
		p.phase = PhaseAnswer
		return "", strings.TrimLeft(s, " \t\r\n")
	}
	return "", s
}

// partialSuffix returns the length of the longest suffix of s that is a
// proper prefix of tag.
func partialSuffix(s, tag string) int {
	n := len(tag) - 1
	if n > len(s) {
		n = len(s)
	}
	for ; n > 0; n-- {
		if strings.HasSuffix(s, tag[:n]) {
			return n
		}
	}
	return 0
}

// SplitThink separates a complete response into reasoning and answer.
func SplitThink(text string) (reasoning, answer string) {
	var p ThinkParser
	r, a := p.Feed(text)
	fr, fa := p.Flush()
	return r + fr, a + fa
}
