// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stream

import (
	"context"
	"sync"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/jeranaias/rigrun-elements/internal/logging"
)

// DefaultTokensPerSecond approximates a local 14B model.
const DefaultTokensPerSecond = 40

// =============================================================================
// MESSAGES
// =============================================================================

// TokenMsg delivers one token.
type TokenMsg struct {
	ID    string
	Token string
	Index int
}

// DoneMsg ends a stream. Err is the context error when stopped early.
type DoneMsg struct {
	ID  string
	Err error
}

// =============================================================================
// SIMULATOR
// =============================================================================

// SimulatorOptions tunes playback. Zero TokensPerSecond means unlimited.
type SimulatorOptions struct {
	TokensPerSecond float64
	Burst           int
	Logger          *log.Logger
}

// Simulator replays text as a token stream.
type Simulator struct {
	id      string
	tokens  []string
	limiter *rate.Limiter
	out     chan tea.Msg
	logger  *log.Logger

	once   sync.Once
	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewSimulator splits text into tokens for stream id.
func NewSimulator(id, text string, opts SimulatorOptions) *Simulator {
	limit := rate.Inf
	if opts.TokensPerSecond > 0 {
		limit = rate.Limit(opts.TokensPerSecond)
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.With("stream")
	}
	tokens := Tokenize(text)
	return &Simulator{
		id:      id,
		tokens:  tokens,
		limiter: rate.NewLimiter(limit, burst),
		out:     make(chan tea.Msg, len(tokens)+1),
		logger:  logger,
	}
}

// ID returns the stream id.
func (s *Simulator) ID() string { return s.id }

// Tokens returns the number of tokens that will be sent.
func (s *Simulator) Tokens() int { return len(s.tokens) }

// Start begins playback and returns the command for the first message.
// Calling Start again only returns Next.
func (s *Simulator) Start(ctx context.Context) tea.Cmd {
	s.once.Do(func() {
		ctx, cancel := context.WithCancel(ctx)
		s.mu.Lock()
		s.cancel = cancel
		s.mu.Unlock()
		s.logger.Debug("stream start", "id", s.id, "tokens", len(s.tokens))
		go s.run(ctx)
	})
	return s.Next()
}

// Next waits for the next TokenMsg or DoneMsg. Hosts call it again after
// every TokenMsg. After DoneMsg the command yields nil.
func (s *Simulator) Next() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-s.out
		if !ok {
			return nil
		}
		return msg
	}
}

// Stop cancels playback; a DoneMsg carrying context.Canceled follows.
func (s *Simulator) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (s *Simulator) run(ctx context.Context) {
	defer close(s.out)
	defer s.Stop()

	for i, tok := range s.tokens {
		if err := s.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				err = ctx.Err()
			}
			s.logger.Debug("stream stopped", "id", s.id, "at", i, "err", err)
			s.out <- DoneMsg{ID: s.id, Err: err}
			return
		}
		s.out <- TokenMsg{ID: s.id, Token: tok, Index: i}
	}
	s.logger.Debug("stream done", "id", s.id)
	s.out <- DoneMsg{ID: s.id}
}

// Tokenize splits text into word-sized chunks. Each chunk keeps its
// trailing whitespace so concatenating the chunks returns the input.
func Tokenize(text string) []string {
	var (
		out   []string
		start int
		inWS  bool
	)
	for i, r := range text {
		ws := unicode.IsSpace(r)
		if inWS && !ws {
			out = append(out, text[start:i])
			start = i
		}
		inWS = ws
	}
	if start < len(text) {
		out = append(out, text[start:])
	}
	return out
}
