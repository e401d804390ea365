// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package demo

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/jeranaias/rigrun-elements/internal/config"
	"github.com/jeranaias/rigrun-elements/internal/logging"
	"github.com/jeranaias/rigrun-elements/internal/prompt"
	"github.com/jeranaias/rigrun-elements/internal/stream"
	"github.com/jeranaias/rigrun-elements/internal/ui/components"
	"github.com/jeranaias/rigrun-elements/internal/ui/styles"
)

// =============================================================================
// SECTIONS
// =============================================================================

// Section selects which elements the demo shows.
type Section string

const (
	SectionReasoning Section = "reasoning"
	SectionChain     Section = "chain"
	SectionCode      Section = "code"
	SectionShimmer   Section = "shimmer"
	SectionImage     Section = "image"
	SectionSkeleton  Section = "skeleton"
	SectionAll       Section = "all"
)

// Sections lists every valid section.
var Sections = []Section{SectionReasoning, SectionChain, SectionCode, SectionShimmer, SectionImage, SectionSkeleton, SectionAll}

// ParseSection parses a section name. Empty means all.
func ParseSection(s string) (Section, error) {
	if s == "" {
		return SectionAll, nil
	}
	for _, sec := range Sections {
		if string(sec) == strings.ToLower(s) {
			return sec, nil
		}
	}
	names := make([]string, len(Sections))
	for i, sec := range Sections {
		names[i] = string(sec)
	}
	return "", fmt.Errorf("unknown demo %q (want one of %s)", s, strings.Join(names, ", "))
}

func (s Section) has(x Section) bool {
	return s == SectionAll || s == x
}

// =============================================================================
// MESSAGES
// =============================================================================

// ConfigMsg delivers a reloaded configuration.
type ConfigMsg struct {
	Config *config.Config
}

type restartMsg struct{}

type chainStepMsg struct {
	gen uint64
}

type deepDiveSavedMsg struct {
	on  bool
	err error
}

// =============================================================================
// KEYS
// =============================================================================

type keyMap struct {
	Next     key.Binding
	Prev     key.Binding
	DeepDive key.Binding
	Replay   key.Binding
	Skeleton key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "back")),
		DeepDive: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "deep dive")),
		Replay:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "replay")),
		Skeleton: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skeleton")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// =============================================================================
// MODEL
// =============================================================================

// DefaultStepInterval paces the chain of thought steps.
const DefaultStepInterval = 900 * time.Millisecond

// Options configures the demo.
type Options struct {
	Section Section

	// Config defaults to config.Default().
	Config *config.Config

	// ConfigPath is where DeepDive is saved; empty disables saving.
	ConfigPath string

	Theme     *styles.Theme
	Clipboard components.Clipboard

	// TokensPerSecond paces the simulated stream. Zero uses
	// stream.DefaultTokensPerSecond; negative is unlimited.
	TokensPerSecond float64

	StepInterval time.Duration

	Now    func() time.Time
	Logger *log.Logger
}

// Model is the demo program.
type Model struct {
	section      Section
	cfg          *config.Config
	cfgPath      string
	theme        *styles.Theme
	clip         components.Clipboard
	logger       *log.Logger
	now          func() time.Time
	tps          float64
	stepInterval time.Duration
	keys         keyMap

	width  int
	height int
	scroll components.ScrollView

	reasoning components.Reasoning
	chain     components.ChainOfThought
	code      components.CodeBlock
	shimmer   components.Shimmer
	skeleton  components.Skeleton
	images    components.ImageSection
	toasts    *components.ToastManager

	sim        *stream.Simulator
	simGen     int
	parser     *stream.ThinkParser
	buf        *stream.Buffer
	answer     string
	thinkStart time.Time
	streamDone bool
	framing    bool

	chainGen uint64
	chainIDs []string
	chainAt  int

	focus    int
	deepDive bool
}

// New creates the demo model.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	section := opts.Section
	if section == "" {
		section = SectionAll
	}
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme(cfg.UI.Theme)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.With("demo")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	tps := opts.TokensPerSecond
	switch {
	case tps == 0:
		tps = stream.DefaultTokensPerSecond
	case tps < 0:
		tps = 0
	}
	interval := opts.StepInterval
	if interval <= 0 {
		interval = DefaultStepInterval
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = components.SystemClipboard
	}

	m := Model{
		section:      section,
		cfg:          cfg,
		cfgPath:      opts.ConfigPath,
		theme:        theme,
		clip:         clip,
		logger:       logger,
		now:          now,
		tps:          tps,
		stepInterval: interval,
		keys:         defaultKeyMap(),
		width:        80,
		toasts:       components.NewToastManager(),
		scroll:       components.NewScrollView(theme),
		parser:       &stream.ThinkParser{},
		buf:          stream.NewBuffer(),
		deepDive:     cfg.UI.DeepDive,
	}
	m.reasoning = m.newReasoning()
	m.chain = m.newChain()
	m.code = m.newCodeBlock()
	m.shimmer = m.newShimmer()
	m.skeleton = m.newSkeleton(components.SkeletonDefault)
	m.images = components.NewImageSection(ImagePrompt, theme, SampleImage())
	m.scroll.SetFollow(false)
	m.applyFocus()
	return m
}

func (m Model) newReasoning() components.Reasoning {
	return components.NewReasoningSection(components.ReasoningOptions{
		PanelOptions: components.PanelOptions{
			ID:             "reasoning",
			AutoCloseDelay: m.cfg.Reasoning.AutoCloseDelay(),
			Theme:          m.theme,
			Logger:         m.logger,
			OnOpenChange: func(open bool) {
				m.logger.Debug("reasoning open change", "open", open)
			},
		},
	}, "", nil)
}

func (m Model) newChain() components.ChainOfThought {
	return components.NewChainOfThought(components.ChainOfThoughtOptions{
		PanelOptions: components.PanelOptions{
			ID:             "chain",
			AutoCloseDelay: m.cfg.Chain.AutoCloseDelay(),
			Theme:          m.theme,
			Logger:         m.logger,
		},
	})
}

func (m Model) newCodeBlock() components.CodeBlock {
	toasts := m.toasts
	return components.NewCodeBlock(components.CodeBlockOptions{
		ID:              "code",
		Language:        "go",
		Code:            CodeSample,
		ShowLineNumbers: m.cfg.UI.ShowLineNumbers,
		StyleDark:       m.cfg.CodeBlock.StyleDark,
		StyleLight:      m.cfg.CodeBlock.StyleLight,
		CopyTimeout:     m.cfg.CodeBlock.CopyTimeout(),
		Clipboard:       m.clip,
		Toasts:          toasts,
		OnCopy: func() {
			toasts.Add(components.ToastSuccess, "Copied", "code copied to clipboard")
		},
		Theme:  m.theme,
		Logger: m.logger,
	})
}

func (m Model) newShimmer() components.Shimmer {
	return components.NewShimmer(components.ShimmerOptions{
		Text:     ShimmerText,
		Duration: m.cfg.Shimmer.Duration(),
		Spread:   m.cfg.Shimmer.Spread,
		Theme:    m.theme,
	})
}

func (m Model) newSkeleton(kind components.SkeletonKind) components.Skeleton {
	return components.NewSkeleton(components.SkeletonOptions{
		Kind:  kind,
		Width: m.width,
		Theme: m.theme,
	})
}

// Skeleton returns the loading placeholder.
func (m Model) Skeleton() components.Skeleton { return m.skeleton }

// Reasoning returns the reasoning panel.
func (m Model) Reasoning() components.Reasoning { return m.reasoning }

// Chain returns the chain of thought panel.
func (m Model) Chain() components.ChainOfThought { return m.chain }

// Answer returns the answer text streamed so far.
func (m Model) Answer() string { return m.answer }

// DeepDive reports the DeepDive toggle.
func (m Model) DeepDive() bool { return m.deepDive }

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts playback and the toast expiry loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return restartMsg{} },
		components.ToastTickCmd(),
	)
}

// Update routes messages to the elements.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.route(msg)
	m.syncScroll()
	return m, cmd
}

func (m Model) route(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setWidth(msg.Width)
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.stop()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.moveFocus(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.moveFocus(-1)
			return m, nil
		case key.Matches(msg, m.keys.Replay):
			return m, m.restart()
		case key.Matches(msg, m.keys.DeepDive):
			return m, m.toggleDeepDive()
		case key.Matches(msg, m.keys.Skeleton) && m.section.has(SectionSkeleton):
			return m, m.nextSkeleton()
		}

	case restartMsg:
		return m, m.restart()

	case ConfigMsg:
		return m, m.applyConfig(msg.Config)

	case deepDiveSavedMsg:
		if msg.err != nil {
			m.toasts.AddError("Could not save DeepDive", msg.err)
		}
		return m, nil

	case components.ToastTickMsg:
		m.toasts.Prune()
		return m, components.ToastTickCmd()

	case stream.TokenMsg:
		return m, m.handleToken(msg)

	case stream.DoneMsg:
		return m, m.handleDone(msg)

	case stream.FrameMsg:
		return m, m.handleFrame()

	case chainStepMsg:
		return m, m.advanceChain(msg)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.reasoning, cmd = m.reasoning.Update(msg)
	cmds = append(cmds, cmd)
	m.chain, cmd = m.chain.Update(msg)
	cmds = append(cmds, cmd)
	m.code, cmd = m.code.Update(msg)
	cmds = append(cmds, cmd)
	m.shimmer, cmd = m.shimmer.Update(msg)
	cmds = append(cmds, cmd)
	m.skeleton, cmd = m.skeleton.Update(msg)
	cmds = append(cmds, cmd)
	m.scroll, cmd = m.scroll.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// =============================================================================
// PLAYBACK
// =============================================================================

func (m *Model) restart() tea.Cmd {
	var cmds []tea.Cmd
	if m.section.has(SectionReasoning) {
		cmds = append(cmds, m.startReasoning())
	}
	if m.section.has(SectionChain) {
		cmds = append(cmds, m.startChain())
	}
	if m.section.has(SectionShimmer) {
		cmds = append(cmds, m.shimmer.Start())
	}
	if m.section.has(SectionSkeleton) {
		cmds = append(cmds, m.skeleton.Start())
	}
	return tea.Batch(cmds...)
}

// nextSkeleton cycles the placeholder layout.
func (m *Model) nextSkeleton() tea.Cmd {
	kinds := components.SkeletonKinds
	next := kinds[0]
	for i, k := range kinds {
		if k == m.skeleton.Kind() {
			next = kinds[(i+1)%len(kinds)]
			break
		}
	}
	running := m.skeleton.Running()
	m.skeleton.Stop()
	m.skeleton = m.newSkeleton(next)
	if running {
		return m.skeleton.Start()
	}
	return nil
}

func (m *Model) startReasoning() tea.Cmd {
	if m.sim != nil {
		m.sim.Stop()
	}
	m.reasoning.Dispose()
	m.reasoning = m.newReasoning()
	m.reasoning.SetWidth(m.width)
	m.applyFocus()

	m.parser = &stream.ThinkParser{}
	m.buf.Reset()
	m.answer = ""
	m.streamDone = false
	m.thinkStart = m.now()

	m.simGen++
	m.sim = stream.NewSimulator("reasoning-"+strconv.Itoa(m.simGen), ReasoningResponse, stream.SimulatorOptions{
		TokensPerSecond: m.tps,
		Logger:          m.logger,
	})

	cmds := []tea.Cmd{m.reasoning.StartThinking(), m.sim.Start(context.Background())}
	if !m.framing {
		m.framing = true
		cmds = append(cmds, m.buf.FrameCmd())
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleToken(msg stream.TokenMsg) tea.Cmd {
	if m.sim == nil || msg.ID != m.sim.ID() {
		return nil
	}
	cmds := []tea.Cmd{m.sim.Next()}

	r, a := m.parser.Feed(msg.Token)
	if r != "" {
		m.reasoning.AppendContent(r)
	}
	if a != "" {
		m.buf.Write(a)
	}
	if m.reasoning.IsStreaming() && m.parser.Phase() == stream.PhaseAnswer {
		cmds = append(cmds, m.finishThinking())
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleDone(msg stream.DoneMsg) tea.Cmd {
	if m.sim == nil || msg.ID != m.sim.ID() {
		return nil
	}
	if msg.Err != nil {
		m.logger.Debug("stream ended early", "err", msg.Err)
	}
	r, a := m.parser.Flush()
	if r != "" {
		m.reasoning.AppendContent(r)
	}
	if a != "" {
		m.buf.Write(a)
	}
	if rest, ok := m.buf.ForceFlush(); ok {
		m.answer += rest
	}
	m.streamDone = true
	if m.reasoning.IsStreaming() {
		return m.finishThinking()
	}
	return nil
}

func (m *Model) finishThinking() tea.Cmd {
	d := m.now().Sub(m.thinkStart)
	if d < time.Millisecond {
		d = time.Millisecond
	}
	return m.reasoning.FinishThinking(d)
}

func (m *Model) handleFrame() tea.Cmd {
	if s, ok := m.buf.Flush(); ok {
		m.answer += s
	}
	if m.streamDone && m.buf.Pending() == 0 {
		m.framing = false
		return nil
	}
	return m.buf.FrameCmd()
}

func (m *Model) startChain() tea.Cmd {
	m.chain.Dispose()
	m.chain = m.newChain()
	m.chain.SetWidth(m.width)
	m.applyFocus()

	m.chainGen++
	m.chainIDs = m.chainIDs[:0]
	m.chainAt = 0

	img := m.images.First()
	var cmds []tea.Cmd
	for i, s := range ChainScript(img) {
		s.Status = components.StepPending
		if i == 0 {
			s.Status = components.StepActive
		}
		id, cmd := m.chain.AddStep(s)
		m.chainIDs = append(m.chainIDs, id)
		cmds = append(cmds, cmd)
	}
	cmds = append(cmds, m.chain.SetStreaming(true), m.chainTick())
	return tea.Batch(cmds...)
}

func (m Model) chainTick() tea.Cmd {
	gen := m.chainGen
	return tea.Tick(m.stepInterval, func(time.Time) tea.Msg {
		return chainStepMsg{gen: gen}
	})
}

func (m *Model) advanceChain(msg chainStepMsg) tea.Cmd {
	if msg.gen != m.chainGen || m.chainAt >= len(m.chainIDs) {
		return nil
	}
	_, done := m.chain.SetStepStatus(m.chainIDs[m.chainAt], components.StepComplete)
	m.chainAt++
	if m.chainAt < len(m.chainIDs) {
		_, active := m.chain.SetStepStatus(m.chainIDs[m.chainAt], components.StepActive)
		return tea.Batch(done, active, m.chainTick())
	}
	return tea.Batch(done, m.chain.SetStreaming(false))
}

func (m *Model) stop() {
	if m.sim != nil {
		m.sim.Stop()
	}
	m.shimmer.Stop()
	m.skeleton.Stop()
	m.reasoning.Dispose()
	m.chain.Dispose()
}

// =============================================================================
// SETTINGS
// =============================================================================

func (m *Model) toggleDeepDive() tea.Cmd {
	m.deepDive = !m.deepDive
	on, path := m.deepDive, m.cfgPath
	m.toasts.Add(components.ToastStatus, "DeepDive", onOff(on))
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		_, err := config.SetDeepDive(path, on)
		return deepDiveSavedMsg{on: on, err: err}
	}
}

func (m *Model) applyConfig(cfg *config.Config) tea.Cmd {
	if cfg == nil {
		return nil
	}
	m.cfg = cfg
	m.deepDive = cfg.UI.DeepDive
	m.reasoning.Controller().SetAutoCloseDelay(cfg.Reasoning.AutoCloseDelay())
	m.chain.Controller().SetAutoCloseDelay(cfg.Chain.AutoCloseDelay())

	m.code = m.newCodeBlock()
	m.code.SetWidth(m.width)

	running := m.shimmer.Running()
	m.shimmer = m.newShimmer()
	m.applyFocus()
	m.toasts.Add(components.ToastStatus, "Config reloaded", "")
	m.logger.Info("config applied", "reasoning_ms", cfg.Reasoning.AutoCloseMs, "chain_ms", cfg.Chain.AutoCloseMs)
	if running {
		return m.shimmer.Start()
	}
	return nil
}

func (m *Model) setWidth(w int) {
	if w <= 0 {
		return
	}
	m.width = w
	m.reasoning.SetWidth(w)
	m.chain.SetWidth(w)
	m.code.SetWidth(w)
	m.images.SetWidth(w)
	m.skeleton.SetWidth(w)
}

// focusOrder lists the focusable elements shown in this section.
func (m Model) focusOrder() []Section {
	var out []Section
	for _, s := range []Section{SectionReasoning, SectionChain, SectionCode} {
		if m.section.has(s) {
			out = append(out, s)
		}
	}
	return out
}

func (m *Model) moveFocus(delta int) {
	n := len(m.focusOrder())
	if n == 0 {
		return
	}
	m.focus = ((m.focus+delta)%n + n) % n
	m.applyFocus()
}

func (m *Model) applyFocus() {
	m.reasoning.Blur()
	m.chain.Blur()
	m.code.Blur()
	order := m.focusOrder()
	if len(order) == 0 {
		return
	}
	switch order[m.focus%len(order)] {
	case SectionReasoning:
		m.reasoning.Focus()
	case SectionChain:
		m.chain.Focus()
	case SectionCode:
		m.code.Focus()
	}
}

// Focused returns the focused element.
func (m Model) Focused() Section {
	order := m.focusOrder()
	if len(order) == 0 {
		return ""
	}
	return order[m.focus%len(order)]
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the visible elements top to bottom. Once the terminal
// height is known the elements scroll above a fixed footer.
func (m Model) View() string {
	if m.scroll.Ready() {
		return m.scroll.View() + "\n\n" + m.footer()
	}
	return m.body() + "\n\n" + m.footer()
}

// syncScroll feeds the current elements to the scroll view.
func (m *Model) syncScroll() {
	if m.height <= 0 {
		return
	}
	m.scroll.SetSize(m.width, m.height-lipgloss.Height(m.footer())-1)
	m.scroll.SetContent(m.body())
}

func (m Model) body() string {
	th := m.theme
	parts := []string{th.SectionTitle.Render("rigrun elements")}

	if m.section.has(SectionReasoning) {
		parts = append(parts,
			th.StepDescription.Render("> "+Question),
			m.reasoning.View(),
		)
		if m.answer != "" {
			parts = append(parts, m.renderAnswer())
		}
	}
	if m.section.has(SectionChain) {
		parts = append(parts, m.chain.View())
	}
	if m.section.has(SectionCode) {
		parts = append(parts, m.code.View())
	}
	if m.section.has(SectionShimmer) {
		parts = append(parts, m.shimmer.View())
	}
	if m.section.has(SectionSkeleton) {
		parts = append(parts, m.skeleton.View())
	}
	if m.section.has(SectionImage) {
		parts = append(parts, m.images.View())
	}
	return strings.Join(parts, "\n\n")
}

func (m Model) footer() string {
	var parts []string
	if toasts := m.toasts.Prune(); len(toasts) > 0 {
		parts = append(parts, components.RenderToastStack(toasts, m.theme, m.width))
	}
	parts = append(parts, m.statusLine(), m.helpLine())
	return strings.Join(parts, "\n")
}

func (m Model) renderAnswer() string {
	var out []string
	for _, f := range components.ParseFences(m.answer) {
		if f.IsCode {
			style := m.theme.ChromaStyle(m.cfg.CodeBlock.StyleDark, m.cfg.CodeBlock.StyleLight)
			lang := f.Language
			if lang == "" {
				lang = components.DetectLanguage(f.Text)
			}
			out = append(out, components.Highlight(f.Text, lang, style, m.theme.ColorProfile))
			continue
		}
		text := strings.TrimSpace(f.Text)
		if text == "" {
			continue
		}
		out = append(out, lipgloss.NewStyle().Width(m.width).Render(text))
	}
	return strings.Join(out, "\n")
}

// statusLine shows the model and which system prompt a request would use.
func (m Model) statusLine() string {
	kind := "unknown model"
	req, err := prompt.Build(prompt.Config{
		Model:    m.cfg.Model.ID,
		Search:   m.cfg.Model.Search,
		DeepDive: m.deepDive,
		Now:      m.now,
	}, m.cfg.Model.Manual)
	if err == nil {
		kind = "standard prompt"
		if req.DeepDive {
			kind = "deep dive prompt"
		}
	}
	return m.theme.ImageMeta.Render(fmt.Sprintf("model %s | deep dive %s | %s",
		m.cfg.Model.ID, onOff(m.deepDive), kind))
}

func (m Model) helpLine() string {
	return m.theme.ImageMeta.Render("tab focus | enter toggle | c copy | d deep dive | r replay | s skeleton | pgup/pgdn scroll | q quit")
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
