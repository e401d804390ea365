// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/jeranaias/rigrun-elements/internal/logging"
	"github.com/jeranaias/rigrun-elements/internal/ui/styles"
)

// =============================================================================
// CLIPBOARD
// =============================================================================

// Clipboard writes text to a clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// ClipboardFunc adapts a function to Clipboard.
type ClipboardFunc func(text string) error

// WriteAll implements Clipboard.
func (f ClipboardFunc) WriteAll(text string) error { return f(text) }

// SystemClipboard is the OS clipboard.
var SystemClipboard Clipboard = ClipboardFunc(clipboard.WriteAll)

// =============================================================================
// CODE BLOCK
// =============================================================================

// Code block defaults.
const (
	DefaultCopyTimeout = 2 * time.Second
	DefaultStyleDark   = "monokai"
	DefaultStyleLight  = "github"
)

// CopyMsg asks the code block with ID to copy its code.
type CopyMsg struct {
	ID string
}

// copyRevertMsg ends the "copied" state of one copy. A later copy bumps the
// generation, so an older revert is ignored.
type copyRevertMsg struct {
	id  string
	gen uint64
}

// CodeBlockOptions configures a CodeBlock.
type CodeBlockOptions struct {
	ID              string
	Language        string
	Code            string
	ShowLineNumbers bool

	// StyleDark and StyleLight are chroma style names.
	StyleDark  string
	StyleLight string

	// CopyTimeout is how long the "copied" state shows.
	CopyTimeout time.Duration

	OnCopy  func()
	OnError func(error)

	// Clipboard defaults to SystemClipboard.
	Clipboard Clipboard

	// Toasts receives copy failures when set.
	Toasts *ToastManager

	Theme  *styles.Theme
	Logger *log.Logger
}

// CodeBlock is a syntax highlighted block of code with a copy action.
type CodeBlock struct {
	id              string
	language        string
	code            string
	showLineNumbers bool
	styleName       string
	timeout         time.Duration

	onCopy  func()
	onError func(error)
	clip    Clipboard
	toasts  *ToastManager
	theme   *styles.Theme
	logger  *log.Logger
	copyKey key.Binding

	width   int
	focused bool
	copied  bool
	copyGen uint64
}

// NewCodeBlock creates a code block.
func NewCodeBlock(opts CodeBlockOptions) CodeBlock {
	id := opts.ID
	if id == "" {
		id = newID()
	}
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme(styles.ModeAuto)
	}
	dark, light := opts.StyleDark, opts.StyleLight
	if dark == "" {
		dark = DefaultStyleDark
	}
	if light == "" {
		light = DefaultStyleLight
	}
	timeout := opts.CopyTimeout
	if timeout <= 0 {
		timeout = DefaultCopyTimeout
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = SystemClipboard
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.With("codeblock")
	}

	return CodeBlock{
		id:              id,
		language:        strings.TrimSpace(opts.Language),
		code:            opts.Code,
		showLineNumbers: opts.ShowLineNumbers,
		styleName:       theme.ChromaStyle(dark, light),
		timeout:         timeout,
		onCopy:          opts.OnCopy,
		onError:         opts.OnError,
		clip:            clip,
		toasts:          opts.Toasts,
		theme:           theme,
		logger:          logger,
		copyKey: key.NewBinding(
			key.WithKeys("c", "y"),
			key.WithHelp("c/y", "copy code"),
		),
		width: 80,
	}
}

// ID returns the block id.
func (c CodeBlock) ID() string { return c.id }

// Code returns the raw code.
func (c CodeBlock) Code() string { return c.code }

// Language returns the declared language.
func (c CodeBlock) Language() string { return c.language }

// Copied reports whether the "copied" state is showing.
func (c CodeBlock) Copied() bool { return c.copied }

// SetWidth sets the render width.
func (c *CodeBlock) SetWidth(w int) { c.width = w }

// Focus gives the block keyboard focus.
func (c *CodeBlock) Focus() { c.focused = true }

// Blur removes keyboard focus.
func (c *CodeBlock) Blur() { c.focused = false }

// Copy writes the code to the clipboard. On success the block shows
// "copied" until the returned tick reverts it.
func (c *CodeBlock) Copy() tea.Cmd {
	if err := c.clip.WriteAll(c.code); err != nil {
		c.logger.Warn("copy to clipboard failed", "id", c.id, "err", err)
		if c.onError != nil {
			c.onError(err)
		}
		if c.toasts != nil {
			c.toasts.AddError("Copy failed", err)
		}
		return nil
	}

	c.copied = true
	c.copyGen++
	if c.onCopy != nil {
		c.onCopy()
	}

	id, gen := c.id, c.copyGen
	return tea.Tick(c.timeout, func(time.Time) tea.Msg {
		return copyRevertMsg{id: id, gen: gen}
	})
}

// Update handles copy requests and revert ticks.
func (c CodeBlock) Update(msg tea.Msg) (CodeBlock, tea.Cmd) {
	switch msg := msg.(type) {
	case CopyMsg:
		if msg.ID == c.id {
			return c, c.Copy()
		}
	case copyRevertMsg:
		if msg.id == c.id && msg.gen == c.copyGen {
			c.copied = false
		}
	case tea.KeyMsg:
		if c.focused && key.Matches(msg, c.copyKey) {
			return c, c.Copy()
		}
	}
	return c, nil
}

// View renders the block.
func (c CodeBlock) View() string {
	th := c.theme

	var badge string
	if c.language != "" {
		badge = th.CodeLangBadge.Render(c.language)
	}
	btn := th.CodeCopyBtn.Render("[copy]")
	if c.copied {
		btn = th.CodeCopied.Render(styles.StatusIndicators.Success + " copied")
	}

	inner := contentWidth(c.width, 4)
	gap := inner - lipgloss.Width(badge) - lipgloss.Width(btn)
	if gap < 1 {
		gap = 1
	}
	header := badge + strings.Repeat(" ", gap) + btn

	code := strings.TrimRight(c.code, "\n")
	lines := strings.Split(c.highlight(code), "\n")
	if c.showLineNumbers {
		numStyle := th.CodeLineNum.Width(len(strconv.Itoa(len(lines))) + 1)
		for i, l := range lines {
			lines[i] = numStyle.Render(strconv.Itoa(i+1)) + l
		}
	}

	return th.CodeBlock.
		MaxWidth(c.width).
		Render(header + "\n" + strings.Join(lines, "\n"))
}

// highlight returns code with terminal color sequences, or unchanged when
// the terminal has no color or chroma fails.
func (c CodeBlock) highlight(code string) string {
	if c.theme.PlainOnly() {
		return code
	}
	return Highlight(code, c.language, c.styleName, c.theme.ColorProfile)
}

// =============================================================================
// SYNTAX HIGHLIGHTING (Chroma-based)
// =============================================================================

// Highlight applies chroma highlighting to code. An empty or unknown
// language is guessed from the code.
func Highlight(code, language, styleName string, profile termenv.Profile) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get(styleName)
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get(formatterFor(profile))
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}
	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return strings.TrimRight(buf.String(), "\n")
}

func formatterFor(profile termenv.Profile) string {
	switch profile {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI:
		return "terminal16"
	default:
		return "terminal256"
	}
}

// DetectLanguage guesses the language name of code, or "".
func DetectLanguage(code string) string {
	if lexer := lexers.Analyse(code); lexer != nil {
		return lexer.Config().Name
	}
	return ""
}

// =============================================================================
// MARKDOWN FENCE PARSER
// =============================================================================

// Fence is one segment of a message: prose or a fenced code block.
type Fence struct {
	IsCode   bool
	Language string
	Text     string
}

// ParseFences splits markdown text into prose and ``` code segments. An
// unclosed fence runs to the end of the text.
func ParseFences(text string) []Fence {
	var (
		out      []Fence
		buf      []string
		inCode   bool
		language string
	)
	flush := func(code bool) {
		if len(buf) == 0 && !code {
			return
		}
		out = append(out, Fence{IsCode: code, Language: language, Text: strings.Join(buf, "\n")})
		buf = nil
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			if inCode {
				flush(true)
				language = ""
				inCode = false
			} else {
				flush(false)
				language = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "```"))
				inCode = true
			}
			continue
		}
		buf = append(buf, line)
	}
	if inCode {
		flush(true)
	} else {
		flush(false)
	}
	return out
}
