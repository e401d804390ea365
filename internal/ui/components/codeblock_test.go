// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/rigrun-elements/internal/ui/styles"
)

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

func newTestCodeBlock(opts CodeBlockOptions) CodeBlock {
	if opts.Theme == nil {
		opts.Theme = testTheme()
	}
	if opts.CopyTimeout == 0 {
		opts.CopyTimeout = 5 * time.Millisecond
	}
	return NewCodeBlock(opts)
}

func TestCodeBlockDefaults(t *testing.T) {
	c := NewCodeBlock(CodeBlockOptions{Code: "x := 1", Language: " go ", Theme: testTheme()})
	assert.Equal(t, "go", c.Language())
	assert.Equal(t, DefaultCopyTimeout, c.timeout)
	assert.Equal(t, DefaultStyleDark, c.styleName)
	assert.NotEmpty(t, c.ID())

	light := NewCodeBlock(CodeBlockOptions{Theme: styles.NewThemeWithProfile(false, termenv.Ascii)})
	assert.Equal(t, DefaultStyleLight, light.styleName)
}

func TestCodeBlockCopySuccess(t *testing.T) {
	clip := &fakeClipboard{}
	copies := 0
	c := newTestCodeBlock(CodeBlockOptions{
		ID:        "cb",
		Code:      "fmt.Println(\"hi\")",
		Clipboard: clip,
		OnCopy:    func() { copies++ },
		OnError:   func(error) { t.Fatal("unexpected error callback") },
	})

	c, cmd := c.Update(CopyMsg{ID: "cb"})
	require.NotNil(t, cmd)
	assert.Equal(t, "fmt.Println(\"hi\")", clip.text)
	assert.Equal(t, 1, copies)
	assert.True(t, c.Copied())
	assert.Contains(t, c.View(), "copied")

	msgs := runCmd(cmd)
	require.Len(t, msgs, 1)
	c, _ = c.Update(msgs[0])
	assert.False(t, c.Copied())
	assert.Contains(t, c.View(), "[copy]")
}

func TestCodeBlockLaterCopySupersedesRevert(t *testing.T) {
	c := newTestCodeBlock(CodeBlockOptions{ID: "cb", Code: "x", Clipboard: &fakeClipboard{}})

	first := c.Copy()
	second := c.Copy()

	c, _ = c.Update(runCmd(first)[0])
	assert.True(t, c.Copied(), "the first revert is stale")

	c, _ = c.Update(runCmd(second)[0])
	assert.False(t, c.Copied())
}

func TestCodeBlockCopyFailure(t *testing.T) {
	boom := errors.New("no clipboard")
	var got error
	toasts := NewToastManager()
	c := newTestCodeBlock(CodeBlockOptions{
		ID:        "cb",
		Code:      "x",
		Clipboard: &fakeClipboard{err: boom},
		OnCopy:    func() { t.Fatal("unexpected copy callback") },
		OnError:   func(err error) { got = err },
		Toasts:    toasts,
	})

	c, cmd := c.Update(CopyMsg{ID: "cb"})
	assert.Nil(t, cmd)
	assert.ErrorIs(t, got, boom)
	assert.False(t, c.Copied())
	assert.Equal(t, 1, toasts.Len())
}

func TestCodeBlockIgnoresOtherIDs(t *testing.T) {
	clip := &fakeClipboard{}
	c := newTestCodeBlock(CodeBlockOptions{ID: "cb", Code: "x", Clipboard: clip})

	_, cmd := c.Update(CopyMsg{ID: "other"})
	assert.Nil(t, cmd)
	assert.Empty(t, clip.text)
}

func TestCodeBlockKeyboardCopy(t *testing.T) {
	clip := &fakeClipboard{}
	c := newTestCodeBlock(CodeBlockOptions{Code: "echo hi", Clipboard: clip})
	press := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}}

	c, _ = c.Update(press)
	assert.Empty(t, clip.text, "unfocused blocks ignore keys")

	c.Focus()
	c, _ = c.Update(press)
	assert.Equal(t, "echo hi", clip.text)
	assert.True(t, c.Copied())
}

func TestCodeBlockView(t *testing.T) {
	c := newTestCodeBlock(CodeBlockOptions{
		Language: "python",
		Code:     "print(1)\nprint(2)\n",
	})
	c.SetWidth(40)

	v := c.View()
	assert.Contains(t, v, "python")
	assert.Contains(t, v, "[copy]")
	assert.Contains(t, v, "print(1)")
	assert.NotContains(t, v, " 1 print", "line numbers are off by default")

	numbered := newTestCodeBlock(CodeBlockOptions{Code: "a\nb", ShowLineNumbers: true})
	nv := numbered.View()
	assert.Contains(t, nv, "1 a")
	assert.Contains(t, nv, "2 b")
}

func TestHighlight(t *testing.T) {
	out := Highlight("package main", "go", "monokai", termenv.TrueColor)
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "main")

	// unknown style and language still produce the code
	out = Highlight("hello", "not-a-language", "no-such-style", termenv.ANSI256)
	assert.Contains(t, out, "hello")
}

func TestDetectLanguage(t *testing.T) {
	src := "package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(\"hi\")\n}\n"
	assert.Equal(t, "Go", DetectLanguage(src))
}

func TestParseFences(t *testing.T) {
	text := "Intro line\n```go\nfmt.Println(1)\n```\nOutro\n```\nunclosed"

	got := ParseFences(text)
	require.Len(t, got, 4)

	assert.Equal(t, Fence{Text: "Intro line"}, got[0])
	assert.Equal(t, Fence{IsCode: true, Language: "go", Text: "fmt.Println(1)"}, got[1])
	assert.Equal(t, Fence{Text: "Outro"}, got[2])
	assert.Equal(t, Fence{IsCode: true, Text: "unclosed"}, got[3])
}

func TestParseFencesPlain(t *testing.T) {
	assert.Equal(t, []Fence{{Text: "just prose"}}, ParseFences("just prose"))
}
