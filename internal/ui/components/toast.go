// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/rigrun-elements/internal/ui/styles"
)

// =============================================================================
// TOASTS
// =============================================================================

// ToastKind represents the type of toast notification.
type ToastKind int

const (
	ToastStatus ToastKind = iota
	ToastError
	ToastSuccess
)

// Toast durations.
const (
	DefaultToastDuration = 4 * time.Second
	ErrorToastDuration   = 8 * time.Second
)

// Toast is a non-blocking notification that auto-dismisses.
type Toast struct {
	ID        int
	Title     string
	Message   string
	Kind      ToastKind
	CreatedAt time.Time
	Duration  time.Duration
}

// Expired reports whether the toast should be gone at now.
func (t Toast) Expired(now time.Time) bool {
	return now.Sub(t.CreatedAt) >= t.Duration
}

// ToastManager holds the visible toasts. Safe for concurrent use.
type ToastManager struct {
	mu     sync.Mutex
	toasts []Toast
	nextID int
	now    func() time.Time
}

// NewToastManager creates an empty manager.
func NewToastManager() *ToastManager {
	return &ToastManager{now: time.Now}
}

// Add shows a toast and returns its id.
func (m *ToastManager) Add(kind ToastKind, title, message string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	d := DefaultToastDuration
	if kind == ToastError {
		d = ErrorToastDuration
	}
	m.nextID++
	m.toasts = append(m.toasts, Toast{
		ID:        m.nextID,
		Title:     title,
		Message:   message,
		Kind:      kind,
		CreatedAt: m.now(),
		Duration:  d,
	})
	return m.nextID
}

// AddError shows an error toast.
func (m *ToastManager) AddError(title string, err error) int {
	return m.Add(ToastError, title, err.Error())
}

// Dismiss removes the toast with id.
func (m *ToastManager) Dismiss(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.toasts {
		if t.ID == id {
			m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
			return
		}
	}
}

// Prune drops expired toasts and returns what remains.
func (m *ToastManager) Prune() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	kept := m.toasts[:0]
	for _, t := range m.toasts {
		if !t.Expired(now) {
			kept = append(kept, t)
		}
	}
	m.toasts = kept
	out := make([]Toast, len(kept))
	copy(out, kept)
	return out
}

// Len returns the number of toasts held.
func (m *ToastManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.toasts)
}

// ToastTickMsg drives expiry.
type ToastTickMsg struct{}

// ToastTickCmd schedules the next expiry check.
func ToastTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return ToastTickMsg{}
	})
}

// RenderToast renders a single toast.
func RenderToast(t Toast, theme *styles.Theme, width int) string {
	maxWidth := 60
	if width > 0 && width-4 < maxWidth {
		maxWidth = width - 4
	}
	if maxWidth < 20 {
		maxWidth = 20
	}

	icon := styles.StatusIndicators.Info
	border := theme.Color(styles.Cyan)
	switch t.Kind {
	case ToastError:
		icon = styles.StatusIndicators.Error
		border = theme.Color(styles.Rose)
	case ToastSuccess:
		icon = styles.StatusIndicators.Success
		border = theme.Color(styles.Emerald)
	}

	head := theme.ToastTitle.Foreground(border).Render(icon + " " + t.Title)
	body := theme.ToastBody.Width(maxWidth - 4).Render(t.Message)
	return theme.ToastError.
		BorderForeground(border).
		MaxWidth(maxWidth).
		Render(head + "\n" + body)
}

// RenderToastStack renders toasts stacked, newest last, right aligned.
func RenderToastStack(toasts []Toast, theme *styles.Theme, width int) string {
	if len(toasts) == 0 {
		return ""
	}
	rendered := make([]string, len(toasts))
	for i, t := range toasts {
		rendered[i] = RenderToast(t, theme, width)
	}
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}
