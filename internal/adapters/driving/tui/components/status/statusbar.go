// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/studia-labs/studia-cli/internal/adapters/driving/tui/keymap"
	"github.com/studia-labs/studia-cli/internal/adapters/driving/tui/styles"
	"github.com/studia-labs/studia-cli/internal/core/domain"
)

// Bar displays the session, a transient message and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	session *domain.Session
	viewer  bool
	message string
	isError bool
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	leftLen := lipgloss.Width(left)
	rightLen := lipgloss.Width(right)
	padding := s.width - leftLen - rightLen
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the session identity and any transient message.
func (s *Bar) renderLeft() string {
	var parts []string

	if s.session != nil && s.session.User != nil {
		who := s.session.User.Email
		if s.session.User.IsAdmin() {
			who += " (admin)"
		}
		parts = append(parts, s.styles.Normal.Render(who))
	} else {
		parts = append(parts, s.styles.Muted.Render("not logged in"))
	}

	if s.message != "" {
		style := s.styles.Muted
		if s.isError {
			style = s.styles.Error
		}
		parts = append(parts, style.Render(s.message))
	}

	return strings.Join(parts, "  ")
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.viewer {
		bindings = s.keymap.ViewerHelp()
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetSession sets the displayed session, nil when logged out.
func (s *Bar) SetSession(session *domain.Session) {
	s.session = session
}

// SetViewerMode switches the hint set to the document viewer bindings.
func (s *Bar) SetViewerMode(on bool) {
	s.viewer = on
}

// SetMessage sets a transient informational message.
func (s *Bar) SetMessage(message string) {
	s.message = message
	s.isError = false
}

// SetError sets a transient error message.
func (s *Bar) SetError(message string) {
	s.message = message
	s.isError = true
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the transient message.
func (s *Bar) Clear() {
	s.message = ""
	s.isError = false
}
