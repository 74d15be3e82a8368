// Package login provides the login form view for the TUI.
package login

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studia-labs/studia-cli/internal/adapters/driving/tui/components/input"
	"github.com/studia-labs/studia-cli/internal/adapters/driving/tui/messages"
	"github.com/studia-labs/studia-cli/internal/adapters/driving/tui/styles"
	"github.com/studia-labs/studia-cli/internal/core/ports/driving"
)

// View is the email/password login form.
type View struct {
	styles *styles.Styles
	auth   driving.AuthService

	email    *input.Field
	password *input.Field
	focused  int
	width    int
	height   int
	ready    bool
	loading  bool
	err      error
}

// NewView creates a new login view.
func NewView(s *styles.Styles, auth driving.AuthService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	email := input.NewField(s, "Email", "you@example.com")
	password := input.NewPasswordField(s, "Password")

	return &View{
		styles:   s,
		auth:     auth,
		email:    email,
		password: password,
		width:    80,
		height:   24,
	}
}

// Init initialises the login view and focuses the email field.
func (v *View) Init() tea.Cmd {
	v.focused = 0
	return v.email.Focus()
}

// Update handles messages for the login view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.LoggedIn:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.password.Reset()
		return v, nil
	}

	return v, v.updateFocused(msg)
}

// handleKeyMsg routes key presses to form navigation or the focused field.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return v, v.focusField((v.focused + 1) % 2)

	case "shift+tab", "up":
		return v, v.focusField((v.focused + 1) % 2)

	case "enter":
		if v.focused == 0 {
			return v, v.focusField(1)
		}
		return v.submit()

	case "ctrl+r":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewRegister}
		}
	}

	return v, v.updateFocused(msg)
}

// focusField moves focus to the given field index.
func (v *View) focusField(index int) tea.Cmd {
	v.focused = index
	if index == 0 {
		v.password.Blur()
		return v.email.Focus()
	}
	v.email.Blur()
	return v.password.Focus()
}

// updateFocused forwards a message to the focused field.
func (v *View) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if v.focused == 0 {
		v.email, cmd = v.email.Update(msg)
	} else {
		v.password, cmd = v.password.Update(msg)
	}
	return cmd
}

// submit attempts the login with the entered credentials.
func (v *View) submit() (*View, tea.Cmd) {
	email := strings.TrimSpace(v.email.Value())
	password := v.password.Value()

	v.loading = true
	v.err = nil
	return v, func() tea.Msg {
		session, err := v.auth.Login(context.Background(), email, password)
		return messages.LoggedIn{Session: session, Err: err}
	}
}

// View renders the login form.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Studia"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("Sign in to your learning account"))
	b.WriteString("\n\n")

	b.WriteString(v.email.View())
	b.WriteString("\n\n")
	b.WriteString(v.password.View())
	b.WriteString("\n\n")

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Signing in..."))
		b.WriteString("\n")
	}
	if v.err != nil {
		b.WriteString(v.styles.Error.Render(v.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render(
		"[tab] next field  [enter] sign in  [ctrl+r] register  [ctrl+c] quit",
	))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Reset clears the form.
func (v *View) Reset() {
	v.email.Reset()
	v.password.Reset()
	v.err = nil
	v.loading = false
	v.focused = 0
}

// Err returns the last login error.
func (v *View) Err() error {
	return v.err
}
