// Package register provides the account creation form for the TUI.
package register

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studia-labs/studia-cli/internal/adapters/driving/tui/components/input"
	"github.com/studia-labs/studia-cli/internal/adapters/driving/tui/messages"
	"github.com/studia-labs/studia-cli/internal/adapters/driving/tui/styles"
	"github.com/studia-labs/studia-cli/internal/core/ports/driven"
	"github.com/studia-labs/studia-cli/internal/core/ports/driving"
)

// View is the account creation form.
type View struct {
	styles *styles.Styles
	auth   driving.AuthService

	fields  []*input.Field
	focused int
	width   int
	height  int
	ready   bool
	loading bool
	created bool
	err     error
}

// Field order in the form.
const (
	fieldFullName = iota
	fieldEmail
	fieldDepartment
	fieldPassword
	fieldCount
)

// NewView creates a new register view.
func NewView(s *styles.Styles, auth driving.AuthService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	fields := make([]*input.Field, fieldCount)
	fields[fieldFullName] = input.NewField(s, "Full name", "Jane Doe")
	fields[fieldEmail] = input.NewField(s, "Email", "you@example.com")
	fields[fieldDepartment] = input.NewField(s, "Department", "engineering")
	fields[fieldPassword] = input.NewPasswordField(s, "Password (min 8 characters)")

	return &View{
		styles: s,
		auth:   auth,
		fields: fields,
		width:  80,
		height: 24,
	}
}

// Init initialises the register view and focuses the first field.
func (v *View) Init() tea.Cmd {
	v.focused = 0
	return v.fields[0].Focus()
}

// Update handles messages for the register view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.Registered:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.created = true
		return v, nil
	}

	return v, v.updateFocused(msg)
}

// handleKeyMsg routes key presses to form navigation or the focused field.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return v, v.focusField((v.focused + 1) % fieldCount)

	case "shift+tab", "up":
		return v, v.focusField((v.focused + fieldCount - 1) % fieldCount)

	case "enter":
		if v.focused < fieldCount-1 {
			return v, v.focusField(v.focused + 1)
		}
		return v.submit()
	}

	return v, v.updateFocused(msg)
}

// focusField moves focus to the given field index.
func (v *View) focusField(index int) tea.Cmd {
	v.fields[v.focused].Blur()
	v.focused = index
	return v.fields[index].Focus()
}

// updateFocused forwards a message to the focused field.
func (v *View) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	v.fields[v.focused], cmd = v.fields[v.focused].Update(msg)
	return cmd
}

// submit attempts account creation with the entered values.
func (v *View) submit() (*View, tea.Cmd) {
	in := driven.RegisterInput{
		FullName:   strings.TrimSpace(v.fields[fieldFullName].Value()),
		Email:      strings.TrimSpace(v.fields[fieldEmail].Value()),
		Department: strings.TrimSpace(v.fields[fieldDepartment].Value()),
		Password:   v.fields[fieldPassword].Value(),
	}

	v.loading = true
	v.err = nil
	return v, func() tea.Msg {
		user, err := v.auth.Register(context.Background(), in)
		return messages.Registered{User: user, Err: err}
	}
}

// View renders the register form.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Create account"))
	b.WriteString("\n\n")

	if v.created {
		b.WriteString(v.styles.Success.Render("Account created. Press esc to sign in."))
		b.WriteString("\n")
		return b.String()
	}

	for _, f := range v.fields {
		b.WriteString(f.View())
		b.WriteString("\n\n")
	}

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Creating account..."))
		b.WriteString("\n")
	}
	if v.err != nil {
		b.WriteString(v.styles.Error.Render(v.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render(
		"[tab] next field  [enter] create  [esc] back to login",
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
	for _, f := range v.fields {
		f.Reset()
	}
	v.err = nil
	v.loading = false
	v.created = false
	v.focused = 0
}

// Created reports whether the account was created.
func (v *View) Created() bool {
	return v.created
}

// Err returns the last registration error.
func (v *View) Err() error {
	return v.err
}
