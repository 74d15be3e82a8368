// Package menu provides the main navigation menu view for the TUI.
package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studia-labs/studia-cli/internal/adapters/driving/tui/messages"
	"github.com/studia-labs/studia-cli/internal/adapters/driving/tui/styles"
	"github.com/studia-labs/studia-cli/internal/core/domain"
)

// Item represents a single menu option.
type Item struct {
	Label  string
	View   messages.ViewType
	Logout bool // If true, selecting this item logs out
	Quit   bool // If true, selecting this item quits the app
}

// View represents the main menu view.
type View struct {
	styles   *styles.Styles
	session  *domain.Session
	items    []Item
	selected int
	width    int
	height   int
	ready    bool
}

// NewView creates a new menu view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	v := &View{
		styles: s,
		width:  80,
		height: 24,
	}
	v.rebuildItems()
	return v
}

// SetSession updates the menu for the given session. Admin accounts
// see the admin console entry.
func (v *View) SetSession(session *domain.Session) {
	v.session = session
	v.rebuildItems()
}

// rebuildItems recomputes the menu entries for the current session.
func (v *View) rebuildItems() {
	items := []Item{
		{Label: "Materials", View: messages.ViewMaterials},
		{Label: "Progress", View: messages.ViewProgress},
		{Label: "Daily Quiz", View: messages.ViewQuiz},
	}
	if v.session != nil && v.session.User.IsAdmin() {
		items = append(items, Item{Label: "Admin", View: messages.ViewAdmin})
	}
	items = append(items,
		Item{Label: "Help", View: messages.ViewHelp},
		Item{Label: "Logout", Logout: true},
		Item{Label: "Quit", Quit: true},
	)

	v.items = items
	if v.selected >= len(items) {
		v.selected = 0
	}
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
			return v, nil

		case "down", "j":
			if v.selected < len(v.items)-1 {
				v.selected++
			}
			return v, nil

		case "enter":
			item := v.items[v.selected]
			if item.Quit {
				return v, tea.Quit
			}
			if item.Logout {
				return v, func() tea.Msg {
					return messages.LoggedOut{}
				}
			}
			return v, func() tea.Msg {
				return messages.ViewChanged{View: item.View}
			}

		case "q":
			return v, tea.Quit
		}
	}

	return v, nil
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Studia"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("Learning Materials & Daily Quizzes"))
	b.WriteString("\n\n")

	if v.session != nil && v.session.User != nil {
		b.WriteString(v.styles.Normal.Render("Signed in as " + v.session.User.FullName))
		b.WriteString("\n\n")
	}

	for i, item := range v.items {
		cursor := "  "
		style := v.styles.Normal
		if i == v.selected {
			cursor = "> "
			style = v.styles.Subtitle
		}
		b.WriteString(cursor + style.Render(item.Label))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [q] Quit"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}

// Items returns the current menu entries.
func (v *View) Items() []Item {
	return v.items
}
