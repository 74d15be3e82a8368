// Package admin provides the admin console view for the TUI. It cycles
// through the four managed collections: users, departments, questions
// and quiz schedules. Mutations beyond deletion are left to the CLI
// commands, which take the full payloads as flags.
package admin

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studia-labs/studia-cli/internal/adapters/driving/tui/messages"
	"github.com/studia-labs/studia-cli/internal/adapters/driving/tui/styles"
	"github.com/studia-labs/studia-cli/internal/core/domain"
	"github.com/studia-labs/studia-cli/internal/core/ports/driven"
	"github.com/studia-labs/studia-cli/internal/core/ports/driving"
)

// Section identifies one managed collection.
type Section int

const (
	SectionUsers Section = iota
	SectionDepartments
	SectionQuestions
	SectionSchedules
	sectionCount
)

// String returns the section title.
func (s Section) String() string {
	switch s {
	case SectionUsers:
		return "Users"
	case SectionDepartments:
		return "Departments"
	case SectionQuestions:
		return "Questions"
	case SectionSchedules:
		return "Schedules"
	default:
		return "Unknown"
	}
}

// View is the admin console.
type View struct {
	styles *styles.Styles
	admin  driving.AdminService

	section     Section
	users       []domain.User
	departments []domain.Department
	questions   []driven.AdminQuestion
	schedules   []domain.QuizSchedule
	selected    int
	width       int
	height      int
	ready       bool
	loading     bool
	err         error
}

// NewView creates a new admin view.
func NewView(s *styles.Styles, admin driving.AdminService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		admin:  admin,
		width:  80,
		height: 24,
	}
}

// Init initialises the view and loads the first section.
func (v *View) Init() tea.Cmd {
	v.section = SectionUsers
	v.selected = 0
	return v.loadSection()
}

// loadSection returns a command that loads the active section.
func (v *View) loadSection() tea.Cmd {
	v.loading = true
	section := v.section
	return func() tea.Msg {
		ctx := context.Background()
		switch section {
		case SectionUsers:
			users, err := v.admin.ListUsers(ctx)
			return messages.AdminUsersLoaded{Users: users, Err: err}
		case SectionDepartments:
			departments, err := v.admin.ListDepartments(ctx)
			return messages.AdminDepartmentsLoaded{Departments: departments, Err: err}
		case SectionQuestions:
			questions, err := v.admin.ListQuestions(ctx)
			return messages.AdminQuestionsLoaded{Questions: questions, Err: err}
		default:
			schedules, err := v.admin.ListSchedules(ctx)
			return messages.AdminSchedulesLoaded{Schedules: schedules, Err: err}
		}
	}
}

// Update handles messages for the admin view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.AdminUsersLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.users = msg.Users
		}
		return v, nil

	case messages.AdminDepartmentsLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.departments = msg.Departments
		}
		return v, nil

	case messages.AdminQuestionsLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.questions = msg.Questions
		}
		return v, nil

	case messages.AdminSchedulesLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.schedules = msg.Schedules
		}
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses for the console.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "tab":
		v.section = (v.section + 1) % sectionCount
		v.selected = 0
		return v, v.loadSection()

	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
		return v, nil

	case "down", "j":
		if v.selected < v.sectionLen()-1 {
			v.selected++
		}
		return v, nil

	case "x":
		return v.deleteSelected()

	case "R":
		return v, v.loadSection()
	}

	return v, nil
}

// sectionLen returns the item count of the active section.
func (v *View) sectionLen() int {
	switch v.section {
	case SectionUsers:
		return len(v.users)
	case SectionDepartments:
		return len(v.departments)
	case SectionQuestions:
		return len(v.questions)
	default:
		return len(v.schedules)
	}
}

// deleteSelected deletes the selected item and reloads the section.
func (v *View) deleteSelected() (*View, tea.Cmd) {
	if v.selected >= v.sectionLen() {
		return v, nil
	}

	section := v.section
	var id string
	switch section {
	case SectionUsers:
		id = v.users[v.selected].ID
	case SectionDepartments:
		id = v.departments[v.selected].Name
	case SectionQuestions:
		id = v.questions[v.selected].ID
	default:
		id = v.schedules[v.selected].ID
	}

	reload := v.loadSection()
	return v, func() tea.Msg {
		ctx := context.Background()
		var err error
		switch section {
		case SectionUsers:
			err = v.admin.DeleteUser(ctx, id)
		case SectionDepartments:
			err = v.admin.DeleteDepartment(ctx, id)
		case SectionQuestions:
			err = v.admin.DeleteQuestion(ctx, id)
		default:
			err = v.admin.DeleteSchedule(ctx, id)
		}
		if err != nil {
			return messages.ErrorOccurred{Err: err}
		}
		return reload()
	}
}

// View renders the console.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Admin"))
	b.WriteString("  ")
	b.WriteString(v.renderTabs())
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))
		b.WriteString("\n")
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	case v.sectionLen() == 0:
		b.WriteString(v.styles.Muted.Render("Nothing here yet."))
		b.WriteString("\n")
	default:
		b.WriteString(v.renderSection())
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render(
		"[tab] section  [x] delete  [R] reload  [esc] back",
	))

	return b.String()
}

// renderTabs renders the section cycle with the active one highlighted.
func (v *View) renderTabs() string {
	parts := make([]string, 0, sectionCount)
	for s := Section(0); s < sectionCount; s++ {
		label := s.String()
		if s == v.section {
			parts = append(parts, v.styles.Subtitle.Render(label))
		} else {
			parts = append(parts, v.styles.Muted.Render(label))
		}
	}
	return strings.Join(parts, " | ")
}

// renderSection renders the rows of the active section.
func (v *View) renderSection() string {
	var b strings.Builder

	for i := 0; i < v.sectionLen(); i++ {
		cursor := "  "
		style := v.styles.Normal
		if i == v.selected {
			cursor = "> "
			style = v.styles.Subtitle
		}
		b.WriteString(cursor + style.Render(v.rowLabel(i)))
		b.WriteString("\n")
	}

	return b.String()
}

// rowLabel renders one row of the active section.
func (v *View) rowLabel(i int) string {
	switch v.section {
	case SectionUsers:
		u := v.users[i]
		return fmt.Sprintf("%s  %s (%s, %s)", u.Email, u.FullName, u.Department, u.Role)
	case SectionDepartments:
		d := v.departments[i]
		if d.Description == "" {
			return d.Name
		}
		return fmt.Sprintf("%s  %s", d.Name, d.Description)
	case SectionQuestions:
		q := v.questions[i]
		return fmt.Sprintf("[%s] %s", q.Department, q.Text)
	default:
		s := v.schedules[i]
		state := "inactive"
		if s.Active {
			state = "active"
		}
		return fmt.Sprintf("%s at %s (%s, %s)", s.UserID, s.QuestionTime, s.DaySummary(), state)
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// ActiveSection returns the active section.
func (v *View) ActiveSection() Section {
	return v.section
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
