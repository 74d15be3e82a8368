// Package materials provides the materials catalog view for the TUI.
package materials

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studia-labs/studia-cli/internal/adapters/driving/tui/messages"
	"github.com/studia-labs/studia-cli/internal/adapters/driving/tui/styles"
	"github.com/studia-labs/studia-cli/internal/core/domain"
	"github.com/studia-labs/studia-cli/internal/core/ports/driving"
)

// View is the materials catalog list.
type View struct {
	styles   *styles.Styles
	material driving.MaterialService
	auth     driving.AuthService

	materials   []domain.Material
	departments []string
	filter      int // index into departments, 0 means all
	selected    int
	width       int
	height      int
	ready       bool
	loading     bool
	err         error
	notice      string
}

// NewView creates a new materials view.
func NewView(s *styles.Styles, material driving.MaterialService, auth driving.AuthService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:   s,
		material: material,
		auth:     auth,
		width:    80,
		height:   24,
	}
}

// Init initialises the view and loads the catalog.
func (v *View) Init() tea.Cmd {
	v.loading = true
	v.notice = ""
	return v.loadMaterials()
}

// loadMaterials returns a command that loads the catalog, honoring the
// active department filter.
func (v *View) loadMaterials() tea.Cmd {
	department := v.activeFilter()
	return func() tea.Msg {
		materials, err := v.material.List(context.Background(), department)
		return messages.MaterialsLoaded{Materials: materials, Err: err}
	}
}

// activeFilter returns the selected department, empty for all.
func (v *View) activeFilter() string {
	if v.filter == 0 || v.filter > len(v.departments) {
		return ""
	}
	return v.departments[v.filter-1]
}

// Update handles messages for the materials view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.MaterialsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.materials = msg.Materials
		v.collectDepartments(msg.Materials)
		if v.selected >= len(v.materials) {
			v.selected = 0
		}
		return v, nil

	case messages.MaterialEnrolled:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.notice = "Enrolled"
		return v, nil
	}

	return v, nil
}

// collectDepartments folds newly loaded materials into the known
// department set for the filter cycle. Only the unfiltered load can
// widen it.
func (v *View) collectDepartments(materials []domain.Material) {
	if v.filter != 0 {
		return
	}
	seen := make(map[string]bool, len(materials))
	v.departments = v.departments[:0]
	for _, m := range materials {
		if m.Department == "" || seen[m.Department] {
			continue
		}
		seen[m.Department] = true
		v.departments = append(v.departments, m.Department)
	}
	sort.Strings(v.departments)
}

// handleKeyMsg handles key presses for the list.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
		return v, nil

	case "down", "j":
		if v.selected < len(v.materials)-1 {
			v.selected++
		}
		return v, nil

	case "d":
		v.filter = (v.filter + 1) % (len(v.departments) + 1)
		v.selected = 0
		v.loading = true
		return v, v.loadMaterials()

	case "e":
		return v.enrollSelected()

	case "enter":
		if len(v.materials) == 0 {
			return v, nil
		}
		material := v.materials[v.selected]
		return v, func() tea.Msg {
			return messages.MaterialSelected{Material: material}
		}
	}

	return v, nil
}

// enrollSelected enrolls the current user in the selected material.
func (v *View) enrollSelected() (*View, tea.Cmd) {
	if len(v.materials) == 0 {
		return v, nil
	}
	id := v.materials[v.selected].ID
	return v, func() tea.Msg {
		err := v.material.Enroll(context.Background(), id)
		return messages.MaterialEnrolled{MaterialID: id, Err: err}
	}
}

// View renders the catalog.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	title := "Materials"
	if dept := v.activeFilter(); dept != "" {
		title = fmt.Sprintf("Materials - %s", dept)
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading materials..."))
		b.WriteString("\n")
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	case len(v.materials) == 0:
		b.WriteString(v.styles.Muted.Render("No materials available."))
		b.WriteString("\n")
	default:
		for i := range v.materials {
			b.WriteString(v.renderMaterial(i, &v.materials[i]))
			b.WriteString("\n")
		}
	}

	if v.notice != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Success.Render(v.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render(
		"[enter] open  [e] enroll  [d] filter department  [esc] back",
	))

	return b.String()
}

// renderMaterial renders one catalog row.
func (v *View) renderMaterial(index int, m *domain.Material) string {
	cursor := "  "
	style := v.styles.Normal
	if index == v.selected {
		cursor = "> "
		style = v.styles.Subtitle
	}

	tags := []string{string(m.ContentType)}
	if v.enrolled(m.ID) {
		tags = append(tags, "enrolled")
	}
	if m.Ghost() {
		tags = append(tags, "file missing")
	}

	line := fmt.Sprintf("%s%s  %s",
		cursor,
		style.Render(m.Title),
		v.styles.Muted.Render("["+strings.Join(tags, ", ")+"]"),
	)
	return line
}

// enrolled reports whether the current user is enrolled in the material.
func (v *View) enrolled(materialID string) bool {
	session := v.auth.Session()
	if session == nil {
		return false
	}
	return session.User.IsEnrolled(materialID)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Materials returns the loaded materials.
func (v *View) Materials() []domain.Material {
	return v.materials
}

// SelectedIndex returns the currently selected index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
