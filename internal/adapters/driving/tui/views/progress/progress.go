// Package progress provides the reading progress overview view.
package progress

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studia-labs/studia-cli/internal/adapters/driving/tui/messages"
	"github.com/studia-labs/studia-cli/internal/adapters/driving/tui/styles"
	"github.com/studia-labs/studia-cli/internal/core/ports/driving"
)

// barWidth is the width of the rendered percentage bar.
const barWidth = 24

// View lists the enrolled materials with their progress records.
type View struct {
	styles   *styles.Styles
	progress driving.ProgressService

	overview []driving.MaterialProgress
	selected int
	width    int
	height   int
	ready    bool
	loading  bool
	err      error
	notice   string
}

// NewView creates a new progress view.
func NewView(s *styles.Styles, progress driving.ProgressService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:   s,
		progress: progress,
		width:    80,
		height:   24,
	}
}

// Init initialises the view and loads the overview.
func (v *View) Init() tea.Cmd {
	v.loading = true
	v.notice = ""
	return v.loadOverview()
}

// loadOverview returns a command that loads the progress overview.
func (v *View) loadOverview() tea.Cmd {
	return func() tea.Msg {
		overview, err := v.progress.Overview(context.Background())
		return messages.ProgressOverviewLoaded{Overview: overview, Err: err}
	}
}

// Update handles messages for the progress view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ProgressOverviewLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.overview = msg.Overview
		if v.selected >= len(v.overview) {
			v.selected = 0
		}
		return v, nil

	case messages.ProgressMarked:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.notice = "Marked complete"
		v.loading = true
		return v, v.loadOverview()
	}

	return v, nil
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
		if v.selected < len(v.overview)-1 {
			v.selected++
		}
		return v, nil

	case "M":
		return v.markSelected()

	case "enter":
		if len(v.overview) == 0 {
			return v, nil
		}
		material := v.overview[v.selected].Material
		return v, func() tea.Msg {
			return messages.MaterialSelected{Material: material}
		}
	}

	return v, nil
}

// markSelected marks the selected material as completed.
func (v *View) markSelected() (*View, tea.Cmd) {
	if len(v.overview) == 0 {
		return v, nil
	}
	id := v.overview[v.selected].Material.ID
	return v, func() tea.Msg {
		err := v.progress.MarkComplete(context.Background(), id)
		return messages.ProgressMarked{Err: err}
	}
}

// View renders the overview.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Progress"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading progress..."))
		b.WriteString("\n")
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	case len(v.overview) == 0:
		b.WriteString(v.styles.Muted.Render("No enrolled materials."))
		b.WriteString("\n")
	default:
		for i := range v.overview {
			b.WriteString(v.renderRow(i, &v.overview[i]))
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
		"[enter] open  [M] mark complete  [esc] back",
	))

	return b.String()
}

// renderRow renders one material with its progress bar.
func (v *View) renderRow(index int, mp *driving.MaterialProgress) string {
	cursor := "  "
	style := v.styles.Normal
	if index == v.selected {
		cursor = "> "
		style = v.styles.Subtitle
	}

	percentage := 0.0
	suffix := ""
	if mp.Progress != nil {
		percentage = mp.Progress.Percentage
		if mp.Progress.Completed {
			suffix = "  " + v.styles.Success.Render("completed")
		}
	}

	return fmt.Sprintf("%s%s\n    %s %3.0f%%%s",
		cursor,
		style.Render(mp.Material.Title),
		v.renderBar(percentage),
		percentage,
		suffix,
	)
}

// renderBar renders a fixed-width percentage bar.
func (v *View) renderBar(percentage float64) string {
	filled := int(percentage / 100 * barWidth)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	return v.styles.Normal.Render(bar)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Overview returns the loaded overview.
func (v *View) Overview() []driving.MaterialProgress {
	return v.overview
}

// SelectedIndex returns the currently selected index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
