// Package viewer provides the paged document viewer view for the TUI.
// It is a thin rendering shell around the viewing controller: every key
// press maps to one controller call, and the view repaints from the
// controller state after each one.
package viewer

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studia-labs/studia-cli/internal/adapters/driving/tui/keymap"
	"github.com/studia-labs/studia-cli/internal/adapters/driving/tui/messages"
	"github.com/studia-labs/studia-cli/internal/adapters/driving/tui/styles"
	"github.com/studia-labs/studia-cli/internal/core/domain"
	"github.com/studia-labs/studia-cli/internal/core/ports/driving"
)

// pageChrome is the horizontal space taken by the page border and padding.
const pageChrome = 6

// View is the document viewer.
type View struct {
	styles *styles.Styles
	keys   *keymap.KeyMap
	viewer driving.Viewer

	material *domain.Material
	notice   string
	width    int
	height   int
	ready    bool

	// textLines holds inline text content for non-paged materials,
	// which bypass the viewing controller.
	textLines  []string
	textOffset int
}

// NewView creates a new viewer view.
func NewView(s *styles.Styles, km *keymap.KeyMap, viewer driving.Viewer) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles: s,
		keys:   km,
		viewer: viewer,
		width:  80,
		height: 24,
	}
}

// Init initialises the viewer view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetMaterial opens the given material. Paged materials go through the
// viewing controller; inline text is shown directly.
func (v *View) SetMaterial(material *domain.Material) tea.Cmd {
	v.material = material
	v.notice = ""
	v.textOffset = 0
	v.textLines = nil

	if material.ContentType == domain.ContentText {
		v.textLines = strings.Split(material.Content, "\n")
		return nil
	}

	v.viewer.SetViewportWidth(v.contentWidth())
	return func() tea.Msg {
		err := v.viewer.Open(context.Background(), material)
		return messages.DocumentOpened{Err: err}
	}
}

// Close releases the open document.
func (v *View) Close() {
	v.viewer.Close()
	v.material = nil
	v.textLines = nil
}

// contentWidth returns the column budget available to rendered pages.
func (v *View) contentWidth() int {
	w := v.width - pageChrome
	if w < 20 {
		w = 20
	}
	return w
}

// Update handles messages for the viewer view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		v.viewer.SetViewportWidth(v.contentWidth())
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DocumentOpened:
		if msg.Err != nil {
			v.notice = ""
		}
		return v, nil

	case messages.PageRendered:
		return v, nil

	case messages.ProgressMarked:
		if msg.Err != nil {
			v.notice = "Mark failed: " + msg.Err.Error()
		} else {
			v.notice = "Marked"
		}
		return v, nil
	}

	return v, nil
}

// handleKeyMsg maps key presses to controller calls.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.textLines != nil {
		return v.handleTextKeyMsg(msg)
	}

	k := msg.String()
	switch {
	case keymap.Matches(k, v.keys.NextPage):
		return v, v.viewerCmd(v.viewer.NextPage)

	case keymap.Matches(k, v.keys.PrevPage):
		return v, v.viewerCmd(v.viewer.PrevPage)

	case keymap.Matches(k, v.keys.FirstPage):
		return v, v.viewerCmd(v.viewer.FirstPage)

	case keymap.Matches(k, v.keys.LastPage):
		return v, v.viewerCmd(v.viewer.LastPage)

	case keymap.Matches(k, v.keys.ZoomIn):
		return v, v.viewerCmd(v.viewer.ZoomIn)

	case keymap.Matches(k, v.keys.ZoomOut):
		return v, v.viewerCmd(v.viewer.ZoomOut)

	case keymap.Matches(k, v.keys.ResetZoom):
		return v, v.viewerCmd(v.viewer.ResetZoom)

	case keymap.Matches(k, v.keys.RotateRight):
		return v, v.viewerCmd(func(ctx context.Context) error {
			return v.viewer.Rotate(ctx, domain.RotateRight)
		})

	case keymap.Matches(k, v.keys.RotateLeft):
		return v, v.viewerCmd(func(ctx context.Context) error {
			return v.viewer.Rotate(ctx, domain.RotateLeft)
		})

	case keymap.Matches(k, v.keys.Fullscreen):
		v.viewer.ToggleFullscreen()
		return v, nil

	case keymap.Matches(k, v.keys.MarkPage):
		return v, v.markCmd(v.viewer.MarkPageComplete)

	case keymap.Matches(k, v.keys.MarkDone):
		return v, v.markCmd(v.viewer.MarkComplete)

	case keymap.Matches(k, v.keys.Back):
		// Esc leaves fullscreen first; a second esc closes the
		// document and navigates back.
		if v.viewer.Session().Fullscreen {
			v.viewer.ExitFullscreen()
			return v, nil
		}
		v.Close()
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMaterials}
		}
	}

	return v, nil
}

// handleTextKeyMsg scrolls inline text content.
func (v *View) handleTextKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keys.Down) || keymap.Matches(k, v.keys.NextPage):
		if v.textOffset < len(v.textLines)-1 {
			v.textOffset++
		}
		return v, nil

	case keymap.Matches(k, v.keys.Up) || keymap.Matches(k, v.keys.PrevPage):
		if v.textOffset > 0 {
			v.textOffset--
		}
		return v, nil

	case keymap.Matches(k, v.keys.Back):
		v.Close()
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMaterials}
		}
	}

	return v, nil
}

// viewerCmd wraps a controller call into a command that reports the
// outcome as a PageRendered message.
func (v *View) viewerCmd(call func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return messages.PageRendered{Err: call(context.Background())}
	}
}

// markCmd wraps an explicit progress action into a command.
func (v *View) markCmd(call func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return messages.ProgressMarked{Err: call(context.Background())}
	}
}

// View renders the open document.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}
	if v.textLines != nil {
		return v.viewText()
	}

	session := v.viewer.Session()

	var b strings.Builder
	if !session.Fullscreen {
		b.WriteString(v.renderHeader(session))
	}

	switch session.State {
	case domain.ViewerIdle:
		b.WriteString(v.styles.Muted.Render("No document open."))
		b.WriteString("\n")
	case domain.ViewerLoading:
		b.WriteString(v.styles.Muted.Render("Loading document..."))
		b.WriteString("\n")
	case domain.ViewerError:
		msg := "Document failed to load."
		if err := v.viewer.Err(); err != nil {
			msg = err.Error()
		}
		b.WriteString(v.styles.Error.Render(msg))
		b.WriteString("\n")
	default:
		b.WriteString(v.renderPage(session))
	}

	if v.notice != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Success.Render(v.notice))
		b.WriteString("\n")
	}

	if !session.Fullscreen {
		b.WriteString("\n")
		b.WriteString(v.renderHelp())
	}

	return b.String()
}

// renderHeader renders the title and viewer status line.
func (v *View) renderHeader(session domain.ViewerSession) string {
	var b strings.Builder

	title := "Document"
	if v.material != nil {
		title = v.material.Title
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")

	parts := []string{
		fmt.Sprintf("Page %d/%d", session.CurrentPage, session.TotalPages),
		fmt.Sprintf("Zoom %.0f%%", session.ZoomScale*100),
	}
	if session.RotationDegrees != 0 {
		parts = append(parts, fmt.Sprintf("Rotated %d", session.RotationDegrees))
	}
	if progress := v.viewer.Progress(); progress != nil {
		p := fmt.Sprintf("Progress %.0f%%", progress.Percentage)
		if progress.Completed {
			p += " (completed)"
		}
		parts = append(parts, p)
		if progress.PageDone(session.CurrentPage) {
			parts = append(parts, "page done")
		}
	}
	b.WriteString(v.styles.Muted.Render(strings.Join(parts, " | ")))
	b.WriteString("\n\n")

	return b.String()
}

// renderPage renders the current page inside the page frame.
func (v *View) renderPage(session domain.ViewerSession) string {
	page := v.viewer.Page()
	if page == nil {
		return v.styles.Muted.Render("Rendering...") + "\n"
	}

	content := strings.Join(page.Lines, "\n")
	if session.Fullscreen {
		return content + "\n"
	}
	return v.styles.Page.Render(content) + "\n"
}

// renderHelp renders the viewer keybinding hints.
func (v *View) renderHelp() string {
	return v.styles.Help.Render(
		"[←/→] page  [+/-/0] zoom  [r/R] rotate  [f] fullscreen  " +
			"[m] mark page  [M] mark done  [esc] back",
	)
}

// viewText renders inline text content with scrolling.
func (v *View) viewText() string {
	var b strings.Builder

	title := "Text"
	if v.material != nil {
		title = v.material.Title
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	visible := v.height - 6
	if visible < 1 {
		visible = 1
	}
	end := v.textOffset + visible
	if end > len(v.textLines) {
		end = len(v.textLines)
	}
	b.WriteString(strings.Join(v.textLines[v.textOffset:end], "\n"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[j/k] scroll  [esc] back"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.viewer.SetViewportWidth(v.contentWidth())
}

// Material returns the open material, nil when closed.
func (v *View) Material() *domain.Material {
	return v.material
}
