package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/studia-labs/studia-cli/internal/adapters/driving/tui/components/status"
	"github.com/studia-labs/studia-cli/internal/adapters/driving/tui/keymap"
	"github.com/studia-labs/studia-cli/internal/adapters/driving/tui/messages"
	"github.com/studia-labs/studia-cli/internal/adapters/driving/tui/styles"
	"github.com/studia-labs/studia-cli/internal/adapters/driving/tui/views/admin"
	"github.com/studia-labs/studia-cli/internal/adapters/driving/tui/views/login"
	"github.com/studia-labs/studia-cli/internal/adapters/driving/tui/views/materials"
	"github.com/studia-labs/studia-cli/internal/adapters/driving/tui/views/menu"
	"github.com/studia-labs/studia-cli/internal/adapters/driving/tui/views/progress"
	"github.com/studia-labs/studia-cli/internal/adapters/driving/tui/views/quiz"
	"github.com/studia-labs/studia-cli/internal/adapters/driving/tui/views/register"
	"github.com/studia-labs/studia-cli/internal/adapters/driving/tui/views/viewer"
	"github.com/studia-labs/studia-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keys holds the keybindings shared across views.
	keys *keymap.KeyMap

	// statusBar is rendered under every view.
	statusBar *status.Bar

	// loginView is the sign-in form.
	loginView *login.View

	// registerView is the account creation form.
	registerView *register.View

	// menuView is the main navigation menu.
	menuView *menu.View

	// materialsView is the materials catalog.
	materialsView *materials.View

	// viewerView is the paged document viewer.
	viewerView *viewer.View

	// progressView is the progress overview.
	progressView *progress.View

	// quizView is the daily quiz flow.
	quizView *quiz.View

	// adminView is the admin console, nil when the Admin port is unset.
	adminView *admin.View

	// session is the authenticated session, nil when logged out.
	session *domain.Session

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// restoredMsg carries the outcome of the startup session restore.
// A nil session means the user has to sign in; restore failures are
// never shown as errors.
type restoredMsg struct {
	session *domain.Session
}

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:         ports,
		ctx:           context.Background(),
		styles:        s,
		keys:          km,
		statusBar:     status.NewBar(s, km),
		loginView:     login.NewView(s, ports.Auth),
		registerView:  register.NewView(s, ports.Auth),
		menuView:      menu.NewView(s),
		materialsView: materials.NewView(s, ports.Material, ports.Auth),
		viewerView:    viewer.NewView(s, km, ports.Viewer),
		progressView:  progress.NewView(s, ports.Progress),
		quizView:      quiz.NewView(s, ports.Quiz),
		currentView:   messages.ViewLogin,
	}
	if ports.Admin != nil {
		a.adminView = admin.NewView(s, ports.Admin)
	}
	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model. It enters the alt screen and tries to
// restore a cached session so a returning user skips the login form.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("studia"),
		a.loginView.Init(),
		a.restoreSession(),
	)
}

// restoreSession returns a command that restores the cached session.
func (a *App) restoreSession() tea.Cmd {
	return func() tea.Msg {
		session, err := a.ports.Auth.Restore(a.ctx)
		if err != nil {
			return restoredMsg{}
		}
		return restoredMsg{session: session}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.statusBar.SetWidth(msg.Width)
		a.loginView.SetDimensions(msg.Width, msg.Height)
		a.registerView.SetDimensions(msg.Width, msg.Height)
		a.menuView.SetDimensions(msg.Width, msg.Height)
		a.materialsView.SetDimensions(msg.Width, msg.Height)
		a.viewerView.SetDimensions(msg.Width, msg.Height)
		a.progressView.SetDimensions(msg.Width, msg.Height)
		a.quizView.SetDimensions(msg.Width, msg.Height)
		if a.adminView != nil {
			a.adminView.SetDimensions(msg.Width, msg.Height)
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case restoredMsg:
		if msg.session != nil {
			a.adoptSession(msg.session)
			a.currentView = messages.ViewMenu
		}
		return a, nil

	case messages.LoggedIn:
		a.loginView, cmd = a.loginView.Update(msg)
		if msg.Err == nil && msg.Session != nil {
			a.adoptSession(msg.Session)
			a.currentView = messages.ViewMenu
		}
		return a, cmd

	case messages.Registered:
		a.registerView, cmd = a.registerView.Update(msg)
		return a, cmd

	case messages.LoggedOut:
		if err := a.ports.Auth.Logout(a.ctx); err != nil {
			a.err = err
		}
		a.session = nil
		a.statusBar.SetSession(nil)
		a.menuView.SetSession(nil)
		a.loginView.Reset()
		a.currentView = messages.ViewLogin
		return a, a.loginView.Init()

	case messages.ViewChanged:
		return a.changeView(msg.View)

	case messages.MaterialSelected:
		material := msg.Material
		a.currentView = messages.ViewViewer
		a.statusBar.SetViewerMode(true)
		return a, a.viewerView.SetMaterial(&material)

	case messages.MaterialsLoaded, messages.MaterialEnrolled:
		a.materialsView, cmd = a.materialsView.Update(msg)
		return a, cmd

	case messages.DocumentOpened, messages.PageRendered:
		a.viewerView, cmd = a.viewerView.Update(msg)
		return a, cmd

	case messages.ProgressMarked:
		if a.currentView == messages.ViewProgress {
			a.progressView, cmd = a.progressView.Update(msg)
		} else {
			a.viewerView, cmd = a.viewerView.Update(msg)
		}
		return a, cmd

	case messages.ProgressOverviewLoaded:
		a.progressView, cmd = a.progressView.Update(msg)
		return a, cmd

	case messages.QuestionLoaded, messages.AnswerSubmitted, messages.QuizStatsLoaded:
		a.quizView, cmd = a.quizView.Update(msg)
		return a, cmd

	case messages.AdminUsersLoaded, messages.AdminDepartmentsLoaded,
		messages.AdminQuestionsLoaded, messages.AdminSchedulesLoaded:
		if a.adminView != nil {
			a.adminView, cmd = a.adminView.Update(msg)
		}
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		if msg.Err != nil {
			a.statusBar.SetError(msg.Err.Error())
		}
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	return a, a.forwardToActive(msg)
}

// adoptSession records a fresh login across the interested views.
func (a *App) adoptSession(session *domain.Session) {
	a.session = session
	a.statusBar.SetSession(session)
	a.menuView.SetSession(session)
}

// handleKeyMsg routes key presses to the active view.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Global quit with ctrl+c
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.currentView {
	case messages.ViewLogin:
		a.loginView, cmd = a.loginView.Update(msg)
		return a, cmd

	case messages.ViewRegister:
		// Esc from register goes back to login
		if msg.Type == tea.KeyEsc {
			a.currentView = messages.ViewLogin
			a.loginView.Reset()
			return a, a.loginView.Init()
		}
		a.registerView, cmd = a.registerView.Update(msg)
		return a, cmd

	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
		return a, cmd

	case messages.ViewMaterials:
		if msg.Type == tea.KeyEsc {
			a.currentView = messages.ViewMenu
			return a, nil
		}
		a.materialsView, cmd = a.materialsView.Update(msg)
		return a, cmd

	case messages.ViewViewer:
		// The viewer owns esc: it leaves fullscreen before
		// navigating back.
		a.viewerView, cmd = a.viewerView.Update(msg)
		return a, cmd

	case messages.ViewProgress:
		if msg.Type == tea.KeyEsc {
			a.currentView = messages.ViewMenu
			return a, nil
		}
		a.progressView, cmd = a.progressView.Update(msg)
		return a, cmd

	case messages.ViewQuiz:
		if msg.Type == tea.KeyEsc {
			a.currentView = messages.ViewMenu
			return a, nil
		}
		a.quizView, cmd = a.quizView.Update(msg)
		return a, cmd

	case messages.ViewAdmin:
		if msg.Type == tea.KeyEsc {
			a.currentView = messages.ViewMenu
			return a, nil
		}
		if a.adminView != nil {
			a.adminView, cmd = a.adminView.Update(msg)
		}
		return a, cmd

	case messages.ViewHelp:
		if msg.Type == tea.KeyEsc {
			a.currentView = messages.ViewMenu
			return a, nil
		}
		return a, nil
	}

	return a, nil
}

// changeView switches the active view, initialising it when needed.
func (a *App) changeView(view messages.ViewType) (tea.Model, tea.Cmd) {
	if view == messages.ViewAdmin && a.adminView == nil {
		a.statusBar.SetError("admin console not available")
		return a, nil
	}

	a.currentView = view
	a.statusBar.SetViewerMode(view == messages.ViewViewer)
	a.statusBar.Clear()

	switch view {
	case messages.ViewLogin:
		a.loginView.Reset()
		return a, a.loginView.Init()
	case messages.ViewRegister:
		a.registerView.Reset()
		return a, a.registerView.Init()
	case messages.ViewMaterials:
		return a, a.materialsView.Init()
	case messages.ViewProgress:
		return a, a.progressView.Init()
	case messages.ViewQuiz:
		return a, a.quizView.Init()
	case messages.ViewAdmin:
		return a, a.adminView.Init()
	case messages.ViewMenu, messages.ViewViewer, messages.ViewHelp:
		// No initialisation needed
	}
	return a, nil
}

// forwardToActive forwards a message to the active view.
func (a *App) forwardToActive(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewLogin:
		a.loginView, cmd = a.loginView.Update(msg)
	case messages.ViewRegister:
		a.registerView, cmd = a.registerView.Update(msg)
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewMaterials:
		a.materialsView, cmd = a.materialsView.Update(msg)
	case messages.ViewViewer:
		a.viewerView, cmd = a.viewerView.Update(msg)
	case messages.ViewProgress:
		a.progressView, cmd = a.progressView.Update(msg)
	case messages.ViewQuiz:
		a.quizView, cmd = a.quizView.Update(msg)
	case messages.ViewAdmin:
		if a.adminView != nil {
			a.adminView, cmd = a.adminView.Update(msg)
		}
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}
	return cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewLogin:
		body = a.loginView.View()
	case messages.ViewRegister:
		body = a.registerView.View()
	case messages.ViewMenu:
		body = a.menuView.View()
	case messages.ViewMaterials:
		body = a.materialsView.View()
	case messages.ViewViewer:
		body = a.viewerView.View()
	case messages.ViewProgress:
		body = a.progressView.View()
	case messages.ViewQuiz:
		body = a.quizView.View()
	case messages.ViewAdmin:
		if a.adminView != nil {
			body = a.adminView.View()
		}
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.menuView.View()
	}

	// Fullscreen reading hides the status bar
	if a.currentView == messages.ViewViewer && a.ports.Viewer.Session().Fullscreen {
		return body
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, a.statusBar.View())
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc            Back
  ctrl+c         Quit

Menu:
  j/k, ↑/↓       Navigate options
  enter          Select option

Materials:
  enter          Open material
  e              Enroll
  d              Cycle department filter

Document viewer:
  ←/→, PgUp/PgDn Turn pages
  Home/End       First/last page
  +/-            Zoom in/out
  0              Reset zoom
  r/R            Rotate right/left
  f              Fullscreen
  m              Mark page complete
  M              Mark material complete

Quiz:
  enter          Submit answer
  n              Next question
  s              Stats

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Session returns the authenticated session, nil when logged out.
func (a *App) Session() *domain.Session {
	return a.session
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.statusBar.SetWidth(width)
	a.menuView.SetDimensions(width, height)
	a.viewerView.SetDimensions(width, height)
}
