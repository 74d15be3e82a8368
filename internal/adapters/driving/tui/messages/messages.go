// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/studia-labs/studia-cli/internal/core/domain"
	"github.com/studia-labs/studia-cli/internal/core/ports/driven"
	"github.com/studia-labs/studia-cli/internal/core/ports/driving"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewLogin is the email/password login form.
	ViewLogin ViewType = iota
	// ViewRegister is the account creation form.
	ViewRegister
	// ViewMenu is the main navigation menu.
	ViewMenu
	// ViewMaterials is the materials catalog list.
	ViewMaterials
	// ViewViewer is the paged document viewer.
	ViewViewer
	// ViewProgress is the per-material progress overview.
	ViewProgress
	// ViewQuiz is the daily question flow.
	ViewQuiz
	// ViewAdmin is the admin console.
	ViewAdmin
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewLogin:
		return "login"
	case ViewRegister:
		return "register"
	case ViewMenu:
		return "menu"
	case ViewMaterials:
		return "materials"
	case ViewViewer:
		return "viewer"
	case ViewProgress:
		return "progress"
	case ViewQuiz:
		return "quiz"
	case ViewAdmin:
		return "admin"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// LoggedIn carries the outcome of a login attempt.
type LoggedIn struct {
	Session *domain.Session
	Err     error
}

// Registered carries the outcome of an account creation.
type Registered struct {
	User *domain.User
	Err  error
}

// LoggedOut signals the session was cleared.
type LoggedOut struct {
	Err error
}

// MaterialsLoaded carries the materials catalog.
type MaterialsLoaded struct {
	Materials []domain.Material
	Err       error
}

// MaterialSelected signals a material was chosen for viewing.
type MaterialSelected struct {
	Material domain.Material
}

// MaterialEnrolled signals an enrollment completed.
type MaterialEnrolled struct {
	MaterialID string
	Err        error
}

// DocumentOpened carries the outcome of opening a document in the
// viewer. On success the viewer already holds the rendered first page.
type DocumentOpened struct {
	Err error
}

// PageRendered signals the viewer state changed and the view should
// repaint from the controller.
type PageRendered struct {
	Err error
}

// ProgressMarked carries the outcome of an explicit progress action.
type ProgressMarked struct {
	Err error
}

// ProgressOverviewLoaded carries the enrolled materials with progress.
type ProgressOverviewLoaded struct {
	Overview []driving.MaterialProgress
	Err      error
}

// QuestionLoaded carries the daily quiz question.
type QuestionLoaded struct {
	Question *domain.Question
	Err      error
}

// AnswerSubmitted carries the verdict for a submitted answer.
type AnswerSubmitted struct {
	Result *domain.AnswerResult
	Err    error
}

// QuizStatsLoaded carries the local quiz totals and history.
type QuizStatsLoaded struct {
	Stats   domain.QuizStats
	History []domain.QuizAttempt
	Err     error
}

// AdminUsersLoaded carries the user list for the admin console.
type AdminUsersLoaded struct {
	Users []domain.User
	Err   error
}

// AdminDepartmentsLoaded carries the department list.
type AdminDepartmentsLoaded struct {
	Departments []domain.Department
	Err         error
}

// AdminQuestionsLoaded carries the full question records for the
// admin console, answers included.
type AdminQuestionsLoaded struct {
	Questions []driven.AdminQuestion
	Err       error
}

// AdminSchedulesLoaded carries the quiz schedule list.
type AdminSchedulesLoaded struct {
	Schedules []domain.QuizSchedule
	Err       error
}
