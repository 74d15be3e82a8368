package driven

import (
	"context"

	"github.com/studia-labs/studia-cli/internal/core/domain"
)

// AuthAPI is the authentication surface of the Studia backend.
type AuthAPI interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, email, password string) (token string, err error)

	// Register creates a new account.
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)

	// Me returns the profile for the current token.
	Me(ctx context.Context) (*domain.User, error)
}

// TokenCarrier is the mutable token slot of the API client. The auth
// service writes it on login/logout; every API call reads it.
type TokenCarrier interface {
	// SetToken replaces the bearer token; empty clears it.
	SetToken(token string)

	// Token returns the current bearer token.
	Token() string
}

// RegisterInput is the payload for account creation. Validation tags
// mirror the server-side password rules so failures surface before the
// network round trip.
type RegisterInput struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	FullName   string `json:"full_name" validate:"required"`
	Department string `json:"department" validate:"required"`
}

// MaterialAPI is the materials catalog surface of the backend.
type MaterialAPI interface {
	// List returns all materials, optionally filtered by department.
	List(ctx context.Context, department string) ([]domain.Material, error)

	// ListEnrolled returns the materials the user is enrolled in.
	ListEnrolled(ctx context.Context) ([]domain.Material, error)

	// Get returns one material by ID.
	Get(ctx context.Context, id string) (*domain.Material, error)

	// FetchFile returns the raw bytes for a material's file.
	// The stream requires the bearer token, so it is always fetched
	// as a buffer through the authenticated client, never as a URL.
	FetchFile(ctx context.Context, id string) ([]byte, error)

	// FileInfo returns server-side diagnostics for the stored file.
	FileInfo(ctx context.Context, id string) (*domain.FileInfo, error)

	// Enroll enrolls the current user in a material.
	Enroll(ctx context.Context, id string) error

	// Upload creates a new material.
	Upload(ctx context.Context, input domain.MaterialUpload) (*domain.Material, error)

	// Delete removes a material the user uploaded.
	Delete(ctx context.Context, id string) error

	// ForceDelete removes a ghost material whose file is missing.
	ForceDelete(ctx context.Context, id string) error
}

// ProgressAPI is the reading-progress surface of the backend. The
// server owns every record; the client only reads and proposes.
type ProgressAPI interface {
	// Get reads the progress record for a material.
	Get(ctx context.Context, materialID string) (*domain.Progress, error)

	// Update proposes a percentage and completed pages for a material.
	Update(ctx context.Context, materialID string, update domain.ProgressUpdate) error

	// MarkPage marks a single page as completed.
	MarkPage(ctx context.Context, materialID string, page int) error

	// MarkComplete sets the terminal completed state.
	MarkComplete(ctx context.Context, materialID string) error
}

// QuizAPI is the quiz surface of the backend.
type QuizAPI interface {
	// Daily returns one question for the current user.
	Daily(ctx context.Context) (*domain.Question, error)

	// Answer submits an answer and returns the verdict.
	Answer(ctx context.Context, questionID, userAnswer string) (*domain.AnswerResult, error)
}

// AdminAPI is the admin console surface of the backend. Every call
// requires an admin token; the server enforces the role.
type AdminAPI interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, input AdminUserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, input AdminUserInput) error
	DeleteUser(ctx context.Context, id string) error

	ListDepartments(ctx context.Context) ([]domain.Department, error)
	CreateDepartment(ctx context.Context, name, description string) error
	DeleteDepartment(ctx context.Context, name string) error

	ListQuestions(ctx context.Context) ([]AdminQuestion, error)
	CreateQuestion(ctx context.Context, input QuestionInput) error
	UpdateQuestion(ctx context.Context, id string, input QuestionInput) error
	DeleteQuestion(ctx context.Context, id string) error
	UploadQuestions(ctx context.Context, fileName string, data []byte) (int, error)

	ListSchedules(ctx context.Context) ([]domain.QuizSchedule, error)
	CreateSchedule(ctx context.Context, input domain.ScheduleInput) error
	UpdateSchedule(ctx context.Context, id string, input domain.ScheduleInput) error
	DeleteSchedule(ctx context.Context, id string) error
}

// AdminUserInput is the admin create/update payload for a user.
type AdminUserInput struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password,omitempty" validate:"omitempty,min=8"`
	FullName   string `json:"full_name" validate:"required"`
	Department string `json:"department" validate:"required"`
	Role       string `json:"role" validate:"required,oneof=user admin"`
}

// AdminQuestion is the full question record visible to admins,
// including the answer the quiz endpoint withholds.
type AdminQuestion struct {
	domain.Question

	// Answer is the expected solution.
	Answer string `json:"answer"`
}

// QuestionInput is the admin create/update payload for a question.
type QuestionInput struct {
	Text       string   `json:"question_text" validate:"required"`
	Options    []string `json:"options"`
	Answer     string   `json:"answer" validate:"required"`
	Department string   `json:"department" validate:"required"`
	Type       string   `json:"question_type" validate:"required"`
	MaterialID string   `json:"material_id,omitempty"`
}
