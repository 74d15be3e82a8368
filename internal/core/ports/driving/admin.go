package driving

import (
	"context"

	"github.com/studia-labs/studia-cli/internal/core/domain"
	"github.com/studia-labs/studia-cli/internal/core/ports/driven"
)

// AdminService exposes the admin console operations. Inputs are
// validated client-side; the server enforces the admin role.
type AdminService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, input driven.AdminUserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, input driven.AdminUserInput) error
	DeleteUser(ctx context.Context, id string) error

	ListDepartments(ctx context.Context) ([]domain.Department, error)
	CreateDepartment(ctx context.Context, name, description string) error
	DeleteDepartment(ctx context.Context, name string) error

	ListQuestions(ctx context.Context) ([]driven.AdminQuestion, error)
	CreateQuestion(ctx context.Context, input driven.QuestionInput) error
	UpdateQuestion(ctx context.Context, id string, input driven.QuestionInput) error
	DeleteQuestion(ctx context.Context, id string) error
	UploadQuestions(ctx context.Context, fileName string, data []byte) (int, error)

	ListSchedules(ctx context.Context) ([]domain.QuizSchedule, error)
	CreateSchedule(ctx context.Context, input domain.ScheduleInput) error
	UpdateSchedule(ctx context.Context, id string, input domain.ScheduleInput) error
	DeleteSchedule(ctx context.Context, id string) error
}
