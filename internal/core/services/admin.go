package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/studia-labs/studia-cli/internal/core/domain"
	"github.com/studia-labs/studia-cli/internal/core/ports/driven"
	"github.com/studia-labs/studia-cli/internal/core/ports/driving"
)

// Ensure AdminService implements the interface.
var _ driving.AdminService = (*AdminService)(nil)

// AdminService exposes the admin console operations. Inputs are
// validated client-side so obvious mistakes fail before the network;
// the server enforces the admin role on every call.
type AdminService struct {
	api      driven.AdminAPI
	validate *validator.Validate
}

// NewAdminService creates a new admin service.
func NewAdminService(api driven.AdminAPI) *AdminService {
	return &AdminService{
		api:      api,
		validate: validator.New(),
	}
}

// ListUsers returns all user accounts.
func (s *AdminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.api.ListUsers(ctx)
}

// CreateUser creates an account with an explicit role.
func (s *AdminService) CreateUser(ctx context.Context, input driven.AdminUserInput) (*domain.User, error) {
	if input.Password == "" {
		return nil, fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return s.api.CreateUser(ctx, input)
}

// UpdateUser modifies an account. An empty password keeps the old one.
func (s *AdminService) UpdateUser(ctx context.Context, id string, input driven.AdminUserInput) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	if err := s.validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return s.api.UpdateUser(ctx, id, input)
}

// DeleteUser removes an account.
func (s *AdminService) DeleteUser(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return s.api.DeleteUser(ctx, id)
}

// ListDepartments returns all departments.
func (s *AdminService) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	return s.api.ListDepartments(ctx)
}

// CreateDepartment creates a department.
func (s *AdminService) CreateDepartment(ctx context.Context, name, description string) error {
	if name == "" {
		return fmt.Errorf("%w: department name is required", domain.ErrInvalidInput)
	}
	return s.api.CreateDepartment(ctx, name, description)
}

// DeleteDepartment removes a department.
func (s *AdminService) DeleteDepartment(ctx context.Context, name string) error {
	if name == "" {
		return domain.ErrInvalidInput
	}
	return s.api.DeleteDepartment(ctx, name)
}

// ListQuestions returns all quiz questions including answers.
func (s *AdminService) ListQuestions(ctx context.Context) ([]driven.AdminQuestion, error) {
	return s.api.ListQuestions(ctx)
}

// CreateQuestion creates a question.
func (s *AdminService) CreateQuestion(ctx context.Context, input driven.QuestionInput) error {
	if err := s.validateQuestion(input); err != nil {
		return err
	}
	return s.api.CreateQuestion(ctx, input)
}

// UpdateQuestion modifies a question.
func (s *AdminService) UpdateQuestion(ctx context.Context, id string, input driven.QuestionInput) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	if err := s.validateQuestion(input); err != nil {
		return err
	}
	return s.api.UpdateQuestion(ctx, id, input)
}

// DeleteQuestion removes a question.
func (s *AdminService) DeleteQuestion(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return s.api.DeleteQuestion(ctx, id)
}

// UploadQuestions bulk-imports questions from a spreadsheet file and
// returns how many the server accepted.
func (s *AdminService) UploadQuestions(ctx context.Context, fileName string, data []byte) (int, error) {
	if fileName == "" || len(data) == 0 {
		return 0, fmt.Errorf("%w: question file is empty", domain.ErrInvalidInput)
	}
	return s.api.UploadQuestions(ctx, fileName, data)
}

// ListSchedules returns all quiz schedules.
func (s *AdminService) ListSchedules(ctx context.Context) ([]domain.QuizSchedule, error) {
	return s.api.ListSchedules(ctx)
}

// CreateSchedule creates a quiz schedule.
func (s *AdminService) CreateSchedule(ctx context.Context, input domain.ScheduleInput) error {
	if err := s.validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return s.api.CreateSchedule(ctx, input)
}

// UpdateSchedule modifies a quiz schedule.
func (s *AdminService) UpdateSchedule(ctx context.Context, id string, input domain.ScheduleInput) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	if err := s.validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return s.api.UpdateSchedule(ctx, id, input)
}

// DeleteSchedule removes a quiz schedule.
func (s *AdminService) DeleteSchedule(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return s.api.DeleteSchedule(ctx, id)
}

// validateQuestion applies the struct tags plus the multiple-choice
// consistency rule: when options exist, the answer must be one of them.
func (s *AdminService) validateQuestion(input driven.QuestionInput) error {
	if err := s.validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if len(input.Options) > 0 {
		for _, opt := range input.Options {
			if opt == input.Answer {
				return nil
			}
		}
		return fmt.Errorf("%w: answer must be one of the options", domain.ErrInvalidInput)
	}
	return nil
}
