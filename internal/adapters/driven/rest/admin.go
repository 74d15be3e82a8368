package rest

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/studia-labs/studia-cli/internal/core/domain"
	"github.com/studia-labs/studia-cli/internal/core/ports/driven"
)

// Ensure AdminAPI implements the interface.
var _ driven.AdminAPI = (*AdminAPI)(nil)

// AdminAPI implements driven.AdminAPI against /admin. The server
// enforces the admin role on every route.
type AdminAPI struct {
	client *Client
}

// NewAdminAPI creates the admin endpoint group.
func NewAdminAPI(client *Client) *AdminAPI {
	return &AdminAPI{client: client}
}

// ListUsers returns all user accounts.
func (a *AdminAPI) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := a.client.do(ctx, http.MethodGet, "/admin/users/all", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser creates a user account.
func (a *AdminAPI) CreateUser(ctx context.Context, input driven.AdminUserInput) (*domain.User, error) {
	var user domain.User
	if err := a.client.do(ctx, http.MethodPost, "/admin/users/create", input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser updates a user account.
func (a *AdminAPI) UpdateUser(ctx context.Context, id string, input driven.AdminUserInput) error {
	return a.client.do(ctx, http.MethodPut, "/admin/users/"+url.PathEscape(id), input, nil)
}

// DeleteUser removes a user account.
func (a *AdminAPI) DeleteUser(ctx context.Context, id string) error {
	return a.client.do(ctx, http.MethodDelete, "/admin/users/"+url.PathEscape(id), nil, nil)
}

type departmentRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ListDepartments returns all departments.
func (a *AdminAPI) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	var departments []domain.Department
	if err := a.client.do(ctx, http.MethodGet, "/admin/departments/all", nil, &departments); err != nil {
		return nil, err
	}
	return departments, nil
}

// CreateDepartment creates a department.
func (a *AdminAPI) CreateDepartment(ctx context.Context, name, description string) error {
	return a.client.do(ctx, http.MethodPost, "/admin/departments/create",
		departmentRequest{Name: name, Description: description}, nil)
}

// DeleteDepartment removes a department by name.
func (a *AdminAPI) DeleteDepartment(ctx context.Context, name string) error {
	return a.client.do(ctx, http.MethodDelete, "/admin/departments/"+url.PathEscape(name), nil, nil)
}

// ListQuestions returns all questions including answers.
func (a *AdminAPI) ListQuestions(ctx context.Context) ([]driven.AdminQuestion, error) {
	var questions []driven.AdminQuestion
	if err := a.client.do(ctx, http.MethodGet, "/admin/questions/all", nil, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// CreateQuestion creates a question.
func (a *AdminAPI) CreateQuestion(ctx context.Context, input driven.QuestionInput) error {
	return a.client.do(ctx, http.MethodPost, "/admin/questions/create", input, nil)
}

// UpdateQuestion updates a question.
func (a *AdminAPI) UpdateQuestion(ctx context.Context, id string, input driven.QuestionInput) error {
	return a.client.do(ctx, http.MethodPut, "/admin/questions/"+url.PathEscape(id), input, nil)
}

// DeleteQuestion removes a question.
func (a *AdminAPI) DeleteQuestion(ctx context.Context, id string) error {
	return a.client.do(ctx, http.MethodDelete, "/admin/questions/"+url.PathEscape(id), nil, nil)
}

type uploadQuestionsResponse struct {
	Imported int `json:"imported"`
}

// UploadQuestions bulk-imports questions from an uploaded file and
// returns the number imported.
func (a *AdminAPI) UploadQuestions(ctx context.Context, fileName string, data []byte) (int, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", fileName)
	if err != nil {
		return 0, fmt.Errorf("creating file part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return 0, fmt.Errorf("writing file part: %w", err)
	}
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("closing form: %w", err)
	}

	resp, err := a.client.roundTrip(ctx, http.MethodPost, "/admin/questions/upload-file", &buf, w.FormDataContentType())
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if err := a.client.checkStatus(resp); err != nil {
		return 0, err
	}

	var result uploadQuestionsResponse
	if err := decodeJSON(resp.Body, &result); err != nil {
		return 0, err
	}
	return result.Imported, nil
}

// ListSchedules returns all quiz schedules.
func (a *AdminAPI) ListSchedules(ctx context.Context) ([]domain.QuizSchedule, error) {
	var schedules []domain.QuizSchedule
	if err := a.client.do(ctx, http.MethodGet, "/admin/quiz-schedule/all", nil, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

// CreateSchedule creates a quiz schedule.
func (a *AdminAPI) CreateSchedule(ctx context.Context, input domain.ScheduleInput) error {
	return a.client.do(ctx, http.MethodPost, "/admin/quiz-schedule/create", input, nil)
}

// UpdateSchedule updates a quiz schedule.
func (a *AdminAPI) UpdateSchedule(ctx context.Context, id string, input domain.ScheduleInput) error {
	return a.client.do(ctx, http.MethodPut, "/admin/quiz-schedule/"+url.PathEscape(id), input, nil)
}

// DeleteSchedule removes a quiz schedule.
func (a *AdminAPI) DeleteSchedule(ctx context.Context, id string) error {
	return a.client.do(ctx, http.MethodDelete, "/admin/quiz-schedule/"+url.PathEscape(id), nil, nil)
}
