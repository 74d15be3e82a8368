package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studia-labs/studia-cli/internal/core/domain"
	"github.com/studia-labs/studia-cli/internal/core/ports/driven"
)

// fakeAdminAPI records the calls that reach the backend.
type fakeAdminAPI struct {
	driven.AdminAPI // panic on anything not overridden

	createdUsers     []driven.AdminUserInput
	createdQuestions []driven.QuestionInput
	uploadedName     string
	uploadedBytes    []byte
}

func (f *fakeAdminAPI) CreateUser(_ context.Context, input driven.AdminUserInput) (*domain.User, error) {
	f.createdUsers = append(f.createdUsers, input)
	return &domain.User{Email: input.Email, Role: domain.Role(input.Role)}, nil
}

func (f *fakeAdminAPI) CreateQuestion(_ context.Context, input driven.QuestionInput) error {
	f.createdQuestions = append(f.createdQuestions, input)
	return nil
}

func (f *fakeAdminAPI) UploadQuestions(_ context.Context, fileName string, data []byte) (int, error) {
	f.uploadedName = fileName
	f.uploadedBytes = data
	return 3, nil
}

func (f *fakeAdminAPI) CreateSchedule(_ context.Context, _ domain.ScheduleInput) error {
	return nil
}

func TestCreateUserValidation(t *testing.T) {
	api := &fakeAdminAPI{}
	svc := NewAdminService(api)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, driven.AdminUserInput{
		Email: "a@b.test", FullName: "A", Department: "CS", Role: "admin",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "password required on create")

	_, err = svc.CreateUser(ctx, driven.AdminUserInput{
		Email: "a@b.test", Password: "secret123", FullName: "A", Department: "CS", Role: "superuser",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "role must be user or admin")

	user, err := svc.CreateUser(ctx, driven.AdminUserInput{
		Email: "a@b.test", Password: "secret123", FullName: "A", Department: "CS", Role: "admin",
	})
	require.NoError(t, err)
	assert.True(t, user.IsAdmin())
	require.Len(t, api.createdUsers, 1)
}

func TestCreateQuestionAnswerMustMatchOptions(t *testing.T) {
	svc := NewAdminService(&fakeAdminAPI{})
	ctx := context.Background()

	err := svc.CreateQuestion(ctx, driven.QuestionInput{
		Text:       "Pick one",
		Options:    []string{"a", "b", "c"},
		Answer:     "d",
		Department: "CS",
		Type:       "multiple_choice",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = svc.CreateQuestion(ctx, driven.QuestionInput{
		Text:       "Pick one",
		Options:    []string{"a", "b", "c"},
		Answer:     "b",
		Department: "CS",
		Type:       "multiple_choice",
	})
	assert.NoError(t, err)
}

func TestCreateQuestionFillInSkipsOptionCheck(t *testing.T) {
	svc := NewAdminService(&fakeAdminAPI{})

	err := svc.CreateQuestion(context.Background(), driven.QuestionInput{
		Text:       "Name the capital",
		Answer:     "Paris",
		Department: "CS",
		Type:       "fill_in_blank",
	})
	assert.NoError(t, err)
}

func TestUploadQuestionsRejectsEmptyFile(t *testing.T) {
	svc := NewAdminService(&fakeAdminAPI{})

	_, err := svc.UploadQuestions(context.Background(), "questions.xlsx", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUploadQuestionsReturnsImportedCount(t *testing.T) {
	api := &fakeAdminAPI{}
	svc := NewAdminService(api)

	count, err := svc.UploadQuestions(context.Background(), "questions.xlsx", []byte("sheet"))
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, "questions.xlsx", api.uploadedName)
}

func TestScheduleValidation(t *testing.T) {
	svc := NewAdminService(&fakeAdminAPI{})
	ctx := context.Background()

	err := svc.CreateSchedule(ctx, domain.ScheduleInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = svc.UpdateSchedule(ctx, "", domain.ScheduleInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
