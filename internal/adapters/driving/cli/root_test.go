package cli

import (
	"bytes"
	"context"

	"github.com/studia-labs/studia-cli/internal/core/domain"
	"github.com/studia-labs/studia-cli/internal/core/ports/driven"
	"github.com/studia-labs/studia-cli/internal/core/ports/driving"
)

// execute runs the root command with the given args and returns the
// captured output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

// mockAuthService implements driving.AuthService for testing.
type mockAuthService struct {
	LoginFunc   func(ctx context.Context, email, password string) (*domain.Session, error)
	RestoreFunc func(ctx context.Context) (*domain.Session, error)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, nil
}

func (m *mockAuthService) Register(_ context.Context, _ driven.RegisterInput) (*domain.User, error) {
	return nil, nil
}

func (m *mockAuthService) Logout(_ context.Context) error { return nil }

func (m *mockAuthService) Restore(ctx context.Context) (*domain.Session, error) {
	if m.RestoreFunc != nil {
		return m.RestoreFunc(ctx)
	}
	return nil, domain.ErrAuthRequired
}

func (m *mockAuthService) Session() *domain.Session { return nil }

// mockMaterialService implements driving.MaterialService for testing.
type mockMaterialService struct {
	ListFunc   func(ctx context.Context, department string) ([]domain.Material, error)
	EnrollFunc func(ctx context.Context, id string) error
	VerifyFunc func(ctx context.Context, id string) (*driving.VerifyReport, error)
}

func (m *mockMaterialService) List(ctx context.Context, department string) ([]domain.Material, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, department)
	}
	return nil, nil
}

func (m *mockMaterialService) ListEnrolled(_ context.Context) ([]domain.Material, error) {
	return nil, nil
}

func (m *mockMaterialService) Get(_ context.Context, _ string) (*domain.Material, error) {
	return &domain.Material{}, nil
}

func (m *mockMaterialService) Enroll(ctx context.Context, id string) error {
	if m.EnrollFunc != nil {
		return m.EnrollFunc(ctx, id)
	}
	return nil
}

func (m *mockMaterialService) Upload(_ context.Context, _ domain.MaterialUpload) (*domain.Material, error) {
	return &domain.Material{}, nil
}

func (m *mockMaterialService) Delete(_ context.Context, _ string, _ bool) error { return nil }

func (m *mockMaterialService) Verify(ctx context.Context, id string) (*driving.VerifyReport, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, id)
	}
	return &driving.VerifyReport{}, nil
}

// mockProgressService implements driving.ProgressService for testing.
type mockProgressService struct {
	OverviewFunc func(ctx context.Context) ([]driving.MaterialProgress, error)
}

func (m *mockProgressService) Get(_ context.Context, materialID string) (*domain.Progress, error) {
	return &domain.Progress{MaterialID: materialID}, nil
}

func (m *mockProgressService) Overview(ctx context.Context) ([]driving.MaterialProgress, error) {
	if m.OverviewFunc != nil {
		return m.OverviewFunc(ctx)
	}
	return nil, nil
}

func (m *mockProgressService) MarkComplete(_ context.Context, _ string) error { return nil }

// mockQuizService implements driving.QuizService for testing.
type mockQuizService struct {
	StatsFunc   func(ctx context.Context) (domain.QuizStats, error)
	HistoryFunc func(ctx context.Context) ([]domain.QuizAttempt, error)
}

func (m *mockQuizService) Daily(_ context.Context) (*domain.Question, error) { return nil, nil }

func (m *mockQuizService) Answer(_ context.Context, _ *domain.Question, _ string) (*domain.AnswerResult, error) {
	return &domain.AnswerResult{}, nil
}

func (m *mockQuizService) Stats(ctx context.Context) (domain.QuizStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return domain.QuizStats{}, nil
}

func (m *mockQuizService) History(ctx context.Context) ([]domain.QuizAttempt, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx)
	}
	return nil, nil
}
