package driving

import (
	"context"

	"github.com/studia-labs/studia-cli/internal/core/domain"
)

// MaterialProgress pairs an enrolled material with its progress record
// for the progress list view.
type MaterialProgress struct {
	Material domain.Material

	// Progress is nil when the server has no record yet.
	Progress *domain.Progress
}

// ProgressService backs the progress views.
type ProgressService interface {
	// Get reads the progress record for one material.
	Get(ctx context.Context, materialID string) (*domain.Progress, error)

	// Overview returns every enrolled material with its progress.
	// Materials without a record are included with nil progress.
	Overview(ctx context.Context) ([]MaterialProgress, error)

	// MarkComplete sets the terminal completed state for a material.
	MarkComplete(ctx context.Context, materialID string) error
}

// QuizService drives the quiz flow and its local statistics.
type QuizService interface {
	// Daily fetches one question for the current user.
	Daily(ctx context.Context) (*domain.Question, error)

	// Answer submits an answer, folds the verdict into the local
	// stats and appends it to the bounded history.
	Answer(ctx context.Context, question *domain.Question, userAnswer string) (*domain.AnswerResult, error)

	// Stats returns the local running totals.
	Stats(ctx context.Context) (domain.QuizStats, error)

	// History returns the local attempt history, newest first.
	History(ctx context.Context) ([]domain.QuizAttempt, error)
}
