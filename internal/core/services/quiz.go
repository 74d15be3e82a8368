package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/studia-labs/studia-cli/internal/core/domain"
	"github.com/studia-labs/studia-cli/internal/core/ports/driven"
	"github.com/studia-labs/studia-cli/internal/core/ports/driving"
	"github.com/studia-labs/studia-cli/internal/logger"
)

// Ensure QuizService implements the interface.
var _ driving.QuizService = (*QuizService)(nil)

// QuizService drives the quiz flow. Verdicts come from the server;
// the running totals and the bounded history are client-local state.
type QuizService struct {
	api   driven.QuizAPI
	state driven.QuizStateStore
	auth  driving.AuthService
}

// NewQuizService creates a new quiz service.
func NewQuizService(api driven.QuizAPI, state driven.QuizStateStore, auth driving.AuthService) *QuizService {
	return &QuizService{api: api, state: state, auth: auth}
}

// Daily fetches one question for the current user.
func (s *QuizService) Daily(ctx context.Context) (*domain.Question, error) {
	return s.api.Daily(ctx)
}

// Answer submits an answer, folds the verdict into the local stats and
// appends it to the bounded history. Local persistence is best-effort:
// a failed write never hides the verdict from the user.
func (s *QuizService) Answer(ctx context.Context, question *domain.Question, userAnswer string) (*domain.AnswerResult, error) {
	if question == nil || question.ID == "" {
		return nil, domain.ErrInvalidInput
	}
	if userAnswer == "" {
		return nil, fmt.Errorf("%w: answer is required", domain.ErrInvalidInput)
	}

	result, err := s.api.Answer(ctx, question.ID, userAnswer)
	if err != nil {
		return nil, err
	}

	userID := s.userID()
	if userID == "" {
		return result, nil
	}

	stats, err := s.state.GetStats(ctx, userID)
	if err != nil {
		logger.Warn("Reading quiz stats: %v", err)
		stats = domain.QuizStats{}
	}
	if err := s.state.SaveStats(ctx, userID, stats.Record(result.Correct)); err != nil {
		logger.Warn("Saving quiz stats: %v", err)
	}

	attempt := domain.QuizAttempt{
		ID:            uuid.NewString(),
		Question:      question.Text,
		UserAnswer:    userAnswer,
		CorrectAnswer: result.CorrectAnswer,
		Correct:       result.Correct,
		AnsweredAt:    time.Now().UTC(),
	}
	if err := s.state.AppendAttempt(ctx, userID, attempt); err != nil {
		logger.Warn("Appending quiz attempt: %v", err)
	}

	return result, nil
}

// Stats returns the local running totals for the current user.
func (s *QuizService) Stats(ctx context.Context) (domain.QuizStats, error) {
	userID := s.userID()
	if userID == "" {
		return domain.QuizStats{}, domain.ErrAuthRequired
	}
	return s.state.GetStats(ctx, userID)
}

// History returns the local attempt history, newest first.
func (s *QuizService) History(ctx context.Context) ([]domain.QuizAttempt, error) {
	userID := s.userID()
	if userID == "" {
		return nil, domain.ErrAuthRequired
	}
	return s.state.History(ctx, userID)
}

func (s *QuizService) userID() string {
	if s.auth == nil {
		return ""
	}
	session := s.auth.Session()
	if session == nil || session.User == nil {
		return ""
	}
	return session.User.ID
}
