package rest

import (
	"context"
	"net/http"

	"github.com/studia-labs/studia-cli/internal/core/domain"
	"github.com/studia-labs/studia-cli/internal/core/ports/driven"
)

// Ensure QuizAPI implements the interface.
var _ driven.QuizAPI = (*QuizAPI)(nil)

// QuizAPI implements driven.QuizAPI against /questions.
type QuizAPI struct {
	client *Client
}

// NewQuizAPI creates the quiz endpoint group.
func NewQuizAPI(client *Client) *QuizAPI {
	return &QuizAPI{client: client}
}

// Daily returns one question for the current user.
func (q *QuizAPI) Daily(ctx context.Context) (*domain.Question, error) {
	var question domain.Question
	if err := q.client.do(ctx, http.MethodGet, "/questions/daily", nil, &question); err != nil {
		return nil, err
	}
	return &question, nil
}

type answerRequest struct {
	QuestionID string `json:"question_id"`
	UserAnswer string `json:"user_answer"`
}

// Answer submits an answer and returns the verdict.
func (q *QuizAPI) Answer(ctx context.Context, questionID, userAnswer string) (*domain.AnswerResult, error) {
	var result domain.AnswerResult
	err := q.client.do(ctx, http.MethodPost, "/questions/answer",
		answerRequest{QuestionID: questionID, UserAnswer: userAnswer}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
