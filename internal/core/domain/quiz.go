package domain

import "time"

// Question is one quiz question served by the daily endpoint. The
// correct answer never leaves the server.
type Question struct {
	// ID is the question identifier used when answering.
	ID string `json:"question_id"`

	// Text is the question prompt.
	Text string `json:"question_text"`

	// Options are the multiple-choice answers; empty for
	// fill-in questions.
	Options []string `json:"options"`

	// Department scopes which users receive the question.
	Department string `json:"department"`

	// Type is e.g. "multiple_choice" or "fill_in_blank".
	Type string `json:"question_type"`

	// MaterialID links the question to a material, empty for
	// department-wide questions.
	MaterialID string `json:"material_id"`
}

// MultipleChoice reports whether the question offers fixed options.
func (q *Question) MultipleChoice() bool {
	return q != nil && len(q.Options) > 0
}

// AnswerResult is the server's verdict on a submitted answer.
type AnswerResult struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
}

// QuizStats are the locally-kept running totals for one user. They are
// a best-effort client-side cache with no server reconciliation.
type QuizStats struct {
	Total   int
	Correct int
	Streak  int
}

// Record folds one answer outcome into the totals. A wrong answer
// resets the streak.
func (s QuizStats) Record(correct bool) QuizStats {
	out := QuizStats{Total: s.Total + 1, Correct: s.Correct}
	if correct {
		out.Correct++
		out.Streak = s.Streak + 1
	}
	return out
}

// Accuracy returns the rounded percentage of correct answers,
// zero when nothing has been answered yet.
func (s QuizStats) Accuracy() int {
	if s.Total == 0 {
		return 0
	}
	return int(float64(s.Correct)/float64(s.Total)*100 + 0.5)
}

// QuizAttempt is one entry of the bounded local answer history.
type QuizAttempt struct {
	// ID is a client-generated identifier.
	ID string

	// Question is the prompt that was answered.
	Question string

	// UserAnswer is what the user submitted.
	UserAnswer string

	// CorrectAnswer is the server-provided solution.
	CorrectAnswer string

	// Correct is the verdict.
	Correct bool

	// AnsweredAt is when the answer was submitted.
	AnsweredAt time.Time
}

// QuizHistoryLimit bounds the locally stored attempt history per user.
const QuizHistoryLimit = 10
