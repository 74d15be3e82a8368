package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/studia-labs/studia-cli/internal/core/domain"
	"github.com/studia-labs/studia-cli/internal/core/ports/driven"
)

// quizStateStore implements driven.QuizStateStore.
type quizStateStore struct {
	store *Store
}

var _ driven.QuizStateStore = (*quizStateStore)(nil)

// GetStats returns the running totals, zero-valued when absent.
func (s *quizStateStore) GetStats(ctx context.Context, userID string) (domain.QuizStats, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT total, correct, streak
		FROM quiz_stats WHERE user_id = ?
	`, userID)

	var stats domain.QuizStats
	if err := row.Scan(&stats.Total, &stats.Correct, &stats.Streak); err != nil {
		if err == sql.ErrNoRows {
			return domain.QuizStats{}, nil
		}
		return domain.QuizStats{}, fmt.Errorf("scanning quiz stats: %w", err)
	}

	return stats, nil
}

// SaveStats upserts the running totals.
func (s *quizStateStore) SaveStats(ctx context.Context, userID string, stats domain.QuizStats) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO quiz_stats (user_id, total, correct, streak, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id) DO UPDATE SET
			total = excluded.total,
			correct = excluded.correct,
			streak = excluded.streak,
			updated_at = excluded.updated_at
	`, userID, stats.Total, stats.Correct, stats.Streak)

	if err != nil {
		return fmt.Errorf("saving quiz stats: %w", err)
	}
	return nil
}

// AppendAttempt stores an attempt and prunes the history to the most
// recent domain.QuizHistoryLimit entries for the user.
func (s *quizStateStore) AppendAttempt(ctx context.Context, userID string, attempt domain.QuizAttempt) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	answeredAt := attempt.AnsweredAt
	if answeredAt.IsZero() {
		answeredAt = time.Now().UTC()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO quiz_history (id, user_id, question, user_answer, correct_answer, correct, answered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, attempt.ID, userID, attempt.Question, attempt.UserAnswer,
		attempt.CorrectAnswer, attempt.Correct, answeredAt)
	if err != nil {
		return fmt.Errorf("inserting quiz attempt: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM quiz_history
		WHERE user_id = ? AND id NOT IN (
			SELECT id FROM quiz_history
			WHERE user_id = ?
			ORDER BY answered_at DESC, id DESC
			LIMIT ?
		)
	`, userID, userID, domain.QuizHistoryLimit)
	if err != nil {
		return fmt.Errorf("pruning quiz history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// History returns attempts newest-first, bounded by
// domain.QuizHistoryLimit.
func (s *quizStateStore) History(ctx context.Context, userID string) ([]domain.QuizAttempt, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, question, user_answer, correct_answer, correct, answered_at
		FROM quiz_history
		WHERE user_id = ?
		ORDER BY answered_at DESC, id DESC
		LIMIT ?
	`, userID, domain.QuizHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("querying quiz history: %w", err)
	}
	defer rows.Close()

	var attempts []domain.QuizAttempt //nolint:prealloc // size unknown from query
	for rows.Next() {
		var a domain.QuizAttempt
		var answeredAt sql.NullTime
		if err := rows.Scan(&a.ID, &a.Question, &a.UserAnswer,
			&a.CorrectAnswer, &a.Correct, &answeredAt); err != nil {
			return nil, fmt.Errorf("scanning quiz attempt: %w", err)
		}
		if answeredAt.Valid {
			a.AnsweredAt = answeredAt.Time
		}
		attempts = append(attempts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating quiz history: %w", err)
	}

	return attempts, nil
}
