package driven

import (
	"context"

	"github.com/studia-labs/studia-cli/internal/core/domain"
)

// ViewerPrefs are the per-user, per-document viewer preferences that
// survive across sessions. They are a best-effort local cache; losing
// them only loses zoom and resume position.
type ViewerPrefs struct {
	// ZoomScale is the last-used zoom for the document.
	ZoomScale float64

	// LastPage is the last-viewed page, zero when never recorded.
	LastPage int
}

// ViewerPrefsStore persists viewer preferences keyed by user and
// material so records never collide across users or documents.
type ViewerPrefsStore interface {
	// GetPrefs returns the stored preferences, or (nil, nil) when
	// none exist yet.
	GetPrefs(ctx context.Context, userID, materialID string) (*ViewerPrefs, error)

	// SaveZoom upserts the zoom scale for a document.
	SaveZoom(ctx context.Context, userID, materialID string, scale float64) error

	// SaveLastPage upserts the last-viewed page for a document.
	SaveLastPage(ctx context.Context, userID, materialID string, page int) error
}

// QuizStateStore persists the local quiz totals and the bounded
// attempt history per user.
type QuizStateStore interface {
	// GetStats returns the running totals, zero-valued when absent.
	GetStats(ctx context.Context, userID string) (domain.QuizStats, error)

	// SaveStats upserts the running totals.
	SaveStats(ctx context.Context, userID string, stats domain.QuizStats) error

	// AppendAttempt stores an attempt and prunes the history to the
	// most recent domain.QuizHistoryLimit entries.
	AppendAttempt(ctx context.Context, userID string, attempt domain.QuizAttempt) error

	// History returns attempts newest-first, at most
	// domain.QuizHistoryLimit entries.
	History(ctx context.Context, userID string) ([]domain.QuizAttempt, error)
}

// SessionStore caches the bearer token between invocations so the CLI
// does not require a login per command.
type SessionStore interface {
	// SaveToken stores the bearer token.
	SaveToken(ctx context.Context, token string) error

	// Token returns the cached token, empty when none is stored.
	Token(ctx context.Context) (string, error)

	// ClearToken removes the cached token.
	ClearToken(ctx context.Context) error
}
