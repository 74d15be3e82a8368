package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studia-labs/studia-cli/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "studia-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

// ==================== Store Creation and Initialization Tests ====================

func TestNewStoreCreatesDatabaseFile(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	assert.FileExists(t, store.Path())
	assert.Equal(t, "state.db", filepath.Base(store.Path()))
}

func TestMigrationsAreIdempotent(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "studia-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening the same directory must not re-run applied migrations.
	store, err = NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, store.Close())
}

// ==================== Viewer Prefs Tests ====================

func TestViewerPrefsRoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	prefs := store.ViewerPrefsStore()

	got, err := prefs.GetPrefs(ctx, "u1", "m1")
	require.NoError(t, err)
	assert.Nil(t, got, "unseen material should have no prefs")

	require.NoError(t, prefs.SaveZoom(ctx, "u1", "m1", 1.45))
	require.NoError(t, prefs.SaveLastPage(ctx, "u1", "m1", 12))

	got, err = prefs.GetPrefs(ctx, "u1", "m1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.InDelta(t, 1.45, got.ZoomScale, 1e-9)
	assert.Equal(t, 12, got.LastPage)
}

func TestSaveLastPageKeepsZoom(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	prefs := store.ViewerPrefsStore()

	require.NoError(t, prefs.SaveZoom(ctx, "u1", "m1", 2.05))
	require.NoError(t, prefs.SaveLastPage(ctx, "u1", "m1", 7))

	got, err := prefs.GetPrefs(ctx, "u1", "m1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.InDelta(t, 2.05, got.ZoomScale, 1e-9)
	assert.Equal(t, 7, got.LastPage)
}

func TestViewerPrefsKeyedPerUserAndMaterial(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	prefs := store.ViewerPrefsStore()

	require.NoError(t, prefs.SaveLastPage(ctx, "u1", "m1", 3))
	require.NoError(t, prefs.SaveLastPage(ctx, "u2", "m1", 8))
	require.NoError(t, prefs.SaveLastPage(ctx, "u1", "m2", 5))

	got, err := prefs.GetPrefs(ctx, "u1", "m1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.LastPage)

	got, err = prefs.GetPrefs(ctx, "u2", "m1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 8, got.LastPage)
}

// ==================== Quiz State Tests ====================

func TestQuizStatsDefaultToZero(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	stats, err := store.QuizStateStore().GetStats(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.QuizStats{}, stats)
}

func TestQuizStatsRoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	quiz := store.QuizStateStore()

	want := domain.QuizStats{Total: 9, Correct: 6, Streak: 2}
	require.NoError(t, quiz.SaveStats(ctx, "u1", want))

	got, err := quiz.GetStats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestQuizHistoryPrunedToLimit(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	quiz := store.QuizStateStore()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < domain.QuizHistoryLimit+5; i++ {
		attempt := domain.QuizAttempt{
			ID:            fmt.Sprintf("a-%02d", i),
			Question:      fmt.Sprintf("question %d", i),
			UserAnswer:    "b",
			CorrectAnswer: "b",
			Correct:       true,
			AnsweredAt:    base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, quiz.AppendAttempt(ctx, "u1", attempt))
	}

	history, err := quiz.History(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, history, domain.QuizHistoryLimit)

	// Newest first, and only the most recent attempts survive.
	assert.Equal(t, "a-14", history[0].ID)
	assert.Equal(t, "a-05", history[len(history)-1].ID)
}

func TestQuizHistoryIsolatedPerUser(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	quiz := store.QuizStateStore()

	require.NoError(t, quiz.AppendAttempt(ctx, "u1", domain.QuizAttempt{
		ID: "a-1", Question: "q", UserAnswer: "x", CorrectAnswer: "y",
	}))

	history, err := quiz.History(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, history)
}

// ==================== Session Store Tests ====================

func TestSessionTokenRoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	sessions := store.SessionStore()

	token, err := sessions.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, sessions.SaveToken(ctx, "tok-1"))
	require.NoError(t, sessions.SaveToken(ctx, "tok-2"))

	token, err = sessions.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", token, "a new login replaces the cached token")

	require.NoError(t, sessions.ClearToken(ctx))
	token, err = sessions.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}
