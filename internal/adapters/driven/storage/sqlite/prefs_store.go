package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/studia-labs/studia-cli/internal/core/domain"
	"github.com/studia-labs/studia-cli/internal/core/ports/driven"
)

// viewerPrefsStore implements driven.ViewerPrefsStore.
type viewerPrefsStore struct {
	store *Store
}

var _ driven.ViewerPrefsStore = (*viewerPrefsStore)(nil)

// GetPrefs returns the stored preferences for a user and material, or
// (nil, nil) when none have been recorded yet.
func (s *viewerPrefsStore) GetPrefs(ctx context.Context, userID, materialID string) (*driven.ViewerPrefs, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT zoom_scale, last_page
		FROM viewer_prefs WHERE user_id = ? AND material_id = ?
	`, userID, materialID)

	var prefs driven.ViewerPrefs
	if err := row.Scan(&prefs.ZoomScale, &prefs.LastPage); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning viewer prefs: %w", err)
	}

	return &prefs, nil
}

// SaveZoom upserts the zoom scale, leaving the stored page untouched.
func (s *viewerPrefsStore) SaveZoom(ctx context.Context, userID, materialID string, scale float64) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO viewer_prefs (user_id, material_id, zoom_scale, last_page, updated_at)
		VALUES (?, ?, ?, 0, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id, material_id) DO UPDATE SET
			zoom_scale = excluded.zoom_scale,
			updated_at = excluded.updated_at
	`, userID, materialID, scale)

	if err != nil {
		return fmt.Errorf("saving zoom scale: %w", err)
	}
	return nil
}

// SaveLastPage upserts the last-viewed page, leaving the stored zoom
// untouched.
func (s *viewerPrefsStore) SaveLastPage(ctx context.Context, userID, materialID string, page int) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO viewer_prefs (user_id, material_id, zoom_scale, last_page, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id, material_id) DO UPDATE SET
			last_page = excluded.last_page,
			updated_at = excluded.updated_at
	`, userID, materialID, domain.ZoomDefault, page)

	if err != nil {
		return fmt.Errorf("saving last page: %w", err)
	}
	return nil
}
