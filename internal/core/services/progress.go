package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/studia-labs/studia-cli/internal/core/domain"
	"github.com/studia-labs/studia-cli/internal/core/ports/driven"
	"github.com/studia-labs/studia-cli/internal/core/ports/driving"
	"github.com/studia-labs/studia-cli/internal/logger"
)

// Ensure ProgressService implements the interface.
var _ driving.ProgressService = (*ProgressService)(nil)

// ProgressService backs the progress views. All records are owned by
// the server; this service only reads and relays explicit mutations.
type ProgressService struct {
	api       driven.ProgressAPI
	materials driven.MaterialAPI
}

// NewProgressService creates a new progress service.
func NewProgressService(api driven.ProgressAPI, materials driven.MaterialAPI) *ProgressService {
	return &ProgressService{api: api, materials: materials}
}

// Get reads the progress record for one material.
func (s *ProgressService) Get(ctx context.Context, materialID string) (*domain.Progress, error) {
	if materialID == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.api.Get(ctx, materialID)
}

// Overview returns every enrolled material with its progress record.
// Materials the server has no record for appear with nil progress.
func (s *ProgressService) Overview(ctx context.Context) ([]driving.MaterialProgress, error) {
	materials, err := s.materials.ListEnrolled(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing enrolled materials: %w", err)
	}

	overview := make([]driving.MaterialProgress, 0, len(materials))
	for _, m := range materials {
		entry := driving.MaterialProgress{Material: m}

		record, err := s.api.Get(ctx, m.ID)
		switch {
		case err == nil:
			entry.Progress = record
		case errors.Is(err, domain.ErrNotFound):
			// Enrolled but never opened; shown as untracked.
		default:
			logger.Warn("Fetching progress for %s: %v", m.ID, err)
		}

		overview = append(overview, entry)
	}

	return overview, nil
}

// MarkComplete sets the terminal completed state for a material.
func (s *ProgressService) MarkComplete(ctx context.Context, materialID string) error {
	if materialID == "" {
		return domain.ErrInvalidInput
	}
	return s.api.MarkComplete(ctx, materialID)
}
