package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/studia-labs/studia-cli/internal/core/domain"
	"github.com/studia-labs/studia-cli/internal/core/ports/driven"
	"github.com/studia-labs/studia-cli/internal/core/ports/driving"
	"github.com/studia-labs/studia-cli/internal/logger"
)

// Ensure MaterialService implements the interface.
var _ driving.MaterialService = (*MaterialService)(nil)

// MaterialService manages the materials catalog.
type MaterialService struct {
	api      driven.MaterialAPI
	source   driven.DocumentSource
	validate *validator.Validate
}

// NewMaterialService creates a new material service.
func NewMaterialService(api driven.MaterialAPI, source driven.DocumentSource) *MaterialService {
	return &MaterialService{
		api:      api,
		source:   source,
		validate: validator.New(),
	}
}

// List returns materials, optionally filtered by department.
func (s *MaterialService) List(ctx context.Context, department string) ([]domain.Material, error) {
	return s.api.List(ctx, department)
}

// ListEnrolled returns the user's enrolled materials.
func (s *MaterialService) ListEnrolled(ctx context.Context) ([]domain.Material, error) {
	return s.api.ListEnrolled(ctx)
}

// Get returns one material.
func (s *MaterialService) Get(ctx context.Context, id string) (*domain.Material, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.api.Get(ctx, id)
}

// Enroll enrolls the current user in a material.
func (s *MaterialService) Enroll(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return s.api.Enroll(ctx, id)
}

// Upload creates a material after client-side validation. Documents
// need file bytes, text materials need inline content.
func (s *MaterialService) Upload(ctx context.Context, input domain.MaterialUpload) (*domain.Material, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	switch domain.ContentType(input.ContentType) {
	case domain.ContentPDF:
		if len(input.FileBytes) == 0 {
			return nil, fmt.Errorf("%w: pdf material needs a file", domain.ErrInvalidInput)
		}
		// Reject obviously broken files before the round trip.
		if err := s.source.Validate(ctx, input.FileBytes); err != nil {
			return nil, err
		}
	case domain.ContentText:
		if input.Content == "" {
			return nil, fmt.Errorf("%w: text material needs content", domain.ErrInvalidInput)
		}
	}

	return s.api.Upload(ctx, input)
}

// Delete removes a material. Force deletion is for ghost materials
// whose file is gone from the server.
func (s *MaterialService) Delete(ctx context.Context, id string, force bool) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	if force {
		return s.api.ForceDelete(ctx, id)
	}
	return s.api.Delete(ctx, id)
}

// Verify fetches the file bytes and cross-checks them against the
// server-side diagnostics.
func (s *MaterialService) Verify(ctx context.Context, id string) (*driving.VerifyReport, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}

	report := &driving.VerifyReport{}

	info, err := s.api.FileInfo(ctx, id)
	if err != nil {
		// Diagnostics are optional; the byte-level checks still run.
		logger.Debug("Fetching file info for %s: %v", id, err)
	} else {
		report.Info = info
	}

	data, err := s.api.FetchFile(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching file: %w", err)
	}

	report.SizeBytes = int64(len(data))
	report.HeaderValid = bytes.HasPrefix(data, []byte("%PDF"))

	if err := s.source.Validate(ctx, data); err != nil {
		report.StructureErr = err
	} else {
		report.StructureValid = true
	}

	return report, nil
}
