package driving

import (
	"context"

	"github.com/studia-labs/studia-cli/internal/core/domain"
)

// MaterialService manages the materials catalog for the current user.
type MaterialService interface {
	// List returns materials, optionally filtered by department.
	List(ctx context.Context, department string) ([]domain.Material, error)

	// ListEnrolled returns the user's enrolled materials.
	ListEnrolled(ctx context.Context) ([]domain.Material, error)

	// Get returns one material.
	Get(ctx context.Context, id string) (*domain.Material, error)

	// Enroll enrolls the current user.
	Enroll(ctx context.Context, id string) error

	// Upload creates a material after client-side validation.
	Upload(ctx context.Context, input domain.MaterialUpload) (*domain.Material, error)

	// Delete removes a material; falls back to the caller to decide
	// between regular and force deletion.
	Delete(ctx context.Context, id string, force bool) error

	// Verify fetches the file bytes and cross-checks them against
	// the server diagnostics: structural validation plus header check.
	Verify(ctx context.Context, id string) (*VerifyReport, error)
}

// VerifyReport is the outcome of a client-side file verification.
type VerifyReport struct {
	// Info is the server-side diagnostic record.
	Info *domain.FileInfo

	// SizeBytes is the length of the fetched stream.
	SizeBytes int64

	// HeaderValid reports whether the fetched bytes start with the
	// expected document magic.
	HeaderValid bool

	// StructureValid reports whether structural validation passed.
	StructureValid bool

	// StructureErr is the validation failure, nil when valid.
	StructureErr error
}
