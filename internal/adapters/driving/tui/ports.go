// Package tui provides the interactive terminal user interface for
// studia. It implements a driving adapter following hexagonal
// architecture principles.
package tui

import (
	"github.com/studia-labs/studia-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Auth manages the login session.
	Auth driving.AuthService

	// Material manages the materials catalog.
	Material driving.MaterialService

	// Viewer is the paged document viewing controller.
	Viewer driving.Viewer

	// Progress backs the progress overview.
	Progress driving.ProgressService

	// Quiz drives the daily question flow.
	Quiz driving.QuizService

	// Admin exposes the admin console; nil for non-admin users.
	Admin driving.AdminService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	auth driving.AuthService,
	material driving.MaterialService,
	viewer driving.Viewer,
	progress driving.ProgressService,
	quiz driving.QuizService,
) *Ports {
	return &Ports{
		Auth:     auth,
		Material: material,
		Viewer:   viewer,
		Progress: progress,
		Quiz:     quiz,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Auth == nil {
		return ErrMissingAuthService
	}
	if p.Material == nil {
		return ErrMissingMaterialService
	}
	if p.Viewer == nil {
		return ErrMissingViewer
	}
	if p.Progress == nil {
		return ErrMissingProgressService
	}
	if p.Quiz == nil {
		return ErrMissingQuizService
	}
	return nil
}
