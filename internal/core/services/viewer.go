package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/studia-labs/studia-cli/internal/core/domain"
	"github.com/studia-labs/studia-cli/internal/core/ports/driven"
	"github.com/studia-labs/studia-cli/internal/core/ports/driving"
	"github.com/studia-labs/studia-cli/internal/logger"
)

// defaultViewportWidth is used before the terminal size is known.
const defaultViewportWidth = 80

// Ensure ViewerController implements the interface.
var _ driving.Viewer = (*ViewerController)(nil)

// ViewerController drives one open paged document: page navigation,
// zoom, rotation, and the loose synchronization of server-side reading
// progress with the visible page.
//
// All operations serialize on the controller mutex, so renders are
// strictly sequential and the last requested page/viewport wins.
// Implicit progress writes happen only on user-driven page changes;
// viewport-only re-renders (zoom, rotation) never write progress.
type ViewerController struct {
	materials driven.MaterialAPI
	progress  driven.ProgressAPI
	source    driven.DocumentSource
	prefs     driven.ViewerPrefsStore
	config    driven.ConfigStore
	auth      driving.AuthService

	mu      sync.Mutex
	session domain.ViewerSession
	handle  driven.DocumentHandle
	page    *domain.RenderedPage
	record  *domain.Progress
	lastErr error
	width   int
}

// NewViewerController creates a viewer controller.
func NewViewerController(
	materials driven.MaterialAPI,
	progress driven.ProgressAPI,
	source driven.DocumentSource,
	prefs driven.ViewerPrefsStore,
	config driven.ConfigStore,
	auth driving.AuthService,
) *ViewerController {
	return &ViewerController{
		materials: materials,
		progress:  progress,
		source:    source,
		prefs:     prefs,
		config:    config,
		auth:      auth,
		width:     defaultViewportWidth,
	}
}

// Open fetches the document bytes and renders the starting page.
func (v *ViewerController) Open(ctx context.Context, material *domain.Material) error {
	if material == nil || !material.ContentType.Paged() {
		return fmt.Errorf("%w: material is not a paged document", domain.ErrNotAvailable)
	}
	if !material.HasFile() {
		return fmt.Errorf("%w: material has no file", domain.ErrNotAvailable)
	}

	logger.Section("Document Open")
	logger.Debug("Opening material %s", material.ID)

	v.mu.Lock()
	defer v.mu.Unlock()

	v.closeLocked()
	v.session = domain.ViewerSession{
		MaterialID:  material.ID,
		ZoomScale:   domain.ZoomDefault,
		CurrentPage: 1,
		State:       domain.ViewerLoading,
	}

	data, err := v.materials.FetchFile(ctx, material.ID)
	if err != nil {
		return v.failLocked(fmt.Errorf("%w: fetching file: %v", domain.ErrLoadFailed, err))
	}

	handle, err := v.source.Open(ctx, data)
	if err != nil {
		return v.failLocked(err)
	}

	v.handle = handle
	v.session.TotalPages = handle.PageCount()
	v.session.State = domain.ViewerReady

	start := 1
	if prefs := v.loadPrefs(ctx); prefs != nil {
		if prefs.ZoomScale > 0 {
			v.session.ZoomScale = domain.ClampZoom(prefs.ZoomScale)
		}
		if v.resumeEnabled() && v.session.PageInRange(prefs.LastPage) {
			start = prefs.LastPage
		}
	}

	v.refreshProgressLocked(ctx)

	// Opening at the resumed page is not a user page turn, so no
	// implicit progress write happens here.
	return v.renderLocked(ctx, start, false)
}

// Close releases the document and returns the viewer to idle.
func (v *ViewerController) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closeLocked()
}

// RenderPage draws the given page as a user-driven change.
func (v *ViewerController) RenderPage(ctx context.Context, page int) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.renderLocked(ctx, page, true)
}

// NextPage advances to the following page.
func (v *ViewerController) NextPage(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.renderLocked(ctx, v.session.CurrentPage+1, true)
}

// PrevPage goes back one page.
func (v *ViewerController) PrevPage(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.renderLocked(ctx, v.session.CurrentPage-1, true)
}

// FirstPage jumps to the start of the document.
func (v *ViewerController) FirstPage(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.renderLocked(ctx, 1, true)
}

// LastPage jumps to the end of the document.
func (v *ViewerController) LastPage(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.renderLocked(ctx, v.session.TotalPages, true)
}

// ZoomIn increases the scale by one step, clamped to the maximum.
func (v *ViewerController) ZoomIn(ctx context.Context) error {
	return v.setZoom(ctx, func(s float64) float64 { return s + domain.ZoomStep })
}

// ZoomOut decreases the scale by one step, clamped to the minimum.
func (v *ViewerController) ZoomOut(ctx context.Context) error {
	return v.setZoom(ctx, func(s float64) float64 { return s - domain.ZoomStep })
}

// ResetZoom restores the default scale.
func (v *ViewerController) ResetZoom(ctx context.Context) error {
	return v.setZoom(ctx, func(float64) float64 { return domain.ZoomDefault })
}

// Rotate turns the page by 90 degrees and re-renders. Rotation is a
// viewport change: it never writes progress.
func (v *ViewerController) Rotate(ctx context.Context, dir domain.RotateDirection) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.handle == nil {
		return domain.ErrViewerClosed
	}

	v.session.RotationDegrees = domain.NormalizeRotation(
		v.session.RotationDegrees + int(dir)*domain.RotateStep)

	return v.renderLocked(ctx, v.session.CurrentPage, false)
}

// MarkPageComplete marks the current page done on the server, then
// refreshes the progress record. Unlike implicit sync, failures here
// are surfaced: the user asked for the write.
func (v *ViewerController) MarkPageComplete(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.handle == nil {
		return domain.ErrViewerClosed
	}

	if err := v.progress.MarkPage(ctx, v.session.MaterialID, v.session.CurrentPage); err != nil {
		return fmt.Errorf("marking page %d: %w", v.session.CurrentPage, err)
	}

	v.refreshProgressLocked(ctx)
	return nil
}

// MarkComplete sets the terminal completed state. Idempotent: marking
// an already-completed material succeeds.
func (v *ViewerController) MarkComplete(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.handle == nil {
		return domain.ErrViewerClosed
	}

	if err := v.progress.MarkComplete(ctx, v.session.MaterialID); err != nil {
		return fmt.Errorf("marking complete: %w", err)
	}

	v.refreshProgressLocked(ctx)
	return nil
}

// ToggleFullscreen flips the fullscreen flag.
func (v *ViewerController) ToggleFullscreen() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.session.Fullscreen = !v.session.Fullscreen
}

// ExitFullscreen leaves fullscreen. A no-op when already windowed, so
// the escape key can be bound unconditionally.
func (v *ViewerController) ExitFullscreen() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.session.Fullscreen = false
}

// SetViewportWidth informs the viewer of the available column budget.
func (v *ViewerController) SetViewportWidth(width int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if width > 0 {
		v.width = width
	}
}

// Session returns a copy of the current viewer state.
func (v *ViewerController) Session() domain.ViewerSession {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.session
}

// Page returns the most recently rendered page.
func (v *ViewerController) Page() *domain.RenderedPage {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.page
}

// Progress returns the last fetched progress record.
func (v *ViewerController) Progress() *domain.Progress {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.record
}

// Err returns the last viewer error.
func (v *ViewerController) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastErr
}

// setZoom applies a zoom mutation, persists the scale and re-renders
// the current page without a progress write.
func (v *ViewerController) setZoom(ctx context.Context, mutate func(float64) float64) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.handle == nil {
		return domain.ErrViewerClosed
	}

	scale := domain.ClampZoom(mutate(v.session.ZoomScale))
	if scale == v.session.ZoomScale {
		return nil
	}
	v.session.ZoomScale = scale

	if userID := v.userID(); userID != "" {
		if err := v.prefs.SaveZoom(ctx, userID, v.session.MaterialID, scale); err != nil {
			logger.Warn("Persisting zoom scale: %v", err)
		}
	}

	return v.renderLocked(ctx, v.session.CurrentPage, false)
}

// renderLocked draws a page. Out-of-range pages are silently ignored.
// userDriven selects whether the render carries an implicit progress
// write and a resume-position save.
func (v *ViewerController) renderLocked(ctx context.Context, page int, userDriven bool) error {
	if v.handle == nil {
		return domain.ErrViewerClosed
	}
	if !v.session.PageInRange(page) {
		return nil
	}

	pageChanged := page != v.session.CurrentPage

	v.session.State = domain.ViewerRendering
	rendered, err := v.handle.RenderPage(ctx, page, domain.Viewport{
		Scale:    v.session.ZoomScale,
		Rotation: v.session.RotationDegrees,
		Width:    v.width,
	})
	if err != nil {
		v.session.State = domain.ViewerError
		v.lastErr = err
		return err
	}

	v.page = rendered
	v.session.CurrentPage = page
	v.session.State = domain.ViewerReady
	v.lastErr = nil

	if userDriven && pageChanged {
		v.syncProgressLocked(ctx, page)
		v.saveLastPageLocked(ctx, page)
	}

	return nil
}

// syncProgressLocked proposes a percentage for the visible page. Sync
// is best-effort: failures are logged and swallowed, reading continues.
func (v *ViewerController) syncProgressLocked(ctx context.Context, page int) {
	if v.session.TotalPages <= 0 {
		return
	}

	update := domain.ProgressUpdate{
		Percentage:     domain.ProposedPercentage(page, v.session.TotalPages),
		CompletedPages: []int{page},
	}

	if err := v.progress.Update(ctx, v.session.MaterialID, update); err != nil {
		logger.Warn("Progress sync for %s page %d: %v", v.session.MaterialID, page, err)
		return
	}

	// The server decides what the write amounted to; re-read rather
	// than guessing, same as the explicit mark paths.
	v.refreshProgressLocked(ctx)
}

// saveLastPageLocked records the resume position locally, best-effort.
func (v *ViewerController) saveLastPageLocked(ctx context.Context, page int) {
	userID := v.userID()
	if userID == "" {
		return
	}
	if err := v.prefs.SaveLastPage(ctx, userID, v.session.MaterialID, page); err != nil {
		logger.Warn("Persisting resume page: %v", err)
	}
}

// refreshProgressLocked refetches the server record, best-effort.
func (v *ViewerController) refreshProgressLocked(ctx context.Context) {
	record, err := v.progress.Get(ctx, v.session.MaterialID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("Fetching progress for %s: %v", v.session.MaterialID, err)
		}
		return
	}
	v.record = record
}

// loadPrefs reads the stored viewer preferences, best-effort.
func (v *ViewerController) loadPrefs(ctx context.Context) *driven.ViewerPrefs {
	userID := v.userID()
	if userID == "" {
		return nil
	}
	prefs, err := v.prefs.GetPrefs(ctx, userID, v.session.MaterialID)
	if err != nil {
		logger.Warn("Loading viewer prefs: %v", err)
		return nil
	}
	return prefs
}

// resumeEnabled reads the resume-page config key, defaulting to on.
func (v *ViewerController) resumeEnabled() bool {
	if v.config == nil {
		return true
	}
	val, ok := v.config.Get(driven.ConfigKeyResumePage)
	if !ok {
		return true
	}
	b, isBool := val.(bool)
	return !isBool || b
}

// userID returns the current user ID, empty when logged out.
func (v *ViewerController) userID() string {
	if v.auth == nil {
		return ""
	}
	session := v.auth.Session()
	if session == nil || session.User == nil {
		return ""
	}
	return session.User.ID
}

// closeLocked releases the handle and resets all per-document state.
func (v *ViewerController) closeLocked() {
	if v.handle != nil {
		if err := v.handle.Close(); err != nil {
			logger.Debug("Closing document handle: %v", err)
		}
		v.handle = nil
	}
	v.session = domain.ViewerSession{State: domain.ViewerIdle}
	v.page = nil
	v.record = nil
	v.lastErr = nil
}

// failLocked records a fatal open error.
func (v *ViewerController) failLocked(err error) error {
	v.session.State = domain.ViewerError
	v.lastErr = err
	return err
}
