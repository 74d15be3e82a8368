package driving

import (
	"context"

	"github.com/studia-labs/studia-cli/internal/core/domain"
)

// Viewer is the document viewing controller: one open paged document,
// its zoom/rotation/page state, and the loose synchronization of the
// server-side reading progress with the visible page.
//
// Renders are strictly sequential per document: the last requested
// page/viewport wins. Progress-sync failures are logged and swallowed,
// never surfaced as viewer errors.
type Viewer interface {
	// Open fetches the document bytes and renders the first page
	// (or the resumed page). Fails with domain.ErrNotAvailable when
	// the material has no file.
	Open(ctx context.Context, material *domain.Material) error

	// Close releases the document and returns the viewer to idle.
	Close()

	// RenderPage draws the given page. Out-of-range pages are
	// silently ignored. User-driven changes trigger an implicit
	// progress write; viewport-only re-renders never do.
	RenderPage(ctx context.Context, page int) error

	// NextPage and PrevPage are user-driven page turns.
	NextPage(ctx context.Context) error
	PrevPage(ctx context.Context) error

	// FirstPage and LastPage jump to the document bounds.
	FirstPage(ctx context.Context) error
	LastPage(ctx context.Context) error

	// ZoomIn, ZoomOut and ResetZoom adjust the scale within
	// [domain.ZoomMin, domain.ZoomMax] and re-render without a
	// progress write. The scale is persisted per document.
	ZoomIn(ctx context.Context) error
	ZoomOut(ctx context.Context) error
	ResetZoom(ctx context.Context) error

	// Rotate turns the page by 90 degrees and re-renders without
	// a progress write.
	Rotate(ctx context.Context, dir domain.RotateDirection) error

	// MarkPageComplete issues the explicit per-page completion call
	// for the current page, then refreshes the progress record.
	MarkPageComplete(ctx context.Context) error

	// MarkComplete sets the terminal completed state, then
	// refreshes the progress record. Idempotent.
	MarkComplete(ctx context.Context) error

	// ToggleFullscreen flips fullscreen; ExitFullscreen leaves it.
	ToggleFullscreen()
	ExitFullscreen()

	// SetViewportWidth informs the viewer of the available column
	// budget. Takes effect on the next render.
	SetViewportWidth(width int)

	// Session returns a copy of the current viewer state.
	Session() domain.ViewerSession

	// Page returns the most recently rendered page, nil before the
	// first successful render.
	Page() *domain.RenderedPage

	// Progress returns the last fetched progress record, nil until
	// the first read succeeds.
	Progress() *domain.Progress

	// Err returns the last viewer-fatal or transient error.
	Err() error
}
