package driven

import (
	"context"

	"github.com/studia-labs/studia-cli/internal/core/domain"
)

// DocumentSource opens fetched document bytes and renders pages. The
// binary format is delegated entirely to the implementation; core only
// sees page counts and rendered viewports.
type DocumentSource interface {
	// Open parses the document bytes and returns a handle.
	// The bytes must already be fetched through the authenticated
	// API client.
	Open(ctx context.Context, data []byte) (DocumentHandle, error)

	// Validate checks that the bytes are a structurally sound
	// document without opening a handle. Used by file diagnostics.
	Validate(ctx context.Context, data []byte) error
}

// DocumentHandle is one open document.
type DocumentHandle interface {
	// PageCount returns the total number of pages.
	PageCount() int

	// RenderPage draws one page into the viewport. Page numbers are
	// 1-based; callers bound-check before calling.
	RenderPage(ctx context.Context, page int, vp domain.Viewport) (*domain.RenderedPage, error)

	// Close releases the handle.
	Close() error
}
