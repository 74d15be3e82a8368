package domain

// Viewer zoom and rotation bounds. Zoom is clamped, never rejected;
// rotation is normalized into {0, 90, 180, 270}.
const (
	ZoomMin     = 0.5
	ZoomMax     = 3.0
	ZoomStep    = 0.15
	ZoomDefault = 1.15

	RotateStep = 90
)

// RenderState tracks the lifecycle of an open document in the viewer.
type RenderState int

const (
	// ViewerIdle means no document is loaded.
	ViewerIdle RenderState = iota

	// ViewerLoading means the byte stream has been requested.
	ViewerLoading

	// ViewerReady means the document handle is open and the page
	// count is known.
	ViewerReady

	// ViewerRendering means a specific page is being drawn.
	ViewerRendering

	// ViewerError means the stream or a render failed. Recoverable
	// by re-invoking open or navigating.
	ViewerError
)

// String returns the state name for status lines and logs.
func (s RenderState) String() string {
	switch s {
	case ViewerIdle:
		return "idle"
	case ViewerLoading:
		return "loading"
	case ViewerReady:
		return "ready"
	case ViewerRendering:
		return "rendering"
	case ViewerError:
		return "error"
	default:
		return "unknown"
	}
}

// RotateDirection selects the rotation step direction.
type RotateDirection int

const (
	// RotateRight turns the page 90 degrees clockwise.
	RotateRight RotateDirection = 1

	// RotateLeft turns the page 90 degrees counter-clockwise.
	RotateLeft RotateDirection = -1
)

// ViewerSession is the ephemeral client-side state of one open document.
// It is created when a document is opened and destroyed on close. Only
// ZoomScale (and, when resume is enabled, CurrentPage) outlive it via
// the local state store.
type ViewerSession struct {
	// MaterialID identifies the open document.
	MaterialID string

	// CurrentPage is the 1-based visible page.
	CurrentPage int

	// TotalPages is the page count reported by the renderer,
	// zero until known.
	TotalPages int

	// ZoomScale is the viewport scale in [ZoomMin, ZoomMax].
	ZoomScale float64

	// RotationDegrees is normalized into {0, 90, 180, 270}.
	RotationDegrees int

	// Fullscreen reports whether the viewer occupies the whole screen.
	Fullscreen bool

	// State is the render lifecycle state.
	State RenderState
}

// PageInRange reports whether the page is valid for this session.
// Out-of-range render requests are silently ignored.
func (s *ViewerSession) PageInRange(page int) bool {
	return s != nil && s.TotalPages > 0 && page >= 1 && page <= s.TotalPages
}

// ClampZoom bounds a zoom scale to [ZoomMin, ZoomMax].
func ClampZoom(scale float64) float64 {
	if scale < ZoomMin {
		return ZoomMin
	}
	if scale > ZoomMax {
		return ZoomMax
	}
	return scale
}

// NormalizeRotation reduces any number of 90-degree turns into
// {0, 90, 180, 270}.
func NormalizeRotation(degrees int) int {
	r := degrees % 360
	if r < 0 {
		r += 360
	}
	return r
}

// Viewport describes how a page should be drawn.
type Viewport struct {
	// Scale is the zoom factor applied to the page.
	Scale float64

	// Rotation is the normalized rotation in degrees.
	Rotation int

	// Width is the target width in terminal cells.
	Width int
}

// RenderedPage is the outcome of drawing one page into a viewport.
type RenderedPage struct {
	// PageNumber is the 1-based page that was drawn.
	PageNumber int

	// Lines is the page content laid out for the viewport.
	Lines []string
}
