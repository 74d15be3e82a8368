package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studia-labs/studia-cli/internal/core/domain"
)

func pdfMaterial(id string) *domain.Material {
	return &domain.Material{
		ID:          id,
		Title:       "Test Document",
		ContentType: domain.ContentPDF,
		FilePath:    "uploads/" + id + ".pdf",
	}
}

type viewerFixture struct {
	viewer    *ViewerController
	materials *fakeMaterialAPI
	progress  *fakeProgressAPI
	source    *fakeDocSource
	prefs     *fakePrefsStore
	config    *mapConfig
}

func newViewerFixture(t *testing.T, pages int) *viewerFixture {
	t.Helper()

	materials := &fakeMaterialAPI{
		fileData: map[string][]byte{"mat-1": []byte("%PDF-1.7 data")},
	}
	progress := &fakeProgressAPI{}
	source := &fakeDocSource{pages: pages}
	prefs := newFakePrefsStore()
	config := newMapConfig()

	viewer := NewViewerController(materials, progress, source, prefs, config, loggedInAuth("u1"))
	return &viewerFixture{
		viewer:    viewer,
		materials: materials,
		progress:  progress,
		source:    source,
		prefs:     prefs,
		config:    config,
	}
}

func (f *viewerFixture) open(t *testing.T) {
	t.Helper()
	require.NoError(t, f.viewer.Open(context.Background(), pdfMaterial("mat-1")))
}

// ==================== Open / Close ====================

func TestOpenRendersFirstPage(t *testing.T) {
	f := newViewerFixture(t, 10)
	f.open(t)

	session := f.viewer.Session()
	assert.Equal(t, "mat-1", session.MaterialID)
	assert.Equal(t, 1, session.CurrentPage)
	assert.Equal(t, 10, session.TotalPages)
	assert.Equal(t, domain.ViewerReady, session.State)
	assert.InDelta(t, domain.ZoomDefault, session.ZoomScale, 1e-9)

	page := f.viewer.Page()
	require.NotNil(t, page)
	assert.Equal(t, 1, page.PageNumber)
}

func TestOpenDoesNotWriteProgress(t *testing.T) {
	f := newViewerFixture(t, 10)
	f.open(t)

	assert.Empty(t, f.progress.callKinds(), "opening is not a user page turn")
}

func TestOpenRejectsMaterialWithoutFile(t *testing.T) {
	f := newViewerFixture(t, 10)

	material := pdfMaterial("mat-1")
	material.FilePath = ""

	err := f.viewer.Open(context.Background(), material)
	assert.ErrorIs(t, err, domain.ErrNotAvailable)
}

func TestOpenRejectsNonPagedContent(t *testing.T) {
	f := newViewerFixture(t, 10)

	material := pdfMaterial("mat-1")
	material.ContentType = domain.ContentVideo

	err := f.viewer.Open(context.Background(), material)
	assert.ErrorIs(t, err, domain.ErrNotAvailable)
}

func TestOpenFetchFailureEntersErrorState(t *testing.T) {
	f := newViewerFixture(t, 10)
	f.materials.fetchErr = domain.ErrServerError

	err := f.viewer.Open(context.Background(), pdfMaterial("mat-1"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLoadFailed)
	assert.Equal(t, domain.ViewerError, f.viewer.Session().State)
	assert.Error(t, f.viewer.Err())
}

func TestCloseReturnsToIdle(t *testing.T) {
	f := newViewerFixture(t, 10)
	f.open(t)

	f.viewer.Close()

	session := f.viewer.Session()
	assert.Equal(t, domain.ViewerIdle, session.State)
	assert.Nil(t, f.viewer.Page())
	assert.True(t, f.source.lastHandle.closed)

	assert.ErrorIs(t, f.viewer.NextPage(context.Background()), domain.ErrViewerClosed)
}

// ==================== Navigation and implicit sync ====================

func TestPageTurnWritesProgress(t *testing.T) {
	f := newViewerFixture(t, 10)
	f.open(t)

	require.NoError(t, f.viewer.NextPage(context.Background()))

	assert.Equal(t, 2, f.viewer.Session().CurrentPage)
	require.Len(t, f.progress.calls, 1)
	assert.Equal(t, "update", f.progress.calls[0].kind)
	assert.InDelta(t, 20.0, f.progress.calls[0].update.Percentage, 1e-9)
	assert.Equal(t, []int{2}, f.progress.calls[0].update.CompletedPages,
		"the visited page goes in the body")
}

func TestPageOneOfLongDocumentStillSyncs(t *testing.T) {
	// On a 250-page document page 1 rounds to 0%. That is still a
	// visited page, not a reason to skip the write.
	f := newViewerFixture(t, 250)
	f.open(t)

	require.NoError(t, f.viewer.NextPage(context.Background()))
	require.NoError(t, f.viewer.PrevPage(context.Background()))

	require.Len(t, f.progress.calls, 2)
	assert.InDelta(t, 0.0, f.progress.calls[1].update.Percentage, 1e-9)
	assert.Equal(t, []int{1}, f.progress.calls[1].update.CompletedPages)
}

func TestImplicitSyncRefetchesServerRecord(t *testing.T) {
	f := newViewerFixture(t, 10)
	f.open(t)

	// The server may fold the proposal into a different stored value.
	// The displayed record must come from the re-read, never from the
	// client's own arithmetic.
	f.progress.record = &domain.Progress{Percentage: 70}

	require.NoError(t, f.viewer.NextPage(context.Background()))

	record := f.viewer.Progress()
	require.NotNil(t, record)
	assert.InDelta(t, 70.0, record.Percentage, 1e-9)
}

func TestProposedPercentageRounds(t *testing.T) {
	f := newViewerFixture(t, 3)
	f.open(t)

	require.NoError(t, f.viewer.NextPage(context.Background()))

	require.Len(t, f.progress.calls, 1)
	// 2/3 of the document, rounded.
	assert.InDelta(t, 67.0, f.progress.calls[0].update.Percentage, 1e-9)
}

func TestOutOfRangeRenderIsSilentNoop(t *testing.T) {
	f := newViewerFixture(t, 3)
	f.open(t)

	require.NoError(t, f.viewer.RenderPage(context.Background(), 99))
	require.NoError(t, f.viewer.RenderPage(context.Background(), 0))
	require.NoError(t, f.viewer.PrevPage(context.Background()))

	assert.Equal(t, 1, f.viewer.Session().CurrentPage)
	assert.Empty(t, f.progress.callKinds())
	assert.NoError(t, f.viewer.Err())
}

func TestFirstAndLastPage(t *testing.T) {
	f := newViewerFixture(t, 8)
	f.open(t)

	require.NoError(t, f.viewer.LastPage(context.Background()))
	assert.Equal(t, 8, f.viewer.Session().CurrentPage)

	require.NoError(t, f.viewer.FirstPage(context.Background()))
	assert.Equal(t, 1, f.viewer.Session().CurrentPage)

	// Both jumps changed the page, so both synced.
	assert.Equal(t, []string{"update", "update"}, f.progress.callKinds())
}

func TestSyncFailureDoesNotBlockReading(t *testing.T) {
	f := newViewerFixture(t, 10)
	f.open(t)
	f.progress.updateErr = domain.ErrServerError

	require.NoError(t, f.viewer.NextPage(context.Background()))
	require.NoError(t, f.viewer.NextPage(context.Background()))

	assert.Equal(t, 3, f.viewer.Session().CurrentPage)
	assert.NoError(t, f.viewer.Err(), "sync failures are swallowed")
}

func TestRenderFailureSurfaces(t *testing.T) {
	f := newViewerFixture(t, 10)
	f.open(t)
	f.source.lastHandle.renderErr = domain.ErrRenderFailed

	err := f.viewer.NextPage(context.Background())
	require.Error(t, err)
	assert.Equal(t, domain.ViewerError, f.viewer.Session().State)
	// The visible page is unchanged.
	assert.Equal(t, 1, f.viewer.Session().CurrentPage)

	// Navigation recovers once rendering works again.
	f.source.lastHandle.renderErr = nil
	require.NoError(t, f.viewer.NextPage(context.Background()))
	assert.Equal(t, domain.ViewerReady, f.viewer.Session().State)
	assert.NoError(t, f.viewer.Err())
}

// ==================== Zoom ====================

func TestZoomStepsAndClamps(t *testing.T) {
	f := newViewerFixture(t, 10)
	f.open(t)
	ctx := context.Background()

	require.NoError(t, f.viewer.ZoomIn(ctx))
	assert.InDelta(t, domain.ZoomDefault+domain.ZoomStep, f.viewer.Session().ZoomScale, 1e-9)

	for i := 0; i < 50; i++ {
		require.NoError(t, f.viewer.ZoomIn(ctx))
	}
	assert.InDelta(t, domain.ZoomMax, f.viewer.Session().ZoomScale, 1e-9)

	for i := 0; i < 50; i++ {
		require.NoError(t, f.viewer.ZoomOut(ctx))
	}
	assert.InDelta(t, domain.ZoomMin, f.viewer.Session().ZoomScale, 1e-9)

	require.NoError(t, f.viewer.ResetZoom(ctx))
	assert.InDelta(t, domain.ZoomDefault, f.viewer.Session().ZoomScale, 1e-9)
}

func TestZoomNeverWritesProgress(t *testing.T) {
	f := newViewerFixture(t, 10)
	f.open(t)
	ctx := context.Background()

	require.NoError(t, f.viewer.ZoomIn(ctx))
	require.NoError(t, f.viewer.ZoomOut(ctx))
	require.NoError(t, f.viewer.ResetZoom(ctx))

	assert.Empty(t, f.progress.callKinds(), "viewport changes must not sync progress")
}

func TestZoomRerendersCurrentPage(t *testing.T) {
	f := newViewerFixture(t, 10)
	f.open(t)

	before := len(f.source.lastHandle.renders)
	require.NoError(t, f.viewer.ZoomIn(context.Background()))

	renders := f.source.lastHandle.renders
	require.Len(t, renders, before+1)
	assert.InDelta(t, domain.ZoomDefault+domain.ZoomStep, renders[len(renders)-1].Scale, 1e-9)
}

func TestZoomPersistedPerDocument(t *testing.T) {
	f := newViewerFixture(t, 10)
	f.open(t)

	require.NoError(t, f.viewer.ZoomIn(context.Background()))
	require.NoError(t, f.viewer.ZoomIn(context.Background()))
	f.viewer.Close()

	// Reopening restores the stored zoom.
	f.open(t)
	assert.InDelta(t, domain.ZoomDefault+2*domain.ZoomStep, f.viewer.Session().ZoomScale, 1e-9)
}

// ==================== Rotation ====================

func TestRotationNormalizes(t *testing.T) {
	f := newViewerFixture(t, 10)
	f.open(t)
	ctx := context.Background()

	require.NoError(t, f.viewer.Rotate(ctx, domain.RotateRight))
	assert.Equal(t, 90, f.viewer.Session().RotationDegrees)

	for i := 0; i < 3; i++ {
		require.NoError(t, f.viewer.Rotate(ctx, domain.RotateRight))
	}
	assert.Equal(t, 0, f.viewer.Session().RotationDegrees, "four right turns return to upright")

	require.NoError(t, f.viewer.Rotate(ctx, domain.RotateLeft))
	assert.Equal(t, 270, f.viewer.Session().RotationDegrees)
}

func TestRotationNeverWritesProgress(t *testing.T) {
	f := newViewerFixture(t, 10)
	f.open(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, f.viewer.Rotate(context.Background(), domain.RotateRight))
	}
	assert.Empty(t, f.progress.callKinds())
}

// ==================== Explicit progress actions ====================

func TestMarkPageComplete(t *testing.T) {
	f := newViewerFixture(t, 10)
	f.progress.record = &domain.Progress{Percentage: 30, CompletedPages: []int{1, 2}}
	f.open(t)

	require.NoError(t, f.viewer.NextPage(context.Background()))
	require.NoError(t, f.viewer.MarkPageComplete(context.Background()))

	kinds := f.progress.callKinds()
	assert.Contains(t, kinds, "page")
	require.NotNil(t, f.viewer.Progress())

	for _, c := range f.progress.calls {
		if c.kind == "page" {
			assert.Equal(t, 2, c.page)
		}
	}
}

func TestMarkPageCompleteSurfacesErrors(t *testing.T) {
	f := newViewerFixture(t, 10)
	f.open(t)
	f.progress.markErr = domain.ErrServerError

	err := f.viewer.MarkPageComplete(context.Background())
	assert.ErrorIs(t, err, domain.ErrServerError)
}

func TestMarkCompleteIsIdempotent(t *testing.T) {
	f := newViewerFixture(t, 10)
	f.progress.record = &domain.Progress{Completed: true, Percentage: 100}
	f.open(t)

	require.NoError(t, f.viewer.MarkComplete(context.Background()))
	require.NoError(t, f.viewer.MarkComplete(context.Background()))

	record := f.viewer.Progress()
	require.NotNil(t, record)
	assert.True(t, record.Completed)
}

// ==================== Resume ====================

func TestReopenResumesLastPage(t *testing.T) {
	f := newViewerFixture(t, 10)
	f.open(t)
	ctx := context.Background()

	require.NoError(t, f.viewer.NextPage(ctx))
	require.NoError(t, f.viewer.NextPage(ctx))
	require.NoError(t, f.viewer.NextPage(ctx))
	f.viewer.Close()

	f.open(t)
	assert.Equal(t, 4, f.viewer.Session().CurrentPage)
}

func TestResumeDisabledByConfig(t *testing.T) {
	f := newViewerFixture(t, 10)
	require.NoError(t, f.config.Set("viewer.resume_page", false))

	f.open(t)
	require.NoError(t, f.viewer.NextPage(context.Background()))
	f.viewer.Close()

	f.open(t)
	assert.Equal(t, 1, f.viewer.Session().CurrentPage)
}

func TestResumeIgnoresOutOfRangePage(t *testing.T) {
	f := newViewerFixture(t, 10)
	require.NoError(t, f.prefs.SaveLastPage(context.Background(), "u1", "mat-1", 42))

	f.open(t)
	assert.Equal(t, 1, f.viewer.Session().CurrentPage)
}

// ==================== Fullscreen and viewport ====================

func TestFullscreenToggleAndExit(t *testing.T) {
	f := newViewerFixture(t, 10)
	f.open(t)

	f.viewer.ToggleFullscreen()
	assert.True(t, f.viewer.Session().Fullscreen)

	f.viewer.ExitFullscreen()
	assert.False(t, f.viewer.Session().Fullscreen)

	// Exiting when windowed stays windowed.
	f.viewer.ExitFullscreen()
	assert.False(t, f.viewer.Session().Fullscreen)
}

func TestViewportWidthFlowsIntoRenders(t *testing.T) {
	f := newViewerFixture(t, 10)
	f.open(t)

	f.viewer.SetViewportWidth(120)
	require.NoError(t, f.viewer.NextPage(context.Background()))

	renders := f.source.lastHandle.renders
	require.NotEmpty(t, renders)
	assert.Equal(t, 120, renders[len(renders)-1].Width)
}

func TestOperationsOnClosedViewer(t *testing.T) {
	f := newViewerFixture(t, 10)
	ctx := context.Background()

	assert.ErrorIs(t, f.viewer.NextPage(ctx), domain.ErrViewerClosed)
	assert.ErrorIs(t, f.viewer.ZoomIn(ctx), domain.ErrViewerClosed)
	assert.ErrorIs(t, f.viewer.Rotate(ctx, domain.RotateRight), domain.ErrViewerClosed)
	assert.ErrorIs(t, f.viewer.MarkComplete(ctx), domain.ErrViewerClosed)
	assert.True(t, errors.Is(f.viewer.MarkPageComplete(ctx), domain.ErrViewerClosed))
}
