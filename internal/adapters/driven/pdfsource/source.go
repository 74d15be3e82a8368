// Package pdfsource implements the driven DocumentSource port for PDF
// materials. Structural validation and page counting are delegated to
// pdfcpu; per-page text extraction to ledongthuc/pdf. The terminal
// "canvas" is the extracted page text laid out for the viewport.
package pdfsource

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/studia-labs/studia-cli/internal/core/domain"
	"github.com/studia-labs/studia-cli/internal/core/ports/driven"
)

// pdfMagic is the required header for a PDF byte stream.
var pdfMagic = []byte("%PDF")

// minContentWidth is the narrowest column a page is laid out into.
const minContentWidth = 20

// Ensure Source implements the interface.
var _ driven.DocumentSource = (*Source)(nil)

// Source opens PDF byte streams.
type Source struct {
	conf *model.Configuration
}

// New creates a PDF document source with relaxed validation, matching
// how browser renderers tolerate slightly malformed files.
func New() *Source {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Source{conf: conf}
}

// Open parses the fetched bytes and returns a page-rendering handle.
func (s *Source) Open(_ context.Context, data []byte) (driven.DocumentHandle, error) {
	if !bytes.HasPrefix(data, pdfMagic) {
		return nil, fmt.Errorf("%w: not a PDF stream", domain.ErrLoadFailed)
	}

	pages, err := api.PageCount(bytes.NewReader(data), s.conf)
	if err != nil {
		return nil, fmt.Errorf("%w: counting pages: %v", domain.ErrLoadFailed, err)
	}
	if pages < 1 {
		return nil, fmt.Errorf("%w: document has no pages", domain.ErrLoadFailed)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: opening document: %v", domain.ErrLoadFailed, err)
	}

	return &handle{reader: reader, pages: pages}, nil
}

// Validate checks the header and runs pdfcpu's structural validation.
func (s *Source) Validate(_ context.Context, data []byte) error {
	if !bytes.HasPrefix(data, pdfMagic) {
		return fmt.Errorf("%w: missing %%PDF header", domain.ErrInvalidInput)
	}
	if err := api.Validate(bytes.NewReader(data), s.conf); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

// HasMagic reports whether the bytes carry the PDF header. Exposed for
// file diagnostics that only need the cheap check.
func HasMagic(data []byte) bool {
	return bytes.HasPrefix(data, pdfMagic)
}

// handle is one open PDF document.
type handle struct {
	reader *pdf.Reader
	pages  int
}

// PageCount returns the total number of pages.
func (h *handle) PageCount() int {
	return h.pages
}

// RenderPage extracts the page text and lays it out for the viewport.
func (h *handle) RenderPage(_ context.Context, page int, vp domain.Viewport) (*domain.RenderedPage, error) {
	if h.reader == nil {
		return nil, domain.ErrViewerClosed
	}
	if page < 1 || page > h.pages {
		return nil, fmt.Errorf("%w: page %d of %d", domain.ErrRenderFailed, page, h.pages)
	}

	p := h.reader.Page(page)
	if p.V.IsNull() {
		return nil, fmt.Errorf("%w: page %d missing", domain.ErrRenderFailed, page)
	}

	text, err := p.GetPlainText(nil)
	if err != nil {
		return nil, fmt.Errorf("%w: page %d: %v", domain.ErrRenderFailed, page, err)
	}

	return &domain.RenderedPage{
		PageNumber: page,
		Lines:      Layout(text, vp),
	}, nil
}

// Close releases the handle.
func (h *handle) Close() error {
	h.reader = nil
	return nil
}

// Layout wraps page text into lines for the viewport. The zoom scale
// stretches the column budget the same way a raster viewport would;
// rotation is carried in the session and does not reflow text.
func Layout(text string, vp domain.Viewport) []string {
	width := ContentWidth(vp)

	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		raw = strings.TrimRight(raw, " \t")
		if raw == "" {
			lines = append(lines, "")
			continue
		}
		for len(raw) > width {
			cut := strings.LastIndex(raw[:width], " ")
			if cut <= 0 {
				cut = width
			}
			lines = append(lines, strings.TrimRight(raw[:cut], " "))
			raw = strings.TrimLeft(raw[cut:], " ")
		}
		lines = append(lines, raw)
	}
	return lines
}

// ContentWidth derives the wrap column from the viewport width and
// zoom scale, floored at a readable minimum.
func ContentWidth(vp domain.Viewport) int {
	width := int(math.Round(float64(vp.Width) * vp.Scale / domain.ZoomDefault))
	if width < minContentWidth {
		width = minContentWidth
	}
	return width
}
