package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/studia-labs/studia-cli/internal/core/domain"
	"github.com/studia-labs/studia-cli/internal/core/ports/driven"
)

// Ensure ProgressAPI implements the interface.
var _ driven.ProgressAPI = (*ProgressAPI)(nil)

// ProgressAPI implements driven.ProgressAPI against /progress.
type ProgressAPI struct {
	client *Client
}

// NewProgressAPI creates the progress endpoint group.
func NewProgressAPI(client *Client) *ProgressAPI {
	return &ProgressAPI{client: client}
}

// Get reads the progress record for a material.
func (p *ProgressAPI) Get(ctx context.Context, materialID string) (*domain.Progress, error) {
	var progress domain.Progress
	if err := p.client.do(ctx, http.MethodGet, "/progress/"+url.PathEscape(materialID), nil, &progress); err != nil {
		return nil, err
	}
	if progress.MaterialID == "" {
		progress.MaterialID = materialID
	}
	return &progress, nil
}

// Update proposes a percentage and completed pages for a material.
func (p *ProgressAPI) Update(ctx context.Context, materialID string, update domain.ProgressUpdate) error {
	return p.client.do(ctx, http.MethodPut, "/progress/"+url.PathEscape(materialID), update, nil)
}

// MarkPage marks a single page as completed.
func (p *ProgressAPI) MarkPage(ctx context.Context, materialID string, page int) error {
	path := fmt.Sprintf("/progress/%s/page/%d", url.PathEscape(materialID), page)
	return p.client.do(ctx, http.MethodPut, path, nil, nil)
}

// MarkComplete sets the terminal completed state for a material.
func (p *ProgressAPI) MarkComplete(ctx context.Context, materialID string) error {
	return p.client.do(ctx, http.MethodPut, "/progress/"+url.PathEscape(materialID)+"/complete", nil, nil)
}
