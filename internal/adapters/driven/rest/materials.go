package rest

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/studia-labs/studia-cli/internal/core/domain"
	"github.com/studia-labs/studia-cli/internal/core/ports/driven"
)

// Ensure MaterialAPI implements the interface.
var _ driven.MaterialAPI = (*MaterialAPI)(nil)

// MaterialAPI implements driven.MaterialAPI against /materials.
type MaterialAPI struct {
	client *Client
}

// NewMaterialAPI creates the materials endpoint group.
func NewMaterialAPI(client *Client) *MaterialAPI {
	return &MaterialAPI{client: client}
}

// List returns all materials, optionally filtered by department.
func (m *MaterialAPI) List(ctx context.Context, department string) ([]domain.Material, error) {
	path := "/materials"
	if department != "" {
		path += "?department=" + url.QueryEscape(department)
	}
	var materials []domain.Material
	if err := m.client.do(ctx, http.MethodGet, path, nil, &materials); err != nil {
		return nil, err
	}
	return materials, nil
}

// ListEnrolled returns the materials the user is enrolled in.
func (m *MaterialAPI) ListEnrolled(ctx context.Context) ([]domain.Material, error) {
	var materials []domain.Material
	if err := m.client.do(ctx, http.MethodGet, "/materials/enrolled", nil, &materials); err != nil {
		return nil, err
	}
	return materials, nil
}

// Get returns one material by ID.
func (m *MaterialAPI) Get(ctx context.Context, id string) (*domain.Material, error) {
	var material domain.Material
	if err := m.client.do(ctx, http.MethodGet, "/materials/"+url.PathEscape(id), nil, &material); err != nil {
		return nil, err
	}
	return &material, nil
}

// FetchFile returns the raw bytes for a material's file.
func (m *MaterialAPI) FetchFile(ctx context.Context, id string) ([]byte, error) {
	return m.client.doBytes(ctx, http.MethodGet, "/materials/"+url.PathEscape(id)+"/file")
}

// FileInfo returns server-side diagnostics for the stored file.
func (m *MaterialAPI) FileInfo(ctx context.Context, id string) (*domain.FileInfo, error) {
	var info domain.FileInfo
	if err := m.client.do(ctx, http.MethodGet, "/materials/"+url.PathEscape(id)+"/file-info", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Enroll enrolls the current user in a material.
func (m *MaterialAPI) Enroll(ctx context.Context, id string) error {
	return m.client.do(ctx, http.MethodPut, "/materials/"+url.PathEscape(id)+"/enroll", nil, nil)
}

// Upload creates a new material from a multipart form: metadata fields
// plus either a file part or inline content.
func (m *MaterialAPI) Upload(ctx context.Context, input domain.MaterialUpload) (*domain.Material, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"title":        input.Title,
		"description":  input.Description,
		"department":   input.Department,
		"content_type": input.ContentType,
	}
	if input.Content != "" {
		fields["content"] = input.Content
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("writing form field %s: %w", name, err)
		}
	}
	if len(input.FileBytes) > 0 {
		part, err := w.CreateFormFile("file", input.FileName)
		if err != nil {
			return nil, fmt.Errorf("creating file part: %w", err)
		}
		if _, err := part.Write(input.FileBytes); err != nil {
			return nil, fmt.Errorf("writing file part: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("closing form: %w", err)
	}

	resp, err := m.client.roundTrip(ctx, http.MethodPost, "/materials", &buf, w.FormDataContentType())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := m.client.checkStatus(resp); err != nil {
		return nil, err
	}

	var material domain.Material
	if err := decodeJSON(resp.Body, &material); err != nil {
		return nil, err
	}
	return &material, nil
}

// Delete removes a material the user uploaded.
func (m *MaterialAPI) Delete(ctx context.Context, id string) error {
	return m.client.do(ctx, http.MethodDelete, "/materials/"+url.PathEscape(id), nil, nil)
}

// ForceDelete removes a ghost material whose stored file is missing.
func (m *MaterialAPI) ForceDelete(ctx context.Context, id string) error {
	return m.client.do(ctx, http.MethodDelete, "/materials/"+url.PathEscape(id)+"/force", nil, nil)
}
