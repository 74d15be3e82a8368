package domain

import "time"

// ContentType classifies how a material is viewed.
type ContentType string

const (
	// ContentPDF is a paged document opened in the document viewer.
	ContentPDF ContentType = "pdf"

	// ContentVideo is played by an external video player.
	ContentVideo ContentType = "video"

	// ContentText is inline plain text shown in a scrolling view.
	ContentText ContentType = "text"
)

// Paged reports whether the content opens in the paged document viewer.
func (c ContentType) Paged() bool {
	return c == ContentPDF
}

// Material represents a learning material. Materials are created by an
// upload workflow and never mutated by this client beyond enrollment.
type Material struct {
	// ID is the unique identifier assigned by the server.
	ID string `json:"id"`

	// Title is the human-readable title.
	Title string `json:"title"`

	// Description is explanatory text shown in the catalog.
	Description string `json:"description"`

	// Department scopes who sees the material.
	Department string `json:"department"`

	// ContentType is "pdf", "video" or "text".
	ContentType ContentType `json:"content_type"`

	// FilePath is the server-side storage location, empty when the
	// material carries inline content instead of a file.
	FilePath string `json:"file_path"`

	// Content is the inline text for ContentText materials.
	Content string `json:"content"`

	// UploadedBy is the user ID of the uploader.
	UploadedBy string `json:"uploaded_by"`

	// UploadedAt is when the material was created.
	UploadedAt time.Time `json:"uploaded_at"`

	// FileExists reports whether the stored file is still on disk.
	// Nil when the server did not include the diagnostic.
	FileExists *bool `json:"file_exists"`

	// TotalPages is the page count, nil until the server or the
	// renderer has reported it.
	TotalPages *int `json:"total_pages"`
}

// HasFile reports whether the material has a resolvable byte stream.
func (m *Material) HasFile() bool {
	return m != nil && m.FilePath != ""
}

// Ghost reports whether the material references a file that is missing
// on the server. Ghost materials can only be force-deleted.
func (m *Material) Ghost() bool {
	return m.HasFile() && m.FileExists != nil && !*m.FileExists
}

// FileInfo is the server-side diagnostic for a stored material file.
type FileInfo struct {
	MaterialID  string `json:"material_id"`
	FileName    string `json:"file_name"`
	SizeBytes   int64  `json:"size_bytes"`
	IsPDF       bool   `json:"is_pdf"`
	MD5         string `json:"md5"`
	HeaderHex   string `json:"header_hex"`
	HeaderValid bool   `json:"pdf_header_valid"`
}

// MaterialUpload is the input for creating a material.
type MaterialUpload struct {
	Title       string `validate:"required"`
	Description string `validate:"required"`
	Department  string `validate:"required"`
	ContentType string `validate:"required,oneof=pdf video text"`

	// FileName and FileBytes carry the uploaded file, exclusive
	// with inline Content.
	FileName  string
	FileBytes []byte
	Content   string
}
