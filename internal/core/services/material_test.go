package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studia-labs/studia-cli/internal/core/domain"
)

func newMaterialService(api *fakeMaterialAPI, source *fakeDocSource) *MaterialService {
	if source == nil {
		source = &fakeDocSource{}
	}
	return NewMaterialService(api, source)
}

func TestListFiltersByDepartment(t *testing.T) {
	api := &fakeMaterialAPI{materials: []domain.Material{
		{ID: "m1", Department: "CS"},
		{ID: "m2", Department: "EE"},
	}}
	svc := newMaterialService(api, nil)

	all, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	cs, err := svc.List(context.Background(), "CS")
	require.NoError(t, err)
	require.Len(t, cs, 1)
	assert.Equal(t, "m1", cs[0].ID)
}

func TestUploadValidatesRequiredFields(t *testing.T) {
	svc := newMaterialService(&fakeMaterialAPI{}, nil)

	_, err := svc.Upload(context.Background(), domain.MaterialUpload{Title: "only a title"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUploadPDFRequiresFile(t *testing.T) {
	svc := newMaterialService(&fakeMaterialAPI{}, nil)

	_, err := svc.Upload(context.Background(), domain.MaterialUpload{
		Title:       "Doc",
		Description: "desc",
		Department:  "CS",
		ContentType: "pdf",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUploadPDFValidatesBytes(t *testing.T) {
	source := &fakeDocSource{validateErr: domain.ErrInvalidInput}
	svc := newMaterialService(&fakeMaterialAPI{}, source)

	_, err := svc.Upload(context.Background(), domain.MaterialUpload{
		Title:       "Doc",
		Description: "desc",
		Department:  "CS",
		ContentType: "pdf",
		FileName:    "doc.pdf",
		FileBytes:   []byte("junk"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUploadTextRequiresContent(t *testing.T) {
	svc := newMaterialService(&fakeMaterialAPI{}, nil)

	_, err := svc.Upload(context.Background(), domain.MaterialUpload{
		Title:       "Notes",
		Description: "desc",
		Department:  "CS",
		ContentType: "text",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUploadPassesValidMaterial(t *testing.T) {
	api := &fakeMaterialAPI{}
	svc := newMaterialService(api, nil)

	created, err := svc.Upload(context.Background(), domain.MaterialUpload{
		Title:       "Notes",
		Description: "desc",
		Department:  "CS",
		ContentType: "text",
		Content:     "inline text",
	})
	require.NoError(t, err)
	assert.Equal(t, "uploaded", created.ID)
	require.Len(t, api.uploaded, 1)
}

func TestDeleteRoutesForce(t *testing.T) {
	api := &fakeMaterialAPI{}
	svc := newMaterialService(api, nil)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "m1", false))
	require.NoError(t, svc.Delete(ctx, "m2", true))

	assert.Equal(t, []string{"m1"}, api.deleted)
	assert.Equal(t, []string{"m2"}, api.forced)
}

func TestVerifyReportsHeaderAndStructure(t *testing.T) {
	api := &fakeMaterialAPI{
		fileData: map[string][]byte{"m1": []byte("%PDF-1.7 content")},
		fileInfo: map[string]*domain.FileInfo{
			"m1": {MaterialID: "m1", FileName: "doc.pdf", IsPDF: true},
		},
	}
	svc := newMaterialService(api, &fakeDocSource{})

	report, err := svc.Verify(context.Background(), "m1")
	require.NoError(t, err)

	assert.True(t, report.HeaderValid)
	assert.True(t, report.StructureValid)
	assert.NoError(t, report.StructureErr)
	assert.Equal(t, int64(len("%PDF-1.7 content")), report.SizeBytes)
	require.NotNil(t, report.Info)
	assert.Equal(t, "doc.pdf", report.Info.FileName)
}

func TestVerifyFlagsBrokenFile(t *testing.T) {
	api := &fakeMaterialAPI{fileData: map[string][]byte{"m1": []byte("not a pdf")}}
	source := &fakeDocSource{validateErr: domain.ErrInvalidInput}
	svc := newMaterialService(api, source)

	report, err := svc.Verify(context.Background(), "m1")
	require.NoError(t, err)

	assert.False(t, report.HeaderValid)
	assert.False(t, report.StructureValid)
	assert.ErrorIs(t, report.StructureErr, domain.ErrInvalidInput)
	assert.Nil(t, report.Info, "missing diagnostics are tolerated")
}

func TestVerifyFailsWhenFileUnfetchable(t *testing.T) {
	api := &fakeMaterialAPI{fetchErr: domain.ErrNotFound}
	svc := newMaterialService(api, nil)

	_, err := svc.Verify(context.Background(), "m1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
