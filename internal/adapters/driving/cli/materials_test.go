package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studia-labs/studia-cli/internal/core/domain"
	"github.com/studia-labs/studia-cli/internal/core/ports/driving"
)

func setupMaterialsTest(mock *mockMaterialService) func() {
	old := materialService
	materialService = mock
	return func() { materialService = old }
}

func TestMaterialsCmd_Use(t *testing.T) {
	assert.Equal(t, "materials", materialsCmd.Use)
}

func TestMaterialsList_Empty(t *testing.T) {
	cleanup := setupMaterialsTest(&mockMaterialService{})
	defer cleanup()

	out, err := execute("materials", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No materials found.")
}

func TestMaterialsList_ShowsMaterials(t *testing.T) {
	cleanup := setupMaterialsTest(&mockMaterialService{
		ListFunc: func(_ context.Context, _ string) ([]domain.Material, error) {
			missing := false
			return []domain.Material{
				{ID: "mat-1", Title: "Safety Handbook", ContentType: domain.ContentPDF},
				{
					ID: "mat-2", Title: "Broken Doc", ContentType: domain.ContentPDF,
					FilePath: "/files/x.pdf", FileExists: &missing,
				},
			}, nil
		},
	})
	defer cleanup()

	out, err := execute("materials", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "Safety Handbook")
	assert.Contains(t, out, "file missing")
}

func TestMaterialsList_DepartmentFlag(t *testing.T) {
	var gotDepartment string
	cleanup := setupMaterialsTest(&mockMaterialService{
		ListFunc: func(_ context.Context, department string) ([]domain.Material, error) {
			gotDepartment = department
			return nil, nil
		},
	})
	defer cleanup()
	defer func() { materialsDepartment = "" }()

	_, err := execute("materials", "list", "--department", "engineering")

	require.NoError(t, err)
	assert.Equal(t, "engineering", gotDepartment)
}

func TestMaterialsEnroll(t *testing.T) {
	var enrolledID string
	cleanup := setupMaterialsTest(&mockMaterialService{
		EnrollFunc: func(_ context.Context, id string) error {
			enrolledID = id
			return nil
		},
	})
	defer cleanup()

	out, err := execute("materials", "enroll", "mat-1")

	require.NoError(t, err)
	assert.Equal(t, "mat-1", enrolledID)
	assert.Contains(t, out, "Enrolled.")
}

func TestMaterialsVerify_ReportsStructure(t *testing.T) {
	cleanup := setupMaterialsTest(&mockMaterialService{
		VerifyFunc: func(_ context.Context, _ string) (*driving.VerifyReport, error) {
			return &driving.VerifyReport{
				SizeBytes:      1234,
				HeaderValid:    true,
				StructureValid: false,
				StructureErr:   domain.ErrRenderFailed,
			}, nil
		},
	})
	defer cleanup()

	out, err := execute("materials", "verify", "mat-1")

	require.NoError(t, err)
	assert.Contains(t, out, "1234 bytes")
	assert.Contains(t, out, "Header:    ok")
	assert.Contains(t, out, "Structure: INVALID")
}

func TestMaterialsCmds_FailWithoutService(t *testing.T) {
	old := materialService
	materialService = nil
	defer func() { materialService = old }()

	_, err := execute("materials", "list")

	assert.Error(t, err)
}
