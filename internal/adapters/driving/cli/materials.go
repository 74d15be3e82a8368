package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/studia-labs/studia-cli/internal/core/domain"
)

var materialsCmd = &cobra.Command{
	Use:   "materials",
	Short: "Browse and manage learning materials",
	Long: `List the materials catalog, enroll, and open material details.

Examples:
  studia materials list
  studia materials list --department engineering
  studia materials enroll <material-id>
  studia materials upload --title "Handbook" --file handbook.pdf ...`,
	RunE: runMaterialsList,
}

var materialsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the materials catalog",
	RunE:  runMaterialsList,
}

var materialsShowCmd = &cobra.Command{
	Use:   "show [material-id]",
	Short: "Show one material",
	Args:  cobra.ExactArgs(1),
	RunE:  runMaterialsShow,
}

var materialsEnrollCmd = &cobra.Command{
	Use:   "enroll [material-id]",
	Short: "Enroll in a material",
	Args:  cobra.ExactArgs(1),
	RunE:  runMaterialsEnroll,
}

var materialsUploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload a new material",
	Long: `Upload a new material.

PDF materials need --file; text materials need --content.

Examples:
  studia materials upload --title "Safety Handbook" --description "Annual safety training" \
    --department operations --type pdf --file handbook.pdf

  studia materials upload --title "Welcome" --description "Intro notes" \
    --department hr --type text --content "Welcome aboard."`,
	RunE: runMaterialsUpload,
}

var materialsDeleteCmd = &cobra.Command{
	Use:   "delete [material-id]",
	Short: "Delete a material",
	Long: `Delete a material.

Materials whose stored file has gone missing on the server can only be
removed with --force.`,
	Args: cobra.ExactArgs(1),
	RunE: runMaterialsDelete,
}

var materialsVerifyCmd = &cobra.Command{
	Use:   "verify [material-id]",
	Short: "Verify a material's stored file",
	Long: `Fetch the material's bytes and cross-check them against the
server's file diagnostics: size, header magic and document structure.`,
	Args: cobra.ExactArgs(1),
	RunE: runMaterialsVerify,
}

// Flags.
var (
	materialsDepartment  string
	materialsEnrolled    bool
	materialsJSON        bool
	uploadTitle          string
	uploadDescription    string
	uploadDepartment     string
	uploadType           string
	uploadFile           string
	uploadContent        string
	materialsDeleteForce bool
)

func init() {
	materialsListCmd.Flags().StringVarP(
		&materialsDepartment, "department", "d", "", "filter by department")
	materialsListCmd.Flags().BoolVar(
		&materialsEnrolled, "enrolled", false, "only enrolled materials")
	materialsListCmd.Flags().BoolVar(
		&materialsJSON, "json", false, "output as JSON")

	materialsUploadCmd.Flags().StringVar(&uploadTitle, "title", "", "material title")
	materialsUploadCmd.Flags().StringVar(&uploadDescription, "description", "", "material description")
	materialsUploadCmd.Flags().StringVar(&uploadDepartment, "department", "", "owning department")
	materialsUploadCmd.Flags().StringVar(&uploadType, "type", "pdf", "content type (pdf, video, text)")
	materialsUploadCmd.Flags().StringVar(&uploadFile, "file", "", "path to the file to upload")
	materialsUploadCmd.Flags().StringVar(&uploadContent, "content", "", "inline text content")

	materialsDeleteCmd.Flags().BoolVar(
		&materialsDeleteForce, "force", false, "force-delete even when the stored file is missing")

	materialsCmd.AddCommand(materialsListCmd)
	materialsCmd.AddCommand(materialsShowCmd)
	materialsCmd.AddCommand(materialsEnrollCmd)
	materialsCmd.AddCommand(materialsUploadCmd)
	materialsCmd.AddCommand(materialsDeleteCmd)
	materialsCmd.AddCommand(materialsVerifyCmd)
	rootCmd.AddCommand(materialsCmd)
}

func runMaterialsList(cmd *cobra.Command, _ []string) error {
	if materialService == nil {
		return errors.New("material service not configured")
	}

	ctx := context.Background()
	var (
		materials []domain.Material
		err       error
	)
	if materialsEnrolled {
		materials, err = materialService.ListEnrolled(ctx)
	} else {
		materials, err = materialService.List(ctx, materialsDepartment)
	}
	if err != nil {
		return fmt.Errorf("listing materials: %w", err)
	}

	if materialsJSON {
		data, err := json.MarshalIndent(materials, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding materials: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(materials) == 0 {
		cmd.Println("No materials found.")
		return nil
	}

	for i := range materials {
		m := &materials[i]
		flags := string(m.ContentType)
		if m.Ghost() {
			flags += ", file missing"
		}
		cmd.Printf("  %s  %s (%s)\n", m.ID, m.Title, flags)
		if m.Description != "" {
			cmd.Printf("      %s\n", m.Description)
		}
	}
	return nil
}

func runMaterialsShow(cmd *cobra.Command, args []string) error {
	if materialService == nil {
		return errors.New("material service not configured")
	}

	material, err := materialService.Get(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("fetching material: %w", err)
	}

	cmd.Printf("%s\n", material.Title)
	cmd.Printf("  ID:          %s\n", material.ID)
	cmd.Printf("  Department:  %s\n", material.Department)
	cmd.Printf("  Type:        %s\n", material.ContentType)
	if material.Description != "" {
		cmd.Printf("  Description: %s\n", material.Description)
	}
	if material.TotalPages != nil {
		cmd.Printf("  Pages:       %d\n", *material.TotalPages)
	}
	if material.Ghost() {
		cmd.Println("  Warning:     stored file is missing on the server")
	}
	return nil
}

func runMaterialsEnroll(cmd *cobra.Command, args []string) error {
	if materialService == nil {
		return errors.New("material service not configured")
	}

	if err := materialService.Enroll(context.Background(), args[0]); err != nil {
		return fmt.Errorf("enrolling: %w", err)
	}
	cmd.Println("Enrolled.")
	return nil
}

func runMaterialsUpload(cmd *cobra.Command, _ []string) error {
	if materialService == nil {
		return errors.New("material service not configured")
	}

	input := domain.MaterialUpload{
		Title:       uploadTitle,
		Description: uploadDescription,
		Department:  uploadDepartment,
		ContentType: uploadType,
		Content:     uploadContent,
	}

	if uploadFile != "" {
		data, err := os.ReadFile(uploadFile)
		if err != nil {
			return fmt.Errorf("reading %s: %w", uploadFile, err)
		}
		input.FileName = filepath.Base(uploadFile)
		input.FileBytes = data
	}

	material, err := materialService.Upload(context.Background(), input)
	if err != nil {
		return fmt.Errorf("uploading: %w", err)
	}

	cmd.Printf("Uploaded %s (%s)\n", material.Title, material.ID)
	return nil
}

func runMaterialsDelete(cmd *cobra.Command, args []string) error {
	if materialService == nil {
		return errors.New("material service not configured")
	}

	if err := materialService.Delete(context.Background(), args[0], materialsDeleteForce); err != nil {
		return fmt.Errorf("deleting: %w", err)
	}
	cmd.Println("Deleted.")
	return nil
}

func runMaterialsVerify(cmd *cobra.Command, args []string) error {
	if materialService == nil {
		return errors.New("material service not configured")
	}

	report, err := materialService.Verify(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("verifying: %w", err)
	}

	cmd.Printf("Fetched %d bytes\n", report.SizeBytes)
	cmd.Printf("  Header:    %s\n", verdict(report.HeaderValid))
	cmd.Printf("  Structure: %s\n", verdict(report.StructureValid))
	if report.StructureErr != nil {
		cmd.Printf("             %v\n", report.StructureErr)
	}
	if report.Info != nil {
		cmd.Printf("  Server:    %s, %d bytes, md5 %s\n",
			report.Info.FileName, report.Info.SizeBytes, report.Info.MD5)
	}
	return nil
}

func verdict(ok bool) string {
	if ok {
		return "ok"
	}
	return "INVALID"
}
