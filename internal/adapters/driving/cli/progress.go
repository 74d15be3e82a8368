package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show reading progress",
	Long: `Show your reading progress across enrolled materials.

Examples:
  studia progress                 # overview of all enrolled materials
  studia progress show <id>       # one material in detail
  studia progress complete <id>   # mark a material completed`,
	RunE: runProgressOverview,
}

var progressShowCmd = &cobra.Command{
	Use:   "show [material-id]",
	Short: "Show progress for one material",
	Args:  cobra.ExactArgs(1),
	RunE:  runProgressShow,
}

var progressCompleteCmd = &cobra.Command{
	Use:   "complete [material-id]",
	Short: "Mark a material as completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runProgressComplete,
}

func init() {
	progressCmd.AddCommand(progressShowCmd)
	progressCmd.AddCommand(progressCompleteCmd)
	rootCmd.AddCommand(progressCmd)
}

func runProgressOverview(cmd *cobra.Command, _ []string) error {
	if progressService == nil {
		return errors.New("progress service not configured")
	}

	overview, err := progressService.Overview(context.Background())
	if err != nil {
		return fmt.Errorf("loading overview: %w", err)
	}

	if len(overview) == 0 {
		cmd.Println("No enrolled materials.")
		return nil
	}

	for i := range overview {
		mp := &overview[i]
		line := fmt.Sprintf("  %-40s", mp.Material.Title)
		if mp.Progress == nil {
			line += "not started"
		} else {
			line += fmt.Sprintf("%3.0f%%", mp.Progress.Percentage)
			if mp.Progress.Completed {
				line += "  completed"
			}
		}
		cmd.Println(line)
	}
	return nil
}

func runProgressShow(cmd *cobra.Command, args []string) error {
	if progressService == nil {
		return errors.New("progress service not configured")
	}

	record, err := progressService.Get(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("loading progress: %w", err)
	}

	cmd.Printf("Material %s\n", record.MaterialID)
	cmd.Printf("  Percentage: %.0f%%\n", record.Percentage)
	cmd.Printf("  Completed:  %v\n", record.Completed)
	if len(record.CompletedPages) > 0 {
		pages := make([]string, len(record.CompletedPages))
		for i, p := range record.CompletedPages {
			pages[i] = fmt.Sprintf("%d", p)
		}
		cmd.Printf("  Pages done: %s\n", strings.Join(pages, ", "))
	}
	if !record.LastUpdated.IsZero() {
		cmd.Printf("  Updated:    %s\n", record.LastUpdated.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func runProgressComplete(cmd *cobra.Command, args []string) error {
	if progressService == nil {
		return errors.New("progress service not configured")
	}

	if err := progressService.MarkComplete(context.Background(), args[0]); err != nil {
		return fmt.Errorf("marking complete: %w", err)
	}
	cmd.Println("Marked complete.")
	return nil
}
