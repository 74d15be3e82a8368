package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/studia-labs/studia-cli/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

The TUI signs you in, lets you browse the materials catalog, read paged
documents with zoom and rotation, track your reading progress and answer
daily quiz questions.

Controls:
  ↑/k, ↓/j - Navigate lists
  Enter    - Select
  ←/→      - Turn pages
  +/-      - Zoom
  f        - Fullscreen
  Esc      - Back
  ?        - Help`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Surface stack traces instead of a corrupted terminal
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := &tui.Ports{
		Auth:     authService,
		Material: materialService,
		Viewer:   viewerService,
		Progress: progressService,
		Quiz:     quizService,
		Admin:    adminService,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	return app.Run()
}
