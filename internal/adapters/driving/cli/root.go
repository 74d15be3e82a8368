// Package cli provides the command line interface for studia. It is a
// driving adapter: commands call into core services through the driving
// ports and never touch the backend or local stores directly.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/studia-labs/studia-cli/internal/core/ports/driving"
	"github.com/studia-labs/studia-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services provided by the composition root. Commands check for nil so
// tests can run individual commands without full wiring.
var (
	authService     driving.AuthService
	materialService driving.MaterialService
	viewerService   driving.Viewer
	progressService driving.ProgressService
	quizService     driving.QuizService
	adminService    driving.AdminService
)

// Persistent flags.
var (
	flagVerbose bool
	flagAPIURL  string
)

var rootCmd = &cobra.Command{
	Use:   "studia",
	Short: "Learning materials and daily quizzes from your terminal",
	Long: `Studia is a terminal client for the Studia learning platform.

Browse materials, read documents page by page with your reading progress
synced to the server, answer daily quiz questions and track your streaks.

Run without arguments to launch the interactive terminal UI.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
		if flagAPIURL != "" && apiURLHook != nil {
			apiURLHook(flagAPIURL)
		}
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(
		&flagVerbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(
		&flagAPIURL, "api-url", "", "override the API base URL")
}

// Services bundles everything the commands need.
type Services struct {
	Auth     driving.AuthService
	Material driving.MaterialService
	Viewer   driving.Viewer
	Progress driving.ProgressService
	Quiz     driving.QuizService
	Admin    driving.AdminService
}

// SetServices installs the wired services. Called once by main before
// Execute.
func SetServices(s Services) {
	authService = s.Auth
	materialService = s.Material
	viewerService = s.Viewer
	progressService = s.Progress
	quizService = s.Quiz
	adminService = s.Admin
}

// apiURLHook is invoked with the --api-url override once flags are
// parsed, before any command runs.
var apiURLHook func(string)

// OnAPIURL registers the callback that applies an --api-url override.
func OnAPIURL(fn func(string)) {
	apiURLHook = fn
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
