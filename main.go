// studia is a terminal client for the Studia learning platform:
// materials catalog, paged document reading with synced progress, and
// daily quizzes.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/studia-labs/studia-cli/internal/adapters/driven/config/file"
	"github.com/studia-labs/studia-cli/internal/adapters/driven/pdfsource"
	"github.com/studia-labs/studia-cli/internal/adapters/driven/rest"
	"github.com/studia-labs/studia-cli/internal/adapters/driven/storage/sqlite"
	"github.com/studia-labs/studia-cli/internal/adapters/driving/cli"
	"github.com/studia-labs/studia-cli/internal/core/ports/driven"
	"github.com/studia-labs/studia-cli/internal/core/services"
	"github.com/studia-labs/studia-cli/internal/logger"
)

// defaultAPIURL is used when neither the environment nor the config
// file names a backend.
const defaultAPIURL = "http://localhost:8000/api"

func main() {
	// A .env in the working directory can set STUDIA_API_URL
	_ = godotenv.Load()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	if err := cfg.Watch(); err != nil {
		logger.Warn("config watch unavailable: %v", err)
	}
	defer cfg.Close()

	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("opening local state: %w", err)
	}
	defer store.Close()

	client := rest.NewClient(apiURL(cfg))
	cli.OnAPIURL(client.SetBaseURL)

	source := pdfsource.New()

	authService := services.NewAuthService(
		rest.NewAuthAPI(client), client, store.SessionStore())
	materialAPI := rest.NewMaterialAPI(client)
	materialService := services.NewMaterialService(materialAPI, source)
	progressAPI := rest.NewProgressAPI(client)
	progressService := services.NewProgressService(progressAPI, materialAPI)
	quizService := services.NewQuizService(
		rest.NewQuizAPI(client), store.QuizStateStore(), authService)
	viewerController := services.NewViewerController(
		materialAPI, progressAPI, source, store.ViewerPrefsStore(), cfg, authService)
	adminService := services.NewAdminService(rest.NewAdminAPI(client))

	cli.SetServices(cli.Services{
		Auth:     authService,
		Material: materialService,
		Viewer:   viewerController,
		Progress: progressService,
		Quiz:     quizService,
		Admin:    adminService,
	})

	return cli.Execute()
}

// apiURL resolves the backend base URL: environment first, then the
// config file, then the default. The --api-url flag overrides all of
// these once flags are parsed.
func apiURL(cfg driven.ConfigStore) string {
	if url := os.Getenv("STUDIA_API_URL"); url != "" {
		return url
	}
	if url := cfg.GetString(driven.ConfigKeyAPIURL); url != "" {
		return url
	}
	return defaultAPIURL
}
