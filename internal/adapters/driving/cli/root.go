// Package cli implements the wrench command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wrenchworks/wrench-cli/internal/adapters/driven/ai"
	configfile "github.com/wrenchworks/wrench-cli/internal/adapters/driven/config/file"
	"github.com/wrenchworks/wrench-cli/internal/adapters/driven/extract"
	"github.com/wrenchworks/wrench-cli/internal/adapters/driven/index/flat"
	"github.com/wrenchworks/wrench-cli/internal/adapters/driven/storage/sqlite"
	"github.com/wrenchworks/wrench-cli/internal/chunker"
	"github.com/wrenchworks/wrench-cli/internal/core/ports/driving"
	"github.com/wrenchworks/wrench-cli/internal/core/services"
	"github.com/wrenchworks/wrench-cli/internal/logger"
)

// version is set via Execute by the main package.
var version = "dev"

// Persistent flags.
var (
	verbose bool
	dataDir string
)

// Services wired by setupApp. Commands guard against nil so tests can
// inject fakes without the full stack.
var (
	ingestService   driving.IngestService
	chatService     driving.ChatService
	historyService  driving.HistoryService
	documentService driving.DocumentService
	statusService   driving.StatusService
)

// teardown closes resources opened by setupApp.
var teardown []func()

var rootCmd = &cobra.Command{
	Use:   "wrench",
	Short: "Maintenance document Q&A from the terminal",
	Long: `Wrench ingests equipment maintenance documents (.txt, .pdf, .docx),
indexes them for semantic search and answers maintenance questions
grounded in the retrieved excerpts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.wrench)")
}

// Execute runs the CLI. The version string is stamped by the build.
func Execute(v string) error {
	if v != "" {
		version = v
	}
	defer closeApp()

	return rootCmd.Execute()
}

// appNeeds describes which dependencies a command requires.
type appNeeds struct {
	ai bool
}

// setupApp opens the stores and wires the services. AI adapters are
// created and ping-validated only when the command needs them, so
// offline commands like status and history work without a provider.
func setupApp(ctx context.Context, needs appNeeds) error {
	baseDir := dataDir
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("getting home directory: %w", err)
		}
		baseDir = filepath.Join(home, ".wrench")
	}

	settingsStore, err := configfile.NewSettingsStore(baseDir)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	settings := settingsStore.Settings()

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		settings.AI.APIKey = key
	}

	store, err := sqlite.NewStore(filepath.Join(baseDir, "data"))
	if err != nil {
		return fmt.Errorf("opening metadata store: %w", err)
	}
	teardown = append(teardown, func() { store.Close() })

	index, err := flat.Open(flat.Options{
		Path:      filepath.Join(baseDir, "data", "vectors.idx"),
		Dimension: settings.Index.Dimensions,
	})
	if err != nil {
		return fmt.Errorf("opening vector index: %w", err)
	}
	teardown = append(teardown, func() { index.Close() })

	documentService = services.NewDocumentService(store.DocumentStore())
	historyService = services.NewHistoryService(store.HistoryStore())
	statusService = services.NewStatusService(store, index)

	if !needs.ai {
		return nil
	}

	embedder, err := ai.CreateAndValidateEmbeddingService(ctx, settings.AI, settings.Index.Dimensions)
	if err != nil {
		return err
	}
	teardown = append(teardown, func() { embedder.Close() })

	generator, err := ai.CreateAndValidateGenerationService(ctx, settings.AI)
	if err != nil {
		return err
	}
	teardown = append(teardown, func() { generator.Close() })

	splitter, err := chunker.New(
		chunker.WithChunkSize(settings.Chunking.Size),
		chunker.WithOverlap(settings.Chunking.Overlap),
	)
	if err != nil {
		return fmt.Errorf("configuring chunker: %w", err)
	}

	ingestService = services.NewIngestionPipeline(
		extract.New(), splitter, embedder, index,
		store.DocumentStore(), store.VectorMetadataStore(),
		services.WithWorkers(settings.Ingest.Workers),
		services.WithRateLimit(settings.Ingest.RateLimit),
	)

	retriever := services.NewRetriever(embedder, index, store.VectorMetadataStore())
	chatService = services.NewChatService(retriever, generator, store.HistoryStore())

	return nil
}

// closeApp releases resources in reverse acquisition order.
func closeApp() {
	for i := len(teardown) - 1; i >= 0; i-- {
		teardown[i]()
	}
	teardown = nil
}
