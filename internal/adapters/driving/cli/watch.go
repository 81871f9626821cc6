package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/wrenchworks/wrench-cli/internal/adapters/driven/extract"
	"github.com/wrenchworks/wrench-cli/internal/logger"
)

// settleDelay gives the writer time to finish before the dropped file
// is picked up.
const settleDelay = 500 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a directory and ingest files dropped into it",
	Long: `Watches the given directory and runs the ingestion pipeline on every
supported file created in it. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("checking watch directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	if ingestService == nil {
		if err := setupApp(cmd.Context(), appNeeds{ai: true}); err != nil {
			return err
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	cmd.Printf("Watching %s (ctrl-c to stop)\n", dir)

	for {
		select {
		case <-cmd.Context().Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Create covers both new files and most editor saves;
			// renames into the directory arrive as Create too.
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !extract.Supported(filepath.Base(event.Name)) {
				logger.Debug("ignoring %s: unsupported type", event.Name)
				continue
			}

			time.Sleep(settleDelay)
			ingestOne(cmd, event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error: %v", err)
		}
	}
}
