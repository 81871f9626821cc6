package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wrenchworks/wrench-cli/internal/core/domain"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]...",
	Short: "Ingest maintenance documents",
	Long: `Extracts text from the given files (.txt, .pdf, .docx), splits it
into chunks, embeds them and adds them to the search index.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		if err := setupApp(cmd.Context(), appNeeds{ai: true}); err != nil {
			return err
		}
	}

	var failures int
	for _, path := range args {
		report, err := ingestService.Ingest(cmd.Context(), path)
		if err != nil {
			failures++
			cmd.Printf("  ✗ %s: %v\n", path, err)
			continue
		}

		if report.ChunksStored < report.ChunksTotal {
			cmd.Printf("  ⚠ %s: stored %d of %d chunks\n",
				report.Filename, report.ChunksStored, report.ChunksTotal)
		} else {
			cmd.Printf("  ✓ %s: %d chunks indexed\n", report.Filename, report.ChunksStored)
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d files failed", failures, len(args))
	}
	return nil
}

// ingestOne is shared with the watch command.
func ingestOne(cmd *cobra.Command, path string) {
	report, err := ingestService.Ingest(cmd.Context(), path)
	switch {
	case errors.Is(err, domain.ErrUnsupportedFileType):
		cmd.Printf("  - %s: skipped (unsupported type)\n", path)
	case err != nil:
		cmd.Printf("  ✗ %s: %v\n", path, err)
	default:
		cmd.Printf("  ✓ %s: %d/%d chunks indexed\n",
			report.Filename, report.ChunksStored, report.ChunksTotal)
	}
}
