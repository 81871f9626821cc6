package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List ingested documents",
	RunE:  runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		if err := setupApp(cmd.Context(), appNeeds{}); err != nil {
			return err
		}
	}
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docs, err := documentService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents ingested yet.")
		return nil
	}

	for _, doc := range docs {
		cmd.Printf("  [%d] %s\n", doc.ID, doc.Filename)
		cmd.Printf("      Status: %s  Chunks: %d  Uploaded: %s\n",
			doc.Status, doc.ChunkCount, doc.UploadedAt.Format("2006-01-02 15:04"))
	}
	cmd.Printf("\nTotal: %d documents\n", len(docs))
	return nil
}
