package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a maintenance question",
	Long: `Retrieves the most relevant document excerpts and generates an
answer grounded in them. Without ingested documents the answer falls
back to general maintenance knowledge.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		if err := setupApp(cmd.Context(), appNeeds{ai: true}); err != nil {
			return err
		}
	}
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	answer, err := chatService.Ask(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("answering query: %w", err)
	}

	if askJSON {
		data, err := json.MarshalIndent(answer, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling answer: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(answer.Text)
	cmd.Println()
	cmd.Println("Sources:")
	for _, src := range answer.Sources {
		cmd.Printf("  - %s\n", src.Doc)
		if src.Excerpt != "" {
			cmd.Printf("    %s\n", src.Excerpt)
		}
	}
	return nil
}
