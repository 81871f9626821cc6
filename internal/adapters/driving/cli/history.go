package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past questions and answers",
	RunE:  runHistoryList,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete one history entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all history entries",
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of entries")
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func ensureHistoryService(cmd *cobra.Command) error {
	if historyService == nil {
		if err := setupApp(cmd.Context(), appNeeds{}); err != nil {
			return err
		}
	}
	if historyService == nil {
		return errors.New("history service not configured")
	}
	return nil
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if err := ensureHistoryService(cmd); err != nil {
		return err
	}

	entries, err := historyService.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("listing history: %w", err)
	}

	if len(entries) == 0 {
		cmd.Println("No history yet.")
		return nil
	}

	for _, entry := range entries {
		cmd.Printf("[%d] %s\n", entry.ID, entry.CreatedAt.Format("2006-01-02 15:04"))
		cmd.Printf("  Q: %s\n", entry.Query)
		cmd.Printf("  A: %s\n", entry.Answer)
		if len(entry.Sources) > 0 {
			cmd.Printf("  Sources:")
			for _, src := range entry.Sources {
				cmd.Printf(" %s", src.Doc)
			}
			cmd.Println()
		}
		cmd.Println()
	}
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	if err := ensureHistoryService(cmd); err != nil {
		return err
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid history id %q", args[0])
	}

	deleted, err := historyService.Delete(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("deleting history entry: %w", err)
	}
	if !deleted {
		return fmt.Errorf("history entry %d not found", id)
	}

	cmd.Printf("Deleted history entry %d.\n", id)
	return nil
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	if err := ensureHistoryService(cmd); err != nil {
		return err
	}

	if err := historyService.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}

	cmd.Println("History cleared.")
	return nil
}
