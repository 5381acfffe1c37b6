package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumikids/lumi/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past practice sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		results, err := st.List(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}
		if len(results) == 0 {
			fmt.Println("No sessions recorded yet.")
			return nil
		}

		for _, r := range results {
			line := fmt.Sprintf("%s  %d/%d right  %d hints  %s",
				r.StartedAt.Format("2006-01-02 15:04"),
				r.Correct, r.Attempted, r.Hinted, r.Effort)
			if r.BonusUsed {
				line += "  +bonus"
			}
			if r.UsedFallback {
				line += "  (offline)"
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum sessions to list")
}
