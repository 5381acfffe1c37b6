package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lumikids/lumi/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "lumi",
	Short: "Practice sessions for kids",
	Long:  "Lumi is a terminal practice buddy that serves short, adaptive question sessions with hints and encouragement.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// A .env next to the binary is a convenience for local runs.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().String("db", "", "Path to the history database (overrides LUMI_DB)")
	rootCmd.PersistentFlags().String("mode", "", "Content source: remote, local or genai (overrides LUMI_MODE)")
	rootCmd.PersistentFlags().String("learner", "", "Learner id (overrides LUMI_LEARNER)")
	rootCmd.PersistentFlags().Int("year", 0, "Learner year level (overrides LUMI_YEAR)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using the --db flag first,
// then LUMI_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, nil
	}
	return store.DefaultDBPath()
}
