package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lumikids/lumi/internal/selfupdate"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("lumi", version)

		check, _ := cmd.Flags().GetBool("check")
		if !check {
			return nil
		}

		checker := selfupdate.NewChecker(selfupdate.WithTimeout(30 * time.Second))
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		result, err := checker.Check(ctx, &selfupdate.CheckInput{Version: version})
		if errors.Is(err, selfupdate.ErrDevBuild) {
			fmt.Println("Development build; skipping release check.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("check latest release: %w", err)
		}

		if result.UpdateAvailable {
			fmt.Printf("A newer release is available: %s\n", result.LatestVersion)
		} else {
			fmt.Println("You are on the latest release.")
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("check", false, "Check GitHub for a newer release")
}
