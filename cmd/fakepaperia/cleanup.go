package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fakepaperia/fakepaperia/internal/vectorstore"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete expired session store snapshots",
	Long: `Cleanup sweeps the vector store directory once and deletes snapshot
artifacts older than the maximum age. The serve command runs the same
sweep on a cron schedule.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		maxAge := cfg.VectorStore.MaxAge
		if hours, _ := cmd.Flags().GetInt("max-age-hours"); hours > 0 {
			maxAge = time.Duration(hours) * time.Hour
		}

		removed, err := vectorstore.Expire(cfg.VectorStore.Dir, maxAge, os.Stderr)
		if err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}
		fmt.Printf("removed %d artifact(s)\n", removed)
		return nil
	},
}

func init() {
	cleanupCmd.Flags().Int("max-age-hours", 0, "override the snapshot max age in hours")

	rootCmd.AddCommand(cleanupCmd)
}
