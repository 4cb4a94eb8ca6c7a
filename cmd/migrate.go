package cmd

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/dwightbot/dwight-web/dwight/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "create missing tables and indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		start := time.Now()

		db, err := database.New(ctx, cfg.DB)
		if err != nil {
			slog.Error("Failed to connect to database", slog.String("type", "db"), slog.Any("error", err))
			return err
		}
		defer db.Close()

		if err = db.InitializeSchema(ctx); err != nil {
			slog.Error("Schema initialization failed", slog.String("type", "db"), slog.Any("error", err))
			return err
		}

		slog.Info("Schema is up to date",
			slog.String("type", "db"),
			slog.String("database", cfg.DB.Database),
			slog.Duration("took", time.Since(start)),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
