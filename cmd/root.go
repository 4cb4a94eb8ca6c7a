package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dwightbot/dwight-web/dwight"
	"github.com/dwightbot/dwight-web/dwight/logger"
)

var (
	version = "dev"
	commit  = "unknown"
)

var (
	configPath string
	cfg        *dwight.Config
)

var rootCmd = &cobra.Command{
	Use:           "dwight-web",
	Short:         "Dashboard backend for the Dwight soundboard bot",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == versionCmd.Name() {
			return nil
		}

		loaded, err := dwight.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		slog.SetDefault(slog.New(logger.New(os.Stdout, logger.Options{
			Level:     cfg.Log.Level,
			AddSource: cfg.Log.AddSource,
			Format:    cfg.Log.Format,
			Color:     true,
		})))
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.toml", "path to config")
}

// Execute runs the root command; with no sub-command it serves the API.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
