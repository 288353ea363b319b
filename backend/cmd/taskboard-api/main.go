package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/taskboard-dev/taskboard/shared/config"
	"github.com/taskboard-dev/taskboard/shared/logger"
)

var (
	configFolder string
	cfg          *config.Config
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taskboard-api",
		Short: "Taskboard - boards, cards and checklist items over HTTP",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.MustLoad(configFolder)
			logger.Initialize(cfg.Public.Log.Level, cfg.Public.Log.Json)
		},
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&configFolder, "config_folder", "backend/config", "path to folder with configs")

	cmd.AddCommand(serveCmd())
	cmd.AddCommand(migrateCmd())
	return cmd
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
