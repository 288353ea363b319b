package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taskboard-dev/taskboard/backend/internal/storage/pg"
	"github.com/taskboard-dev/taskboard/shared/logger"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create missing tables, columns and the default board, then exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			storage, err := pg.New(ctx, cfg)
			if err != nil {
				return err
			}
			defer storage.Cleanup()

			schemaErr := storage.EnsureSchema(ctx)
			if _, err := storage.EnsureDefaultBoard(ctx, cfg.Public.DefaultBoardTitle); err != nil {
				return fmt.Errorf("default board: %w", err)
			}
			if schemaErr != nil {
				return fmt.Errorf("schema: %w", schemaErr)
			}
			logger.Log.Info("schema is up to date")
			return nil
		},
	}
}
