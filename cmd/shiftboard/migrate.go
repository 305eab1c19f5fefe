package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shiftboard-go/internal/config"
	"shiftboard-go/internal/db"
	"shiftboard-go/pkg/logger"
)

func migrateCmd(log logger.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQL migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(log)
			if err != nil {
				return err
			}

			conn, err := db.NewPostgres(cfg.DB, log)
			if err != nil {
				return err
			}
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			applied, err := db.Migrate(conn)
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			if len(applied) == 0 {
				log.Info("migrate: schema is up to date")
				return nil
			}
			for _, name := range applied {
				log.Info("migrate: applied", "migration", name)
			}
			return nil
		},
	}
}
