package main

import (
	"os"

	"github.com/spf13/cobra"

	"shiftboard-go/pkg/logger"
)

func main() {
	log := logger.NewFromEnv()

	rootCmd := &cobra.Command{
		Use:           "shiftboard",
		Short:         "Shift scheduling and salary estimation API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(serveCmd(log))
	rootCmd.AddCommand(migrateCmd(log))

	if err := rootCmd.Execute(); err != nil {
		log.Critical("app: command failed", "err", err)
		os.Exit(1)
	}
}
