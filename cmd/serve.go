package cmd

import (
	"lingua_backend/internal/app"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	serveCmd.Flags().Bool("migrate", false, "Run database migrations on start even in release mode")
}

func runServe(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if f := cmd.Flags().Lookup("migrate"); f != nil {
		cfg.ForceMigrate, _ = cmd.Flags().GetBool("migrate")
	}

	application := app.NewApp(cfg)
	application.ConfigFile = app.ConfigFilePath(configDir(cmd))
	application.Run()
	return nil
}
