package cmd

import (
	"lingua_backend/internal/config"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lingua",
	Short: "Language-learning progression backend",
	Long:  "lingua tracks XP, streaks, levels and course unlock state for a language-learning platform.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SilenceUsage = true
	rootCmd.PersistentFlags().String("config", "configs", "Directory containing config.yaml (and optional .env)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(tokenCmd)
}

func configDir(cmd *cobra.Command) string {
	dir, _ := cmd.Flags().GetString("config")
	if dir == "" {
		return "configs"
	}
	return dir
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.LoadConfig(configDir(cmd))
}
