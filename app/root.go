// Package app implements the command line of the server.
package app

import (
	"github.com/spf13/cobra"

	"github.com/stockroom/stockroom/internal/config"
	"github.com/stockroom/stockroom/internal/logger"
)

var (
	configPath string // directory holding main.toml
	envFile    string // .env file loaded before the config is read

	rootCmd = &cobra.Command{
		Use:   "stockroom",
		Short: "stockroom is the API server of the inventory and order management app",
		Long: `stockroom serves users, suppliers, customers, SKUs, warehouses, purchase and
sales documents, invoices, stock movements, reports, uploads and permissions
as a JSON API and, in production, the pre-built frontend.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./etc/", "directory of main.toml")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded into the environment")
}

// loadConfig loads the dotenv file and reads the config.
func loadConfig() (config.Config, error) {
	if err := config.LoadDotEnv(envFile); err != nil {
		return config.Config{}, err
	}

	return config.ReadConfig(configPath)
}

// loadConfigAndLogger is loadConfig followed by the logger setup.
func loadConfigAndLogger() (config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return cfg, err
	}

	return cfg, logger.Init(cfg.Log)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
