package app

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/stockroom/stockroom/internal/db"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := loadConfigAndLogger()
		if err != nil {
			return err
		}

		gdb, err := db.Open(cmd.Context(), &c)
		if err != nil {
			return err
		}

		defer func() {
			_ = db.Close(gdb)
		}()

		if err = db.Migrate(gdb); err != nil {
			return err
		}

		log.Info().Str("engine", c.DB.Engine).Msg("database migrated")

		return nil
	},
}
