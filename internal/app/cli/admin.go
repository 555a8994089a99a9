package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dgarciab/admision/internal/bootstrap"
	"github.com/dgarciab/admision/internal/seed"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the default grade levels and director account",
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return err
	}

	database, err := bootstrap.ConnectDatabase(cfg, lgr)
	if err != nil {
		return err
	}
	defer database.Pool.Close()

	return bootstrap.RunMigrations(database, lgr)
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return err
	}

	database, err := bootstrap.ConnectDatabase(cfg, lgr)
	if err != nil {
		return err
	}
	defer database.Pool.Close()

	if err := bootstrap.RunMigrations(database, lgr); err != nil {
		return err
	}
	return seed.CreateDefaultData(context.Background(), database.Pool, lgr)
}
