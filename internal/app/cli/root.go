// Package cli implements the admision command line interface. Every
// workflow operation of the admission system is exposed as a
// subcommand; commands that touch the database build the full
// dependency graph first.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgarciab/admision/internal/app/models"
	"github.com/dgarciab/admision/internal/bootstrap"
)

var rootCmd = &cobra.Command{
	Use:   "admision",
	Short: "School admission management",
	Long: `admision manages school preinscriptions: guardians register their
students, staff approve or reject each student, and approved students
are placed into capacity-bounded groups per grade level.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// withDependencies loads configuration, connects to the database and
// hands the wired dependencies to fn. The connection pool is closed
// when fn returns.
func withDependencies(fn func(ctx context.Context, deps *bootstrap.Dependencies) error) error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return err
	}

	database, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return err
	}
	defer database.Pool.Close()

	deps := bootstrap.BuildDependencies(cfg, database, lgr)
	return fn(context.Background(), deps)
}

// printResult writes an operation outcome to stdout and returns an
// error for failed operations so the process exits non-zero.
func printResult(result models.OperationResult) error {
	if !result.Success {
		if result.FieldError != "" {
			return fmt.Errorf("%s (field: %s)", result.Message, result.FieldError)
		}
		return fmt.Errorf("%s", result.Message)
	}
	fmt.Println(result.Message)
	return nil
}
