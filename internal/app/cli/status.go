package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dgarciab/admision/internal/bootstrap"
)

var statusCmd = &cobra.Command{
	Use:   "status <reference>",
	Short: "Show a preinscription by its reference code",
	Long: `status looks up a preinscription by the reference code printed at
submission and shows the guardian, each student's status and, for
approved students, their group placement.`,
	Args: cobra.ExactArgs(1),
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	return withDependencies(func(ctx context.Context, deps *bootstrap.Dependencies) error {
		result := deps.Services.Preinscriptions.GetStatus(ctx, args[0])
		if err := printResult(result); err != nil {
			return err
		}
		return printSummary(result.Payload)
	})
}
