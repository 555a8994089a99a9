package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dgarciab/admision/internal/app/models/dto"
	"github.com/dgarciab/admision/internal/bootstrap"
)

var submitCmd = &cobra.Command{
	Use:   "submit <file>",
	Short: "Register a preinscription from a YAML file",
	Long: `submit reads a guardian and their students from a YAML file and
registers them as one pending preinscription. The printed reference
code is what the guardian later uses with the status command.

The file looks like:

  guardian:
    firstName: Carolina
    lastName: Muñoz
    age: 34
    nationalId: "1020304050"
    email: carolina@example.com
    phone: "3001234567"
  students:
    - firstName: Samuel
      lastName: Muñoz
      age: 5
      nationalId: "1102030405"
      gradeLevel: Transición`,
	Args: cobra.ExactArgs(1),
	RunE: runSubmit,
}

func init() {
	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("could not read submission file: %w", err)
	}

	var req dto.SubmitPreinscriptionRequest
	if err := yaml.Unmarshal(content, &req); err != nil {
		return fmt.Errorf("could not parse submission file: %w", err)
	}

	return withDependencies(func(ctx context.Context, deps *bootstrap.Dependencies) error {
		result := deps.Services.Preinscriptions.SubmitPreinscription(ctx, req)
		if err := printResult(result); err != nil {
			return err
		}
		return printSummary(result.Payload)
	})
}

// printSummary renders a preinscription summary as YAML on stdout.
func printSummary(payload any) error {
	summary, ok := payload.(dto.PreinscriptionSummary)
	if !ok {
		return nil
	}
	out, err := yaml.Marshal(summary)
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	return nil
}
