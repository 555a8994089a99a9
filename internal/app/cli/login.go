package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgarciab/admision/internal/app/services"
	"github.com/dgarciab/admision/internal/bootstrap"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Verify access credentials",
	Long: `login prompts for a username and password and checks them against
the stored credentials. Attempts are limited per session; revoked
credentials are refused.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	return withDependencies(func(ctx context.Context, deps *bootstrap.Dependencies) error {
		reader := bufio.NewReader(os.Stdin)
		session := &services.LoginSession{}
		maxAttempts := deps.Config.Admission.MaxLoginAttempts

		for session.Attempts < maxAttempts {
			username, err := prompt(reader, "Username: ")
			if err != nil {
				return err
			}
			password, err := prompt(reader, "Password: ")
			if err != nil {
				return err
			}

			result := deps.Services.Auth.Login(ctx, session, username, password)
			fmt.Println(result.Message)
			if result.Success {
				return nil
			}
		}
		return fmt.Errorf("login failed after %d attempts", maxAttempts)
	})
}

func prompt(reader *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("could not read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
