package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dgarciab/admision/internal/bootstrap"
)

var approveCmd = &cobra.Command{
	Use:   "approve <student-id>",
	Short: "Approve a pending student",
	Long: `approve marks a pending student as approved, places them into a
group of their aspired grade level and recomputes the guardian and
preinscription statuses. The first approval of a preinscription issues
access credentials to the guardian.`,
	Args: cobra.ExactArgs(1),
	RunE: runApprove,
}

var rejectCmd = &cobra.Command{
	Use:   "reject <student-id>",
	Short: "Reject a pending student",
	Long: `reject marks a pending student as rejected. When the rejection
leaves every student of the preinscription rejected, the guardian's
access credentials are revoked.`,
	Args: cobra.ExactArgs(1),
	RunE: runReject,
}

func init() {
	rootCmd.AddCommand(approveCmd)
	rootCmd.AddCommand(rejectCmd)
}

func runApprove(cmd *cobra.Command, args []string) error {
	studentID, err := parseStudentID(args[0])
	if err != nil {
		return err
	}
	return withDependencies(func(ctx context.Context, deps *bootstrap.Dependencies) error {
		return printResult(deps.Services.Admissions.ApproveStudent(ctx, studentID))
	})
}

func runReject(cmd *cobra.Command, args []string) error {
	studentID, err := parseStudentID(args[0])
	if err != nil {
		return err
	}
	return withDependencies(func(ctx context.Context, deps *bootstrap.Dependencies) error {
		return printResult(deps.Services.Admissions.RejectStudent(ctx, studentID))
	})
}

func parseStudentID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, &invalidArgError{arg: arg, want: "a positive student id"}
	}
	return id, nil
}

type invalidArgError struct {
	arg  string
	want string
}

func (e *invalidArgError) Error() string {
	return "invalid argument " + strconv.Quote(e.arg) + ": expected " + e.want
}
