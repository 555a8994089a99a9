package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgarciab/admision/internal/app/models"
	"github.com/dgarciab/admision/internal/bootstrap"
)

var groupsCmd = &cobra.Command{
	Use:   "groups [grade-level]",
	Short: "List class groups and their occupancy",
	Long: `groups lists the groups created by the admission workflow, with
their member counts and activation state. Without arguments every
grade level is shown; with a grade level name only its groups are.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGroups,
}

func init() {
	rootCmd.AddCommand(groupsCmd)
}

func runGroups(cmd *cobra.Command, args []string) error {
	return withDependencies(func(ctx context.Context, deps *bootstrap.Dependencies) error {
		repos := deps.Store.Repos()

		var levels []*models.GradeLevel
		if len(args) == 1 {
			level, err := repos.GradeLevels.GetByName(ctx, args[0])
			if err != nil {
				return err
			}
			levels = append(levels, level)
		} else {
			all, err := repos.GradeLevels.GetAll(ctx)
			if err != nil {
				return err
			}
			levels = all
		}

		maxSize := deps.Config.Admission.MaxGroupSize
		for _, level := range levels {
			groups, err := repos.Groups.ListByGradeLevel(ctx, level.ID)
			if err != nil {
				return err
			}
			fmt.Printf("%s:\n", level.Name)
			if len(groups) == 0 {
				fmt.Println("  (no groups)")
				continue
			}
			for _, g := range groups {
				state := "inactive"
				if g.Active {
					state = "active"
				}
				fmt.Printf("  %-20s %3d/%d  %s\n", g.Name, g.MemberCount, maxSize, state)
			}
		}
		return nil
	})
}
