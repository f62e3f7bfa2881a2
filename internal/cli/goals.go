package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sadopc/moodlog/internal/tracker"
)

func (r *runner) goalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Manage goals",
		Long:  `Add, list, complete, reopen and remove personal goals.`,
	}
	cmd.AddCommand(
		r.goalAddCmd(),
		r.goalListCmd(),
		r.goalSetCmd("done", "Mark a goal as completed", "Goal marked as completed!", (*tracker.Service).CompleteGoal),
		r.goalSetCmd("reopen", "Mark a completed goal as in progress", "Goal reopened", (*tracker.Service).ReopenGoal),
		r.goalSetCmd("rm", "Delete a goal", "Goal deleted successfully!", (*tracker.Service).DeleteGoal),
	)
	return cmd
}

func (r *runner) goalAddCmd() *cobra.Command {
	var in tracker.GoalInput

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add a goal",
		Example: `  moodlog goals add --title "Walk every day" --target 2024-06-01`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := r.service()
			if err != nil {
				return err
			}
			g, err := svc.AddGoal(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Goal added successfully! (id %d)\n", g.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Title, "title", "", "goal title (required)")
	cmd.Flags().StringVar(&in.Description, "description", "", "longer description")
	cmd.Flags().StringVar(&in.TargetDate, "target", "", "target date, YYYY-MM-DD")
	return cmd
}

func (r *runner) goalListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List goals, open ones first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := r.service()
			if err != nil {
				return err
			}
			goals, err := svc.Goals(cmd.Context())
			if err != nil {
				return fmt.Errorf("list goals: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(goals) == 0 {
				fmt.Fprintln(out, "No goals found.")
				return nil
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("ID", "Status", "Title", "Target", "Description")
			for _, g := range goals {
				status := "In Progress"
				if g.Completed {
					status = "Completed"
				}
				target := "No target"
				if g.TargetDate != nil {
					target = *g.TargetDate
				}
				desc := strings.ReplaceAll(clip(optString(g.Description), 100), "\n", " ")
				t.Row(strconv.FormatInt(g.ID, 10), status, g.Title, target, desc)
			}
			fmt.Fprintln(out, t.String())
			return nil
		},
	}
}

// goalSetCmd builds the single-id goal commands.
func (r *runner) goalSetCmd(use, short, done string, apply func(*tracker.Service, context.Context, int64) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid goal id %q", args[0])
			}
			svc, err := r.service()
			if err != nil {
				return err
			}
			if err := apply(svc, cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), done)
			return nil
		},
	}
}
