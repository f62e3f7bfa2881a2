package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sadopc/moodlog/internal/insights"
	"github.com/sadopc/moodlog/internal/tracker"
)

func (r *runner) insightsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Print the insights report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := r.service()
			if err != nil {
				return err
			}
			report, err := svc.Insights(cmd.Context())
			if err != nil && !errors.Is(err, insights.ErrEmptyDataset) {
				return fmt.Errorf("generate insights: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), insights.Render(report))
			return nil
		},
	}
}

func (r *runner) exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export entries, goals or the insights report to a file",
	}
	cmd.AddCommand(
		r.exportFormatCmd("json", "Export all entries and goals as JSON", (*tracker.Service).ExportJSON),
		r.exportFormatCmd("csv", "Export mood entries as CSV", (*tracker.Service).ExportCSV),
		r.exportFormatCmd("report", "Export the insights report (.md or .html)", (*tracker.Service).ExportReport),
	)
	return cmd
}

func (r *runner) exportFormatCmd(use, short string, write func(*tracker.Service, context.Context, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " PATH",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := r.service()
			if err != nil {
				return err
			}
			path := args[0]
			if err := write(svc, cmd.Context(), path); err != nil {
				return fmt.Errorf("export %s: %w", use, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Data exported to %s\n", path)
			return nil
		},
	}
}
