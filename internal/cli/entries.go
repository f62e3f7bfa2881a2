package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sadopc/moodlog/internal/store"
	"github.com/sadopc/moodlog/internal/tracker"
)

func (r *runner) logCmd() *cobra.Command {
	var (
		in              tracker.MoodInput
		stress, anxiety int
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record a mood check-in",
		Long:  `Record a mood check-in. Scores run from 1 to 10. Use --stress 0 or
--anxiety 0 to leave those levels unrecorded, and --sleep "" for unknown sleep.`,
		Example: `  moodlog log --mood 7 --energy 6 --sleep 7.5 --activities "walk,reading"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := r.service()
			if err != nil {
				return err
			}
			if in.Date == "" {
				in.Date = tracker.DefaultMoodInput(svc.Now()).Date
			}
			if stress != 0 {
				in.Stress = &stress
			}
			if anxiety != 0 {
				in.Anxiety = &anxiety
			}

			e, err := svc.LogMood(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Entry saved successfully! (id %d, %s)\n", e.ID, e.Date)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Date, "date", "", "entry date, YYYY-MM-DD (default today)")
	f.IntVar(&in.Mood, "mood", 5, "mood score, 1-10")
	f.IntVar(&in.Energy, "energy", 5, "energy level, 1-10")
	f.StringVar(&in.Sleep, "sleep", "8", "hours slept, 0-24")
	f.IntVar(&stress, "stress", 5, "stress level, 1-10 (0 = not recorded)")
	f.IntVar(&anxiety, "anxiety", 5, "anxiety level, 1-10 (0 = not recorded)")
	f.StringVar(&in.Activities, "activities", "", "comma-separated activities")
	f.StringVar(&in.Triggers, "triggers", "", "comma-separated triggers")
	f.StringVar(&in.Medications, "medications", "", "comma-separated medications")
	f.StringVar(&in.Notes, "notes", "", "free-form notes")
	return cmd
}

func (r *runner) historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List mood entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative")
			}
			svc, err := r.service()
			if err != nil {
				return err
			}
			entries, err := svc.History(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list entries: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No entries found.")
				return nil
			}
			fmt.Fprintln(out, entryTable(entries))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most N entries (0 = all)")
	return cmd
}

func entryTable(entries []store.MoodEntry) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Date", "Mood", "Energy", "Sleep", "Stress", "Anxiety", "Activities", "Notes")
	for _, e := range entries {
		t.Row(
			strconv.FormatInt(e.ID, 10),
			e.Date,
			strconv.Itoa(e.MoodScore),
			strconv.Itoa(e.EnergyLevel),
			optFloat(e.SleepHours),
			optInt(e.StressLevel),
			optInt(e.AnxietyLevel),
			e.Activities,
			clip(optString(e.Notes), 50),
		)
	}
	return t.String()
}

func (r *runner) deleteCmd() *cobra.Command {
	var (
		id   int64
		date string
	)

	cmd := &cobra.Command{
		Use:     "delete",
		Short:   "Delete one entry by id, or every entry on a date",
		Example: `  moodlog delete --id 12
  moodlog delete --date 2024-03-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := r.service()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if cmd.Flags().Changed("id") {
				if err := svc.DeleteEntry(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintln(out, "Entry deleted successfully!")
				return nil
			}

			n, err := svc.DeleteEntriesOn(cmd.Context(), date)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Deleted %d entries from %s\n", n, date)
			return nil
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "entry id")
	cmd.Flags().StringVar(&date, "date", "", "delete every entry on this date, YYYY-MM-DD")
	cmd.MarkFlagsMutuallyExclusive("id", "date")
	cmd.MarkFlagsOneRequired("id", "date")
	return cmd
}

func optFloat(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func optInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func optString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
