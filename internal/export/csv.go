package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/sadopc/moodlog/internal/store"
)

var csvHeader = []string{
	"Date", "Mood Score", "Energy Level", "Sleep Hours", "Stress Level",
	"Anxiety Level", "Activities", "Triggers", "Medications", "Notes",
}

// ToCSV writes mood entries, oldest date first, one row per entry. Goals are
// not part of the tabular export.
func ToCSV(entries []store.MoodEntry, path string) error {
	rows := slices.Clone(entries)
	slices.SortStableFunc(rows, func(a, b store.MoodEntry) int {
		return strings.Compare(a.Date, b.Date)
	})

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, e := range rows {
		row := []string{
			e.Date,
			strconv.Itoa(e.MoodScore),
			strconv.Itoa(e.EnergyLevel),
			formatFloat(e.SleepHours),
			formatInt(e.StressLevel),
			formatInt(e.AnxietyLevel),
			e.Activities,
			e.Triggers,
			e.Medications,
			deref(e.Notes),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("encode csv: %w", err)
	}

	if err := writeFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("write csv file: %w", err)
	}
	return nil
}

// formatFloat uses the shortest decimal that round-trips, so 7.5 stays "7.5"
// and 8 is written as "8".
func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
