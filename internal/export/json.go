package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sadopc/moodlog/internal/store"
)

// Snapshot is everything a structured export contains.
type Snapshot struct {
	ExportedAt time.Time
	Entries    []store.MoodEntry
	Goals      []store.Goal
}

type jsonExport struct {
	ExportDate  string      `json:"export_date"`
	MoodEntries []jsonEntry `json:"mood_entries"`
	Goals       []jsonGoal  `json:"goals"`
}

type jsonEntry struct {
	ID           int64    `json:"id"`
	Date         string   `json:"date"`
	MoodScore    int      `json:"mood_score"`
	EnergyLevel  int      `json:"energy_level"`
	SleepHours   *float64 `json:"sleep_hours"`
	StressLevel  *int     `json:"stress_level"`
	AnxietyLevel *int     `json:"anxiety_level"`
	Notes        *string  `json:"notes"`
	Activities   string   `json:"activities"`
	Triggers     string   `json:"triggers"`
	Medications  string   `json:"medications"`
	CreatedAt    string   `json:"created_at"`
}

type jsonGoal struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	TargetDate  *string `json:"target_date"`
	Completed   bool    `json:"completed"`
	CreatedAt   string  `json:"created_at"`
}

// ToJSON writes the full snapshot, mood entries and goals, as indented JSON.
func ToJSON(snap Snapshot, path string) error {
	export := jsonExport{
		ExportDate:  snap.ExportedAt.Format(time.RFC3339),
		MoodEntries: make([]jsonEntry, 0, len(snap.Entries)),
		Goals:       make([]jsonGoal, 0, len(snap.Goals)),
	}

	for _, e := range snap.Entries {
		export.MoodEntries = append(export.MoodEntries, jsonEntry{
			ID:           e.ID,
			Date:         e.Date,
			MoodScore:    e.MoodScore,
			EnergyLevel:  e.EnergyLevel,
			SleepHours:   e.SleepHours,
			StressLevel:  e.StressLevel,
			AnxietyLevel: e.AnxietyLevel,
			Notes:        e.Notes,
			Activities:   e.Activities,
			Triggers:     e.Triggers,
			Medications:  e.Medications,
			CreatedAt:    e.CreatedAt.Format(time.RFC3339),
		})
	}
	for _, g := range snap.Goals {
		export.Goals = append(export.Goals, jsonGoal{
			ID:          g.ID,
			Title:       g.Title,
			Description: g.Description,
			TargetDate:  g.TargetDate,
			Completed:   g.Completed,
			CreatedAt:   g.CreatedAt.Format(time.RFC3339),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := writeFile(path, append(data, '\n')); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
