package store

import "time"

// DateLayout is the calendar-day format used for entry and target dates.
const DateLayout = "2006-01-02"

// MoodEntry is one daily self-report.
type MoodEntry struct {
	ID           int64
	Date         string // YYYY-MM-DD, not unique
	MoodScore    int
	EnergyLevel  int
	SleepHours   *float64
	StressLevel  *int
	AnxietyLevel *int
	Notes        *string
	Activities   string // comma-separated
	Triggers     string
	Medications  string
	CreatedAt    time.Time
}

type Goal struct {
	ID          int64
	Title       string
	Description *string
	TargetDate  *string // YYYY-MM-DD
	Completed   bool
	CreatedAt   time.Time
}

// EntryOrder selects the sort order of ListMoodEntries.
type EntryOrder int

const (
	// NewestFirst sorts by date descending, most recently inserted first within a day.
	NewestFirst EntryOrder = iota
	// OldestFirst sorts by date ascending, earliest inserted first within a day.
	OldestFirst
)

// EntryFilter is used to filter mood entries in queries.
type EntryFilter struct {
	Order EntryOrder
	Limit int
}

// GoalOrder selects the sort order of ListGoals.
type GoalOrder int

const (
	// ByStatus lists open goals first, then by target date with undated goals last.
	ByStatus GoalOrder = iota
	// ByID lists goals in creation order.
	ByID
)

type moodRow struct {
	ID           int64    `db:"id"`
	Date         string   `db:"date"`
	MoodScore    int      `db:"mood_score"`
	EnergyLevel  int      `db:"energy_level"`
	SleepHours   *float64 `db:"sleep_hours"`
	StressLevel  *int     `db:"stress_level"`
	AnxietyLevel *int     `db:"anxiety_level"`
	Notes        *string  `db:"notes"`
	Activities   string   `db:"activities"`
	Triggers     string   `db:"triggers"`
	Medications  string   `db:"medications"`
	CreatedAt    string   `db:"created_at"`
}

func (r moodRow) entry() MoodEntry {
	return MoodEntry{
		ID:           r.ID,
		Date:         r.Date,
		MoodScore:    r.MoodScore,
		EnergyLevel:  r.EnergyLevel,
		SleepHours:   r.SleepHours,
		StressLevel:  r.StressLevel,
		AnxietyLevel: r.AnxietyLevel,
		Notes:        r.Notes,
		Activities:   r.Activities,
		Triggers:     r.Triggers,
		Medications:  r.Medications,
		CreatedAt:    parseTime(r.CreatedAt),
	}
}

type goalRow struct {
	ID          int64   `db:"id"`
	Title       string  `db:"title"`
	Description *string `db:"description"`
	TargetDate  *string `db:"target_date"`
	Completed   bool    `db:"completed"`
	CreatedAt   string  `db:"created_at"`
}

func (r goalRow) goal() Goal {
	return Goal{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		TargetDate:  r.TargetDate,
		Completed:   r.Completed,
		CreatedAt:   parseTime(r.CreatedAt),
	}
}
