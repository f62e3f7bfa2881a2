package tracker

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sadopc/moodlog/internal/store"
)

const (
	minScore = 1
	maxScore = 10
	maxSleep = 24
)

// MoodInput is the raw content of the check-in form. Sleep stays text so an
// empty field can mean "not recorded".
type MoodInput struct {
	Date        string
	Mood        int
	Energy      int
	Sleep       string
	Stress      *int
	Anxiety     *int
	Activities  string
	Triggers    string
	Medications string
	Notes       string
}

// DefaultMoodInput returns the values a fresh check-in form starts with.
func DefaultMoodInput(now time.Time) MoodInput {
	stress, anxiety := 5, 5
	return MoodInput{
		Date:    now.Format(store.DateLayout),
		Mood:    5,
		Energy:  5,
		Sleep:   "8",
		Stress:  &stress,
		Anxiety: &anxiety,
	}
}

// Validate returns the first problem found, as a *ValidationError.
func (in MoodInput) Validate() error {
	_, err := in.entry()
	return err
}

func (in MoodInput) entry() (*store.MoodEntry, error) {
	date := strings.TrimSpace(in.Date)
	if err := checkDate("date", date); err != nil {
		return nil, err
	}
	if err := checkScore("mood", in.Mood); err != nil {
		return nil, err
	}
	if err := checkScore("energy", in.Energy); err != nil {
		return nil, err
	}

	sleep, err := parseSleep(in.Sleep)
	if err != nil {
		return nil, err
	}
	if in.Stress != nil {
		if err := checkScore("stress", *in.Stress); err != nil {
			return nil, err
		}
	}
	if in.Anxiety != nil {
		if err := checkScore("anxiety", *in.Anxiety); err != nil {
			return nil, err
		}
	}

	e := &store.MoodEntry{
		Date:         date,
		MoodScore:    in.Mood,
		EnergyLevel:  in.Energy,
		SleepHours:   sleep,
		StressLevel:  in.Stress,
		AnxietyLevel: in.Anxiety,
		Activities:   strings.TrimSpace(in.Activities),
		Triggers:     strings.TrimSpace(in.Triggers),
		Medications:  strings.TrimSpace(in.Medications),
	}
	if notes := strings.TrimSpace(in.Notes); notes != "" {
		e.Notes = &notes
	}
	return e, nil
}

type GoalInput struct {
	Title       string
	Description string
	TargetDate  string
}

func (in GoalInput) Validate() error {
	_, err := in.goal()
	return err
}

func (in GoalInput) goal() (*store.Goal, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, invalid("title", "please enter a goal title")
	}

	g := &store.Goal{Title: title}
	if desc := strings.TrimSpace(in.Description); desc != "" {
		g.Description = &desc
	}
	if target := strings.TrimSpace(in.TargetDate); target != "" {
		if err := checkDate("target date", target); err != nil {
			return nil, err
		}
		g.TargetDate = &target
	}
	return g, nil
}

func checkDate(field, s string) error {
	if _, err := time.Parse(store.DateLayout, s); err != nil {
		return invalid(field, "invalid date %q, use YYYY-MM-DD", s)
	}
	return nil
}

func checkScore(field string, v int) error {
	if v < minScore || v > maxScore {
		return invalid(field, "must be between %d and %d, got %d", minScore, maxScore, v)
	}
	return nil
}

func parseSleep(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, invalid("sleep", "invalid sleep hours %q", s)
	}
	if v < 0 || v > maxSleep {
		return nil, invalid("sleep", "must be between 0 and %d hours, got %v", maxSleep, v)
	}
	return &v, nil
}
