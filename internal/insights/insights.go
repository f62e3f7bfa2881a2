// Package insights derives summary statistics and recommendations from the
// mood log. Everything here is pure: callers pass in snapshots read from the
// store and get a Report back.
package insights

import (
	"errors"
	"math"
	"slices"
	"strings"

	"github.com/sadopc/moodlog/internal/store"
)

// ErrEmptyDataset is returned by Compute when there are no mood entries.
var ErrEmptyDataset = errors.New("no data available for analysis")

const (
	Improving = "improving"
	Declining = "declining"
)

const (
	trendWindow = 7
	topBuckets  = 2
)

type Report struct {
	Count       int
	PeriodStart string
	PeriodEnd   string

	Averages        Averages
	Trend           *Trend
	Sleep           []SleepBucket
	Goals           *GoalProgress
	Recommendations []string
}

// Averages holds unrounded means. Optional metrics are nil when no entry
// recorded them.
type Averages struct {
	Mood    float64
	Energy  float64
	Sleep   *float64
	Stress  *float64
	Anxiety *float64
}

// Trend compares the newest and oldest mood within the most recent window.
// Equal scores count as declining.
type Trend struct {
	Direction string
	Window    int
	Newest    int
	Oldest    int
}

// SleepBucket groups entries by sleep rounded to the nearest hour.
type SleepBucket struct {
	Hours    int
	MeanMood float64
	Entries  int
}

type GoalProgress struct {
	Completed int
	Total     int
	Percent   float64 // one decimal
}

// DayMood is a single point of the recent mood series.
type DayMood struct {
	Date string
	Mood int
}

// Compute builds a Report. Neither slice is modified.
func Compute(entries []store.MoodEntry, goals []store.Goal) (*Report, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyDataset
	}

	r := &Report{
		Count:       len(entries),
		PeriodStart: entries[0].Date,
		PeriodEnd:   entries[0].Date,
	}
	for _, e := range entries {
		if e.Date < r.PeriodStart {
			r.PeriodStart = e.Date
		}
		if e.Date > r.PeriodEnd {
			r.PeriodEnd = e.Date
		}
	}

	r.Averages = averages(entries)
	r.Trend = trend(entries)
	r.Sleep = sleepBuckets(entries)
	r.Goals = goalProgress(goals)
	r.Recommendations = recommend(r.Averages)
	return r, nil
}

func averages(entries []store.MoodEntry) Averages {
	var mood, energy float64
	var sleep, stress, anxiety meanAcc
	for _, e := range entries {
		mood += float64(e.MoodScore)
		energy += float64(e.EnergyLevel)
		if e.SleepHours != nil {
			sleep.add(*e.SleepHours)
		}
		if e.StressLevel != nil {
			stress.add(float64(*e.StressLevel))
		}
		if e.AnxietyLevel != nil {
			anxiety.add(float64(*e.AnxietyLevel))
		}
	}
	n := float64(len(entries))
	return Averages{
		Mood:    mood / n,
		Energy:  energy / n,
		Sleep:   sleep.mean(),
		Stress:  stress.mean(),
		Anxiety: anxiety.mean(),
	}
}

type meanAcc struct {
	sum float64
	n   int
}

func (m *meanAcc) add(v float64) {
	m.sum += v
	m.n++
}

func (m meanAcc) mean() *float64 {
	if m.n == 0 {
		return nil
	}
	v := m.sum / float64(m.n)
	return &v
}

// newestFirst returns a copy sorted by date descending, later inserts first
// within a day.
func newestFirst(entries []store.MoodEntry) []store.MoodEntry {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b store.MoodEntry) int {
		if c := strings.Compare(b.Date, a.Date); c != 0 {
			return c
		}
		switch {
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		}
		return 0
	})
	return sorted
}

func trend(entries []store.MoodEntry) *Trend {
	window := newestFirst(entries)
	if len(window) > trendWindow {
		window = window[:trendWindow]
	}
	if len(window) < 2 {
		return nil
	}

	t := &Trend{
		Window: len(window),
		Newest: window[0].MoodScore,
		Oldest: window[len(window)-1].MoodScore,
	}
	t.Direction = Declining
	if t.Newest > t.Oldest {
		t.Direction = Improving
	}
	return t
}

func sleepBuckets(entries []store.MoodEntry) []SleepBucket {
	type acc struct {
		sum float64
		n   int
	}
	groups := make(map[int]*acc)
	for _, e := range entries {
		if e.SleepHours == nil {
			continue
		}
		h := int(math.Round(*e.SleepHours))
		g, ok := groups[h]
		if !ok {
			g = &acc{}
			groups[h] = g
		}
		g.sum += float64(e.MoodScore)
		g.n++
	}
	if len(groups) == 0 {
		return nil
	}

	buckets := make([]SleepBucket, 0, len(groups))
	for h, g := range groups {
		buckets = append(buckets, SleepBucket{
			Hours:    h,
			MeanMood: g.sum / float64(g.n),
			Entries:  g.n,
		})
	}
	slices.SortFunc(buckets, func(a, b SleepBucket) int {
		switch {
		case a.MeanMood > b.MeanMood:
			return -1
		case a.MeanMood < b.MeanMood:
			return 1
		case a.Entries != b.Entries:
			return b.Entries - a.Entries
		}
		return a.Hours - b.Hours
	})

	if len(buckets) > topBuckets {
		buckets = buckets[:topBuckets]
	}
	return buckets
}

func goalProgress(goals []store.Goal) *GoalProgress {
	if len(goals) == 0 {
		return nil
	}
	p := &GoalProgress{Total: len(goals)}
	for _, g := range goals {
		if g.Completed {
			p.Completed++
		}
	}
	pct := float64(p.Completed) / float64(p.Total) * 100
	p.Percent = math.Round(pct*10) / 10
	return p
}

const (
	RecBoostMood     = "Consider activities that boost your mood"
	RecMoreSleep     = "Aim for more sleep (7-9 hours recommended)"
	RecReduceStress  = "Practice stress reduction techniques"
	RecAnxiety       = "Consider anxiety management strategies"
	RecKeepTracking  = "Continue tracking for better insights"
	RecConsultExpert = "Consult healthcare providers for persistent concerns"
)

func recommend(a Averages) []string {
	var recs []string
	if a.Mood < 6 {
		recs = append(recs, RecBoostMood)
	}
	if a.Sleep != nil && *a.Sleep < 7 {
		recs = append(recs, RecMoreSleep)
	}
	if a.Stress != nil && *a.Stress > 6 {
		recs = append(recs, RecReduceStress)
	}
	if a.Anxiety != nil && *a.Anxiety > 6 {
		recs = append(recs, RecAnxiety)
	}
	return append(recs, RecKeepTracking, RecConsultExpert)
}

// RecentMoods returns up to n of the newest entries as a series ordered
// oldest to newest.
func RecentMoods(entries []store.MoodEntry, n int) []DayMood {
	sorted := newestFirst(entries)
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	out := make([]DayMood, len(sorted))
	for i, e := range sorted {
		out[len(sorted)-1-i] = DayMood{Date: e.Date, Mood: e.MoodScore}
	}
	return out
}
