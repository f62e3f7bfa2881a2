package insights

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/sadopc/moodlog/internal/store"
)

func ptr[T any](v T) *T { return &v }

func entry(id int64, date string, mood int) store.MoodEntry {
	return store.MoodEntry{ID: id, Date: date, MoodScore: mood, EnergyLevel: 5}
}

func week(moods ...int) []store.MoodEntry {
	var entries []store.MoodEntry
	for i, m := range moods {
		entries = append(entries, entry(int64(i+1), fmt.Sprintf("2024-03-%02d", i+1), m))
	}
	return entries
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// ============================================================
// Compute
// ============================================================

func TestComputeEmpty(t *testing.T) {
	_, err := Compute(nil, []store.Goal{{Title: "g"}})
	if !errors.Is(err, ErrEmptyDataset) {
		t.Fatalf("expected ErrEmptyDataset, got %v", err)
	}
}

func TestComputePeriodAndCount(t *testing.T) {
	entries := []store.MoodEntry{
		entry(1, "2024-03-05", 5),
		entry(2, "2024-02-28", 6),
		entry(3, "2024-03-10", 7),
	}
	r, err := Compute(entries, nil)
	if err != nil {
		t.Fatal(err)
	}
	if r.Count != 3 {
		t.Fatalf("expected count 3, got %d", r.Count)
	}
	if r.PeriodStart != "2024-02-28" || r.PeriodEnd != "2024-03-10" {
		t.Fatalf("unexpected period %s..%s", r.PeriodStart, r.PeriodEnd)
	}
}

func TestComputeAverages(t *testing.T) {
	entries := []store.MoodEntry{
		{ID: 1, Date: "2024-03-01", MoodScore: 3, EnergyLevel: 4, SleepHours: ptr(6.0), StressLevel: ptr(8)},
		{ID: 2, Date: "2024-03-02", MoodScore: 8, EnergyLevel: 6},
		{ID: 3, Date: "2024-03-03", MoodScore: 10, EnergyLevel: 5, SleepHours: ptr(9.0), StressLevel: ptr(4)},
	}
	r, err := Compute(entries, nil)
	if err != nil {
		t.Fatal(err)
	}

	if !almostEqual(r.Averages.Mood, 7) {
		t.Errorf("mood: expected 7, got %v", r.Averages.Mood)
	}
	if r.Averages.Mood < 1 || r.Averages.Mood > 10 {
		t.Errorf("mood average out of range: %v", r.Averages.Mood)
	}
	if !almostEqual(r.Averages.Energy, 5) {
		t.Errorf("energy: expected 5, got %v", r.Averages.Energy)
	}
	if r.Averages.Sleep == nil || !almostEqual(*r.Averages.Sleep, 7.5) {
		t.Errorf("sleep: expected 7.5 ignoring nulls, got %v", r.Averages.Sleep)
	}
	if r.Averages.Stress == nil || !almostEqual(*r.Averages.Stress, 6) {
		t.Errorf("stress: expected 6, got %v", r.Averages.Stress)
	}
	if r.Averages.Anxiety != nil {
		t.Errorf("anxiety: expected nil, got %v", *r.Averages.Anxiety)
	}
}

func TestComputeDoesNotMutateInput(t *testing.T) {
	entries := []store.MoodEntry{
		entry(1, "2024-03-01", 2),
		entry(2, "2024-03-03", 9),
		entry(3, "2024-03-02", 5),
	}
	before := slices.Clone(entries)
	if _, err := Compute(entries, nil); err != nil {
		t.Fatal(err)
	}
	for i := range entries {
		if entries[i].ID != before[i].ID {
			t.Fatalf("input reordered at %d", i)
		}
	}
}

// ============================================================
// Trend
// ============================================================

func TestTrend(t *testing.T) {
	tests := []struct {
		name  string
		moods []int
		want  string
	}{
		{"improving", []int{5, 5, 5, 5, 5, 5, 8}, Improving},
		{"declining", []int{8, 5, 5, 5, 5, 5, 5}, Declining},
		{"tie is declining", []int{6, 9, 6}, Declining},
		{"older entries ignored", []int{1, 6, 6, 6, 6, 6, 6, 6}, Declining},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Compute(week(tt.moods...), nil)
			if err != nil {
				t.Fatal(err)
			}
			if r.Trend == nil {
				t.Fatal("expected trend")
			}
			if r.Trend.Direction != tt.want {
				t.Fatalf("expected %s, got %s (%+v)", tt.want, r.Trend.Direction, r.Trend)
			}
		})
	}
}

func TestTrendWindowSize(t *testing.T) {
	r, _ := Compute(week(1, 2, 3, 4, 5, 6, 7, 8, 9, 10), nil)
	if r.Trend.Window != 7 {
		t.Fatalf("expected window 7, got %d", r.Trend.Window)
	}
	if r.Trend.Newest != 10 || r.Trend.Oldest != 4 {
		t.Fatalf("unexpected endpoints %+v", r.Trend)
	}

	r, _ = Compute(week(3, 4, 5), nil)
	if r.Trend.Window != 3 {
		t.Fatalf("expected window 3, got %d", r.Trend.Window)
	}
}

func TestTrendSingleEntryOmitted(t *testing.T) {
	r, err := Compute(week(7), nil)
	if err != nil {
		t.Fatal(err)
	}
	if r.Trend != nil {
		t.Fatalf("expected no trend, got %+v", r.Trend)
	}
}

func TestTrendSameDayUsesInsertOrder(t *testing.T) {
	entries := []store.MoodEntry{
		entry(1, "2024-03-01", 4),
		entry(2, "2024-03-02", 3),
		entry(3, "2024-03-02", 9),
	}
	r, _ := Compute(entries, nil)
	if r.Trend.Newest != 9 {
		t.Fatalf("expected newest to be the later insert, got %d", r.Trend.Newest)
	}
}

// ============================================================
// Sleep buckets
// ============================================================

func TestSleepBuckets(t *testing.T) {
	entries := []store.MoodEntry{
		{ID: 1, Date: "2024-03-01", MoodScore: 8, EnergyLevel: 5, SleepHours: ptr(7.0)},
		{ID: 2, Date: "2024-03-02", MoodScore: 6, EnergyLevel: 5, SleepHours: ptr(7.0)},
		{ID: 3, Date: "2024-03-03", MoodScore: 3, EnergyLevel: 5, SleepHours: ptr(5.0)},
	}
	r, err := Compute(entries, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Sleep) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(r.Sleep))
	}
	if r.Sleep[0].Hours != 7 || !almostEqual(r.Sleep[0].MeanMood, 7.0) {
		t.Errorf("top bucket: got %+v", r.Sleep[0])
	}
	if r.Sleep[1].Hours != 5 || !almostEqual(r.Sleep[1].MeanMood, 3.0) {
		t.Errorf("second bucket: got %+v", r.Sleep[1])
	}
}

func TestSleepBucketsRounding(t *testing.T) {
	entries := []store.MoodEntry{
		{ID: 1, Date: "2024-03-01", MoodScore: 9, EnergyLevel: 5, SleepHours: ptr(7.5)},
		{ID: 2, Date: "2024-03-02", MoodScore: 7, EnergyLevel: 5, SleepHours: ptr(8.4)},
		{ID: 3, Date: "2024-03-03", MoodScore: 2, EnergyLevel: 5, SleepHours: ptr(4.49)},
	}
	r, _ := Compute(entries, nil)
	if r.Sleep[0].Hours != 8 || r.Sleep[0].Entries != 2 {
		t.Fatalf("expected 7.5 and 8.4 to share the 8h bucket, got %+v", r.Sleep[0])
	}
	if r.Sleep[1].Hours != 4 {
		t.Fatalf("expected 4h bucket, got %+v", r.Sleep[1])
	}
}

func TestSleepBucketsTieBreak(t *testing.T) {
	entries := []store.MoodEntry{
		{ID: 1, Date: "2024-03-01", MoodScore: 6, EnergyLevel: 5, SleepHours: ptr(9.0)},
		{ID: 2, Date: "2024-03-02", MoodScore: 6, EnergyLevel: 5, SleepHours: ptr(6.0)},
		{ID: 3, Date: "2024-03-03", MoodScore: 6, EnergyLevel: 5, SleepHours: ptr(8.0)},
		{ID: 4, Date: "2024-03-04", MoodScore: 6, EnergyLevel: 5, SleepHours: ptr(8.0)},
	}
	r, _ := Compute(entries, nil)
	if r.Sleep[0].Hours != 8 {
		t.Fatalf("expected the bucket with more entries first, got %+v", r.Sleep)
	}
	if r.Sleep[1].Hours != 6 {
		t.Fatalf("expected fewer hours to win the remaining tie, got %+v", r.Sleep)
	}
}

func TestSleepBucketsOmittedWithoutSleep(t *testing.T) {
	r, _ := Compute(week(5, 6), nil)
	if r.Sleep != nil {
		t.Fatalf("expected no buckets, got %+v", r.Sleep)
	}
}

// ============================================================
// Goals and recommendations
// ============================================================

func TestGoalProgress(t *testing.T) {
	goals := []store.Goal{
		{ID: 1, Title: "a", Completed: true},
		{ID: 2, Title: "b"},
		{ID: 3, Title: "c"},
	}
	r, _ := Compute(week(5), goals)
	if r.Goals == nil {
		t.Fatal("expected goal progress")
	}
	if r.Goals.Completed != 1 || r.Goals.Total != 3 {
		t.Fatalf("unexpected counts %+v", r.Goals)
	}
	if r.Goals.Percent != 33.3 {
		t.Fatalf("expected 33.3, got %v", r.Goals.Percent)
	}
}

func TestGoalProgressOmitted(t *testing.T) {
	r, _ := Compute(week(5), nil)
	if r.Goals != nil {
		t.Fatalf("expected nil, got %+v", r.Goals)
	}
}

func TestRecommendations(t *testing.T) {
	t.Run("all rules fire", func(t *testing.T) {
		entries := []store.MoodEntry{{
			ID: 1, Date: "2024-03-01", MoodScore: 3, EnergyLevel: 3,
			SleepHours: ptr(5.0), StressLevel: ptr(8), AnxietyLevel: ptr(9),
		}}
		r, _ := Compute(entries, nil)
		want := []string{RecBoostMood, RecMoreSleep, RecReduceStress, RecAnxiety, RecKeepTracking, RecConsultExpert}
		if !slices.Equal(r.Recommendations, want) {
			t.Fatalf("got %q", r.Recommendations)
		}
	})

	t.Run("only static", func(t *testing.T) {
		entries := []store.MoodEntry{{
			ID: 1, Date: "2024-03-01", MoodScore: 8, EnergyLevel: 8,
			SleepHours: ptr(8.0), StressLevel: ptr(2), AnxietyLevel: ptr(2),
		}}
		r, _ := Compute(entries, nil)
		want := []string{RecKeepTracking, RecConsultExpert}
		if !slices.Equal(r.Recommendations, want) {
			t.Fatalf("got %q", r.Recommendations)
		}
	})

	t.Run("absent averages do not fire", func(t *testing.T) {
		r, _ := Compute(week(8), nil)
		want := []string{RecKeepTracking, RecConsultExpert}
		if !slices.Equal(r.Recommendations, want) {
			t.Fatalf("got %q", r.Recommendations)
		}
	})

	t.Run("raw averages are compared", func(t *testing.T) {
		// 5.96 displays as 6.0 but is still below the threshold
		moods := make([]int, 0, 25)
		for range 24 {
			moods = append(moods, 6)
		}
		moods = append(moods, 5)
		r, _ := Compute(week(moods...), nil)
		if r.Recommendations[0] != RecBoostMood {
			t.Fatalf("expected mood rule to fire for %.2f, got %q", r.Averages.Mood, r.Recommendations)
		}
	})
}

// ============================================================
// Render and RecentMoods
// ============================================================

func TestRender(t *testing.T) {
	entries := []store.MoodEntry{
		{ID: 1, Date: "2024-03-01", MoodScore: 5, EnergyLevel: 6, SleepHours: ptr(7.0)},
		{ID: 2, Date: "2024-03-02", MoodScore: 8, EnergyLevel: 6, SleepHours: ptr(5.0)},
	}
	goals := []store.Goal{{ID: 1, Title: "a", Completed: true}, {ID: 2, Title: "b"}}
	r, err := Compute(entries, goals)
	if err != nil {
		t.Fatal(err)
	}

	out := Render(r)
	for _, want := range []string{
		"=== MENTAL HEALTH INSIGHTS ===",
		"Analysis Period: 2024-03-01 to 2024-03-02",
		"Total Entries: 2",
		"• Mood Score: 6.5/10",
		"• Sleep Hours: 6.0 hours",
		"• Stress Level: n/a/10",
		"RECENT TREND: Your mood appears to be improving over the last 2 entries.",
		"• Best mood with ~5 hours of sleep",
		"• Good mood also with ~7 hours",
		"• 1 of 2 goals completed (50.0%)",
		"• " + RecConsultExpert,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q\n%s", want, out)
		}
	}
}

func TestRenderNil(t *testing.T) {
	if got := Render(nil); !strings.HasPrefix(got, EmptyMessage) {
		t.Fatalf("got %q", got)
	}
}

func TestRecentMoods(t *testing.T) {
	entries := []store.MoodEntry{
		entry(1, "2024-03-03", 3),
		entry(2, "2024-03-01", 1),
		entry(3, "2024-03-04", 4),
		entry(4, "2024-03-02", 2),
	}
	got := RecentMoods(entries, 3)
	want := []DayMood{{"2024-03-02", 2}, {"2024-03-03", 3}, {"2024-03-04", 4}}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if got := RecentMoods(nil, 5); len(got) != 0 {
		t.Fatalf("expected empty, got %v", got)
	}
}
