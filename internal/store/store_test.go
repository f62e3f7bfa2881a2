package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func ptr[T any](v T) *T { return &v }

// insertMood is a test helper that stores an entry with only the required fields set.
func insertMood(t *testing.T, s *Store, date string, mood int) *MoodEntry {
	t.Helper()
	e, err := s.InsertMoodEntry(context.Background(), &MoodEntry{
		Date:        date,
		MoodScore:   mood,
		EnergyLevel: 5,
	})
	if err != nil {
		t.Fatalf("insert mood entry: %v", err)
	}
	return e
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s := newTestStore(t)

	v, err := s.SchemaVersion()
	if err != nil {
		t.Fatal(err)
	}
	if v != 1 {
		t.Fatalf("expected schema version 1, got %d", v)
	}
}

func TestNewWithPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "moodlog.db")
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	insertMood(t, s, "2024-03-01", 6)
	s.Close()

	// Reopen: data survives and migrations are not re-applied
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()

	entries, err := s2.ListMoodEntries(context.Background(), EntryFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry after reopen, got %d", len(entries))
	}
	v, _ := s2.SchemaVersion()
	if v != 1 {
		t.Fatalf("expected schema version 1, got %d", v)
	}
}

func TestPragmas(t *testing.T) {
	s := newTestStore(t)

	var fk int
	if err := s.db.Get(&fk, "PRAGMA foreign_keys"); err != nil {
		t.Fatal(err)
	}
	if fk != 1 {
		t.Fatalf("expected foreign_keys=1, got %d", fk)
	}

	var timeout int
	if err := s.db.Get(&timeout, "PRAGMA busy_timeout"); err != nil {
		t.Fatal(err)
	}
	if timeout != 5000 {
		t.Fatalf("expected busy_timeout=5000, got %d", timeout)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open("nope", "whatever"); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

// ============================================================
// Mood entries
// ============================================================

func TestInsertMoodEntryAllFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Second)
	e, err := s.InsertMoodEntry(ctx, &MoodEntry{
		Date:         "2024-03-01",
		MoodScore:    7,
		EnergyLevel:  6,
		SleepHours:   ptr(7.5),
		StressLevel:  ptr(3),
		AnxietyLevel: ptr(2),
		Notes:        ptr("walked, \"quoted\"\nsecond line"),
		Activities:   "walk,read",
		Triggers:     "work",
		Medications:  "none",
	})
	if err != nil {
		t.Fatal(err)
	}
	if e.ID == 0 {
		t.Fatal("expected non-zero id")
	}
	if e.SleepHours == nil || *e.SleepHours != 7.5 {
		t.Fatalf("sleep hours: got %v", e.SleepHours)
	}
	if e.StressLevel == nil || *e.StressLevel != 3 {
		t.Fatalf("stress: got %v", e.StressLevel)
	}
	if e.AnxietyLevel == nil || *e.AnxietyLevel != 2 {
		t.Fatalf("anxiety: got %v", e.AnxietyLevel)
	}
	if e.Notes == nil || *e.Notes != "walked, \"quoted\"\nsecond line" {
		t.Fatalf("notes: got %v", e.Notes)
	}
	if e.Activities != "walk,read" || e.Triggers != "work" || e.Medications != "none" {
		t.Fatalf("text fields: %+v", e)
	}
	if e.CreatedAt.Before(before) {
		t.Fatalf("created_at %v earlier than %v", e.CreatedAt, before)
	}
}

func TestInsertMoodEntryNullables(t *testing.T) {
	s := newTestStore(t)

	e := insertMood(t, s, "2024-03-01", 5)
	if e.SleepHours != nil || e.StressLevel != nil || e.AnxietyLevel != nil || e.Notes != nil {
		t.Fatalf("expected absent optionals, got %+v", e)
	}
	if e.Activities != "" || e.Triggers != "" || e.Medications != "" {
		t.Fatalf("expected empty list fields, got %+v", e)
	}
}

func TestMultipleEntriesSameDate(t *testing.T) {
	s := newTestStore(t)

	insertMood(t, s, "2024-03-01", 4)
	insertMood(t, s, "2024-03-01", 8)

	entries, err := s.ListMoodEntries(context.Background(), EntryFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
}

func TestGetMoodEntryNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetMoodEntry(context.Background(), 999)
	if !errors.Is(err, ErrMoodEntryNotFound) {
		t.Fatalf("expected ErrMoodEntryNotFound, got %v", err)
	}
}

func TestListMoodEntriesOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := insertMood(t, s, "2024-03-02", 5)
	b := insertMood(t, s, "2024-03-01", 6)
	c := insertMood(t, s, "2024-03-02", 7)

	newest, err := s.ListMoodEntries(ctx, EntryFilter{Order: NewestFirst})
	if err != nil {
		t.Fatal(err)
	}
	want := []int64{c.ID, a.ID, b.ID}
	for i, e := range newest {
		if e.ID != want[i] {
			t.Fatalf("newest[%d]: expected id %d, got %d", i, want[i], e.ID)
		}
	}

	oldest, err := s.ListMoodEntries(ctx, EntryFilter{Order: OldestFirst})
	if err != nil {
		t.Fatal(err)
	}
	want = []int64{b.ID, a.ID, c.ID}
	for i, e := range oldest {
		if e.ID != want[i] {
			t.Fatalf("oldest[%d]: expected id %d, got %d", i, want[i], e.ID)
		}
	}
}

func TestListMoodEntriesLimit(t *testing.T) {
	s := newTestStore(t)

	for d := 1; d <= 5; d++ {
		insertMood(t, s, time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC).Format(DateLayout), d)
	}

	entries, err := s.ListMoodEntries(context.Background(), EntryFilter{Limit: 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Date != "2024-03-05" {
		t.Fatalf("expected newest first, got %s", entries[0].Date)
	}
}

func TestListMoodEntriesEmpty(t *testing.T) {
	s := newTestStore(t)

	entries, err := s.ListMoodEntries(context.Background(), EntryFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}

func TestDeleteMoodEntriesByDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insertMood(t, s, "2024-03-01", 4)
	insertMood(t, s, "2024-03-01", 8)
	keep := insertMood(t, s, "2024-03-02", 6)

	n, err := s.DeleteMoodEntriesByDate(ctx, "2024-03-01")
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("expected 2 rows deleted, got %d", n)
	}

	entries, _ := s.ListMoodEntries(ctx, EntryFilter{})
	if len(entries) != 1 || entries[0].ID != keep.ID {
		t.Fatalf("expected only entry %d to remain, got %+v", keep.ID, entries)
	}

	// No match is not an error
	n, err = s.DeleteMoodEntriesByDate(ctx, "1999-01-01")
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("expected 0 rows deleted, got %d", n)
	}
}

func TestDeleteMoodEntry(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := insertMood(t, s, "2024-03-01", 4)
	b := insertMood(t, s, "2024-03-01", 8)

	if err := s.DeleteMoodEntry(ctx, a.ID); err != nil {
		t.Fatal(err)
	}
	entries, _ := s.ListMoodEntries(ctx, EntryFilter{})
	if len(entries) != 1 || entries[0].ID != b.ID {
		t.Fatalf("expected only entry %d to remain, got %+v", b.ID, entries)
	}

	if err := s.DeleteMoodEntry(ctx, a.ID); !errors.Is(err, ErrMoodEntryNotFound) {
		t.Fatalf("expected ErrMoodEntryNotFound, got %v", err)
	}
}

// ============================================================
// Goals
// ============================================================

func TestInsertGoal(t *testing.T) {
	s := newTestStore(t)

	g, err := s.InsertGoal(context.Background(), &Goal{
		Title:       "Meditate daily",
		Description: ptr("ten minutes"),
		TargetDate:  ptr("2024-06-01"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if g.ID == 0 || g.Title != "Meditate daily" {
		t.Fatalf("unexpected goal: %+v", g)
	}
	if g.Description == nil || *g.Description != "ten minutes" {
		t.Fatalf("description: got %v", g.Description)
	}
	if g.TargetDate == nil || *g.TargetDate != "2024-06-01" {
		t.Fatalf("target date: got %v", g.TargetDate)
	}
	if g.Completed {
		t.Fatal("new goal should not be completed")
	}
	if g.CreatedAt.IsZero() {
		t.Fatal("expected created_at")
	}
}

func TestInsertGoalMinimal(t *testing.T) {
	s := newTestStore(t)

	g, err := s.InsertGoal(context.Background(), &Goal{Title: "Sleep more"})
	if err != nil {
		t.Fatal(err)
	}
	if g.Description != nil || g.TargetDate != nil {
		t.Fatalf("expected absent optionals, got %+v", g)
	}
}

func TestGetGoalNotFound(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.GetGoal(context.Background(), 42); !errors.Is(err, ErrGoalNotFound) {
		t.Fatalf("expected ErrGoalNotFound, got %v", err)
	}
}

func TestListGoalsOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	undated, _ := s.InsertGoal(ctx, &Goal{Title: "undated"})
	late, _ := s.InsertGoal(ctx, &Goal{Title: "late", TargetDate: ptr("2024-09-01")})
	done, _ := s.InsertGoal(ctx, &Goal{Title: "done", TargetDate: ptr("2024-01-01")})
	early, _ := s.InsertGoal(ctx, &Goal{Title: "early", TargetDate: ptr("2024-04-01")})

	if err := s.SetGoalCompleted(ctx, done.ID, true); err != nil {
		t.Fatal(err)
	}

	goals, err := s.ListGoals(ctx, ByStatus)
	if err != nil {
		t.Fatal(err)
	}
	want := []int64{early.ID, late.ID, undated.ID, done.ID}
	if len(goals) != len(want) {
		t.Fatalf("expected %d goals, got %d", len(want), len(goals))
	}
	for i, g := range goals {
		if g.ID != want[i] {
			t.Fatalf("by status [%d]: expected %d, got %d (%s)", i, want[i], g.ID, g.Title)
		}
	}

	goals, err = s.ListGoals(ctx, ByID)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(goals); i++ {
		if goals[i].ID <= goals[i-1].ID {
			t.Fatalf("by id not ascending: %d then %d", goals[i-1].ID, goals[i].ID)
		}
	}
}

func TestSetGoalCompleted(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	g, _ := s.InsertGoal(ctx, &Goal{Title: "Run"})

	if err := s.SetGoalCompleted(ctx, g.ID, true); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetGoal(ctx, g.ID)
	if !got.Completed {
		t.Fatal("expected completed")
	}

	if err := s.SetGoalCompleted(ctx, g.ID, false); err != nil {
		t.Fatal(err)
	}
	got, _ = s.GetGoal(ctx, g.ID)
	if got.Completed {
		t.Fatal("expected reopened")
	}

	if err := s.SetGoalCompleted(ctx, 999, true); !errors.Is(err, ErrGoalNotFound) {
		t.Fatalf("expected ErrGoalNotFound, got %v", err)
	}
}

func TestDeleteGoal(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	g, _ := s.InsertGoal(ctx, &Goal{Title: "Journal"})
	if err := s.DeleteGoal(ctx, g.ID); err != nil {
		t.Fatal(err)
	}
	goals, _ := s.ListGoals(ctx, ByID)
	if len(goals) != 0 {
		t.Fatalf("expected no goals, got %d", len(goals))
	}
	if err := s.DeleteGoal(ctx, g.ID); !errors.Is(err, ErrGoalNotFound) {
		t.Fatalf("expected ErrGoalNotFound, got %v", err)
	}
}
