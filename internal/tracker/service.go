// Package tracker is the command layer between the user interfaces and the
// store. Every user action goes through a Service method that validates
// input, talks to the Repository, and returns a result or an error.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/sadopc/moodlog/internal/export"
	"github.com/sadopc/moodlog/internal/insights"
	"github.com/sadopc/moodlog/internal/store"
)

// Repository is the persistence the service needs. *store.Store implements it.
type Repository interface {
	InsertMoodEntry(ctx context.Context, e *store.MoodEntry) (*store.MoodEntry, error)
	ListMoodEntries(ctx context.Context, f store.EntryFilter) ([]store.MoodEntry, error)
	DeleteMoodEntry(ctx context.Context, id int64) error
	DeleteMoodEntriesByDate(ctx context.Context, date string) (int64, error)

	InsertGoal(ctx context.Context, g *store.Goal) (*store.Goal, error)
	ListGoals(ctx context.Context, order store.GoalOrder) ([]store.Goal, error)
	SetGoalCompleted(ctx context.Context, id int64, completed bool) error
	DeleteGoal(ctx context.Context, id int64) error
}

var _ Repository = (*store.Store)(nil)

type Service struct {
	repo Repository
	now  func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now is the service clock.
func (s *Service) Now() time.Time {
	return s.now()
}

// ============================================================
// Mood entries
// ============================================================

func (s *Service) LogMood(ctx context.Context, in MoodInput) (*store.MoodEntry, error) {
	e, err := in.entry()
	if err != nil {
		return nil, err
	}
	return s.repo.InsertMoodEntry(ctx, e)
}

// History lists entries newest first. A limit of 0 returns everything.
func (s *Service) History(ctx context.Context, limit int) ([]store.MoodEntry, error) {
	return s.repo.ListMoodEntries(ctx, store.EntryFilter{Order: store.NewestFirst, Limit: limit})
}

func (s *Service) DeleteEntry(ctx context.Context, id int64) error {
	return s.repo.DeleteMoodEntry(ctx, id)
}

// DeleteEntriesOn removes every entry recorded for date.
func (s *Service) DeleteEntriesOn(ctx context.Context, date string) (int64, error) {
	date = strings.TrimSpace(date)
	if err := checkDate("date", date); err != nil {
		return 0, err
	}
	return s.repo.DeleteMoodEntriesByDate(ctx, date)
}

// ============================================================
// Goals
// ============================================================

func (s *Service) AddGoal(ctx context.Context, in GoalInput) (*store.Goal, error) {
	g, err := in.goal()
	if err != nil {
		return nil, err
	}
	return s.repo.InsertGoal(ctx, g)
}

// Goals lists open goals first, ordered by target date.
func (s *Service) Goals(ctx context.Context) ([]store.Goal, error) {
	return s.repo.ListGoals(ctx, store.ByStatus)
}

func (s *Service) CompleteGoal(ctx context.Context, id int64) error {
	return s.repo.SetGoalCompleted(ctx, id, true)
}

func (s *Service) ReopenGoal(ctx context.Context, id int64) error {
	return s.repo.SetGoalCompleted(ctx, id, false)
}

func (s *Service) DeleteGoal(ctx context.Context, id int64) error {
	return s.repo.DeleteGoal(ctx, id)
}

// ============================================================
// Insights and export
// ============================================================

// Insights computes the report over every entry and goal. It returns
// insights.ErrEmptyDataset when nothing has been logged yet.
func (s *Service) Insights(ctx context.Context) (*insights.Report, error) {
	entries, goals, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return insights.Compute(entries, goals)
}

func (s *Service) load(ctx context.Context) ([]store.MoodEntry, []store.Goal, error) {
	entries, err := s.repo.ListMoodEntries(ctx, store.EntryFilter{Order: store.OldestFirst})
	if err != nil {
		return nil, nil, err
	}
	goals, err := s.repo.ListGoals(ctx, store.ByID)
	if err != nil {
		return nil, nil, err
	}
	return entries, goals, nil
}

func (s *Service) ExportJSON(ctx context.Context, path string) error {
	entries, goals, err := s.load(ctx)
	if err != nil {
		return err
	}
	snap := export.Snapshot{ExportedAt: s.now(), Entries: entries, Goals: goals}
	if err := export.ToJSON(snap, path); err != nil {
		return err
	}
	slog.Info("export written", "format", "json", "path", path, "entries", len(entries), "goals", len(goals))
	return nil
}

func (s *Service) ExportCSV(ctx context.Context, path string) error {
	entries, err := s.repo.ListMoodEntries(ctx, store.EntryFilter{Order: store.OldestFirst})
	if err != nil {
		return err
	}
	if err := export.ToCSV(entries, path); err != nil {
		return err
	}
	slog.Info("export written", "format", "csv", "path", path, "entries", len(entries))
	return nil
}

// ExportReport writes the insights report as Markdown (.md) or HTML (.html).
// An empty log still produces a report that says so.
func (s *Service) ExportReport(ctx context.Context, path string) error {
	write, format, err := reportWriter(path)
	if err != nil {
		return err
	}

	r, err := s.Insights(ctx)
	if err != nil && !errors.Is(err, insights.ErrEmptyDataset) {
		return err
	}
	if err := write(r, s.now(), path); err != nil {
		return err
	}
	slog.Info("export written", "format", format, "path", path)
	return nil
}

func reportWriter(path string) (func(*insights.Report, time.Time, string) error, string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return export.ToMarkdown, "markdown", nil
	case ".html", ".htm":
		return export.ToHTML, "html", nil
	}
	return nil, "", fmt.Errorf("%w: %q (use .md or .html)", ErrUnsupportedFormat, filepath.Ext(path))
}

// ExportName is the default file name for an export made today, e.g.
// moodlog-export-2024-03-01.csv.
func (s *Service) ExportName(ext string) string {
	return fmt.Sprintf("moodlog-export-%s.%s", s.now().Format(store.DateLayout), strings.TrimPrefix(ext, "."))
}
