package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

var ErrMoodEntryNotFound = errors.New("mood entry not found")

const moodColumns = `id, date, mood_score, energy_level, sleep_hours, stress_level, anxiety_level,
	notes, activities, triggers, medications, created_at`

// InsertMoodEntry stores e, stamping created_at, and returns the stored row.
func (s *Store) InsertMoodEntry(ctx context.Context, e *MoodEntry) (*MoodEntry, error) {
	var id int64
	err := s.db.QueryRowxContext(ctx, s.db.Rebind(
		`INSERT INTO mood_entries
		 (date, mood_score, energy_level, sleep_hours, stress_level, anxiety_level,
		  notes, activities, triggers, medications, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		e.Date, e.MoodScore, e.EnergyLevel, e.SleepHours, e.StressLevel, e.AnxietyLevel,
		e.Notes, e.Activities, e.Triggers, e.Medications, nowString(),
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert mood entry: %w", err)
	}
	slog.Info("mood entry saved", "id", id, "date", e.Date)
	return s.GetMoodEntry(ctx, id)
}

func (s *Store) GetMoodEntry(ctx context.Context, id int64) (*MoodEntry, error) {
	var row moodRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(
		`SELECT `+moodColumns+` FROM mood_entries WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get mood entry %d: %w", id, ErrMoodEntryNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get mood entry %d: %w", id, err)
	}
	e := row.entry()
	return &e, nil
}

func (s *Store) ListMoodEntries(ctx context.Context, f EntryFilter) ([]MoodEntry, error) {
	query := `SELECT ` + moodColumns + ` FROM mood_entries`
	switch f.Order {
	case OldestFirst:
		query += ` ORDER BY date ASC, id ASC`
	default:
		query += ` ORDER BY date DESC, id DESC`
	}
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	var rows []moodRow
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list mood entries: %w", err)
	}

	var entries []MoodEntry
	for _, r := range rows {
		entries = append(entries, r.entry())
	}
	return entries, nil
}

// DeleteMoodEntriesByDate removes every entry recorded for date and returns
// how many rows went.
func (s *Store) DeleteMoodEntriesByDate(ctx context.Context, date string) (int64, error) {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM mood_entries WHERE date = ?`), date)
	if err != nil {
		return 0, fmt.Errorf("delete mood entries on %s: %w", date, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	slog.Info("mood entries deleted", "date", date, "count", n)
	return n, nil
}

// DeleteMoodEntry removes a single entry by id.
func (s *Store) DeleteMoodEntry(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM mood_entries WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete mood entry %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("delete mood entry %d: %w", id, ErrMoodEntryNotFound)
	}
	slog.Info("mood entry deleted", "id", id)
	return nil
}
