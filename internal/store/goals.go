package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

var ErrGoalNotFound = errors.New("goal not found")

const goalColumns = `id, title, description, target_date, completed, created_at`

func (s *Store) InsertGoal(ctx context.Context, g *Goal) (*Goal, error) {
	var id int64
	err := s.db.QueryRowxContext(ctx, s.db.Rebind(
		`INSERT INTO goals (title, description, target_date, completed, created_at)
		 VALUES (?, ?, ?, ?, ?) RETURNING id`),
		g.Title, g.Description, g.TargetDate, boolToInt(g.Completed), nowString(),
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert goal: %w", err)
	}
	slog.Info("goal added", "id", id)
	return s.GetGoal(ctx, id)
}

func (s *Store) GetGoal(ctx context.Context, id int64) (*Goal, error) {
	var row goalRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(
		`SELECT `+goalColumns+` FROM goals WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get goal %d: %w", id, ErrGoalNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get goal %d: %w", id, err)
	}
	g := row.goal()
	return &g, nil
}

func (s *Store) ListGoals(ctx context.Context, order GoalOrder) ([]Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals`
	switch order {
	case ByID:
		query += ` ORDER BY id`
	default:
		query += ` ORDER BY completed, target_date IS NULL, target_date, id`
	}

	var rows []goalRow
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}

	var goals []Goal
	for _, r := range rows {
		goals = append(goals, r.goal())
	}
	return goals, nil
}

func (s *Store) SetGoalCompleted(ctx context.Context, id int64, completed bool) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(
		`UPDATE goals SET completed = ? WHERE id = ?`), boolToInt(completed), id)
	if err != nil {
		return fmt.Errorf("update goal %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("update goal %d: %w", id, ErrGoalNotFound)
	}
	slog.Info("goal status changed", "id", id, "completed", completed)
	return nil
}

func (s *Store) DeleteGoal(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM goals WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete goal %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("delete goal %d: %w", id, ErrGoalNotFound)
	}
	slog.Info("goal deleted", "id", id)
	return nil
}
