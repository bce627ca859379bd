package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/lumen/internal/db"
	"github.com/alexanderramin/lumen/internal/domain"
)

type SQLiteCompletionRepo struct {
	db db.DBTX
}

// NewSQLiteCompletionRepo creates a new SQLiteCompletionRepo.
func NewSQLiteCompletionRepo(db db.DBTX) *SQLiteCompletionRepo {
	return &SQLiteCompletionRepo{db: db}
}

func (r *SQLiteCompletionRepo) Create(ctx context.Context, c *domain.HabitCompletion) error {
	query := `INSERT INTO habit_completions (id, user_id, habit_id, timestamp, completed)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.UserID,
		c.HabitID,
		formatTime(c.Timestamp),
		boolToInt(c.Completed),
	)
	if err != nil {
		return fmt.Errorf("inserting habit completion: %w", err)
	}
	return nil
}

// ListSince joins the habit name so callers never need a second lookup.
func (r *SQLiteCompletionRepo) ListSince(ctx context.Context, userID string, since time.Time) ([]*domain.HabitCompletion, error) {
	query := `SELECT c.id, c.user_id, c.habit_id, h.name, c.timestamp, c.completed
		FROM habit_completions c
		JOIN habits h ON h.id = c.habit_id
		WHERE c.user_id = ? AND c.timestamp >= ?
		ORDER BY c.timestamp, c.id`
	rows, err := r.db.QueryContext(ctx, query, userID, formatTime(since))
	if err != nil {
		return nil, fmt.Errorf("listing habit completions: %w", err)
	}
	defer rows.Close()

	var out []*domain.HabitCompletion
	for rows.Next() {
		var c domain.HabitCompletion
		var ts string
		var completed int
		if err := rows.Scan(&c.ID, &c.UserID, &c.HabitID, &c.HabitName, &ts, &completed); err != nil {
			return nil, fmt.Errorf("scanning habit completion: %w", err)
		}
		if c.Timestamp, err = parseTime(ts); err != nil {
			return nil, fmt.Errorf("parsing completion timestamp: %w", err)
		}
		c.Completed = intToBool(completed)
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating habit completions: %w", err)
	}
	return out, nil
}

func (r *SQLiteCompletionRepo) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM habit_completions WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("deleting habit completions: %w", err)
	}
	return nil
}
