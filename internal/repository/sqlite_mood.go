package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/lumen/internal/db"
	"github.com/alexanderramin/lumen/internal/domain"
)

type SQLiteMoodRepo struct {
	db db.DBTX
}

// NewSQLiteMoodRepo creates a new SQLiteMoodRepo.
func NewSQLiteMoodRepo(db db.DBTX) *SQLiteMoodRepo {
	return &SQLiteMoodRepo{db: db}
}

func (r *SQLiteMoodRepo) Create(ctx context.Context, m *domain.MoodSample) error {
	query := `INSERT INTO mood_samples (id, user_id, timestamp, level, free_text) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.UserID,
		formatTime(m.Timestamp),
		m.Level,
		m.FreeText,
	)
	if err != nil {
		return fmt.Errorf("inserting mood sample: %w", err)
	}
	return nil
}

func (r *SQLiteMoodRepo) ListSince(ctx context.Context, userID string, since time.Time, limit int) ([]*domain.MoodSample, error) {
	if limit <= 0 {
		limit = -1 // SQLite: negative LIMIT means unbounded
	}
	query := `SELECT id, user_id, timestamp, level, free_text FROM (
			SELECT id, user_id, timestamp, level, free_text
			FROM mood_samples
			WHERE user_id = ? AND timestamp >= ?
			ORDER BY timestamp DESC, id DESC
			LIMIT ?
		) ORDER BY timestamp, id`
	rows, err := r.db.QueryContext(ctx, query, userID, formatTime(since), limit)
	if err != nil {
		return nil, fmt.Errorf("listing mood samples: %w", err)
	}
	defer rows.Close()

	var out []*domain.MoodSample
	for rows.Next() {
		var m domain.MoodSample
		var ts string
		if err := rows.Scan(&m.ID, &m.UserID, &ts, &m.Level, &m.FreeText); err != nil {
			return nil, fmt.Errorf("scanning mood sample: %w", err)
		}
		if m.Timestamp, err = parseTime(ts); err != nil {
			return nil, fmt.Errorf("parsing mood timestamp: %w", err)
		}
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating mood samples: %w", err)
	}
	return out, nil
}

func (r *SQLiteMoodRepo) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM mood_samples WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("deleting mood samples: %w", err)
	}
	return nil
}
