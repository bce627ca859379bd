package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/lumen/internal/db"
	"github.com/alexanderramin/lumen/internal/domain"
)

type SQLiteCorrelationRepo struct {
	db db.DBTX
}

// NewSQLiteCorrelationRepo creates a new SQLiteCorrelationRepo.
func NewSQLiteCorrelationRepo(db db.DBTX) *SQLiteCorrelationRepo {
	return &SQLiteCorrelationRepo{db: db}
}

// Upsert keeps one row per (user_id, factor_name); the latest run wins.
func (r *SQLiteCorrelationRepo) Upsert(ctx context.Context, c *domain.Correlation) error {
	query := `INSERT INTO correlations (user_id, factor_name, impact, confidence, sample_count, computed_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, factor_name) DO UPDATE SET
			impact = excluded.impact,
			confidence = excluded.confidence,
			sample_count = excluded.sample_count,
			computed_at = excluded.computed_at`
	_, err := r.db.ExecContext(ctx, query,
		c.UserID,
		c.FactorName,
		c.Impact,
		c.Confidence,
		c.SampleCount,
		formatTime(c.ComputedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting correlation %s: %w", c.FactorName, err)
	}
	return nil
}

func (r *SQLiteCorrelationRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Correlation, error) {
	query := `SELECT user_id, factor_name, impact, confidence, sample_count, computed_at
		FROM correlations
		WHERE user_id = ?
		ORDER BY ABS(impact) DESC, confidence DESC, factor_name`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing correlations: %w", err)
	}
	defer rows.Close()

	var out []*domain.Correlation
	for rows.Next() {
		var c domain.Correlation
		var computedAt string
		if err := rows.Scan(&c.UserID, &c.FactorName, &c.Impact, &c.Confidence, &c.SampleCount, &computedAt); err != nil {
			return nil, fmt.Errorf("scanning correlation: %w", err)
		}
		if c.ComputedAt, err = parseTime(computedAt); err != nil {
			return nil, fmt.Errorf("parsing computed_at: %w", err)
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating correlations: %w", err)
	}
	return out, nil
}

func (r *SQLiteCorrelationRepo) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM correlations WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("deleting correlations: %w", err)
	}
	return nil
}
