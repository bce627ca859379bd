package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/lumen/internal/db"
	"github.com/alexanderramin/lumen/internal/domain"
)

type SQLiteHabitRepo struct {
	db db.DBTX
}

// NewSQLiteHabitRepo creates a new SQLiteHabitRepo.
func NewSQLiteHabitRepo(db db.DBTX) *SQLiteHabitRepo {
	return &SQLiteHabitRepo{db: db}
}

const habitColumns = `id, user_id, name, category, active, created_at, updated_at`

func (r *SQLiteHabitRepo) Create(ctx context.Context, h *domain.Habit) error {
	query := `INSERT INTO habits (` + habitColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		h.ID,
		h.UserID,
		h.Name,
		string(h.Category),
		boolToInt(h.Active),
		formatTime(h.CreatedAt),
		formatTime(h.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting habit: %w", err)
	}
	return nil
}

func (r *SQLiteHabitRepo) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+habitColumns+` FROM habits WHERE id = ?`, id)
	var h domain.Habit
	var category, createdAt, updatedAt string
	var active int
	err := row.Scan(&h.ID, &h.UserID, &h.Name, &category, &active, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("habit: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning habit: %w", err)
	}
	return r.populateHabit(&h, category, active, createdAt, updatedAt)
}

func (r *SQLiteHabitRepo) ListActive(ctx context.Context, userID string) ([]*domain.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits
		WHERE user_id = ? AND active = 1
		ORDER BY created_at, name`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing active habits: %w", err)
	}
	defer rows.Close()

	var habits []*domain.Habit
	for rows.Next() {
		var h domain.Habit
		var category, createdAt, updatedAt string
		var active int
		if err := rows.Scan(&h.ID, &h.UserID, &h.Name, &category, &active, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning habit row: %w", err)
		}
		habit, err := r.populateHabit(&h, category, active, createdAt, updatedAt)
		if err != nil {
			return nil, err
		}
		habits = append(habits, habit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating habits: %w", err)
	}
	return habits, nil
}

func (r *SQLiteHabitRepo) Update(ctx context.Context, h *domain.Habit) error {
	query := `UPDATE habits SET name = ?, category = ?, active = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		h.Name,
		string(h.Category),
		boolToInt(h.Active),
		formatTime(h.UpdatedAt),
		h.ID,
	)
	if err != nil {
		return fmt.Errorf("updating habit: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("habit %s: %w", h.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteHabitRepo) Archive(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE habits SET active = 0, updated_at = ? WHERE id = ?`, formatTime(nowUTC()), id)
	if err != nil {
		return fmt.Errorf("archiving habit: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("habit %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteHabitRepo) populateHabit(h *domain.Habit, category string, active int, createdAt, updatedAt string) (*domain.Habit, error) {
	var err error
	h.Category = domain.HabitCategory(category)
	h.Active = intToBool(active)
	if h.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if h.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return h, nil
}
