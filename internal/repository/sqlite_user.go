package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/lumen/internal/db"
	"github.com/alexanderramin/lumen/internal/domain"
)

// SQLiteUserRepo implements UserRepo and InteractionCounter.
type SQLiteUserRepo struct {
	db db.DBTX
}

// NewSQLiteUserRepo creates a new SQLiteUserRepo.
func NewSQLiteUserRepo(db db.DBTX) *SQLiteUserRepo {
	return &SQLiteUserRepo{db: db}
}

const userColumns = `id, phone, display_name, timezone, interaction_count, created_at, updated_at`

func (r *SQLiteUserRepo) GetOrCreateByPhone(ctx context.Context, u *domain.User) (*domain.User, bool, error) {
	query := `INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(phone) DO NOTHING`
	res, err := r.db.ExecContext(ctx, query,
		u.ID,
		u.Phone,
		u.DisplayName,
		domain.CoalesceTimezone(u.Timezone),
		u.InteractionCount,
		formatTime(u.CreatedAt),
		formatTime(u.UpdatedAt),
	)
	if err != nil {
		return nil, false, fmt.Errorf("inserting user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("reading insert result: %w", err)
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE phone = ?`, u.Phone)
	stored, err := r.scanUser(row)
	if err != nil {
		return nil, false, err
	}
	return stored, affected == 1, nil
}

func (r *SQLiteUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return r.scanUser(row)
}

// Update writes profile fields only. The interaction counter is owned by
// IncrementInteractionCount and is never overwritten here.
func (r *SQLiteUserRepo) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET display_name = ?, timezone = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		u.DisplayName,
		domain.CoalesceTimezone(u.Timezone),
		formatTime(u.UpdatedAt),
		u.ID,
	)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user %s: %w", u.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteUserRepo) GetInteractionCount(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT interaction_count FROM users WHERE id = ?`, userID).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("reading interaction count: %w", err)
	}
	return count, nil
}

// IncrementInteractionCount bumps the counter in a single statement, so
// concurrent callers never lose an update.
func (r *SQLiteUserRepo) IncrementInteractionCount(ctx context.Context, userID string) (int, error) {
	query := `UPDATE users
		SET interaction_count = interaction_count + 1, updated_at = ?
		WHERE id = ?
		RETURNING interaction_count`
	var count int
	err := r.db.QueryRowContext(ctx, query, formatTime(nowUTC()), userID).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("incrementing interaction count: %w", err)
	}
	return count, nil
}

func (r *SQLiteUserRepo) scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	var createdAt, updatedAt string
	err := row.Scan(&u.ID, &u.Phone, &u.DisplayName, &u.Timezone, &u.InteractionCount, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if u.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &u, nil
}
