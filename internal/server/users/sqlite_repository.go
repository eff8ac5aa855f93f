package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fintrack/internal/common"
	"fintrack/internal/dbx"
)

// SQLiteRepository persists accounts in the embedded server database.
// Timestamps are stored as RFC 3339 text; an empty last_login means the
// account never logged in.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, user *User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, age, profession, city, monthly_income, is_active, password_hash, created_at, last_login)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, user.ID, user.Email, user.Name, user.Age, user.Profession, user.City, user.MonthlyIncome,
		user.IsActive, user.PasswordHash, formatTime(user.CreatedAt), formatTime(user.LastLogin))
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*User, error) {
	return r.getOne(ctx, `SELECT id, email, name, age, profession, city, monthly_income, is_active, password_hash, created_at, last_login
		FROM users WHERE id = ?`, id)
}

func (r *SQLiteRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getOne(ctx, `SELECT id, email, name, age, profession, city, monthly_income, is_active, password_hash, created_at, last_login
		FROM users WHERE email = ?`, email)
}

func (r *SQLiteRepository) Update(ctx context.Context, user *User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET email = ?, name = ?, age = ?, profession = ?, city = ?, monthly_income = ?, is_active = ?, password_hash = ?, last_login = ?
		WHERE id = ?
	`, user.Email, user.Name, user.Age, user.Profession, user.City, user.MonthlyIncome,
		user.IsActive, user.PasswordHash, formatTime(user.LastLogin), user.ID)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLiteRepository) getOne(ctx context.Context, query string, arg any) (*User, error) {
	var u User
	var createdAt, lastLogin string
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.Name, &u.Age, &u.Profession, &u.City, &u.MonthlyIncome,
		&u.IsActive, &u.PasswordHash, &createdAt, &lastLogin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	u.CreatedAt = parseTime(createdAt)
	u.LastLogin = parseTime(lastLogin)
	return &u, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
