package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"portfolio_api/internal/models"

	"github.com/jmoiron/sqlx"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	userColumns          = `id, email, password_hash, role, created_at`
	insertUserSQL        = `INSERT INTO users (email, password_hash, role, created_at) VALUES (?, ?, ?, ?) RETURNING ` + userColumns
	selectUserByEmailSQL = `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	deleteUserByEmailSQL = `DELETE FROM users WHERE email = ?`
)

// Create inserts a new user and returns the stored row.
func (r *UserRepository) Create(ctx context.Context, email, passwordHash string, role models.Role) (*models.User, error) {
	var u models.User
	err := r.db.GetContext(ctx, &u, r.db.Rebind(insertUserSQL), email, passwordHash, role, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("insert user %q: %w", email, classify(err))
	}
	return &u, nil
}

// GetByEmail fetches a user by exact email. Returns (nil, nil) if not found.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.GetContext(ctx, &u, r.db.Rebind(selectUserByEmailSQL), email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", email, err)
	}
	return &u, nil
}

// DeleteByEmail removes the user with the given email and reports how many rows went away.
func (r *UserRepository) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(deleteUserByEmailSQL), email)
	if err != nil {
		return 0, fmt.Errorf("delete user %q: %w", email, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected for user %q: %w", email, err)
	}
	return n, nil
}
