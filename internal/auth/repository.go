package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jfscargo/backoffice/internal/platform/httpx"
)

// User is the credential view of an account.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         string
}

// ResetToken is one outstanding password reset grant.
type ResetToken struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
}

// Repository provides credential lookups and reset token storage.
type Repository interface {
	FindActiveByEmail(ctx context.Context, email string) (User, error)
	CreateResetToken(ctx context.Context, t ResetToken) error
	FindResetToken(ctx context.Context, token string) (ResetToken, error)
	DeleteResetToken(ctx context.Context, token string) error
	UpdatePassword(ctx context.Context, userID int64, hash string) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) FindActiveByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, role FROM users WHERE lower(email) = lower($1) AND status = 'active'`,
		email).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, httpx.ErrNotFound
	}
	return u, err
}

func (r *repository) CreateResetToken(ctx context.Context, t ResetToken) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO password_reset_tokens (token, user_id, expires_at) VALUES ($1, $2, $3)`,
		t.Token, t.UserID, t.ExpiresAt)
	return err
}

func (r *repository) FindResetToken(ctx context.Context, token string) (ResetToken, error) {
	var t ResetToken
	err := r.pool.QueryRow(ctx,
		`SELECT token, user_id, expires_at FROM password_reset_tokens WHERE token = $1`,
		token).Scan(&t.Token, &t.UserID, &t.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ResetToken{}, httpx.ErrNotFound
	}
	return t, err
}

func (r *repository) DeleteResetToken(ctx context.Context, token string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM password_reset_tokens WHERE token = $1`, token)
	return err
}

func (r *repository) UpdatePassword(ctx context.Context, userID int64, hash string) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, hash, userID)
	return err
}
