package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Mohamed-Rabiaa/alx-polly/internal/model"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// InsertUser stores a new account. A duplicate username surfaces as
// ErrUsernameTaken.
func (r *UserRepo) InsertUser(ctx context.Context, u model.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, username, password_hash) VALUES ($1, $2, $3)`,
		u.ID, u.Username, u.PasswordHash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrUsernameTaken
		}
		return err
	}
	return nil
}

// FindUserByUsername returns a single user by exact username.
func (r *UserRepo) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx, `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = $1`, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindUserByID returns a single user by ID.
func (r *UserRepo) FindUserByID(ctx context.Context, userID string) (*model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx, `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE id = $1`, userID).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// InsertSession stores a login session.
func (r *UserRepo) InsertSession(ctx context.Context, s model.Session) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO sessions (token, user_id, expires_at) VALUES ($1, $2, $3)`,
		s.Token, s.UserID, s.ExpiresAt)
	return err
}

// FindSession returns the session for a token if it has not expired.
// Expired rows are treated as absent.
func (r *UserRepo) FindSession(ctx context.Context, token string) (*model.Session, error) {
	var s model.Session
	err := r.pool.QueryRow(ctx, `
		SELECT token, user_id, expires_at
		FROM sessions
		WHERE token = $1 AND expires_at > NOW()`, token).Scan(&s.Token, &s.UserID, &s.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteSession revokes a session token. Deleting an unknown token is
// not an error.
func (r *UserRepo) DeleteSession(ctx context.Context, token string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	return err
}

// PurgeExpiredSessions removes sessions past their expiry. Called
// opportunistically on login.
func (r *UserRepo) PurgeExpiredSessions(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= NOW()`)
	return err
}

// ProfileCounts returns how many polls a user created and votes they cast.
func (r *UserRepo) ProfileCounts(ctx context.Context, userID string) (pollCount, votesCast int, err error) {
	err = r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM polls WHERE creator_id = $1),
			(SELECT COUNT(*) FROM votes WHERE voter_id = $1)`,
		userID).Scan(&pollCount, &votesCast)
	return pollCount, votesCast, err
}

// GetStats returns aggregate platform statistics.
func (r *UserRepo) GetStats(ctx context.Context) (*model.StatsResponse, error) {
	var stats model.StatsResponse
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM polls) AS total_polls,
			(SELECT COUNT(*) FROM polls WHERE is_active) AS active_polls,
			(SELECT COUNT(*) FROM votes) AS total_votes,
			(SELECT COUNT(*) FROM users) AS total_users`).Scan(
		&stats.TotalPolls, &stats.ActivePolls, &stats.TotalVotes, &stats.TotalUsers,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
