package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Mohamed-Rabiaa/alx-polly/internal/model"
)

type PollRepo struct {
	pool *pgxpool.Pool
}

func NewPollRepo(pool *pgxpool.Pool) *PollRepo {
	return &PollRepo{pool: pool}
}

// InsertPoll stores a new poll row.
func (r *PollRepo) InsertPoll(ctx context.Context, p model.Poll) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO polls (id, title, description, creator_id, is_active)
		VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.Title, p.Description, p.CreatorID, p.IsActive)
	return err
}

// FetchPoll returns a single poll by ID.
func (r *PollRepo) FetchPoll(ctx context.Context, pollID string) (*model.Poll, error) {
	var p model.Poll
	err := r.pool.QueryRow(ctx, `
		SELECT id, title, description, creator_id, is_active, created_at, updated_at
		FROM polls
		WHERE id = $1`, pollID).Scan(
		&p.ID, &p.Title, &p.Description, &p.CreatorID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPolls returns all polls, newest first.
func (r *PollRepo) ListPolls(ctx context.Context) ([]model.Poll, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, creator_id, is_active, created_at, updated_at
		FROM polls
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var polls []model.Poll
	for rows.Next() {
		var p model.Poll
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.CreatorID,
			&p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		polls = append(polls, p)
	}
	return polls, rows.Err()
}

// UpdatePoll rewrites a poll's title and description. The creator is
// immutable and deliberately absent from the statement.
func (r *PollRepo) UpdatePoll(ctx context.Context, pollID, title, description string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE polls SET title = $2, description = $3, updated_at = NOW()
		WHERE id = $1`,
		pollID, title, description)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePoll removes the poll row. Options and votes go with it through
// the ON DELETE CASCADE rules on poll_options and votes.
func (r *PollRepo) DeletePoll(ctx context.Context, pollID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM polls WHERE id = $1`, pollID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// FetchOptions returns a poll's options in insertion order, keyed by the
// identity column assigned at insert.
func (r *PollRepo) FetchOptions(ctx context.Context, pollID string) ([]model.PollOption, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, poll_id, text
		FROM poll_options
		WHERE poll_id = $1
		ORDER BY seq`, pollID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var opts []model.PollOption
	for rows.Next() {
		var o model.PollOption
		if err := rows.Scan(&o.ID, &o.PollID, &o.Text); err != nil {
			return nil, err
		}
		opts = append(opts, o)
	}
	return opts, rows.Err()
}

// InsertOption stores a new option row for a poll.
func (r *PollRepo) InsertOption(ctx context.Context, option model.PollOption) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO poll_options (id, poll_id, text) VALUES ($1, $2, $3)`,
		option.ID, option.PollID, option.Text)
	return err
}

// DeleteOption removes a single option row. Dependent votes must already
// be gone; callers are responsible for the ordering.
func (r *PollRepo) DeleteOption(ctx context.Context, optionID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM poll_options WHERE id = $1`, optionID)
	return err
}

// FetchVotesForOption returns every vote referencing the option.
func (r *PollRepo) FetchVotesForOption(ctx context.Context, optionID string) ([]model.Vote, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, poll_id, option_id, voter_id, created_at
		FROM votes
		WHERE option_id = $1`, optionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var votes []model.Vote
	for rows.Next() {
		var v model.Vote
		if err := rows.Scan(&v.ID, &v.PollID, &v.OptionID, &v.VoterID, &v.CreatedAt); err != nil {
			return nil, err
		}
		votes = append(votes, v)
	}
	return votes, rows.Err()
}

// DeleteVotesForOption removes all votes referencing the option.
func (r *PollRepo) DeleteVotesForOption(ctx context.Context, optionID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM votes WHERE option_id = $1`, optionID)
	return err
}

// CountVotesByOption returns a map of option ID to vote count for a poll.
func (r *PollRepo) CountVotesByOption(ctx context.Context, pollID string) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT option_id, COUNT(*)
		FROM votes
		WHERE poll_id = $1
		GROUP BY option_id`, pollID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var optionID string
		var count int
		if err := rows.Scan(&optionID, &count); err != nil {
			return nil, err
		}
		counts[optionID] = count
	}
	return counts, rows.Err()
}
