package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Mohamed-Rabiaa/alx-polly/internal/model"
)

// uniqueViolation is the SQLSTATE Postgres reports when an insert hits a
// unique constraint.
const uniqueViolation = "23505"

type VoteRepo struct {
	pool *pgxpool.Pool
}

func NewVoteRepo(pool *pgxpool.Pool) *VoteRepo {
	return &VoteRepo{pool: pool}
}

// InsertVote records a vote. The INSERT only fires when the option row
// belongs to the poll, so a mismatched option inserts nothing. A
// (poll_id, voter_id) uniqueness violation means the voter already voted
// on this poll; the constraint is the sole enforcement of one-vote-per-
// poll, there is no pre-read.
func (r *VoteRepo) InsertVote(ctx context.Context, v model.Vote) error {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO votes (id, poll_id, option_id, voter_id)
		SELECT $1, $2, $3, $4
		WHERE EXISTS (
			SELECT 1 FROM poll_options WHERE id = $3 AND poll_id = $2
		)`,
		v.ID, v.PollID, v.OptionID, v.VoterID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrAlreadyVoted
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrOptionMismatch
	}
	return nil
}

// CountVotes returns the total number of votes on a poll.
func (r *VoteRepo) CountVotes(ctx context.Context, pollID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM votes WHERE poll_id = $1`, pollID).Scan(&count)
	return count, err
}
