package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Mohamed-Rabiaa/alx-polly/internal/model"
)

// VoteStore is the data-store surface the vote service depends on.
// InsertVote reports repository.ErrAlreadyVoted on a duplicate
// (poll, voter) pair and repository.ErrOptionMismatch when the option
// belongs to a different poll.
type VoteStore interface {
	InsertVote(ctx context.Context, v model.Vote) error
	CountVotes(ctx context.Context, pollID string) (int, error)
}

type VoteService struct {
	store VoteStore
	cache *CacheService
}

func NewVoteService(store VoteStore, cache *CacheService) *VoteService {
	return &VoteService{store: store, cache: cache}
}

// Cast records one vote by voterID on optionID of pollID. Duplicate
// attempts are rejected by the store's uniqueness constraint: there is
// no pre-read, the insert is attempted and the conflict interpreted.
func (s *VoteService) Cast(ctx context.Context, pollID, optionID, voterID string) (*model.CastVoteResponse, error) {
	if voterID == "" {
		return nil, ErrUnauthenticated
	}

	vote := model.Vote{
		ID:       uuid.NewString(),
		PollID:   pollID,
		OptionID: optionID,
		VoterID:  voterID,
	}
	if err := s.store.InsertVote(ctx, vote); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidatePoll(ctx, pollID); err != nil {
			log.Warn().Err(err).Str("poll_id", pollID).Msg("cache: invalidate poll failed")
		}
	}

	// The vote is durably recorded at this point; a count failure must
	// not turn the response into an error.
	total, err := s.store.CountVotes(ctx, pollID)
	if err != nil {
		log.Warn().Err(err).Str("poll_id", pollID).Msg("vote recorded but count unavailable")
		total = 0
	}

	return &model.CastVoteResponse{Success: true, TotalVotes: total}, nil
}
