package service

import (
	"context"
	"sync"
	"time"

	"github.com/Mohamed-Rabiaa/alx-polly/internal/model"
	"github.com/Mohamed-Rabiaa/alx-polly/internal/repository"
)

// memStore is an in-memory stand-in for the Postgres repositories. It
// simulates the store-side contract the real database enforces: cascade
// deletes from poll to options and votes, the (poll, voter) uniqueness
// constraint, and the option-belongs-to-poll check on vote insert.
type memStore struct {
	mu      sync.Mutex
	polls   map[string]model.Poll
	options []model.PollOption
	votes   []model.Vote
}

func newMemStore() *memStore {
	return &memStore{polls: make(map[string]model.Poll)}
}

func (m *memStore) InsertPoll(_ context.Context, p model.Poll) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	m.polls[p.ID] = p
	return nil
}

func (m *memStore) FetchPoll(_ context.Context, pollID string) (*model.Poll, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.polls[pollID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (m *memStore) ListPolls(_ context.Context) ([]model.Poll, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Poll
	for _, p := range m.polls {
		out = append(out, p)
	}
	return out, nil
}

func (m *memStore) UpdatePoll(_ context.Context, pollID, title, description string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.polls[pollID]
	if !ok {
		return repository.ErrNotFound
	}
	p.Title = title
	p.Description = description
	p.UpdatedAt = time.Now()
	m.polls[pollID] = p
	return nil
}

// DeletePoll removes the poll row and, like the database cascade, every
// dependent option and vote.
func (m *memStore) DeletePoll(_ context.Context, pollID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.polls[pollID]; !ok {
		return repository.ErrNotFound
	}
	delete(m.polls, pollID)

	var opts []model.PollOption
	for _, o := range m.options {
		if o.PollID != pollID {
			opts = append(opts, o)
		}
	}
	m.options = opts

	var votes []model.Vote
	for _, v := range m.votes {
		if v.PollID != pollID {
			votes = append(votes, v)
		}
	}
	m.votes = votes
	return nil
}

func (m *memStore) FetchOptions(_ context.Context, pollID string) ([]model.PollOption, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.PollOption
	for _, o := range m.options {
		if o.PollID == pollID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memStore) InsertOption(_ context.Context, option model.PollOption) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.options = append(m.options, option)
	return nil
}

func (m *memStore) DeleteOption(_ context.Context, optionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var opts []model.PollOption
	for _, o := range m.options {
		if o.ID != optionID {
			opts = append(opts, o)
		}
	}
	m.options = opts
	return nil
}

func (m *memStore) FetchVotesForOption(_ context.Context, optionID string) ([]model.Vote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Vote
	for _, v := range m.votes {
		if v.OptionID == optionID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *memStore) DeleteVotesForOption(_ context.Context, optionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var votes []model.Vote
	for _, v := range m.votes {
		if v.OptionID != optionID {
			votes = append(votes, v)
		}
	}
	m.votes = votes
	return nil
}

func (m *memStore) CountVotesByOption(_ context.Context, pollID string) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[string]int)
	for _, v := range m.votes {
		if v.PollID == pollID {
			counts[v.OptionID]++
		}
	}
	return counts, nil
}

func (m *memStore) InsertVote(_ context.Context, v model.Vote) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	belongs := false
	for _, o := range m.options {
		if o.ID == v.OptionID && o.PollID == v.PollID {
			belongs = true
			break
		}
	}
	if !belongs {
		return repository.ErrOptionMismatch
	}

	for _, existing := range m.votes {
		if existing.PollID == v.PollID && existing.VoterID == v.VoterID {
			return repository.ErrAlreadyVoted
		}
	}

	v.CreatedAt = time.Now()
	m.votes = append(m.votes, v)
	return nil
}

func (m *memStore) CountVotes(_ context.Context, pollID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, v := range m.votes {
		if v.PollID == pollID {
			count++
		}
	}
	return count, nil
}

var (
	_ PollStore = (*memStore)(nil)
	_ VoteStore = (*memStore)(nil)
)
