package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Mohamed-Rabiaa/alx-polly/internal/model"
	"github.com/Mohamed-Rabiaa/alx-polly/pkg/authz"
)

// PollStore is the full data-store surface the poll service depends on.
type PollStore interface {
	OptionStore
	InsertPoll(ctx context.Context, p model.Poll) error
	FetchPoll(ctx context.Context, pollID string) (*model.Poll, error)
	ListPolls(ctx context.Context) ([]model.Poll, error)
	UpdatePoll(ctx context.Context, pollID, title, description string) error
	DeletePoll(ctx context.Context, pollID string) error
	FetchOptions(ctx context.Context, pollID string) ([]model.PollOption, error)
	CountVotesByOption(ctx context.Context, pollID string) (map[string]int, error)
}

type PollService struct {
	store PollStore
	cache *CacheService
}

func NewPollService(store PollStore, cache *CacheService) *PollService {
	return &PollService{store: store, cache: cache}
}

// Create validates and stores a new poll with its options.
func (s *PollService) Create(ctx context.Context, creatorID, title, description string, optionTexts []string) (*model.PollDetail, error) {
	if creatorID == "" {
		return nil, ErrUnauthenticated
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	texts, err := cleanOptionTexts(optionTexts)
	if err != nil {
		return nil, err
	}

	poll := model.Poll{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(description),
		CreatorID:   creatorID,
		IsActive:    true,
	}
	if err := s.store.InsertPoll(ctx, poll); err != nil {
		return nil, fmt.Errorf("insert poll: %w", err)
	}

	for _, text := range texts {
		opt := model.PollOption{ID: uuid.NewString(), PollID: poll.ID, Text: text}
		if err := s.store.InsertOption(ctx, opt); err != nil {
			return nil, fmt.Errorf("insert option %q: %w", text, err)
		}
	}

	return s.Get(ctx, poll.ID)
}

// Get returns a poll with its options, vote counts and percentages.
func (s *PollService) Get(ctx context.Context, pollID string) (*model.PollDetail, error) {
	poll, err := s.store.FetchPoll(ctx, pollID)
	if err != nil {
		return nil, err
	}
	options, err := s.store.FetchOptions(ctx, pollID)
	if err != nil {
		return nil, err
	}
	counts, err := s.store.CountVotesByOption(ctx, pollID)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, c := range counts {
		total += c
	}

	detail := &model.PollDetail{Poll: *poll, TotalVotes: total}
	for _, opt := range options {
		res := model.OptionResult{PollOption: opt, VoteCount: counts[opt.ID]}
		if total > 0 {
			res.Percentage = float64(res.VoteCount) / float64(total) * 100
		}
		detail.Options = append(detail.Options, res)
	}
	return detail, nil
}

// List returns all polls without per-option detail.
func (s *PollService) List(ctx context.Context) ([]model.Poll, error) {
	return s.store.ListPolls(ctx)
}

// Edit updates a poll's metadata and reconciles its option set against
// the submitted texts. Only the creator may edit.
//
// The apply sequence (metadata update, option creates, option deletes
// with their votes) is not wrapped in a transaction; a mid-sequence
// failure leaves earlier steps applied and is reported as-is. The
// returned detail is re-read from the store, never assembled locally.
func (s *PollService) Edit(ctx context.Context, userID, pollID, title, description string, optionTexts []string) (*model.PollDetail, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if nonBlankCount(optionTexts) < 2 {
		return nil, ErrTooFewOptions
	}

	poll, err := s.store.FetchPoll(ctx, pollID)
	if err != nil {
		return nil, err
	}
	if !authz.IsOwner(userID, poll.CreatorID) {
		return nil, ErrForbidden
	}

	existing, err := s.store.FetchOptions(ctx, pollID)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdatePoll(ctx, pollID, title, strings.TrimSpace(description)); err != nil {
		return nil, fmt.Errorf("update poll: %w", err)
	}

	plan := BuildOptionPlan(existing, optionTexts)
	if err := ApplyOptionPlan(ctx, s.store, pollID, plan); err != nil {
		return nil, err
	}

	s.invalidate(ctx, pollID)
	return s.Get(ctx, pollID)
}

// Delete removes a poll. Only the creator may delete. A single poll-row
// delete is issued; the store's cascade rules remove options and votes.
func (s *PollService) Delete(ctx context.Context, userID, pollID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}

	poll, err := s.store.FetchPoll(ctx, pollID)
	if err != nil {
		return err
	}
	if !authz.IsOwner(userID, poll.CreatorID) {
		return ErrForbidden
	}

	if err := s.store.DeletePoll(ctx, pollID); err != nil {
		return fmt.Errorf("delete poll: %w", err)
	}

	s.invalidate(ctx, pollID)
	return nil
}

func (s *PollService) invalidate(ctx context.Context, pollID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidatePoll(ctx, pollID); err != nil {
		log.Warn().Err(err).Str("poll_id", pollID).Msg("cache: invalidate poll failed")
	}
}

// nonBlankCount reports how many submitted texts survive trimming.
// Edit tolerates duplicate texts (the reconciler turns the surplus into
// creates) but must not leave a poll with fewer than two options.
func nonBlankCount(raw []string) int {
	n := 0
	for _, r := range raw {
		if strings.TrimSpace(r) != "" {
			n++
		}
	}
	return n
}

// cleanOptionTexts trims, drops blanks, and rejects duplicates. Create
// requires at least two distinct options.
func cleanOptionTexts(raw []string) ([]string, error) {
	seen := make(map[string]struct{})
	var texts []string
	for _, r := range raw {
		text := strings.TrimSpace(r)
		if text == "" {
			continue
		}
		if _, dup := seen[text]; dup {
			return nil, ErrDuplicateOption
		}
		seen[text] = struct{}{}
		texts = append(texts, text)
	}
	if len(texts) < 2 {
		return nil, ErrTooFewOptions
	}
	return texts, nil
}
