package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Mohamed-Rabiaa/alx-polly/internal/model"
)

// OptionStore is the slice of the data store the reconciler needs.
// Injected rather than reached through a global client so tests can
// observe the order of calls with a double.
type OptionStore interface {
	InsertOption(ctx context.Context, option model.PollOption) error
	DeleteOption(ctx context.Context, optionID string) error
	FetchVotesForOption(ctx context.Context, optionID string) ([]model.Vote, error)
	DeleteVotesForOption(ctx context.Context, optionID string) error
}

// OptionPlan partitions a poll's persisted options against a submitted
// text list: every existing option ends up either kept or deleted, and
// every submitted text either consumes an existing option or becomes a
// create.
type OptionPlan struct {
	Keep   map[string]struct{}
	Create []string
	Delete []model.PollOption
}

// BuildOptionPlan diffs existing options against submitted texts.
//
// Matching is greedy, order-sensitive and exact: each submitted text, in
// submission order, consumes the first not-yet-kept existing option with
// the same text. A duplicate submitted text beyond the available matches
// becomes a create, never a second match against the same option.
// Blank and whitespace-only submissions are dropped before comparison.
func BuildOptionPlan(existing []model.PollOption, submitted []string) OptionPlan {
	plan := OptionPlan{Keep: make(map[string]struct{})}

	for _, raw := range submitted {
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}

		matched := false
		for _, opt := range existing {
			if opt.Text != text {
				continue
			}
			if _, kept := plan.Keep[opt.ID]; kept {
				continue
			}
			plan.Keep[opt.ID] = struct{}{}
			matched = true
			break
		}
		if !matched {
			plan.Create = append(plan.Create, text)
		}
	}

	for _, opt := range existing {
		if _, kept := plan.Keep[opt.ID]; !kept {
			plan.Delete = append(plan.Delete, opt)
		}
	}

	return plan
}

// ApplyOptionPlan executes a plan against the store. Creates run first,
// then deletes; within each delete, votes referencing the option are
// removed (or confirmed absent) before the option row itself. The
// foreign key makes that ordering mandatory, not a preference.
//
// The sequence is not transactional: the first failing call aborts the
// rest and the error carries which step failed, but earlier steps stay
// applied. Callers re-fetch the option list afterwards instead of
// trusting any in-memory copy.
func ApplyOptionPlan(ctx context.Context, store OptionStore, pollID string, plan OptionPlan) error {
	for _, text := range plan.Create {
		opt := model.PollOption{
			ID:     uuid.NewString(),
			PollID: pollID,
			Text:   text,
		}
		if err := store.InsertOption(ctx, opt); err != nil {
			return fmt.Errorf("insert option %q: %w", text, err)
		}
	}

	for _, opt := range plan.Delete {
		votes, err := store.FetchVotesForOption(ctx, opt.ID)
		if err != nil {
			return fmt.Errorf("fetch votes for option %s: %w", opt.ID, err)
		}
		if len(votes) > 0 {
			if err := store.DeleteVotesForOption(ctx, opt.ID); err != nil {
				return fmt.Errorf("delete votes for option %s: %w", opt.ID, err)
			}
		}
		if err := store.DeleteOption(ctx, opt.ID); err != nil {
			return fmt.Errorf("delete option %s: %w", opt.ID, err)
		}
	}

	return nil
}
