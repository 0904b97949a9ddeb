package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Mohamed-Rabiaa/alx-polly/internal/repository"
)

func seedPoll(t *testing.T, store *memStore) (pollID string, optionIDs []string) {
	t.Helper()
	svc := newTestPollService(store)
	detail, err := svc.Create(context.Background(), "owner", "Color?", "", []string{"Red", "Blue"})
	if err != nil {
		t.Fatalf("seed poll failed: %v", err)
	}
	for _, o := range detail.Options {
		optionIDs = append(optionIDs, o.ID)
	}
	return detail.Poll.ID, optionIDs
}

func TestVoteService_Cast_Success(t *testing.T) {
	store := newMemStore()
	pollID, optionIDs := seedPoll(t, store)
	svc := NewVoteService(store, nil)

	resp, err := svc.Cast(context.Background(), pollID, optionIDs[0], "u1")
	if err != nil {
		t.Fatalf("Cast() failed: %v", err)
	}
	if !resp.Success || resp.TotalVotes != 1 {
		t.Errorf("resp = %+v, want success with 1 total vote", resp)
	}
}

func TestVoteService_Cast_DuplicateRejected(t *testing.T) {
	store := newMemStore()
	pollID, optionIDs := seedPoll(t, store)
	svc := NewVoteService(store, nil)

	if _, err := svc.Cast(context.Background(), pollID, optionIDs[0], "u1"); err != nil {
		t.Fatalf("first vote failed: %v", err)
	}

	// A second attempt by the same voter on any option must conflict and
	// must not create a row.
	for _, optID := range optionIDs {
		_, err := svc.Cast(context.Background(), pollID, optID, "u1")
		if !errors.Is(err, repository.ErrAlreadyVoted) {
			t.Errorf("duplicate vote on %s: error = %v, want ErrAlreadyVoted", optID, err)
		}
	}

	if n, _ := store.CountVotes(context.Background(), pollID); n != 1 {
		t.Errorf("vote count = %d, want 1 (duplicates must not corrupt state)", n)
	}
}

func TestVoteService_Cast_Unauthenticated(t *testing.T) {
	store := newMemStore()
	pollID, optionIDs := seedPoll(t, store)
	svc := NewVoteService(store, nil)

	_, err := svc.Cast(context.Background(), pollID, optionIDs[0], "")
	if !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("error = %v, want ErrUnauthenticated", err)
	}
	if n, _ := store.CountVotes(context.Background(), pollID); n != 0 {
		t.Error("anonymous vote reached the store")
	}
}

func TestVoteService_Cast_OptionMustBelongToPoll(t *testing.T) {
	store := newMemStore()
	pollID, _ := seedPoll(t, store)

	// A second poll's option used against the first poll.
	otherDetail, err := newTestPollService(store).Create(context.Background(), "owner", "Size?", "", []string{"S", "M"})
	if err != nil {
		t.Fatalf("seed second poll failed: %v", err)
	}

	svc := NewVoteService(store, nil)
	_, err = svc.Cast(context.Background(), pollID, otherDetail.Options[0].ID, "u1")
	if !errors.Is(err, repository.ErrOptionMismatch) {
		t.Errorf("error = %v, want ErrOptionMismatch", err)
	}
}

// countFailStore accepts votes but cannot report totals.
type countFailStore struct {
	*memStore
}

func (s countFailStore) CountVotes(_ context.Context, _ string) (int, error) {
	return 0, errors.New("count unavailable")
}

func TestVoteService_Cast_SucceedsWhenCountUnavailable(t *testing.T) {
	store := newMemStore()
	pollID, optionIDs := seedPoll(t, store)
	svc := NewVoteService(countFailStore{store}, nil)

	resp, err := svc.Cast(context.Background(), pollID, optionIDs[0], "u1")
	if err != nil {
		t.Fatalf("Cast() failed on a count error even though the vote was recorded: %v", err)
	}
	if !resp.Success {
		t.Error("response not marked successful")
	}
	if resp.TotalVotes != 0 {
		t.Errorf("total = %d, want 0 as the best-effort fallback", resp.TotalVotes)
	}

	// The vote itself must be in the store.
	if n, _ := store.CountVotes(context.Background(), pollID); n != 1 {
		t.Errorf("vote count in store = %d, want 1", n)
	}
}

func TestVoteService_Cast_DifferentVotersIndependent(t *testing.T) {
	store := newMemStore()
	pollID, optionIDs := seedPoll(t, store)
	svc := NewVoteService(store, nil)

	voters := []string{"u1", "u2", "u3"}
	for i, voter := range voters {
		resp, err := svc.Cast(context.Background(), pollID, optionIDs[i%2], voter)
		if err != nil {
			t.Fatalf("voter %s failed: %v", voter, err)
		}
		if resp.TotalVotes != i+1 {
			t.Errorf("after %s: total = %d, want %d", voter, resp.TotalVotes, i+1)
		}
	}
}
