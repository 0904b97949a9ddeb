package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Mohamed-Rabiaa/alx-polly/internal/model"
	"github.com/Mohamed-Rabiaa/alx-polly/internal/repository"
)

func newTestPollService(store PollStore) *PollService {
	// nil cache: caching is a no-op concern for service semantics
	return NewPollService(store, nil)
}

func TestPollService_Create_Validation(t *testing.T) {
	tests := []struct {
		name    string
		userID  string
		title   string
		options []string
		wantErr error
	}{
		{"unauthenticated", "", "Lunch?", []string{"Pizza", "Sushi"}, ErrUnauthenticated},
		{"empty title", "u1", "   ", []string{"Pizza", "Sushi"}, ErrTitleRequired},
		{"one option", "u1", "Lunch?", []string{"Pizza"}, ErrTooFewOptions},
		{"blank options dropped", "u1", "Lunch?", []string{"Pizza", "   "}, ErrTooFewOptions},
		{"duplicate options", "u1", "Lunch?", []string{"Pizza", "Pizza"}, ErrDuplicateOption},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			_, err := newTestPollService(store).Create(context.Background(), tt.userID, tt.title, "", tt.options)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
			}
			// Validation failures must not touch the store.
			if len(store.polls) != 0 || len(store.options) != 0 {
				t.Error("store mutated by a request that failed validation")
			}
		})
	}
}

func TestPollService_Create_Success(t *testing.T) {
	store := newMemStore()
	svc := newTestPollService(store)

	detail, err := svc.Create(context.Background(), "u1", "  Lunch?  ", "pick one", []string{"Pizza", "Sushi", ""})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if detail.Poll.Title != "Lunch?" {
		t.Errorf("title = %q, want trimmed %q", detail.Poll.Title, "Lunch?")
	}
	if detail.Poll.CreatorID != "u1" {
		t.Errorf("creator = %q, want u1", detail.Poll.CreatorID)
	}
	if !detail.Poll.IsActive {
		t.Error("new poll should be active")
	}
	if len(detail.Options) != 2 {
		t.Fatalf("got %d options, want 2", len(detail.Options))
	}
	if detail.TotalVotes != 0 {
		t.Errorf("new poll total votes = %d, want 0", detail.TotalVotes)
	}
}

func TestPollService_Edit_OwnershipGate(t *testing.T) {
	store := newMemStore()
	svc := newTestPollService(store)

	detail, err := svc.Create(context.Background(), "owner", "Lunch?", "", []string{"Pizza", "Sushi"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	pollID := detail.Poll.ID

	if _, err := svc.Edit(context.Background(), "", pollID, "Lunch?", "", []string{"Pizza", "Sushi"}); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("empty user: error = %v, want ErrUnauthenticated", err)
	}
	if _, err := svc.Edit(context.Background(), "intruder", pollID, "Lunch?", "", []string{"Pizza", "Sushi"}); !errors.Is(err, ErrForbidden) {
		t.Errorf("non-owner: error = %v, want ErrForbidden", err)
	}

	// The failed attempts must not have changed anything.
	opts, _ := store.FetchOptions(context.Background(), pollID)
	if len(opts) != 2 {
		t.Errorf("options mutated by rejected edit: %v", opts)
	}
}

func TestPollService_Edit_RequiresTwoOptions(t *testing.T) {
	store := newMemStore()
	svc := newTestPollService(store)

	detail, err := svc.Create(context.Background(), "owner", "Color?", "", []string{"Red", "Blue"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	pollID := detail.Poll.ID

	tests := []struct {
		name    string
		options []string
	}{
		{"empty list", nil},
		{"all blank", []string{"", "   "}},
		{"single option", []string{"Red"}},
		{"one non-blank", []string{"Red", "  "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Edit(context.Background(), "owner", pollID, "Color?", "", tt.options); !errors.Is(err, ErrTooFewOptions) {
				t.Errorf("Edit(%v) error = %v, want ErrTooFewOptions", tt.options, err)
			}
		})
	}

	// The rejected edits must not have stripped the poll of its options.
	opts, _ := store.FetchOptions(context.Background(), pollID)
	if len(opts) != 2 {
		t.Errorf("poll has %d options after rejected edits, want 2", len(opts))
	}
}

func TestPollService_Edit_ReconcilesOptions(t *testing.T) {
	store := newMemStore()
	svc := newTestPollService(store)

	detail, err := svc.Create(context.Background(), "owner", "Color?", "", []string{"Red", "Blue"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	pollID := detail.Poll.ID

	var blueID string
	for _, o := range detail.Options {
		if o.Text == "Blue" {
			blueID = o.ID
		}
	}

	// A vote on Blue must disappear with its option.
	if err := store.InsertVote(context.Background(), model.Vote{
		ID: "v1", PollID: pollID, OptionID: blueID, VoterID: "voter1",
	}); err != nil {
		t.Fatalf("seed vote failed: %v", err)
	}

	updated, err := svc.Edit(context.Background(), "owner", pollID, "Colour?", "updated", []string{"Red", "Green"})
	if err != nil {
		t.Fatalf("Edit() failed: %v", err)
	}

	if updated.Poll.Title != "Colour?" {
		t.Errorf("title = %q, want Colour?", updated.Poll.Title)
	}

	texts := make(map[string]bool)
	for _, o := range updated.Options {
		texts[o.Text] = true
	}
	if !texts["Red"] || !texts["Green"] || texts["Blue"] {
		t.Errorf("options after edit = %v, want Red and Green only", texts)
	}

	if votes, _ := store.FetchVotesForOption(context.Background(), blueID); len(votes) != 0 {
		t.Errorf("votes on deleted option remain: %v", votes)
	}
	if updated.TotalVotes != 0 {
		t.Errorf("total votes = %d, want 0 after the voted option was removed", updated.TotalVotes)
	}
}

func TestPollService_Edit_KeptOptionRetainsVotes(t *testing.T) {
	store := newMemStore()
	svc := newTestPollService(store)

	detail, _ := svc.Create(context.Background(), "owner", "Color?", "", []string{"Red", "Blue"})
	pollID := detail.Poll.ID

	var redID string
	for _, o := range detail.Options {
		if o.Text == "Red" {
			redID = o.ID
		}
	}
	_ = store.InsertVote(context.Background(), model.Vote{ID: "v1", PollID: pollID, OptionID: redID, VoterID: "voter1"})

	updated, err := svc.Edit(context.Background(), "owner", pollID, "Color?", "", []string{"Red", "Green"})
	if err != nil {
		t.Fatalf("Edit() failed: %v", err)
	}

	for _, o := range updated.Options {
		if o.Text == "Red" {
			if o.ID != redID {
				t.Errorf("kept option re-created: id %s, want %s", o.ID, redID)
			}
			if o.VoteCount != 1 {
				t.Errorf("kept option lost its vote: count %d, want 1", o.VoteCount)
			}
		}
	}
}

func TestPollService_Delete_CascadesOptionsAndVotes(t *testing.T) {
	store := newMemStore()
	svc := newTestPollService(store)

	detail, _ := svc.Create(context.Background(), "owner", "Color?", "", []string{"Red", "Blue", "Green"})
	pollID := detail.Poll.ID

	for i, o := range detail.Options {
		_ = store.InsertVote(context.Background(), model.Vote{
			ID:       o.ID + "-vote",
			PollID:   pollID,
			OptionID: o.ID,
			VoterID:  "voter" + string(rune('a'+i)),
		})
	}

	if err := svc.Delete(context.Background(), "owner", pollID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	if len(store.polls) != 0 {
		t.Error("poll row remains")
	}
	if len(store.options) != 0 {
		t.Errorf("%d orphaned option rows remain", len(store.options))
	}
	if len(store.votes) != 0 {
		t.Errorf("%d orphaned vote rows remain", len(store.votes))
	}
}

func TestPollService_Delete_OwnershipGate(t *testing.T) {
	store := newMemStore()
	svc := newTestPollService(store)

	detail, _ := svc.Create(context.Background(), "owner", "Color?", "", []string{"Red", "Blue"})

	if err := svc.Delete(context.Background(), "intruder", detail.Poll.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("non-owner delete: error = %v, want ErrForbidden", err)
	}
	if err := svc.Delete(context.Background(), "", detail.Poll.ID); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("anonymous delete: error = %v, want ErrUnauthenticated", err)
	}
	if len(store.polls) != 1 {
		t.Error("poll deleted despite failing the gate")
	}
}

func TestPollService_Get_CountsAndPercentages(t *testing.T) {
	store := newMemStore()
	svc := newTestPollService(store)

	detail, _ := svc.Create(context.Background(), "owner", "Color?", "", []string{"Red", "Blue"})
	pollID := detail.Poll.ID

	var redID, blueID string
	for _, o := range detail.Options {
		switch o.Text {
		case "Red":
			redID = o.ID
		case "Blue":
			blueID = o.ID
		}
	}

	_ = store.InsertVote(context.Background(), model.Vote{ID: "v1", PollID: pollID, OptionID: redID, VoterID: "a"})
	_ = store.InsertVote(context.Background(), model.Vote{ID: "v2", PollID: pollID, OptionID: redID, VoterID: "b"})
	_ = store.InsertVote(context.Background(), model.Vote{ID: "v3", PollID: pollID, OptionID: blueID, VoterID: "c"})

	got, err := svc.Get(context.Background(), pollID)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}

	if got.TotalVotes != 3 {
		t.Errorf("total votes = %d, want 3", got.TotalVotes)
	}
	for _, o := range got.Options {
		switch o.ID {
		case redID:
			if o.VoteCount != 2 || o.Percentage < 66.6 || o.Percentage > 66.7 {
				t.Errorf("red: count=%d pct=%.2f, want 2 / ~66.67", o.VoteCount, o.Percentage)
			}
		case blueID:
			if o.VoteCount != 1 || o.Percentage < 33.3 || o.Percentage > 33.4 {
				t.Errorf("blue: count=%d pct=%.2f, want 1 / ~33.33", o.VoteCount, o.Percentage)
			}
		}
	}
}

func TestPollService_Get_NotFound(t *testing.T) {
	svc := newTestPollService(newMemStore())
	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
