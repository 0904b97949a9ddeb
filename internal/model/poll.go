package model

import "time"

// Poll is a question owned by its creator, open for voting while active.
type Poll struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatorID   string    `json:"creatorId"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Editable is derived per request for the authenticated viewer and
	// never persisted.
	Editable bool `json:"editable,omitempty"`
}

// PollOption is one selectable answer belonging to exactly one poll.
type PollOption struct {
	ID     string `json:"id"`
	PollID string `json:"pollId"`
	Text   string `json:"text"`
}

// OptionResult is an option with its derived vote count and share.
type OptionResult struct {
	PollOption
	VoteCount  int     `json:"voteCount"`
	Percentage float64 `json:"percentage"`
}

// PollDetail is the full read model for a single poll view.
type PollDetail struct {
	Poll       Poll           `json:"poll"`
	Options    []OptionResult `json:"options"`
	TotalVotes int            `json:"totalVotes"`
}

// CreatePollRequest is the API request body for creating a poll.
type CreatePollRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Options     []string `json:"options"`
}

// UpdatePollRequest is the API request body for editing a poll.
// Options carries the complete submitted option-text list; the server
// reconciles it against the persisted options.
type UpdatePollRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Options     []string `json:"options"`
}

// StatsResponse is the API response for aggregate statistics.
type StatsResponse struct {
	TotalPolls  int `json:"totalPolls"`
	ActivePolls int `json:"activePolls"`
	TotalVotes  int `json:"totalVotes"`
	TotalUsers  int `json:"totalUsers"`
}
