package model

import "time"

// Vote is one user's single choice of option within one poll.
// The poll reference is denormalized so votes can be filtered by poll
// without joining through options.
type Vote struct {
	ID        string    `json:"id"`
	PollID    string    `json:"pollId"`
	OptionID  string    `json:"optionId"`
	VoterID   string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// CastVoteRequest is the API request body for casting a vote.
type CastVoteRequest struct {
	OptionID string `json:"optionId"`
}

// CastVoteResponse is the API response after a successful vote.
type CastVoteResponse struct {
	Success    bool `json:"success"`
	TotalVotes int  `json:"totalVotes"`
}
