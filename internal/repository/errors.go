package repository

import "errors"

// Sentinel errors shared by the Postgres repositories and any test double
// standing in for them.
var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyVoted is returned when a vote insert hits the
	// (poll_id, voter_id) uniqueness constraint.
	ErrAlreadyVoted = errors.New("already voted on this poll")

	// ErrOptionMismatch is returned when the target option does not
	// belong to the target poll.
	ErrOptionMismatch = errors.New("option does not belong to poll")

	// ErrUsernameTaken is returned when registering a duplicate username.
	ErrUsernameTaken = errors.New("username already taken")
)
