package service

import "errors"

var (
	// ErrUnauthenticated means no valid session accompanied the request.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrForbidden means the session is valid but the acting user is not
	// the resource owner.
	ErrForbidden = errors.New("not the poll owner")

	// ErrInvalidCredentials covers unknown usernames and wrong passwords
	// alike, so login failures don't reveal which half was wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Validation failures. Detected before any store call; a request
	// failing one of these has no side effects.
	ErrTitleRequired    = errors.New("poll title is required")
	ErrTooFewOptions    = errors.New("poll needs at least two options")
	ErrDuplicateOption  = errors.New("duplicate option text")
	ErrUsernameRequired = errors.New("username is required")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
)
