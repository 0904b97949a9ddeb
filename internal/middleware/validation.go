package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// Field length limits matching database schema expectations.
const (
	MaxTitleLen       = 200
	MaxDescriptionLen = 2000
	MaxOptionTextLen  = 100
	MaxOptionCount    = 20
	MaxUsernameLen    = 32
	MinUsernameLen    = 3
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidatePollID checks that a poll ID is a well-formed UUID.
func ValidatePollID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "pollId is required"
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", "pollId must be a valid UUID"
	}
	return id, ""
}

// ValidateOptionID checks that an option ID is a well-formed UUID.
func ValidateOptionID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "optionId is required"
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", "optionId must be a valid UUID"
	}
	return id, ""
}

// ValidateTitle checks poll title presence and length.
func ValidateTitle(title string) (string, string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", "title is required"
	}
	if len(title) > MaxTitleLen {
		return "", "title must be at most 200 characters"
	}
	return title, ""
}

// ValidateDescription bounds the optional description.
func ValidateDescription(desc string) (string, string) {
	desc = strings.TrimSpace(desc)
	if len(desc) > MaxDescriptionLen {
		return "", "description must be at most 2000 characters"
	}
	return desc, ""
}

// ValidateOptionTexts bounds the submitted option list. Blank entries
// pass through since the reconciler discards them, but no single entry
// may exceed the length cap and the list itself is bounded.
func ValidateOptionTexts(texts []string) string {
	if len(texts) > MaxOptionCount {
		return "at most 20 options are allowed"
	}
	for _, t := range texts {
		if len(strings.TrimSpace(t)) > MaxOptionTextLen {
			return "option text must be at most 100 characters"
		}
	}
	return ""
}

// ValidateUsername checks username shape.
func ValidateUsername(username string) (string, string) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", "username is required"
	}
	if len(username) < MinUsernameLen {
		return "", "username must be at least 3 characters"
	}
	if len(username) > MaxUsernameLen {
		return "", "username must be at most 32 characters"
	}
	for _, r := range username {
		if !isUsernameRune(r) {
			return "", "username may only contain letters, digits, '-' and '_'"
		}
	}
	return username, ""
}

func isUsernameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-' || r == '_':
		return true
	}
	return false
}
