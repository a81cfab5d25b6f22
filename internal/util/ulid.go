package util

import (
	"strings"

	"github.com/oklog/ulid/v2"
)

// NewULID generates a new ULID string. Safe for concurrent use.
func NewULID() string {
	return ulid.Make().String()
}

// NewQuestionID returns a fresh lowercase id for a generated question.
func NewQuestionID() string {
	return "q_" + strings.ToLower(NewULID())
}
