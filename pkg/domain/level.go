package domain

import (
	"strings"

	dErrors "payscope/pkg/domain-errors"
)

// Level is the seniority of a role. It is a closed enumeration; a role's
// level is fixed when the role is first observed.
type Level string

const (
	LevelEntry  Level = "Entry"
	LevelMid    Level = "Mid"
	LevelSenior Level = "Senior"
)

// validLevels is the single source of truth for valid levels.
var validLevels = map[Level]bool{
	LevelEntry:  true,
	LevelMid:    true,
	LevelSenior: true,
}

// ParseLevel constructs a Level from external input.
//
// Usage: call from handlers/adapters when parsing requests; direct casting
// bypasses validation.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParseLevel(s string) (Level, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "level cannot be empty")
	}
	l := Level(s)
	if !l.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid level: must be Entry, Mid or Senior")
	}
	return l, nil
}

// IsValid checks if the level is one of the supported enum values.
func (l Level) IsValid() bool {
	return validLevels[l]
}

// String returns the string representation.
func (l Level) String() string {
	return string(l)
}

// ClassifyTitle derives a level from a role title. This is a one-time
// classification applied when a role is first created; the stored level is
// never re-derived from the title afterwards.
func ClassifyTitle(title string) Level {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "senior"), strings.Contains(t, "lead"),
		strings.Contains(t, "staff"), strings.Contains(t, "principal"):
		return LevelSenior
	case strings.Contains(t, "junior"), strings.Contains(t, "trainee"),
		strings.Contains(t, "intern"), strings.Contains(t, "graduate"):
		return LevelEntry
	default:
		return LevelMid
	}
}
