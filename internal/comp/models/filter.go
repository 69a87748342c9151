package models

import (
	dErrors "payscope/pkg/domain-errors"
)

// Filter is the conjunction of optional predicates applied to the record
// set. Zero-valued fields are absent predicates; set fields are AND-combined.
type Filter struct {
	// Case-insensitive substring matches.
	Company string
	City    string
	Role    string

	// Inclusive bounds on total compensation.
	MinTotalComp *float64
	MaxTotalComp *float64

	// Inclusive bounds on years of experience.
	MinExperience *int
	MaxExperience *int

	// Exact matches.
	EmploymentType string
	IsRemote       *bool
}

// Pagination bounds for queryRecords.
const (
	MinLimit     = 1
	MaxLimit     = 100
	DefaultLimit = 10
)

// Page is a validated limit/offset pair.
type Page struct {
	Limit  int
	Offset int
}

// NewPage validates pagination bounds. Out-of-range values fail with an
// invalid-query error instead of being clamped, so client expectations stay
// explicit.
func NewPage(limit, offset int) (Page, error) {
	if limit < MinLimit || limit > MaxLimit {
		return Page{}, dErrors.New(dErrors.CodeInvalidQuery, "limit must be between 1 and 100")
	}
	if offset < 0 {
		return Page{}, dErrors.New(dErrors.CodeInvalidQuery, "offset cannot be negative")
	}
	return Page{Limit: limit, Offset: offset}, nil
}
