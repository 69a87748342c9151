package domain

import (
	"strconv"

	dErrors "payscope/pkg/domain-errors"
)

// Typed identity keys for the four entity kinds. IDs are store-assigned
// monotone sequences (BIGSERIAL in PostgreSQL, an atomic counter in the
// in-memory stores), so ascending-ID order matches insertion order and
// pagination stays reproducible under a fixed snapshot.
//
// A zero value means "not yet assigned".
type (
	CompanyID  int64
	RoleID     int64
	LocationID int64
	RecordID   int64
)

func (id CompanyID) IsZero() bool  { return id == 0 }
func (id RoleID) IsZero() bool     { return id == 0 }
func (id LocationID) IsZero() bool { return id == 0 }
func (id RecordID) IsZero() bool   { return id == 0 }

func (id CompanyID) String() string  { return strconv.FormatInt(int64(id), 10) }
func (id RoleID) String() string     { return strconv.FormatInt(int64(id), 10) }
func (id LocationID) String() string { return strconv.FormatInt(int64(id), 10) }
func (id RecordID) String() string   { return strconv.FormatInt(int64(id), 10) }

// ParseCompanyID constructs a CompanyID from external input.
//
// Usage: call from handlers/adapters when parsing requests; direct casting
// bypasses validation.
//
// Errors: returns CodeInvalidInput when the value is empty, non-numeric or
// not positive; no other errors are expected.
func ParseCompanyID(s string) (CompanyID, error) {
	v, err := parseID(s, "company id")
	return CompanyID(v), err
}

// ParseRoleID constructs a RoleID from external input.
func ParseRoleID(s string) (RoleID, error) {
	v, err := parseID(s, "role id")
	return RoleID(v), err
}

// ParseLocationID constructs a LocationID from external input.
func ParseLocationID(s string) (LocationID, error) {
	v, err := parseID(s, "location id")
	return LocationID(v), err
}

// ParseRecordID constructs a RecordID from external input.
func ParseRecordID(s string) (RecordID, error) {
	v, err := parseID(s, "record id")
	return RecordID(v), err
}

func parseID(s, what string) (int64, error) {
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, what+" cannot be empty")
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid "+what)
	}
	return v, nil
}
