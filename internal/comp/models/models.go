// Package models holds the compensation domain entities and the view and
// filter types shared by the query and aggregation services.
package models

import (
	"math"
	"time"

	"payscope/pkg/domain"
	dErrors "payscope/pkg/domain-errors"
)

// Company is an employer. Created lazily on first observation; descriptive
// fields may be updated later, identity fields never.
//
// Invariants:
//   - Name is non-empty and unique (case-insensitive)
type Company struct {
	ID           domain.CompanyID `json:"id"`
	Name         string           `json:"name"`
	Industry     string           `json:"industry,omitempty"`
	Size         string           `json:"size,omitempty"`
	Headquarters string           `json:"headquarters,omitempty"`
	Website      string           `json:"website,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

// Validate checks the creation invariants.
func (c *Company) Validate() error {
	if c.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "company name cannot be empty")
	}
	return nil
}

// Role is a job title. The level is classified once at creation and fixed
// afterwards.
//
// Invariants:
//   - Title is non-empty and unique (case-insensitive)
//   - Level is one of {Entry, Mid, Senior}
type Role struct {
	ID       domain.RoleID `json:"id"`
	Title    string        `json:"title"`
	Category string        `json:"category,omitempty"`
	Level    domain.Level  `json:"level"`
}

// Validate checks the creation invariants.
func (r *Role) Validate() error {
	if r.Title == "" {
		return dErrors.New(dErrors.CodeValidation, "role title cannot be empty")
	}
	if !r.Level.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "role level must be Entry, Mid or Senior")
	}
	return nil
}

// Location is a city. Uniqueness is by (city, state) pair.
type Location struct {
	ID                domain.LocationID `json:"id"`
	City              string            `json:"city"`
	State             string            `json:"state,omitempty"`
	Country           string            `json:"country"`
	CostOfLivingIndex *float64          `json:"cost_of_living_index,omitempty"`
}

// DefaultCountry is applied when a location is created without one.
const DefaultCountry = "India"

// Validate checks the creation invariants.
func (l *Location) Validate() error {
	if l.City == "" {
		return dErrors.New(dErrors.CodeValidation, "location city cannot be empty")
	}
	if l.CostOfLivingIndex != nil && *l.CostOfLivingIndex <= 0 {
		return dErrors.New(dErrors.CodeValidation, "cost of living index must be positive")
	}
	return nil
}

// Defaults applied when a record is created without explicit values.
const (
	DefaultEmploymentType = "Full-time"
	DefaultCurrency       = "INR"
)

// totalTolerance absorbs float representation noise when checking the
// total-compensation identity; anything larger is inconsistent source data.
const totalTolerance = 1e-6

// CompensationRecord is one compensation observation. Immutable once
// created; the only bulk mutation is delete-all for reset workflows.
//
// Invariants:
//   - TotalCompensation == BaseSalary + Bonus + StockOptions
//   - YearsAtCompany <= YearsOfExperience when both are present
//   - CompanyID, RoleID and LocationID resolve to live entities
type CompensationRecord struct {
	ID                domain.RecordID   `json:"id"`
	CompanyID         domain.CompanyID  `json:"company_id"`
	RoleID            domain.RoleID     `json:"role_id"`
	LocationID        domain.LocationID `json:"location_id"`
	BaseSalary        float64           `json:"base_salary"`
	Bonus             float64           `json:"bonus"`
	StockOptions      float64           `json:"stock_options"`
	TotalCompensation float64           `json:"total_compensation"`
	YearsOfExperience int               `json:"years_of_experience"`
	YearsAtCompany    *int              `json:"years_at_company,omitempty"`
	EmploymentType    string            `json:"employment_type"`
	IsRemote          bool              `json:"is_remote"`
	Currency          string            `json:"currency"`
	Source            string            `json:"source,omitempty"`
	IsVerified        bool              `json:"is_verified"`
	SubmittedAt       time.Time         `json:"submitted_at"`
}

// Validate checks every data-model invariant the caller controls.
func (r *CompensationRecord) Validate() error {
	if r.CompanyID.IsZero() || r.RoleID.IsZero() || r.LocationID.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "company, role and location references are required")
	}
	return r.ValidateFigures()
}

// ValidateFigures checks the numeric invariants, which do not depend on
// resolved references. Boundaries run this before any entity is created so
// a bad payload has no side effects. The total is validated against the
// component sum, never recomputed: silently fixing an inconsistent total
// would accept bad source data.
func (r *CompensationRecord) ValidateFigures() error {
	if r.BaseSalary <= 0 {
		return dErrors.New(dErrors.CodeValidation, "base salary must be positive")
	}
	if r.Bonus < 0 {
		return dErrors.New(dErrors.CodeValidation, "bonus cannot be negative")
	}
	if r.StockOptions < 0 {
		return dErrors.New(dErrors.CodeValidation, "stock options cannot be negative")
	}
	if math.Abs(r.TotalCompensation-(r.BaseSalary+r.Bonus+r.StockOptions)) > totalTolerance {
		return dErrors.New(dErrors.CodeValidation, "total compensation must equal base + bonus + stock options")
	}
	if r.YearsOfExperience < 0 {
		return dErrors.New(dErrors.CodeValidation, "years of experience cannot be negative")
	}
	if r.YearsAtCompany != nil {
		if *r.YearsAtCompany < 0 {
			return dErrors.New(dErrors.CodeValidation, "years at company cannot be negative")
		}
		if *r.YearsAtCompany > r.YearsOfExperience {
			return dErrors.New(dErrors.CodeValidation, "years at company cannot exceed years of experience")
		}
	}
	return nil
}

// ApplyDefaults fills optional fields the way the submission contract
// documents them.
func (r *CompensationRecord) ApplyDefaults() {
	if r.EmploymentType == "" {
		r.EmploymentType = DefaultEmploymentType
	}
	if r.Currency == "" {
		r.Currency = DefaultCurrency
	}
}

// CompensationView is a record joined with its company, role and location
// context. Query results always carry resolved names, never bare foreign
// keys.
type CompensationView struct {
	ID                domain.RecordID `json:"id"`
	Company           string          `json:"company"`
	Role              string          `json:"role"`
	Level             domain.Level    `json:"level"`
	City              string          `json:"city"`
	State             string          `json:"state,omitempty"`
	BaseSalary        float64         `json:"base_salary"`
	Bonus             float64         `json:"bonus"`
	StockOptions      float64         `json:"stock_options"`
	TotalCompensation float64         `json:"total_compensation"`
	YearsOfExperience int             `json:"years_of_experience"`
	EmploymentType    string          `json:"employment_type"`
	IsRemote          bool            `json:"is_remote"`
	Currency          string          `json:"currency"`
}

// SummaryStats are the aggregation engine's output over a filtered
// population of total compensation values.
type SummaryStats struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}
