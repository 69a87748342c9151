package handler

import (
	"strings"

	"payscope/internal/comp/models"
	"payscope/pkg/domain"
	dErrors "payscope/pkg/domain-errors"
)

// SubmitRecordRequest is the HTTP request body for POST /api/salaries/submit.
// Entities are referenced by name and created lazily on first observation.
type SubmitRecordRequest struct {
	CompanyName       string   `json:"company_name"`
	RoleTitle         string   `json:"role_title"`
	City              string   `json:"city"`
	State             string   `json:"state"`
	BaseSalary        float64  `json:"base_salary"`
	Bonus             float64  `json:"bonus"`
	StockOptions      float64  `json:"stock_options"`
	TotalCompensation *float64 `json:"total_compensation"`
	YearsOfExperience int      `json:"years_of_experience"`
	YearsAtCompany    *int     `json:"years_at_company"`
	EmploymentType    string   `json:"employment_type"`
	IsRemote          bool     `json:"is_remote"`
	Currency          string   `json:"currency"`
}

// Validate checks required names and the numeric invariants. Figures are
// checked here, before any entity is lazily created, so a bad payload has
// no side effects. A missing total is filled from the component sum; a
// present total is kept verbatim so an inconsistent one is rejected instead
// of silently repaired.
func (r *SubmitRecordRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.CompanyName = strings.TrimSpace(r.CompanyName)
	r.RoleTitle = strings.TrimSpace(r.RoleTitle)
	r.City = strings.TrimSpace(r.City)
	r.State = strings.TrimSpace(r.State)
	if r.CompanyName == "" {
		return dErrors.New(dErrors.CodeValidation, "company_name is required")
	}
	if r.RoleTitle == "" {
		return dErrors.New(dErrors.CodeValidation, "role_title is required")
	}
	if r.City == "" {
		return dErrors.New(dErrors.CodeValidation, "city is required")
	}
	if r.TotalCompensation == nil {
		total := r.BaseSalary + r.Bonus + r.StockOptions
		r.TotalCompensation = &total
	}
	record := models.CompensationRecord{
		BaseSalary:        r.BaseSalary,
		Bonus:             r.Bonus,
		StockOptions:      r.StockOptions,
		TotalCompensation: *r.TotalCompensation,
		YearsOfExperience: r.YearsOfExperience,
		YearsAtCompany:    r.YearsAtCompany,
	}
	return record.ValidateFigures()
}

// CreateCompanyRequest is the HTTP request body for POST /api/companies/add.
type CreateCompanyRequest struct {
	Name         string `json:"name"`
	Industry     string `json:"industry"`
	Size         string `json:"size"`
	Headquarters string `json:"headquarters"`
	Website      string `json:"website"`
}

func (r *CreateCompanyRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	return nil
}

// CreateRoleRequest is the HTTP request body for POST /api/roles/add. An
// empty level is classified from the title.
type CreateRoleRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Level    string `json:"level"`

	parsedLevel domain.Level
}

func (r *CreateRoleRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return dErrors.New(dErrors.CodeValidation, "title is required")
	}
	if r.Level != "" {
		level, err := domain.ParseLevel(r.Level)
		if err != nil {
			return err
		}
		r.parsedLevel = level
	}
	return nil
}

// ParsedLevel returns the validated level; zero when the caller left it to
// classification.
func (r *CreateRoleRequest) ParsedLevel() domain.Level {
	return r.parsedLevel
}

// CreateLocationRequest is the HTTP request body for POST /api/locations/add.
type CreateLocationRequest struct {
	City              string   `json:"city"`
	State             string   `json:"state"`
	Country           string   `json:"country"`
	CostOfLivingIndex *float64 `json:"cost_of_living_index"`
}

func (r *CreateLocationRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.City = strings.TrimSpace(r.City)
	if r.City == "" {
		return dErrors.New(dErrors.CodeValidation, "city is required")
	}
	return nil
}

// GenerateRequest is the HTTP request body for POST /api/admin/generate.
type GenerateRequest struct {
	Count int `json:"count"`
}

func (r *GenerateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Count <= 0 {
		return dErrors.New(dErrors.CodeValidation, "count must be positive")
	}
	return nil
}
