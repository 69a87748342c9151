// Package catalog creates and resolves the base entities: companies, roles
// and locations. Entities are created lazily on first observation; creation
// races on the same name collapse to one row via the store's uniqueness
// constraint and surface as a duplicate-entity conflict.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"payscope/internal/comp/models"
	"payscope/internal/comp/ports"
	"payscope/pkg/domain"
	dErrors "payscope/pkg/domain-errors"
	"payscope/pkg/platform/sentinel"
)

type Service struct {
	companies ports.CompanyStore
	roles     ports.RoleStore
	locations ports.LocationStore
	logger    *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(companies ports.CompanyStore, roles ports.RoleStore, locations ports.LocationStore, opts ...Option) (*Service, error) {
	if companies == nil || roles == nil || locations == nil {
		return nil, fmt.Errorf("catalog requires company, role and location stores")
	}
	svc := &Service{
		companies: companies,
		roles:     roles,
		locations: locations,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// CreateCompanyParams are the caller-supplied company attributes.
type CreateCompanyParams struct {
	Name         string
	Industry     string
	Size         string
	Headquarters string
	Website      string
}

// CreateCompany registers a new employer.
//
// Errors: CodeValidation for an empty name, CodeConflict when the name is
// already taken.
func (s *Service) CreateCompany(ctx context.Context, params CreateCompanyParams) (*models.Company, error) {
	company := &models.Company{
		Name:         params.Name,
		Industry:     params.Industry,
		Size:         params.Size,
		Headquarters: params.Headquarters,
		Website:      params.Website,
	}
	if err := company.Validate(); err != nil {
		return nil, err
	}
	if err := s.companies.Create(ctx, company); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "company already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create company")
	}

	s.logger.InfoContext(ctx, "company created", "company_id", company.ID, "name", company.Name)
	return company, nil
}

// CreateRoleParams are the caller-supplied role attributes. When Level is
// empty it is classified once from the title.
type CreateRoleParams struct {
	Title    string
	Category string
	Level    domain.Level
}

// CreateRole registers a new job title. The level is fixed at creation.
//
// Errors: CodeValidation for an empty title or invalid level, CodeConflict
// when the title is already taken.
func (s *Service) CreateRole(ctx context.Context, params CreateRoleParams) (*models.Role, error) {
	level := params.Level
	if level == "" {
		level = domain.ClassifyTitle(params.Title)
	}
	role := &models.Role{
		Title:    params.Title,
		Category: params.Category,
		Level:    level,
	}
	if err := role.Validate(); err != nil {
		return nil, err
	}
	if err := s.roles.Create(ctx, role); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "role already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create role")
	}

	s.logger.InfoContext(ctx, "role created", "role_id", role.ID, "title", role.Title, "level", role.Level)
	return role, nil
}

// CreateLocationParams are the caller-supplied location attributes.
type CreateLocationParams struct {
	City              string
	State             string
	Country           string
	CostOfLivingIndex *float64
}

// CreateLocation registers a new city. Uniqueness is by (city, state).
//
// Errors: CodeValidation for an empty city or non-positive cost-of-living
// index, CodeConflict when the (city, state) pair is already taken.
func (s *Service) CreateLocation(ctx context.Context, params CreateLocationParams) (*models.Location, error) {
	loc := &models.Location{
		City:              params.City,
		State:             params.State,
		Country:           params.Country,
		CostOfLivingIndex: params.CostOfLivingIndex,
	}
	if loc.Country == "" {
		loc.Country = models.DefaultCountry
	}
	if err := loc.Validate(); err != nil {
		return nil, err
	}
	if err := s.locations.Create(ctx, loc); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "location already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create location")
	}

	s.logger.InfoContext(ctx, "location created", "location_id", loc.ID, "city", loc.City, "state", loc.State)
	return loc, nil
}

// EnsureCompany resolves a company by name, creating it on first reference.
// Loses races gracefully: a concurrent create of the same name resolves to
// the winner's row.
func (s *Service) EnsureCompany(ctx context.Context, name string) (*models.Company, error) {
	company, err := s.companies.FindByName(ctx, name)
	if err == nil {
		return company, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to find company")
	}

	company, err = s.CreateCompany(ctx, CreateCompanyParams{Name: name})
	if err == nil {
		return company, nil
	}
	if dErrors.HasCode(err, dErrors.CodeConflict) {
		return s.FindCompanyByName(ctx, name)
	}
	return nil, err
}

// EnsureRole resolves a role by title, creating it with a classified level
// on first reference.
func (s *Service) EnsureRole(ctx context.Context, title string) (*models.Role, error) {
	role, err := s.roles.FindByTitle(ctx, title)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to find role")
	}

	role, err = s.CreateRole(ctx, CreateRoleParams{Title: title})
	if err == nil {
		return role, nil
	}
	if dErrors.HasCode(err, dErrors.CodeConflict) {
		role, err = s.roles.FindByTitle(ctx, title)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to find role")
		}
		return role, nil
	}
	return nil, err
}

// EnsureLocation resolves a location by its (city, state) pair, creating it
// on first reference.
func (s *Service) EnsureLocation(ctx context.Context, city, state string) (*models.Location, error) {
	loc, err := s.locations.FindByCityState(ctx, city, state)
	if err == nil {
		return loc, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to find location")
	}

	loc, err = s.CreateLocation(ctx, CreateLocationParams{City: city, State: state})
	if err == nil {
		return loc, nil
	}
	if dErrors.HasCode(err, dErrors.CodeConflict) {
		loc, err = s.locations.FindByCityState(ctx, city, state)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to find location")
		}
		return loc, nil
	}
	return nil, err
}

// FindCompanyByName resolves a company by exact, case-insensitive name.
//
// Errors: CodeNotFound when no such company exists.
func (s *Service) FindCompanyByName(ctx context.Context, name string) (*models.Company, error) {
	company, err := s.companies.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "company not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to find company")
	}
	return company, nil
}

// FindLocationByCity resolves the first location in a city by exact,
// case-insensitive match.
//
// Errors: CodeNotFound when no such location exists.
func (s *Service) FindLocationByCity(ctx context.Context, city string) (*models.Location, error) {
	loc, err := s.locations.FindByCity(ctx, city)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "location not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to find location")
	}
	return loc, nil
}
