package record

import (
	"context"
	"strings"
	"sync"
	"time"

	"payscope/internal/comp/models"
	"payscope/internal/comp/ports"
	"payscope/pkg/domain"
	"payscope/pkg/platform/sentinel"
)

// InMemory is a mutex-guarded record store for tests and dev mode. It
// enforces referential integrity against the entity stores it is constructed
// with, the way the postgres store relies on foreign-key constraints.
type InMemory struct {
	mu      sync.RWMutex
	nextID  int64
	records []*models.CompensationRecord

	companies ports.CompanyStore
	roles     ports.RoleStore
	locations ports.LocationStore
}

// NewInMemory constructs an in-memory record store backed by the given
// entity stores.
func NewInMemory(companies ports.CompanyStore, roles ports.RoleStore, locations ports.LocationStore) *InMemory {
	return &InMemory{
		companies: companies,
		roles:     roles,
		locations: locations,
	}
}

func (s *InMemory) checkReferences(ctx context.Context, r *models.CompensationRecord) error {
	if _, err := s.companies.FindByID(ctx, r.CompanyID); err != nil {
		return sentinel.ErrForeignKey
	}
	if _, err := s.roles.FindByID(ctx, r.RoleID); err != nil {
		return sentinel.ErrForeignKey
	}
	if _, err := s.locations.FindByID(ctx, r.LocationID); err != nil {
		return sentinel.ErrForeignKey
	}
	return nil
}

func (s *InMemory) Create(ctx context.Context, record *models.CompensationRecord) error {
	if err := s.checkReferences(ctx, record); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.append(record)
	return nil
}

// CreateBatch commits all records or none, mirroring the postgres store's
// transactional batches.
func (s *InMemory) CreateBatch(ctx context.Context, records []*models.CompensationRecord) error {
	for _, record := range records {
		if err := s.checkReferences(ctx, record); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range records {
		s.append(record)
	}
	return nil
}

// append assigns the next ID and stores a copy. Caller holds the lock.
func (s *InMemory) append(record *models.CompensationRecord) {
	s.nextID++
	record.ID = domain.RecordID(s.nextID)
	if record.SubmittedAt.IsZero() {
		record.SubmittedAt = time.Now()
	}
	stored := *record
	s.records = append(s.records, &stored)
}

func (s *InMemory) Query(ctx context.Context, filter models.Filter, page models.Page) (int, []*models.CompensationView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*models.CompensationView
	for _, record := range s.records {
		view, err := s.resolve(ctx, record)
		if err != nil {
			return 0, nil, err
		}
		if matchesFilter(view, record, filter) {
			matched = append(matched, view)
		}
	}

	total := len(matched)
	if page.Offset >= total {
		return total, []*models.CompensationView{}, nil
	}
	end := page.Offset + page.Limit
	if end > total {
		end = total
	}
	return total, matched[page.Offset:end], nil
}

func (s *InMemory) Totals(ctx context.Context, filter models.Filter) ([]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var totals []float64
	for _, record := range s.records {
		view, err := s.resolve(ctx, record)
		if err != nil {
			return nil, err
		}
		if matchesFilter(view, record, filter) {
			totals = append(totals, record.TotalCompensation)
		}
	}
	return totals, nil
}

func (s *InMemory) DeleteAll(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := int64(len(s.records))
	s.records = nil
	return deleted, nil
}

// resolve joins a record with its entity context. Records only enter the
// store with live references and entities are never hard-deleted while
// referenced, so a dangling reference here is an invariant breach.
func (s *InMemory) resolve(ctx context.Context, r *models.CompensationRecord) (*models.CompensationView, error) {
	company, err := s.companies.FindByID(ctx, r.CompanyID)
	if err != nil {
		return nil, err
	}
	role, err := s.roles.FindByID(ctx, r.RoleID)
	if err != nil {
		return nil, err
	}
	loc, err := s.locations.FindByID(ctx, r.LocationID)
	if err != nil {
		return nil, err
	}
	return &models.CompensationView{
		ID:                r.ID,
		Company:           company.Name,
		Role:              role.Title,
		Level:             role.Level,
		City:              loc.City,
		State:             loc.State,
		BaseSalary:        r.BaseSalary,
		Bonus:             r.Bonus,
		StockOptions:      r.StockOptions,
		TotalCompensation: r.TotalCompensation,
		YearsOfExperience: r.YearsOfExperience,
		EmploymentType:    r.EmploymentType,
		IsRemote:          r.IsRemote,
		Currency:          r.Currency,
	}, nil
}

// matchesFilter applies the conjunctive predicate set. Substring matches are
// case-insensitive, bounds are inclusive.
func matchesFilter(view *models.CompensationView, record *models.CompensationRecord, f models.Filter) bool {
	if f.Company != "" && !containsFold(view.Company, f.Company) {
		return false
	}
	if f.City != "" && !containsFold(view.City, f.City) {
		return false
	}
	if f.Role != "" && !containsFold(view.Role, f.Role) {
		return false
	}
	if f.MinTotalComp != nil && record.TotalCompensation < *f.MinTotalComp {
		return false
	}
	if f.MaxTotalComp != nil && record.TotalCompensation > *f.MaxTotalComp {
		return false
	}
	if f.MinExperience != nil && record.YearsOfExperience < *f.MinExperience {
		return false
	}
	if f.MaxExperience != nil && record.YearsOfExperience > *f.MaxExperience {
		return false
	}
	if f.EmploymentType != "" && record.EmploymentType != f.EmploymentType {
		return false
	}
	if f.IsRemote != nil && record.IsRemote != *f.IsRemote {
		return false
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
