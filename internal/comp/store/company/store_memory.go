package company

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"payscope/internal/comp/models"
	"payscope/pkg/domain"
	"payscope/pkg/platform/sentinel"
)

// InMemory is a mutex-guarded company store for tests and dev mode. IDs are
// assigned from a monotone counter so ordering matches the postgres store.
type InMemory struct {
	mu        sync.RWMutex
	nextID    int64
	companies map[domain.CompanyID]*models.Company
	byName    map[string]domain.CompanyID
}

// NewInMemory constructs an empty in-memory company store.
func NewInMemory() *InMemory {
	return &InMemory{
		companies: make(map[domain.CompanyID]*models.Company),
		byName:    make(map[string]domain.CompanyID),
	}
}

func (s *InMemory) Create(_ context.Context, company *models.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(company.Name)
	if _, exists := s.byName[key]; exists {
		return sentinel.ErrAlreadyUsed
	}

	s.nextID++
	company.ID = domain.CompanyID(s.nextID)
	if company.CreatedAt.IsZero() {
		company.CreatedAt = time.Now()
	}

	stored := *company
	s.companies[company.ID] = &stored
	s.byName[key] = company.ID
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id domain.CompanyID) (*models.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	company, ok := s.companies[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *company
	return &copied, nil
}

func (s *InMemory) FindByName(_ context.Context, name string) (*models.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byName[strings.ToLower(name)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *s.companies[id]
	return &copied, nil
}

func (s *InMemory) List(_ context.Context) ([]*models.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Company, 0, len(s.companies))
	for _, company := range s.companies {
		copied := *company
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
