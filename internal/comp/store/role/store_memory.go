package role

import (
	"context"
	"sort"
	"strings"
	"sync"

	"payscope/internal/comp/models"
	"payscope/pkg/domain"
	"payscope/pkg/platform/sentinel"
)

// InMemory is a mutex-guarded role store for tests and dev mode.
type InMemory struct {
	mu      sync.RWMutex
	nextID  int64
	roles   map[domain.RoleID]*models.Role
	byTitle map[string]domain.RoleID
}

// NewInMemory constructs an empty in-memory role store.
func NewInMemory() *InMemory {
	return &InMemory{
		roles:   make(map[domain.RoleID]*models.Role),
		byTitle: make(map[string]domain.RoleID),
	}
}

func (s *InMemory) Create(_ context.Context, role *models.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(role.Title)
	if _, exists := s.byTitle[key]; exists {
		return sentinel.ErrAlreadyUsed
	}

	s.nextID++
	role.ID = domain.RoleID(s.nextID)

	stored := *role
	s.roles[role.ID] = &stored
	s.byTitle[key] = role.ID
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id domain.RoleID) (*models.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	role, ok := s.roles[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *role
	return &copied, nil
}

func (s *InMemory) FindByTitle(_ context.Context, title string) (*models.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byTitle[strings.ToLower(title)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *s.roles[id]
	return &copied, nil
}

func (s *InMemory) List(_ context.Context) ([]*models.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Role, 0, len(s.roles))
	for _, role := range s.roles {
		copied := *role
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
