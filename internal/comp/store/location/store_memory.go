package location

import (
	"context"
	"sort"
	"strings"
	"sync"

	"payscope/internal/comp/models"
	"payscope/pkg/domain"
	"payscope/pkg/platform/sentinel"
)

// InMemory is a mutex-guarded location store for tests and dev mode.
// Uniqueness is by the (city, state) pair, case-insensitive.
type InMemory struct {
	mu        sync.RWMutex
	nextID    int64
	locations map[domain.LocationID]*models.Location
	byPair    map[string]domain.LocationID
}

// NewInMemory constructs an empty in-memory location store.
func NewInMemory() *InMemory {
	return &InMemory{
		locations: make(map[domain.LocationID]*models.Location),
		byPair:    make(map[string]domain.LocationID),
	}
}

func pairKey(city, state string) string {
	return strings.ToLower(city) + "\x00" + strings.ToLower(state)
}

func (s *InMemory) Create(_ context.Context, loc *models.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey(loc.City, loc.State)
	if _, exists := s.byPair[key]; exists {
		return sentinel.ErrAlreadyUsed
	}

	s.nextID++
	loc.ID = domain.LocationID(s.nextID)
	if loc.Country == "" {
		loc.Country = models.DefaultCountry
	}

	stored := *loc
	s.locations[loc.ID] = &stored
	s.byPair[key] = loc.ID
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id domain.LocationID) (*models.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	loc, ok := s.locations[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *loc
	return &copied, nil
}

func (s *InMemory) FindByCity(_ context.Context, city string) (*models.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// First match in ID order, mirroring the postgres store's ORDER BY id.
	var found *models.Location
	for _, loc := range s.locations {
		if strings.EqualFold(loc.City, city) {
			if found == nil || loc.ID < found.ID {
				found = loc
			}
		}
	}
	if found == nil {
		return nil, sentinel.ErrNotFound
	}
	copied := *found
	return &copied, nil
}

func (s *InMemory) FindByCityState(_ context.Context, city, state string) (*models.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byPair[pairKey(city, state)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *s.locations[id]
	return &copied, nil
}

func (s *InMemory) List(_ context.Context) ([]*models.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Location, 0, len(s.locations))
	for _, loc := range s.locations {
		copied := *loc
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
