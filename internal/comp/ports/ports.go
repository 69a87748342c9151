// Package ports defines the store interfaces shared by the compensation
// services. Interfaces live here because every service consumes them and the
// memory and postgres implementations must stay interchangeable.
package ports

import (
	"context"

	"payscope/internal/comp/models"
	"payscope/pkg/domain"
)

// CompanyStore persists companies.
type CompanyStore interface {
	// Create assigns an ID and stores the company. Returns
	// sentinel.ErrAlreadyUsed when the name (case-insensitive) is taken.
	Create(ctx context.Context, company *models.Company) error

	// FindByID returns sentinel.ErrNotFound for unknown IDs.
	FindByID(ctx context.Context, id domain.CompanyID) (*models.Company, error)

	// FindByName matches the name case-insensitively (exact, not substring).
	FindByName(ctx context.Context, name string) (*models.Company, error)

	// List returns all companies ordered by ascending ID.
	List(ctx context.Context) ([]*models.Company, error)
}

// RoleStore persists roles.
type RoleStore interface {
	// Create assigns an ID and stores the role. Returns
	// sentinel.ErrAlreadyUsed when the title (case-insensitive) is taken.
	Create(ctx context.Context, role *models.Role) error

	FindByID(ctx context.Context, id domain.RoleID) (*models.Role, error)
	FindByTitle(ctx context.Context, title string) (*models.Role, error)
	List(ctx context.Context) ([]*models.Role, error)
}

// LocationStore persists locations.
type LocationStore interface {
	// Create assigns an ID and stores the location. Returns
	// sentinel.ErrAlreadyUsed when the (city, state) pair is taken.
	Create(ctx context.Context, location *models.Location) error

	FindByID(ctx context.Context, id domain.LocationID) (*models.Location, error)

	// FindByCity matches the city case-insensitively (exact, not substring).
	// When several states share the city name the lowest ID wins.
	FindByCity(ctx context.Context, city string) (*models.Location, error)

	// FindByCityState matches the unique (city, state) pair
	// case-insensitively.
	FindByCityState(ctx context.Context, city, state string) (*models.Location, error)

	List(ctx context.Context) ([]*models.Location, error)
}

// StatsCache caches aggregation results. Implementations are best-effort: a
// miss or a failed write must never fail the request.
type StatsCache interface {
	// Get returns the cached stats for a filter key, if present.
	Get(ctx context.Context, key string) (*models.SummaryStats, bool)

	// Set stores stats under a filter key.
	Set(ctx context.Context, key string, stats *models.SummaryStats)

	// Invalidate drops every cached entry; called whenever the record set
	// changes.
	Invalidate(ctx context.Context)
}

// RecordStore persists compensation records and resolves filtered views.
type RecordStore interface {
	// Create assigns an ID and stores the record. Returns
	// sentinel.ErrForeignKey when a referenced entity does not exist.
	Create(ctx context.Context, record *models.CompensationRecord) error

	// CreateBatch stores all records atomically: a failure leaves none of
	// the batch committed.
	CreateBatch(ctx context.Context, records []*models.CompensationRecord) error

	// Query returns the pre-pagination match count and one page of joined
	// views, ordered by ascending record ID. It performs a single join
	// fetch per call; it never resolves entities row by row.
	Query(ctx context.Context, filter models.Filter, page models.Page) (int, []*models.CompensationView, error)

	// Totals returns the total compensation of every record matching the
	// filter, unpaginated, for aggregation.
	Totals(ctx context.Context, filter models.Filter) ([]float64, error)

	// DeleteAll removes every record and reports how many were removed.
	// Destructive; exists for reset/reseed workflows only.
	DeleteAll(ctx context.Context) (int64, error)
}
