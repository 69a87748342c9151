package location

import (
	"context"
	"database/sql"
	"fmt"

	"payscope/internal/comp/models"
	"payscope/internal/platform/postgres"
	"payscope/pkg/domain"
	"payscope/pkg/platform/sentinel"
)

// PostgresStore persists locations in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed location store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, loc *models.Location) error {
	if loc.Country == "" {
		loc.Country = models.DefaultCountry
	}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO locations (city, state, country, cost_of_living_index)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, loc.City, loc.State, loc.Country, loc.CostOfLivingIndex).Scan(&loc.ID)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("create location: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id domain.LocationID) (*models.Location, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, city, state, country, cost_of_living_index FROM locations WHERE id = $1`, id)
	return scanLocation(row, "find location by id")
}

func (s *PostgresStore) FindByCity(ctx context.Context, city string) (*models.Location, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, city, state, country, cost_of_living_index
		FROM locations WHERE lower(city) = lower($1)
		ORDER BY id LIMIT 1
	`, city)
	return scanLocation(row, "find location by city")
}

func (s *PostgresStore) FindByCityState(ctx context.Context, city, state string) (*models.Location, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, city, state, country, cost_of_living_index
		FROM locations WHERE lower(city) = lower($1) AND lower(state) = lower($2)
	`, city, state)
	return scanLocation(row, "find location by city and state")
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Location, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, city, state, country, cost_of_living_index FROM locations ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var out []*models.Location
	for rows.Next() {
		var l models.Location
		if err := rows.Scan(&l.ID, &l.City, &l.State, &l.Country, &l.CostOfLivingIndex); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		out = append(out, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return out, nil
}

func scanLocation(row *sql.Row, op string) (*models.Location, error) {
	var l models.Location
	err := row.Scan(&l.ID, &l.City, &l.State, &l.Country, &l.CostOfLivingIndex)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &l, nil
}
