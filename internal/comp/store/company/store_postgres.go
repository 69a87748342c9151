package company

import (
	"context"
	"database/sql"
	"fmt"

	"payscope/internal/comp/models"
	"payscope/internal/platform/postgres"
	"payscope/pkg/domain"
	"payscope/pkg/platform/sentinel"
)

// PostgresStore persists companies in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed company store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, company *models.Company) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO companies (name, industry, size, headquarters, website)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, company.Name, company.Industry, company.Size, company.Headquarters, company.Website).
		Scan(&company.ID, &company.CreatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("create company: %w", err)
	}
	return nil
}

const companyColumns = `id, name, industry, size, headquarters, website, created_at`

func (s *PostgresStore) FindByID(ctx context.Context, id domain.CompanyID) (*models.Company, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
	return scanCompany(row, "find company by id")
}

func (s *PostgresStore) FindByName(ctx context.Context, name string) (*models.Company, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE lower(name) = lower($1)`, name)
	return scanCompany(row, "find company by name")
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Company, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+companyColumns+` FROM companies ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var out []*models.Company
	for rows.Next() {
		var c models.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Industry, &c.Size, &c.Headquarters, &c.Website, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return out, nil
}

func scanCompany(row *sql.Row, op string) (*models.Company, error) {
	var c models.Company
	err := row.Scan(&c.ID, &c.Name, &c.Industry, &c.Size, &c.Headquarters, &c.Website, &c.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}
