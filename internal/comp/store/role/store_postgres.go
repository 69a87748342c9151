package role

import (
	"context"
	"database/sql"
	"fmt"

	"payscope/internal/comp/models"
	"payscope/internal/platform/postgres"
	"payscope/pkg/domain"
	"payscope/pkg/platform/sentinel"
)

// PostgresStore persists roles in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed role store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, role *models.Role) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO roles (title, category, level)
		VALUES ($1, $2, $3)
		RETURNING id
	`, role.Title, role.Category, role.Level.String()).Scan(&role.ID)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("create role: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id domain.RoleID) (*models.Role, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, category, level FROM roles WHERE id = $1`, id)
	return scanRole(row, "find role by id")
}

func (s *PostgresStore) FindByTitle(ctx context.Context, title string) (*models.Role, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, category, level FROM roles WHERE lower(title) = lower($1)`, title)
	return scanRole(row, "find role by title")
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Role, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, category, level FROM roles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var out []*models.Role
	for rows.Next() {
		var r models.Role
		var level string
		if err := rows.Scan(&r.ID, &r.Title, &r.Category, &level); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		r.Level = domain.Level(level)
		out = append(out, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return out, nil
}

func scanRole(row *sql.Row, op string) (*models.Role, error) {
	var r models.Role
	var level string
	err := row.Scan(&r.ID, &r.Title, &r.Category, &level)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	r.Level = domain.Level(level)
	return &r, nil
}
