// Package postgres opens the shared database handle and owns the schema.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Open connects to PostgreSQL and verifies the connection.
func Open(url string) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// schema is the full DDL. Uniqueness and referential integrity live in the
// store so concurrent creation races collapse to a single row and a
// surfaced conflict.
const schema = `
CREATE TABLE IF NOT EXISTS companies (
	id            BIGSERIAL PRIMARY KEY,
	name          TEXT NOT NULL,
	industry      TEXT NOT NULL DEFAULT '',
	size          TEXT NOT NULL DEFAULT '',
	headquarters  TEXT NOT NULL DEFAULT '',
	website       TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS companies_name_key ON companies (lower(name));

CREATE TABLE IF NOT EXISTS roles (
	id        BIGSERIAL PRIMARY KEY,
	title     TEXT NOT NULL,
	category  TEXT NOT NULL DEFAULT '',
	level     TEXT NOT NULL CHECK (level IN ('Entry', 'Mid', 'Senior'))
);
CREATE UNIQUE INDEX IF NOT EXISTS roles_title_key ON roles (lower(title));

CREATE TABLE IF NOT EXISTS locations (
	id                    BIGSERIAL PRIMARY KEY,
	city                  TEXT NOT NULL,
	state                 TEXT NOT NULL DEFAULT '',
	country               TEXT NOT NULL DEFAULT 'India',
	cost_of_living_index  DOUBLE PRECISION
);
CREATE UNIQUE INDEX IF NOT EXISTS locations_city_state_key ON locations (lower(city), lower(state));

CREATE TABLE IF NOT EXISTS salaries (
	id                   BIGSERIAL PRIMARY KEY,
	company_id           BIGINT NOT NULL REFERENCES companies(id),
	role_id              BIGINT NOT NULL REFERENCES roles(id),
	location_id          BIGINT NOT NULL REFERENCES locations(id),
	base_salary          DOUBLE PRECISION NOT NULL,
	bonus                DOUBLE PRECISION NOT NULL DEFAULT 0,
	stock_options        DOUBLE PRECISION NOT NULL DEFAULT 0,
	total_compensation   DOUBLE PRECISION NOT NULL,
	years_of_experience  INT NOT NULL,
	years_at_company     INT,
	employment_type      TEXT NOT NULL DEFAULT 'Full-time',
	is_remote            BOOLEAN NOT NULL DEFAULT FALSE,
	currency             TEXT NOT NULL DEFAULT 'INR',
	source               TEXT NOT NULL DEFAULT '',
	is_verified          BOOLEAN NOT NULL DEFAULT FALSE,
	submitted_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS salaries_company_id_idx ON salaries (company_id);
CREATE INDEX IF NOT EXISTS salaries_role_id_idx ON salaries (role_id);
CREATE INDEX IF NOT EXISTS salaries_location_id_idx ON salaries (location_id);
`

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// PostgreSQL error classes the stores translate into sentinels.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err is a unique-constraint violation.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == codeUniqueViolation
}

// IsForeignKeyViolation reports whether err is a foreign-key violation.
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == codeForeignKeyViolation
}
