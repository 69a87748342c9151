package record

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"payscope/internal/comp/models"
	"payscope/internal/platform/postgres"
	"payscope/pkg/domain"
	"payscope/pkg/platform/sentinel"
)

// PostgresStore persists compensation records in PostgreSQL. Referential
// integrity rides on the salaries table's foreign keys; query resolution is
// a single three-way join per call, never per-row lookups.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed record store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const insertRecord = `
	INSERT INTO salaries (
		company_id, role_id, location_id,
		base_salary, bonus, stock_options, total_compensation,
		years_of_experience, years_at_company,
		employment_type, is_remote, currency, source, is_verified
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	RETURNING id, submitted_at
`

func (s *PostgresStore) Create(ctx context.Context, record *models.CompensationRecord) error {
	err := s.db.QueryRowContext(ctx, insertRecord, insertArgs(record)...).
		Scan(&record.ID, &record.SubmittedAt)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return sentinel.ErrForeignKey
		}
		return fmt.Errorf("create record: %w", err)
	}
	return nil
}

// CreateBatch inserts all records in one transaction so a failure partway
// through leaves none of the batch committed.
func (s *PostgresStore) CreateBatch(ctx context.Context, records []*models.CompensationRecord) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, insertRecord)
	if err != nil {
		return fmt.Errorf("prepare batch insert: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		err := stmt.QueryRowContext(ctx, insertArgs(record)...).
			Scan(&record.ID, &record.SubmittedAt)
		if err != nil {
			if postgres.IsForeignKeyViolation(err) {
				return sentinel.ErrForeignKey
			}
			return fmt.Errorf("batch insert record: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

func insertArgs(r *models.CompensationRecord) []any {
	return []any{
		r.CompanyID, r.RoleID, r.LocationID,
		r.BaseSalary, r.Bonus, r.StockOptions, r.TotalCompensation,
		r.YearsOfExperience, r.YearsAtCompany,
		r.EmploymentType, r.IsRemote, r.Currency, r.Source, r.IsVerified,
	}
}

func (s *PostgresStore) Query(ctx context.Context, filter models.Filter, page models.Page) (int, []*models.CompensationView, error) {
	where, args := buildWhere(filter)

	var total int
	countQuery := `
		SELECT count(*)
		FROM salaries s
		JOIN companies c ON c.id = s.company_id
		JOIN roles r ON r.id = s.role_id
		JOIN locations l ON l.id = s.location_id
	` + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return 0, nil, fmt.Errorf("count records: %w", err)
	}

	pageQuery := `
		SELECT s.id, c.name, r.title, r.level, l.city, l.state,
		       s.base_salary, s.bonus, s.stock_options, s.total_compensation,
		       s.years_of_experience, s.employment_type, s.is_remote, s.currency
		FROM salaries s
		JOIN companies c ON c.id = s.company_id
		JOIN roles r ON r.id = s.role_id
		JOIN locations l ON l.id = s.location_id
	` + where + `
		ORDER BY s.id
		LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	rows, err := s.db.QueryContext(ctx, pageQuery, append(args, page.Limit, page.Offset)...)
	if err != nil {
		return 0, nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	views := []*models.CompensationView{}
	for rows.Next() {
		var v models.CompensationView
		var level string
		err := rows.Scan(
			&v.ID, &v.Company, &v.Role, &level, &v.City, &v.State,
			&v.BaseSalary, &v.Bonus, &v.StockOptions, &v.TotalCompensation,
			&v.YearsOfExperience, &v.EmploymentType, &v.IsRemote, &v.Currency,
		)
		if err != nil {
			return 0, nil, fmt.Errorf("scan record view: %w", err)
		}
		v.Level = domain.Level(level)
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, fmt.Errorf("query records: %w", err)
	}
	return total, views, nil
}

func (s *PostgresStore) Totals(ctx context.Context, filter models.Filter) ([]float64, error) {
	where, args := buildWhere(filter)

	rows, err := s.db.QueryContext(ctx, `
		SELECT s.total_compensation
		FROM salaries s
		JOIN companies c ON c.id = s.company_id
		JOIN roles r ON r.id = s.role_id
		JOIN locations l ON l.id = s.location_id
	`+where+`
		ORDER BY s.id
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("query totals: %w", err)
	}
	defer rows.Close()

	var totals []float64
	for rows.Next() {
		var total float64
		if err := rows.Scan(&total); err != nil {
			return nil, fmt.Errorf("scan total: %w", err)
		}
		totals = append(totals, total)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query totals: %w", err)
	}
	return totals, nil
}

func (s *PostgresStore) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM salaries`)
	if err != nil {
		return 0, fmt.Errorf("delete all records: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete all records: %w", err)
	}
	return deleted, nil
}

// buildWhere renders the conjunctive predicate set as a WHERE clause with
// positional args. Substring predicates use ILIKE, bounds are inclusive.
func buildWhere(f models.Filter) (string, []any) {
	var clauses []string
	var args []any

	add := func(clause string, value any) {
		args = append(args, value)
		clauses = append(clauses, strings.ReplaceAll(clause, "?", "$"+strconv.Itoa(len(args))))
	}

	if f.Company != "" {
		add("c.name ILIKE ?", "%"+f.Company+"%")
	}
	if f.City != "" {
		add("l.city ILIKE ?", "%"+f.City+"%")
	}
	if f.Role != "" {
		add("r.title ILIKE ?", "%"+f.Role+"%")
	}
	if f.MinTotalComp != nil {
		add("s.total_compensation >= ?", *f.MinTotalComp)
	}
	if f.MaxTotalComp != nil {
		add("s.total_compensation <= ?", *f.MaxTotalComp)
	}
	if f.MinExperience != nil {
		add("s.years_of_experience >= ?", *f.MinExperience)
	}
	if f.MaxExperience != nil {
		add("s.years_of_experience <= ?", *f.MaxExperience)
	}
	if f.EmploymentType != "" {
		add("s.employment_type = ?", f.EmploymentType)
	}
	if f.IsRemote != nil {
		add("s.is_remote = ?", *f.IsRemote)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}
