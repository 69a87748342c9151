// Package generator produces synthetic compensation records. It samples
// uniformly over the existing entity populations and keeps figures realistic
// per tier and level via the classification table. The run is stochastic by
// design, but every record it emits satisfies the full data-model invariant
// set.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"payscope/internal/comp/metrics"
	"payscope/internal/comp/models"
	"payscope/internal/comp/ports"
	"payscope/internal/comp/tier"
	"payscope/pkg/domain"
	dErrors "payscope/pkg/domain-errors"
)

// DefaultBatchSize is a throughput tunable, not a correctness constraint:
// each batch commits atomically, so a failure partway through a run leaves a
// well-defined prefix of whole batches committed.
const DefaultBatchSize = 50

// experienceRanges indexes inclusive years-of-experience ranges by level.
var experienceRanges = map[domain.Level][2]int{
	domain.LevelEntry:  {0, 2},
	domain.LevelMid:    {3, 7},
	domain.LevelSenior: {8, 15},
}

// tenureCap bounds years at the current employer regardless of total
// experience.
const tenureCap = 4

// Source tags generated records so synthetic data is distinguishable from
// submissions.
const Source = "synthetic_generator"

type Service struct {
	records   ports.RecordStore
	companies ports.CompanyStore
	roles     ports.RoleStore
	locations ports.LocationStore
	table     *tier.Table

	rng       *rand.Rand
	batchSize int
	cache     ports.StatsCache
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithRand injects a seeded source so tests can fix the sample sequence.
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) {
		s.rng = rng
	}
}

func WithBatchSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

func WithStatsCache(cache ports.StatsCache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(
	records ports.RecordStore,
	companies ports.CompanyStore,
	roles ports.RoleStore,
	locations ports.LocationStore,
	table *tier.Table,
	opts ...Option,
) (*Service, error) {
	if records == nil || companies == nil || roles == nil || locations == nil {
		return nil, fmt.Errorf("generator requires record, company, role and location stores")
	}
	if table == nil {
		return nil, fmt.Errorf("generator requires a classification table")
	}
	svc := &Service{
		records:   records,
		companies: companies,
		roles:     roles,
		locations: locations,
		table:     table,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		batchSize: DefaultBatchSize,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Generate produces count records and persists them in atomic batches. It
// returns how many records were committed; on a mid-run failure that number
// covers the committed prefix of whole batches.
//
// Not idempotent: two runs append twice the records. Callers needing a clean
// slate must delete existing records first.
//
// Errors: CodeValidation for a non-positive count, CodeEmptyPopulation when
// any of the company/role/location populations is empty.
func (s *Service) Generate(ctx context.Context, count int) (int, error) {
	if count <= 0 {
		return 0, dErrors.New(dErrors.CodeValidation, "count must be positive")
	}

	companies, err := s.companies.List(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list companies")
	}
	roles, err := s.roles.List(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list roles")
	}
	locations, err := s.locations.List(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list locations")
	}
	if len(companies) == 0 || len(roles) == 0 || len(locations) == 0 {
		return 0, dErrors.New(dErrors.CodeEmptyPopulation, "companies, roles and locations must exist before generating records")
	}

	committed := 0
	batch := make([]*models.CompensationRecord, 0, s.batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.records.CreateBatch(ctx, batch); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to commit generated batch")
		}
		committed += len(batch)
		batch = batch[:0]
		return nil
	}

	for i := 0; i < count; i++ {
		record, err := s.sample(companies, roles, locations)
		if err != nil {
			return committed, err
		}
		batch = append(batch, record)
		if len(batch) >= s.batchSize {
			if err := flush(); err != nil {
				return committed, err
			}
		}
	}
	if err := flush(); err != nil {
		return committed, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	if s.metrics != nil {
		s.metrics.AddRecordsGenerated(committed)
	}
	s.logger.InfoContext(ctx, "synthetic records generated", "count", committed)
	return committed, nil
}

// sample builds one internally-consistent record from uniform draws.
func (s *Service) sample(
	companies []*models.Company,
	roles []*models.Role,
	locations []*models.Location,
) (*models.CompensationRecord, error) {
	company := companies[s.rng.Intn(len(companies))]
	role := roles[s.rng.Intn(len(roles))]
	loc := locations[s.rng.Intn(len(locations))]

	band, mix, err := s.table.Classify(company.Name, role.Level)
	if err != nil {
		return nil, err
	}

	base := s.uniform(band.Min, band.Max)
	bonus := math.Round(base * s.uniform(mix.Bonus.Min, mix.Bonus.Max))
	equity := math.Round(base * s.uniform(mix.Equity.Min, mix.Equity.Max))
	base = math.Round(base)

	expRange := experienceRanges[role.Level]
	experience := expRange[0] + s.rng.Intn(expRange[1]-expRange[0]+1)
	maxTenure := experience
	if maxTenure > tenureCap {
		maxTenure = tenureCap
	}
	tenure := s.rng.Intn(maxTenure + 1)

	return &models.CompensationRecord{
		CompanyID:         company.ID,
		RoleID:            role.ID,
		LocationID:        loc.ID,
		BaseSalary:        base,
		Bonus:             bonus,
		StockOptions:      equity,
		TotalCompensation: base + bonus + equity,
		YearsOfExperience: experience,
		YearsAtCompany:    &tenure,
		EmploymentType:    models.DefaultEmploymentType,
		IsRemote:          s.rng.Intn(10) < 2, // roughly one in five observations
		Currency:          models.DefaultCurrency,
		Source:            Source,
	}, nil
}

func (s *Service) uniform(min, max float64) float64 {
	return min + s.rng.Float64()*(max-min)
}
