package stats

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"payscope/internal/comp/models"
	"payscope/internal/comp/store/company"
	"payscope/internal/comp/store/location"
	"payscope/internal/comp/store/record"
	"payscope/internal/comp/store/role"
	"payscope/pkg/domain"
	dErrors "payscope/pkg/domain-errors"
)

// memoryCache is a map-backed StatsCache for exercising the read-through
// path without redis.
type memoryCache struct {
	entries map[string]*models.SummaryStats
	hits    int
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]*models.SummaryStats)}
}

func (c *memoryCache) Get(_ context.Context, key string) (*models.SummaryStats, bool) {
	stats, ok := c.entries[key]
	if ok {
		c.hits++
	}
	return stats, ok
}

func (c *memoryCache) Set(_ context.Context, key string, stats *models.SummaryStats) {
	c.sets++
	c.entries[key] = stats
}

func (c *memoryCache) Invalidate(_ context.Context) {
	c.entries = make(map[string]*models.SummaryStats)
}

type StatsServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	records *record.InMemory
	svc     *Service
	cache   *memoryCache

	companyID  domain.CompanyID
	roleID     domain.RoleID
	locationID domain.LocationID
}

func TestStatsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StatsServiceTestSuite))
}

func (s *StatsServiceTestSuite) SetupTest() {
	s.ctx = context.Background()

	companies := company.NewInMemory()
	roles := role.NewInMemory()
	locations := location.NewInMemory()
	s.records = record.NewInMemory(companies, roles, locations)

	c := &models.Company{Name: "Infosys"}
	s.Require().NoError(companies.Create(s.ctx, c))
	s.companyID = c.ID

	r := &models.Role{Title: "Engineer", Level: domain.LevelMid}
	s.Require().NoError(roles.Create(s.ctx, r))
	s.roleID = r.ID

	l := &models.Location{City: "Mysore", State: "Karnataka", Country: models.DefaultCountry}
	s.Require().NoError(locations.Create(s.ctx, l))
	s.locationID = l.ID

	s.cache = newMemoryCache()
	svc, err := New(s.records, WithStatsCache(s.cache))
	s.Require().NoError(err)
	s.svc = svc
}

func (s *StatsServiceTestSuite) seedTotals(totals ...float64) {
	for _, total := range totals {
		s.Require().NoError(s.records.Create(s.ctx, &models.CompensationRecord{
			CompanyID:         s.companyID,
			RoleID:            s.roleID,
			LocationID:        s.locationID,
			BaseSalary:        total,
			TotalCompensation: total,
			YearsOfExperience: 5,
			EmploymentType:    models.DefaultEmploymentType,
			Currency:          models.DefaultCurrency,
		}))
	}
}

func (s *StatsServiceTestSuite) TestAggregateOddPopulation() {
	s.seedTotals(10, 20, 30, 40, 50)

	stats, err := s.svc.Aggregate(s.ctx, models.Filter{})
	s.Require().NoError(err)

	s.Equal(5, stats.Count)
	s.Equal(10.0, stats.Min)
	s.Equal(50.0, stats.Max)
	s.Equal(30.0, stats.Mean)
	s.Equal(30.0, stats.Median)
}

func (s *StatsServiceTestSuite) TestAggregateEvenPopulationUpperMedian() {
	s.seedTotals(10, 20, 30, 40)

	stats, err := s.svc.Aggregate(s.ctx, models.Filter{})
	s.Require().NoError(err)

	s.Equal(4, stats.Count)
	s.Equal(30.0, stats.Median)
	s.Equal(25.0, stats.Mean)
}

func (s *StatsServiceTestSuite) TestAggregateSingleRecord() {
	s.seedTotals(1200000)

	stats, err := s.svc.Aggregate(s.ctx, models.Filter{})
	s.Require().NoError(err)

	s.Equal(1, stats.Count)
	s.Equal(1200000.0, stats.Min)
	s.Equal(1200000.0, stats.Max)
	s.Equal(1200000.0, stats.Mean)
	s.Equal(1200000.0, stats.Median)
}

func (s *StatsServiceTestSuite) TestAggregateNoData() {
	_, err := s.svc.Aggregate(s.ctx, models.Filter{})
	s.True(dErrors.HasCode(err, dErrors.CodeNoData))

	s.seedTotals(10)
	_, err = s.svc.Aggregate(s.ctx, models.Filter{Company: "does-not-exist"})
	s.True(dErrors.HasCode(err, dErrors.CodeNoData))
}

func (s *StatsServiceTestSuite) TestAggregateUsesCache() {
	s.seedTotals(10, 20, 30)

	first, err := s.svc.Aggregate(s.ctx, models.Filter{})
	s.Require().NoError(err)
	s.Equal(1, s.cache.sets)
	s.Equal(0, s.cache.hits)

	second, err := s.svc.Aggregate(s.ctx, models.Filter{})
	s.Require().NoError(err)
	s.Equal(1, s.cache.hits)
	s.Equal(first, second)
}

func (s *StatsServiceTestSuite) TestDistinctFiltersDistinctKeys() {
	s.seedTotals(10, 20, 30)

	_, err := s.svc.Aggregate(s.ctx, models.Filter{})
	s.Require().NoError(err)
	_, err = s.svc.Aggregate(s.ctx, models.Filter{City: "Mysore"})
	s.Require().NoError(err)

	s.Equal(2, s.cache.sets)
	s.Equal(0, s.cache.hits)
}

func (s *StatsServiceTestSuite) TestMeanByCity() {
	s.seedTotals(100, 200, 300)

	mean, count, err := s.svc.MeanByCity(s.ctx, "mysore")
	s.Require().NoError(err)
	s.Equal(200.0, mean)
	s.Equal(3, count)

	_, _, err = s.svc.MeanByCity(s.ctx, "")
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidQuery))

	_, _, err = s.svc.MeanByCity(s.ctx, "Delhi")
	s.True(dErrors.HasCode(err, dErrors.CodeNoData))
}
