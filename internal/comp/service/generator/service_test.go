package generator

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payscope/internal/comp/models"
	"payscope/internal/comp/store/company"
	"payscope/internal/comp/store/location"
	"payscope/internal/comp/store/record"
	"payscope/internal/comp/store/role"
	"payscope/internal/comp/tier"
	"payscope/pkg/domain"
	dErrors "payscope/pkg/domain-errors"
)

type fixture struct {
	companies *company.InMemory
	roles     *role.InMemory
	locations *location.InMemory
	records   *record.InMemory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		companies: company.NewInMemory(),
		roles:     role.NewInMemory(),
		locations: location.NewInMemory(),
	}
	f.records = record.NewInMemory(f.companies, f.roles, f.locations)
	return f
}

func (f *fixture) seed(t *testing.T, companyName, roleTitle string, level domain.Level, city, state string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.companies.Create(ctx, &models.Company{Name: companyName}))
	require.NoError(t, f.roles.Create(ctx, &models.Role{Title: roleTitle, Level: level}))
	require.NoError(t, f.locations.Create(ctx, &models.Location{City: city, State: state, Country: models.DefaultCountry}))
}

func newService(t *testing.T, f *fixture, opts ...Option) *Service {
	t.Helper()
	opts = append([]Option{WithRand(rand.New(rand.NewSource(42)))}, opts...)
	svc, err := New(f.records, f.companies, f.roles, f.locations, tier.DefaultTable(), opts...)
	require.NoError(t, err)
	return svc
}

func TestGenerateEmptyPopulation(t *testing.T) {
	f := newFixture(t)
	svc := newService(t, f)

	n, err := svc.Generate(context.Background(), 10)
	assert.Equal(t, 0, n)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeEmptyPopulation))
}

func TestGenerateRejectsNonPositiveCount(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "TCS", "Systems Engineer", domain.LevelEntry, "Pune", "Maharashtra")
	svc := newService(t, f)

	_, err := svc.Generate(context.Background(), 0)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = svc.Generate(context.Background(), -5)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestGenerateRespectsBandsAndIdentities(t *testing.T) {
	// Acme Widgets is not in the tier table, so every record falls back to
	// the services profile. With only entry-level roles seeded, every base
	// salary must land in the services entry band.
	f := newFixture(t)
	f.seed(t, "Acme Widgets", "Systems Engineer", domain.LevelEntry, "Pune", "Maharashtra")
	svc := newService(t, f)

	ctx := context.Background()
	n, err := svc.Generate(ctx, 200)
	require.NoError(t, err)
	assert.Equal(t, 200, n)

	totals, err := f.records.Totals(ctx, models.Filter{})
	require.NoError(t, err)
	require.Len(t, totals, 200)

	page, err := models.NewPage(models.MaxLimit, 0)
	require.NoError(t, err)
	total, views, err := f.records.Query(ctx, models.Filter{}, page)
	require.NoError(t, err)
	assert.Equal(t, 200, total)

	for _, v := range views {
		assert.GreaterOrEqual(t, v.BaseSalary, 300000.0)
		assert.LessOrEqual(t, v.BaseSalary, 600000.0)
		assert.InDelta(t, v.TotalCompensation, v.BaseSalary+v.Bonus+v.StockOptions, 1e-6)
		assert.GreaterOrEqual(t, v.YearsOfExperience, 0)
		assert.LessOrEqual(t, v.YearsOfExperience, 2)
		assert.Equal(t, models.DefaultEmploymentType, v.EmploymentType)
		assert.Equal(t, models.DefaultCurrency, v.Currency)
	}
}

func TestGenerateSeniorExperienceRange(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "Flipkart", "Staff Engineer", domain.LevelSenior, "Bangalore", "Karnataka")
	svc := newService(t, f)

	ctx := context.Background()
	_, err := svc.Generate(ctx, 100)
	require.NoError(t, err)

	page, err := models.NewPage(models.MaxLimit, 0)
	require.NoError(t, err)
	_, views, err := f.records.Query(ctx, models.Filter{}, page)
	require.NoError(t, err)

	for _, v := range views {
		assert.GreaterOrEqual(t, v.YearsOfExperience, 8)
		assert.LessOrEqual(t, v.YearsOfExperience, 15)
		// Flipkart sits in the growth tier.
		assert.GreaterOrEqual(t, v.BaseSalary, 2500000.0)
		assert.LessOrEqual(t, v.BaseSalary, 7000000.0)
	}
}

func TestGenerateFiguresAreRounded(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "TCS", "Developer", domain.LevelMid, "Chennai", "Tamil Nadu")
	svc := newService(t, f)

	ctx := context.Background()
	_, err := svc.Generate(ctx, 50)
	require.NoError(t, err)

	page, err := models.NewPage(50, 0)
	require.NoError(t, err)
	_, views, err := f.records.Query(ctx, models.Filter{}, page)
	require.NoError(t, err)

	for _, v := range views {
		assert.Equal(t, math.Trunc(v.BaseSalary), v.BaseSalary)
		assert.Equal(t, math.Trunc(v.Bonus), v.Bonus)
		assert.Equal(t, math.Trunc(v.StockOptions), v.StockOptions)
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	run := func() []float64 {
		f := newFixture(t)
		f.seed(t, "Zomato", "Engineer", domain.LevelMid, "Gurgaon", "Haryana")
		svc := newService(t, f)
		_, err := svc.Generate(context.Background(), 20)
		require.NoError(t, err)
		totals, err := f.records.Totals(context.Background(), models.Filter{})
		require.NoError(t, err)
		return totals
	}

	assert.Equal(t, run(), run())
}

func TestGenerateBatchSizeOption(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "TCS", "Engineer", domain.LevelEntry, "Pune", "Maharashtra")
	svc := newService(t, f, WithBatchSize(7))

	n, err := svc.Generate(context.Background(), 25)
	require.NoError(t, err)
	assert.Equal(t, 25, n)

	totals, err := f.records.Totals(context.Background(), models.Filter{})
	require.NoError(t, err)
	assert.Len(t, totals, 25)
}
