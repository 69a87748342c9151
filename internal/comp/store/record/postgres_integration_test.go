//go:build integration

package record_test

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
	"payscope/pkg/platform/sentinel"
	"payscope/pkg/testutil/containers"
)

type PostgresRecordSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *record.PostgresStore

	companyID  domain.CompanyID
	roleID     domain.RoleID
	locationID domain.LocationID
}

func TestPostgresRecordSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresRecordSuite))
}

func (s *PostgresRecordSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = record.NewPostgres(s.postgres.DB)
}

func (s *PostgresRecordSuite) SetupTest() {
	ctx := context.Background()
	err := s.postgres.TruncateTables(ctx, "salaries", "companies", "roles", "locations")
	s.Require().NoError(err)

	c := &models.Company{Name: "TCS"}
	s.Require().NoError(company.NewPostgres(s.postgres.DB).Create(ctx, c))
	s.companyID = c.ID

	r := &models.Role{Title: "Systems Engineer", Level: domain.LevelEntry}
	s.Require().NoError(role.NewPostgres(s.postgres.DB).Create(ctx, r))
	s.roleID = r.ID

	l := &models.Location{City: "Pune", State: "Maharashtra", Country: models.DefaultCountry}
	s.Require().NoError(location.NewPostgres(s.postgres.DB).Create(ctx, l))
	s.locationID = l.ID
}

func (s *PostgresRecordSuite) newRecord(total float64) *models.CompensationRecord {
	return &models.CompensationRecord{
		CompanyID:         s.companyID,
		RoleID:            s.roleID,
		LocationID:        s.locationID,
		BaseSalary:        total,
		TotalCompensation: total,
		YearsOfExperience: 1,
		EmploymentType:    models.DefaultEmploymentType,
		Currency:          models.DefaultCurrency,
	}
}

func (s *PostgresRecordSuite) TestCreateAndQueryJoinedView() {
	ctx := context.Background()

	rec := s.newRecord(450000)
	s.Require().NoError(s.store.Create(ctx, rec))
	s.NotZero(rec.ID)
	s.False(rec.SubmittedAt.IsZero())

	total, views, err := s.store.Query(ctx, models.Filter{}, models.Page{Limit: 10, Offset: 0})
	s.Require().NoError(err)
	s.Equal(1, total)
	s.Require().Len(views, 1)

	v := views[0]
	s.Equal("TCS", v.Company)
	s.Equal("Systems Engineer", v.Role)
	s.Equal(domain.LevelEntry, v.Level)
	s.Equal("Pune", v.City)
	s.Equal(450000.0, v.TotalCompensation)
}

func (s *PostgresRecordSuite) TestForeignKeyViolation() {
	ctx := context.Background()

	rec := s.newRecord(450000)
	rec.CompanyID = 999999
	err := s.store.Create(ctx, rec)
	s.ErrorIs(err, sentinel.ErrForeignKey)
}

func (s *PostgresRecordSuite) TestBatchIsAtomic() {
	ctx := context.Background()

	good := s.newRecord(400000)
	bad := s.newRecord(500000)
	bad.RoleID = 999999

	err := s.store.CreateBatch(ctx, []*models.CompensationRecord{good, bad})
	s.ErrorIs(err, sentinel.ErrForeignKey)

	total, _, err := s.store.Query(ctx, models.Filter{}, models.Page{Limit: 10, Offset: 0})
	s.Require().NoError(err)
	s.Equal(0, total, "a failed batch must commit nothing")
}

func (s *PostgresRecordSuite) TestFilterAndPagination() {
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		s.Require().NoError(s.store.Create(ctx, s.newRecord(400000+float64(i)*10000)))
	}

	total, views, err := s.store.Query(ctx, models.Filter{City: "pun"}, models.Page{Limit: 10, Offset: 10})
	s.Require().NoError(err)
	s.Equal(15, total)
	s.Len(views, 5)

	minTotal := 500000.0
	total, _, err = s.store.Query(ctx, models.Filter{MinTotalComp: &minTotal}, models.Page{Limit: 100, Offset: 0})
	s.Require().NoError(err)
	s.Equal(5, total)
}

func (s *PostgresRecordSuite) TestTotalsAndDeleteAll() {
	ctx := context.Background()

	for _, v := range []float64{100, 200, 300} {
		s.Require().NoError(s.store.Create(ctx, s.newRecord(v)))
	}

	totals, err := s.store.Totals(ctx, models.Filter{})
	s.Require().NoError(err)
	s.Equal([]float64{100, 200, 300}, totals)

	deleted, err := s.store.DeleteAll(ctx)
	s.Require().NoError(err)
	s.Equal(int64(3), deleted)

	totals, err = s.store.Totals(ctx, models.Filter{})
	s.Require().NoError(err)
	s.Empty(totals)
}
