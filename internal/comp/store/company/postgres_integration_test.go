//go:build integration

package company_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"payscope/internal/comp/models"
	"payscope/internal/comp/store/company"
	"payscope/pkg/platform/sentinel"
	"payscope/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *company.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = company.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	err := s.postgres.TruncateTables(ctx, "salaries", "companies", "roles", "locations")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) TestCreateAssignsAscendingIDs() {
	ctx := context.Background()

	first := &models.Company{Name: "First " + uuid.NewString()}
	second := &models.Company{Name: "Second " + uuid.NewString()}
	s.Require().NoError(s.store.Create(ctx, first))
	s.Require().NoError(s.store.Create(ctx, second))

	s.Greater(int64(second.ID), int64(first.ID))
	s.False(first.CreatedAt.IsZero())
}

func (s *PostgresStoreSuite) TestCaseInsensitiveUniqueness() {
	ctx := context.Background()
	baseName := "CaseTest" + strings.ReplaceAll(uuid.NewString(), "-", "")

	s.Require().NoError(s.store.Create(ctx, &models.Company{Name: baseName}))

	for _, name := range []string{strings.ToUpper(baseName), strings.ToLower(baseName)} {
		err := s.store.Create(ctx, &models.Company{Name: name})
		s.ErrorIs(err, sentinel.ErrAlreadyUsed, "name %q should conflict with %q", name, baseName)
	}

	found, err := s.store.FindByName(ctx, strings.ToUpper(baseName))
	s.Require().NoError(err)
	s.Equal(baseName, found.Name)
}

func (s *PostgresStoreSuite) TestConcurrentSameNameOneWinner() {
	ctx := context.Background()
	name := "Concurrent " + uuid.NewString()
	const goroutines = 30

	var wg sync.WaitGroup
	var successCount, conflictCount atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.store.Create(ctx, &models.Company{Name: name})
			if err == nil {
				successCount.Add(1)
			} else if errors.Is(err, sentinel.ErrAlreadyUsed) {
				conflictCount.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), successCount.Load(), "exactly one create should win")
	s.Equal(int32(goroutines-1), conflictCount.Load())
}

func (s *PostgresStoreSuite) TestNotFound() {
	ctx := context.Background()

	_, err := s.store.FindByID(ctx, 999999)
	s.ErrorIs(err, sentinel.ErrNotFound)

	_, err = s.store.FindByName(ctx, "Ghost "+uuid.NewString())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestListOrderedByID() {
	ctx := context.Background()

	names := []string{"Gamma", "Alpha", "Beta"}
	for _, n := range names {
		s.Require().NoError(s.store.Create(ctx, &models.Company{Name: n + " " + uuid.NewString()}))
	}

	listed, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(listed, 3)
	for i := 1; i < len(listed); i++ {
		s.Greater(int64(listed[i].ID), int64(listed[i-1].ID))
	}
}
