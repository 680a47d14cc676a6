//go:build integration

package store_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"dermis/internal/profile"
	"dermis/internal/profile/store"
	"dermis/internal/taxonomy"
	id "dermis/pkg/domain"
	"dermis/pkg/platform/sentinel"
	"dermis/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T(), store.Schema)
	s.store = store.NewPostgres(s.postgres.Pool)
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "skin_profiles")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) newSnapshot(userID id.UserID, version id.ProfileVersion) profile.SkinProfile {
	p := profile.SkinProfile{
		UserID:      userID,
		Version:     version,
		SkinType:    taxonomy.SkinTypeDry,
		Sensitivity: taxonomy.SensitivityMedium,
		MainGoals:   []taxonomy.GoalKey{taxonomy.GoalHydration},
	}
	p.ApplyDefaults()
	return p
}

func (s *PostgresStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	userID := id.UserID(uuid.New())

	s.Require().NoError(s.store.Save(ctx, s.newSnapshot(userID, 1)))
	s.Require().NoError(s.store.Save(ctx, s.newSnapshot(userID, 2)))

	latest, err := s.store.Latest(ctx, userID)
	s.Require().NoError(err)
	s.Equal(id.ProfileVersion(2), latest.Version)
	s.Equal(taxonomy.SkinTypeDry, latest.SkinType)
	s.Equal([]taxonomy.GoalKey{taxonomy.GoalHydration}, latest.MainGoals)

	v1, err := s.store.Version(ctx, userID, 1)
	s.Require().NoError(err)
	s.Equal(id.ProfileVersion(1), v1.Version)
}

func (s *PostgresStoreSuite) TestNotFound() {
	_, err := s.store.Latest(context.Background(), id.UserID(uuid.New()))
	s.True(errors.Is(err, sentinel.ErrNotFound))
}

// TestConcurrentVersionCollision verifies that concurrent saves of the same
// version admit exactly one winner via the primary key.
func (s *PostgresStoreSuite) TestConcurrentVersionCollision() {
	ctx := context.Background()
	userID := id.UserID(uuid.New())
	const goroutines = 20

	var wg sync.WaitGroup
	var successCount, conflictCount atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.store.Save(ctx, s.newSnapshot(userID, 1))
			switch {
			case err == nil:
				successCount.Add(1)
			case errors.Is(err, sentinel.ErrVersionConflict):
				conflictCount.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), successCount.Load())
	s.Equal(int32(goroutines-1), conflictCount.Load())
}
