package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propcalc/domain"
	"propcalc/repository"
	"propcalc/resilience"
)

func TestSnapshotRepositoryMemory_SaveAndLoad(t *testing.T) {
	repo := repository.NewSnapshotRepositoryMemory()
	ctx := context.Background()

	snap := domain.InputSnapshot{
		ID:       "abc",
		SavedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Decision: &domain.DecisionInputs{ClientAge: 70, PlanningAge: 90},
	}
	require.NoError(t, repo.Save(ctx, snap))

	got, ok, err := repo.Load(ctx, "abc")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, snap, got)
	assert.Equal(t, 1, repo.Len())

	snap.Decision.PlanningAge = 95
	require.NoError(t, repo.Save(ctx, snap))
	assert.Equal(t, 1, repo.Len(), "same id replaces")
}

func TestSnapshotRepositoryMemory_Missing(t *testing.T) {
	repo := repository.NewSnapshotRepositoryMemory()

	_, ok, err := repo.Load(context.Background(), "missing")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestNoopSnapshotRepository(t *testing.T) {
	repo := repository.NewNoopSnapshotRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, domain.InputSnapshot{ID: "x"}))
	_, ok, err := repo.Load(ctx, "x")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisSnapshotRepository_Unreachable(t *testing.T) {
	repo := repository.NewRedisSnapshotRepository(repository.RedisOptions{
		Addr:    "127.0.0.1:1",
		TTL:     time.Minute,
		Timeout: 200 * time.Millisecond,
		Retry:   resilience.Config{MaxRetries: 0, InitialBackoff: time.Millisecond},
	})
	defer repo.Close()
	ctx := context.Background()

	err := repo.Save(ctx, domain.InputSnapshot{ID: "x"})
	var unavailable *domain.ErrStoreUnavailable
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "save", unavailable.Op)

	_, ok, err := repo.Load(ctx, "x")
	assert.False(t, ok)
	assert.ErrorAs(t, err, &unavailable)
}

func TestRedisSnapshotRepository_BreakerOpens(t *testing.T) {
	repo := repository.NewRedisSnapshotRepository(repository.RedisOptions{
		Addr:    "127.0.0.1:1",
		Timeout: 200 * time.Millisecond,
	})
	defer repo.Close()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.Error(t, repo.Save(ctx, domain.InputSnapshot{ID: "x"}))
	}

	err := repo.Save(ctx, domain.InputSnapshot{ID: "x"})
	var unavailable *domain.ErrStoreUnavailable
	require.ErrorAs(t, err, &unavailable)
	assert.Contains(t, err.Error(), "circuit open")
}
