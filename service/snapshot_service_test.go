package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"propcalc/domain"
	"propcalc/observability"
	"propcalc/repository"
)

type failingRepo struct{}

func (failingRepo) Save(context.Context, domain.InputSnapshot) error {
	return &domain.ErrStoreUnavailable{Op: "save", Err: errors.New("connection refused")}
}

func (failingRepo) Load(context.Context, string) (domain.InputSnapshot, bool, error) {
	return domain.InputSnapshot{}, false, &domain.ErrStoreUnavailable{Op: "load", Err: errors.New("connection refused")}
}

func TestSnapshotService_SaveAssignsIDAndStamps(t *testing.T) {
	repo := repository.NewSnapshotRepositoryMemory()
	svc := NewSnapshotService(repo, observability.NewMetrics(), zap.NewNop())
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	id := svc.Save(context.Background(), domain.InputSnapshot{
		Mortgage: &domain.MortgageInputs{Principal: 300000, AnnualRatePercent: 4.5, AmortizationYears: 25, TermYears: 5},
	})
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	got, ok, err := svc.Load(context.Background(), id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, fixed, got.SavedAt)
	assert.Equal(t, 300000.0, got.Mortgage.Principal)
}

func TestSnapshotService_SaveKeepsGivenID(t *testing.T) {
	repo := repository.NewSnapshotRepositoryMemory()
	svc := NewSnapshotService(repo, observability.NewMetrics(), zap.NewNop())

	assert.Equal(t, "session-1", svc.Save(context.Background(), domain.InputSnapshot{ID: "session-1"}))
	assert.Equal(t, 1, repo.Len())
}

func TestSnapshotService_LoadMissing(t *testing.T) {
	svc := NewSnapshotService(repository.NewSnapshotRepositoryMemory(), observability.NewMetrics(), zap.NewNop())

	_, ok, err := svc.Load(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSnapshotService_SaveFailureIsSwallowed(t *testing.T) {
	m := observability.NewMetrics()
	svc := NewSnapshotService(failingRepo{}, m, zap.NewNop())

	id := svc.Save(context.Background(), domain.InputSnapshot{})
	assert.NotEmpty(t, id)

	n, err := testutil.GatherAndCount(m.Registry, "propcalc_snapshot_store_errors_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSnapshotService_LoadFailureSurfaces(t *testing.T) {
	svc := NewSnapshotService(failingRepo{}, observability.NewMetrics(), zap.NewNop())

	_, _, err := svc.Load(context.Background(), "x")
	var unavailable *domain.ErrStoreUnavailable
	assert.True(t, errors.As(err, &unavailable))
}
