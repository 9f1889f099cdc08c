package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"propcalc/domain"
	"propcalc/observability"
	"propcalc/repository"
)

// SnapshotService persists what a user entered so a session can be
// restored. Saving never fails from the caller's point of view.
type SnapshotService struct {
	repo    repository.SnapshotRepository
	metrics *observability.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

func NewSnapshotService(
	repo repository.SnapshotRepository,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *SnapshotService {
	return &SnapshotService{repo: repo, metrics: metrics, logger: logger, now: time.Now}
}

// Save stamps the snapshot, assigning an id when it has none, and writes
// it to the store. Store failures are logged and counted; the id is
// returned either way.
func (s *SnapshotService) Save(ctx context.Context, snapshot domain.InputSnapshot) string {
	ctx, span := tracer.Start(ctx, "SnapshotService.Save")
	defer span.End()

	if snapshot.ID == "" {
		snapshot.ID = uuid.NewString()
	}
	snapshot.SavedAt = s.now().UTC()

	if err := s.repo.Save(ctx, snapshot); err != nil {
		s.metrics.IncrStoreError("save")
		s.logger.Warn("failed to save snapshot",
			zap.String("snapshot_id", snapshot.ID),
			zap.Error(err),
		)
	}
	return snapshot.ID
}

// Load returns ok=false when nothing is stored under id.
func (s *SnapshotService) Load(ctx context.Context, id string) (domain.InputSnapshot, bool, error) {
	ctx, span := tracer.Start(ctx, "SnapshotService.Load")
	defer span.End()

	snapshot, ok, err := s.repo.Load(ctx, id)
	if err != nil {
		s.metrics.IncrStoreError("load")
		s.logger.Warn("failed to load snapshot", zap.String("snapshot_id", id), zap.Error(err))
		return domain.InputSnapshot{}, false, err
	}
	return snapshot, ok, nil
}
