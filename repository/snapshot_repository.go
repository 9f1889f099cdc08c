package repository

import (
	"context"

	"propcalc/domain"
)

// SnapshotRepository persists input snapshots. Load reports ok=false when
// no snapshot exists for id.
type SnapshotRepository interface {
	Save(ctx context.Context, snapshot domain.InputSnapshot) error
	Load(ctx context.Context, id string) (snapshot domain.InputSnapshot, ok bool, err error)
}
