package repository

import (
	"context"

	"propcalc/domain"
)

// NoopSnapshotRepository discards saves and never finds anything.
type NoopSnapshotRepository struct{}

func NewNoopSnapshotRepository() NoopSnapshotRepository {
	return NoopSnapshotRepository{}
}

func (NoopSnapshotRepository) Save(context.Context, domain.InputSnapshot) error {
	return nil
}

func (NoopSnapshotRepository) Load(context.Context, string) (domain.InputSnapshot, bool, error) {
	return domain.InputSnapshot{}, false, nil
}
