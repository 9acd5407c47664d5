package domain

import "context"

// SnapshotRepository persists the two independently stored collections.
// Each collection is serialized as a single encoded blob under a fixed
// key. Missing or unreadable blobs surface as ErrSnapshotNotFound or a
// decode error; callers fall back to defaults.
type SnapshotRepository interface {
	SaveThresholds(ctx context.Context, thresholds []Threshold) error
	LoadThresholds(ctx context.Context) ([]Threshold, error)
	SaveSpaces(ctx context.Context, spaces []Space) error
	LoadSpaces(ctx context.Context) ([]Space, error)
}
