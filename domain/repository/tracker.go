package repository

import (
	"context"
	"time"

	"creatorpulse/domain/model"
)

// ITrackerLock is a per-challenge advisory lock held for the duration of one
// pipeline pass. It narrows the double-reward window when two cycles overlap;
// the upload_records uniqueness constraint remains the correctness guard.
type ITrackerLock interface {
	// Acquire returns false when the challenge is locked by another runner.
	Acquire(ctx context.Context, challengeID string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, challengeID string)
}

// ITrackerRun records per-cycle audit documents.
type ITrackerRun interface {
	Insert(ctx context.Context, run *model.TrackerRun) error
}
