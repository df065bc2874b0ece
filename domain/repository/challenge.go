package repository

import (
	"context"
	"time"

	"creatorpulse/domain/model"
)

// IChallenge persists challenge rows including the progress slot array.
type IChallenge interface {
	Create(ctx context.Context, ch *model.Challenge) error
	GetByID(ctx context.Context, id string) (*model.Challenge, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Challenge, error)
	// ListDueForTracking returns active challenges whose next_upload_deadline is
	// at or before now, plus those with a null deadline (re-derived by the slot
	// resolver after a missed transition).
	ListDueForTracking(ctx context.Context, now time.Time) ([]*model.Challenge, error)
	// UpdateTrackingState persists the fields the scoring transition mutates:
	// points, streaks, missed days, next deadline and the progress array.
	UpdateTrackingState(ctx context.Context, ch *model.Challenge) error
	UpdateStatus(ctx context.Context, id, status string) error
}
