package repository

import (
	"context"
	"errors"
	"time"

	"creatorpulse/domain/model"
)

// ErrDuplicateUpload is returned by Create when the (challenge, scheduled_date)
// uniqueness constraint rejects the insert. The loser of a concurrent cycle
// treats this as already-recorded, not as a failure.
var ErrDuplicateUpload = errors.New("upload already recorded for slot")

// IUploadRecord persists the append-only upload facts.
type IUploadRecord interface {
	// FindInWindow returns the record whose upload_date falls inside
	// [slotStart, slotDeadline] for the challenge, or nil when none exists.
	FindInWindow(ctx context.Context, challengeID string, slotStart, slotDeadline time.Time) (*model.UploadRecord, error)
	Create(ctx context.Context, rec *model.UploadRecord) error
	ListByChallenge(ctx context.Context, challengeID string) ([]*model.UploadRecord, error)
}
