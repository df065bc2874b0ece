package repository

import (
	"context"

	"creatorpulse/domain/model"
)

// INotifier delivers outcome notifications. Both sends are fire-and-forget:
// implementations log failures and never surface them to the tracker pipeline.
type INotifier interface {
	SendUploadConfirmation(ctx context.Context, user model.User, ch *model.Challenge, pointsEarned int, streak int, onTime bool)
	SendMissedUpload(ctx context.Context, user model.User, ch *model.Challenge, penaltyPoints int, missedDays int)
}
