package notifier

import (
	"context"
	"time"

	"creatorpulse/domain/model"
	"creatorpulse/infrastructure/logger"
)

// Event is the transport-neutral notification payload. The mailer service on
// the other side of the transport owns templating and delivery.
type Event struct {
	Type          string    `json:"type"` // upload_confirmation | missed_upload
	UserName      string    `json:"user_name"`
	Email         string    `json:"email"`
	ChallengeID   string    `json:"challenge_id"`
	ChannelID     string    `json:"channel_id"`
	PointsEarned  int       `json:"points_earned,omitempty"`
	PenaltyPoints int       `json:"penalty_points,omitempty"`
	Streak        int       `json:"streak,omitempty"`
	MissedDays    int       `json:"missed_days,omitempty"`
	OnTime        bool      `json:"on_time,omitempty"`
	SentAt        time.Time `json:"sent_at"`
}

const (
	EventUploadConfirmation = "upload_confirmation"
	EventMissedUpload       = "missed_upload"
)

func confirmationEvent(user model.User, ch *model.Challenge, points, streak int, onTime bool) Event {
	return Event{
		Type:         EventUploadConfirmation,
		UserName:     user.UserName,
		Email:        user.Email,
		ChallengeID:  ch.ID,
		ChannelID:    ch.ChannelID,
		PointsEarned: points,
		Streak:       streak,
		OnTime:       onTime,
		SentAt:       time.Now().UTC(),
	}
}

func missedEvent(user model.User, ch *model.Challenge, penalty, missedDays int) Event {
	return Event{
		Type:          EventMissedUpload,
		UserName:      user.UserName,
		Email:         user.Email,
		ChallengeID:   ch.ID,
		ChannelID:     ch.ChannelID,
		PenaltyPoints: penalty,
		MissedDays:    missedDays,
		SentAt:        time.Now().UTC(),
	}
}

// LogNotifier is the fallback transport: it only logs events. Useful for local
// development and as the degradation target when no broker is configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

func (n *LogNotifier) SendUploadConfirmation(ctx context.Context, user model.User, ch *model.Challenge, pointsEarned, streak int, onTime bool) {
	logger.GetLogger().WithField("event", confirmationEvent(user, ch, pointsEarned, streak, onTime)).Info("notification (log transport)")
}

func (n *LogNotifier) SendMissedUpload(ctx context.Context, user model.User, ch *model.Challenge, penaltyPoints, missedDays int) {
	logger.GetLogger().WithField("event", missedEvent(user, ch, penaltyPoints, missedDays)).Info("notification (log transport)")
}
