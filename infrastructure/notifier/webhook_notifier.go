package notifier

import (
	"context"
	"net/http"
	"strings"
	"time"

	"creatorpulse/domain/model"
	"creatorpulse/infrastructure/logger"

	"github.com/google/go-querystring/query"
)

// WebhookNotifier posts notification events to an external mailer webhook as
// form-encoded parameters.
type WebhookNotifier struct {
	url        string
	httpClient *http.Client
}

func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// webhookParams mirrors Event with url tags for form encoding.
type webhookParams struct {
	Type          string `url:"type"`
	UserName      string `url:"user_name"`
	Email         string `url:"email"`
	ChallengeID   string `url:"challenge_id"`
	ChannelID     string `url:"channel_id"`
	PointsEarned  int    `url:"points_earned,omitempty"`
	PenaltyPoints int    `url:"penalty_points,omitempty"`
	Streak        int    `url:"streak,omitempty"`
	MissedDays    int    `url:"missed_days,omitempty"`
	OnTime        bool   `url:"on_time"`
}

func (n *WebhookNotifier) post(ctx context.Context, ev Event) {
	params := webhookParams{
		Type:          ev.Type,
		UserName:      ev.UserName,
		Email:         ev.Email,
		ChallengeID:   ev.ChallengeID,
		ChannelID:     ev.ChannelID,
		PointsEarned:  ev.PointsEarned,
		PenaltyPoints: ev.PenaltyPoints,
		Streak:        ev.Streak,
		MissedDays:    ev.MissedDays,
		OnTime:        ev.OnTime,
	}
	form, err := query.Values(params)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("webhook notifier: encode failed")
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, strings.NewReader(form.Encode()))
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("webhook notifier: request build failed")
		return
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := n.httpClient.Do(req)
	if err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"error": err,
			"type":  ev.Type,
		}).Error("webhook notifier: post failed")
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		logger.GetLogger().WithFields(map[string]interface{}{
			"status": resp.StatusCode,
			"type":   ev.Type,
		}).Error("webhook notifier: mailer rejected event")
	}
}

func (n *WebhookNotifier) SendUploadConfirmation(ctx context.Context, user model.User, ch *model.Challenge, pointsEarned, streak int, onTime bool) {
	n.post(ctx, confirmationEvent(user, ch, pointsEarned, streak, onTime))
}

func (n *WebhookNotifier) SendMissedUpload(ctx context.Context, user model.User, ch *model.Challenge, penaltyPoints, missedDays int) {
	n.post(ctx, missedEvent(user, ch, penaltyPoints, missedDays))
}
