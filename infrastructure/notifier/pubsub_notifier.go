package notifier

import (
	"context"
	"encoding/json"

	"creatorpulse/domain/model"
	"creatorpulse/infrastructure/logger"

	"cloud.google.com/go/pubsub"
)

// PubSubNotifier publishes notification events to a Google Pub/Sub topic.
// Sends are fire-and-forget: publish failures are logged and never propagated.
type PubSubNotifier struct {
	client *pubsub.Client
	topic  string
}

func NewPubSub(ctx context.Context, projectID string) (*pubsub.Client, error) {
	return pubsub.NewClient(ctx, projectID)
}

func NewPubSubNotifier(client *pubsub.Client, topic string) *PubSubNotifier {
	return &PubSubNotifier{client: client, topic: topic}
}

func (n *PubSubNotifier) publish(ctx context.Context, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("pubsub notifier: marshal failed")
		return
	}
	topic := n.client.Topic(n.topic)
	serverID, err := topic.Publish(ctx, &pubsub.Message{Data: payload}).Get(ctx)
	if err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"error": err,
			"type":  ev.Type,
		}).Error("pubsub notifier: publish failed")
		return
	}
	logger.GetLogger().WithFields(map[string]interface{}{
		"server_id": serverID,
		"type":      ev.Type,
	}).Info("notification published")
}

func (n *PubSubNotifier) SendUploadConfirmation(ctx context.Context, user model.User, ch *model.Challenge, pointsEarned, streak int, onTime bool) {
	n.publish(ctx, confirmationEvent(user, ch, pointsEarned, streak, onTime))
}

func (n *PubSubNotifier) SendMissedUpload(ctx context.Context, user model.User, ch *model.Challenge, penaltyPoints, missedDays int) {
	n.publish(ctx, missedEvent(user, ch, penaltyPoints, missedDays))
}
