package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"creatorpulse/domain/model"
	"creatorpulse/infrastructure/logger"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azservicebus"
)

// ServiceBusNotifier sends notification events to an Azure Service Bus queue.
type ServiceBusNotifier struct {
	client *azservicebus.Client
	queue  string
}

func NewServiceBus(namespace string) (*azservicebus.Client, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("service bus credential: %w", err)
	}
	return azservicebus.NewClient(namespace, cred, nil)
}

func NewServiceBusNotifier(client *azservicebus.Client, queue string) *ServiceBusNotifier {
	return &ServiceBusNotifier{client: client, queue: queue}
}

func (n *ServiceBusNotifier) send(ctx context.Context, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("servicebus notifier: marshal failed")
		return
	}
	sender, err := n.client.NewSender(n.queue, nil)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("servicebus notifier: sender creation failed")
		return
	}
	defer func() {
		if err := sender.Close(ctx); err != nil {
			logger.GetLogger().WithField("error", err).Warn("servicebus notifier: sender close failed")
		}
	}()
	if err := sender.SendMessage(ctx, &azservicebus.Message{Body: payload}, nil); err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"error": err,
			"type":  ev.Type,
		}).Error("servicebus notifier: send failed")
	}
}

func (n *ServiceBusNotifier) SendUploadConfirmation(ctx context.Context, user model.User, ch *model.Challenge, pointsEarned, streak int, onTime bool) {
	n.send(ctx, confirmationEvent(user, ch, pointsEarned, streak, onTime))
}

func (n *ServiceBusNotifier) SendMissedUpload(ctx context.Context, user model.User, ch *model.Challenge, penaltyPoints, missedDays int) {
	n.send(ctx, missedEvent(user, ch, penaltyPoints, missedDays))
}
