package servicebus

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azservicebus"

	"content-ops/infrastructure/logger"
)

// IOutcomeServiceBus mirrors publish-outcome events onto Azure Service Bus for
// deployments wired into the Azure side. Send-only; consumers live in other
// services.
type IOutcomeServiceBus interface {
	SendMessage(queue string, message []byte) error
}

type OutcomeServiceBus struct {
	AzservicebusClient *azservicebus.Client
}

func NewOutcomeServiceBus(azServiceBusClient *azservicebus.Client) IOutcomeServiceBus {
	return &OutcomeServiceBus{AzservicebusClient: azServiceBusClient}
}

func (o *OutcomeServiceBus) SendMessage(queue string, message []byte) error {
	sender, err := o.AzservicebusClient.NewSender(queue, nil)
	if err != nil {
		logger.GetLogger().
			WithField("error", err).
			Error("Error while making new sender service bus.")
		return err
	}
	defer func(sender *azservicebus.Sender, ctx context.Context) {
		err := sender.Close(ctx)
		if err != nil {
			logger.GetLogger().
				WithField("error", err).
				Error("Error while closing sender.")
		}
	}(sender, context.Background())

	sbMessage := &azservicebus.Message{
		Body: message,
	}
	err = sender.SendMessage(context.Background(), sbMessage, nil)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while sending message.")
		return err
	}

	return nil
}
