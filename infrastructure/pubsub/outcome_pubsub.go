package pubsub

import (
	"context"

	"cloud.google.com/go/pubsub"

	"content-ops/infrastructure/logger"
)

// IOutcomePubSub publishes publish-outcome events to Google Pub/Sub for
// downstream analytics. Send-only; consumers live in other services.
type IOutcomePubSub interface {
	Publish(ctx context.Context, topic string, payload []byte) (string, error)
}

type OutcomePubSub struct {
	PubSubClient *pubsub.Client
}

func NewOutcomePubSub(pubSubClient *pubsub.Client) IOutcomePubSub {
	return &OutcomePubSub{
		PubSubClient: pubSubClient,
	}
}

func (o *OutcomePubSub) Publish(
	ctx context.Context,
	topicName string,
	payload []byte,
) (string, error) {
	msg := &pubsub.Message{
		Data: payload,
	}

	topic := o.PubSubClient.Topic(topicName)

	// Create the topic if it doesn't exist.
	exists, err := topic.Exists(ctx)
	if err != nil {
		return "", err
	}
	if !exists {
		logger.GetLogger().WithField("topic", topicName).Info("Topic doesn't exist - creating it")
		_, err = o.PubSubClient.CreateTopic(ctx, topicName)
		if err != nil {
			return "", err
		}
	}

	serverId, err := topic.Publish(ctx, msg).Get(ctx)
	if err != nil {
		return "", err
	}

	logger.GetLogger().WithField("server ID", serverId).Info("Publish outcome event sent")
	return serverId, nil
}
