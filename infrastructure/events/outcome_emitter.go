package events

import (
	"context"
	"encoding/json"
	"time"

	"content-ops/domain/model"
	"content-ops/infrastructure/logger"
	"content-ops/infrastructure/pubsub"
	"content-ops/infrastructure/servicebus"
)

// OutcomeEmitter fans publish outcomes out to whichever messaging backends are
// wired. Both backends are optional; a deployment without them gets a no-op.
type OutcomeEmitter struct {
	pubSub      pubsub.IOutcomePubSub
	topic       string
	serviceBus  servicebus.IOutcomeServiceBus
	queue       string
	sendTimeout time.Duration
}

func NewOutcomeEmitter(ps pubsub.IOutcomePubSub, topic string, sb servicebus.IOutcomeServiceBus, queue string) *OutcomeEmitter {
	return &OutcomeEmitter{
		pubSub:      ps,
		topic:       topic,
		serviceBus:  sb,
		queue:       queue,
		sendTimeout: 10 * time.Second,
	}
}

// Emit serializes the event and sends it to each configured backend. Failures
// are logged and swallowed; events never change a publish outcome.
func (e *OutcomeEmitter) Emit(ctx context.Context, evt model.PublishOutcomeEvent) {
	if e == nil {
		return
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while encoding outcome event")
		return
	}

	if e.pubSub != nil && e.topic != "" {
		sendCtx, cancel := context.WithTimeout(ctx, e.sendTimeout)
		if _, err := e.pubSub.Publish(sendCtx, e.topic, payload); err != nil {
			logger.GetLogger().WithFields(map[string]interface{}{
				"error": err,
				"topic": e.topic,
			}).Warn("outcome event pubsub publish failed")
		}
		cancel()
	}

	if e.serviceBus != nil && e.queue != "" {
		if err := e.serviceBus.SendMessage(e.queue, payload); err != nil {
			logger.GetLogger().WithFields(map[string]interface{}{
				"error": err,
				"queue": e.queue,
			}).Warn("outcome event service bus send failed")
		}
	}
}
