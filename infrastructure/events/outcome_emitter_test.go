package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"content-ops/domain/model"
)

type mockPubSub struct {
	mock.Mock
}

func (m *mockPubSub) Publish(ctx context.Context, topic string, payload []byte) (string, error) {
	args := m.Called(ctx, topic, payload)
	return args.String(0), args.Error(1)
}

type mockServiceBus struct {
	mock.Mock
}

func (m *mockServiceBus) SendMessage(queue string, message []byte) error {
	args := m.Called(queue, message)
	return args.Error(0)
}

func sampleEvent() model.PublishOutcomeEvent {
	return model.PublishOutcomeEvent{
		VideoID:    "vid-1",
		Platform:   model.PlatformYouTube,
		State:      string(model.PublishStatePublished),
		RemoteID:   "yt123",
		RemoteURL:  "https://www.youtube.com/watch?v=yt123",
		OccurredAt: time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC),
	}
}

func TestOutcomeEmitterSendsToBothBackends(t *testing.T) {
	ps := &mockPubSub{}
	sb := &mockServiceBus{}
	ps.On("Publish", mock.Anything, "outcomes", mock.Anything).Return("server-1", nil).Once()
	sb.On("SendMessage", "outcome-queue", mock.Anything).Return(nil).Once()

	emitter := NewOutcomeEmitter(ps, "outcomes", sb, "outcome-queue")
	emitter.Emit(context.Background(), sampleEvent())

	ps.AssertExpectations(t)
	sb.AssertExpectations(t)

	payload := ps.Calls[0].Arguments.Get(2).([]byte)
	var decoded model.PublishOutcomeEvent
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, "vid-1", decoded.VideoID)
	assert.Equal(t, model.PlatformYouTube, decoded.Platform)
	assert.Equal(t, "yt123", decoded.RemoteID)
}

func TestOutcomeEmitterSkipsUnconfiguredBackends(t *testing.T) {
	sb := &mockServiceBus{}
	sb.On("SendMessage", "outcome-queue", mock.Anything).Return(nil).Once()

	// No pubsub wired; only the service bus should receive the event.
	emitter := NewOutcomeEmitter(nil, "", sb, "outcome-queue")
	emitter.Emit(context.Background(), sampleEvent())

	sb.AssertExpectations(t)
}

func TestOutcomeEmitterSwallowsBackendErrors(t *testing.T) {
	ps := &mockPubSub{}
	sb := &mockServiceBus{}
	ps.On("Publish", mock.Anything, "outcomes", mock.Anything).Return("", assert.AnError).Once()
	sb.On("SendMessage", "outcome-queue", mock.Anything).Return(assert.AnError).Once()

	emitter := NewOutcomeEmitter(ps, "outcomes", sb, "outcome-queue")
	// Must not panic or propagate; outcome events are best effort.
	emitter.Emit(context.Background(), sampleEvent())

	ps.AssertExpectations(t)
	sb.AssertExpectations(t)
}

func TestOutcomeEmitterNilReceiver(t *testing.T) {
	var emitter *OutcomeEmitter
	emitter.Emit(context.Background(), sampleEvent())
}
