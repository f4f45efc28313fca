package pubsub

import (
	"context"
	"fmt"

	"cloud.google.com/go/pubsub"
)

// NewPubSub creates the Google Pub/Sub client used for outcome event fan-out.
func NewPubSub(ctx context.Context, projectID string) (*pubsub.Client, error) {
	if projectID == "" {
		return nil, fmt.Errorf("pubsub project id is empty")
	}
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return client, nil
}
