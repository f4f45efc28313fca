package repository

import (
	"context"
	"errors"

	"content-ops/domain/model"
)

// ErrVideoNotFound is returned when a video id does not resolve to a record.
var ErrVideoNotFound = errors.New("video not found")

// IVideo is the video record store consumed by the publish coordinator and the
// library pages. UpdatePlatformStatus is a single-record atomic update; the
// coordinator relies on nothing stronger.
type IVideo interface {
	GetVideo(ctx context.Context, id string) (*model.VideoRecord, error)
	CreateVideo(ctx context.Context, video *model.VideoRecord) error
	ListVideos(ctx context.Context, limit, offset int64) ([]*model.VideoRecord, error)
	DeleteVideo(ctx context.Context, id string) error
	UpdatePlatformStatus(ctx context.Context, id string, platform model.Platform, status model.PublishStatus) error
}
