package repository

import (
	"context"

	"content-ops/domain/model"
)

// PublishUpload is the generic publish request every platform client accepts.
// MediaURL must already be resolved to a retrievable location.
type PublishUpload struct {
	MediaURL     string
	ThumbnailURL string
	Title        string
	Description  string
	Tags         []string
}

// IPlatformClient is the uniform contract each platform integration implements.
// Clients validate credentials before touching the network, normalize every
// failure into *model.PublishError and never mutate the video record; that is
// the coordinator's job.
type IPlatformClient interface {
	Platform() model.Platform
	Publish(ctx context.Context, upload PublishUpload, creds model.PlatformCredentials) (*model.PublishResult, error)
}

// ITokenRefresher is the optional capability the YouTube client exposes for the
// OAuth flow; other platforms don't need it.
type ITokenRefresher interface {
	RefreshToken(ctx context.Context, creds model.PlatformCredentials) (*model.PlatformCredentials, error)
}

// IMediaResolver turns a stored media reference into a URL that platform upload
// APIs can retrieve.
type IMediaResolver interface {
	Resolve(ctx context.Context, mediaRef string) (string, error)
}

// ICredentialSource exposes per-platform credentials; ok is false when the
// platform is not configured, which clients surface as an auth precondition
// failure.
type ICredentialSource interface {
	GetCredentials(platform model.Platform) (model.PlatformCredentials, bool)
}
