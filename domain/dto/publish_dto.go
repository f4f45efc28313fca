package dto

import "content-ops/domain/model"

// PublishRequest is the body of POST /api/videos/:videoId/publish.
type PublishRequest struct {
	Platforms []string `json:"platforms" binding:"required"`
}

// PublishResponse maps each requested platform to its outcome.
type PublishResponse struct {
	VideoID string                                  `json:"video_id"`
	Results map[model.Platform]model.PublishResult `json:"results"`
}

// PublishStatusResponse is the per-platform state of one video for the UI.
type PublishStatusResponse struct {
	VideoID   string                                  `json:"video_id"`
	Platforms map[model.Platform]model.PublishStatus `json:"platforms"`
}

// PlatformCapability describes one platform entry of GET /api/publish/platforms.
type PlatformCapability struct {
	Platform   model.Platform `json:"platform"`
	Configured bool           `json:"configured"`
}
