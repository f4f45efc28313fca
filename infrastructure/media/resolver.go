package media

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"content-ops/domain/model"
	"content-ops/domain/repository"
	"content-ops/infrastructure/cache"
	"content-ops/infrastructure/logger"
)

// Resolver turns a stored media ref into a retrievable URL. Refs are either a
// full Cloudinary delivery URL or a storage key relative to the configured
// cloud. Resolution verifies the asset is actually reachable before any
// platform upload starts, so a missing asset fails fast as media_unavailable.
type Resolver struct {
	baseURL    string
	cloudName  string
	httpClient *http.Client
	cache      *cache.MediaCache
}

func NewResolver(baseURL, cloudName string, mediaCache *cache.MediaCache) repository.IMediaResolver {
	if baseURL == "" {
		baseURL = "https://res.cloudinary.com"
	}
	return &Resolver{
		baseURL:   strings.TrimRight(baseURL, "/"),
		cloudName: cloudName,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		cache: mediaCache,
	}
}

func (r *Resolver) Resolve(ctx context.Context, mediaRef string) (string, error) {
	if mediaRef == "" {
		return "", model.NewPublishError(model.ErrKindMediaUnavailable, "video has no media reference")
	}

	if cached := r.cache.Get(ctx, mediaRef); cached != "" {
		return cached, nil
	}

	url := r.buildURL(mediaRef)
	if err := r.checkReachable(ctx, url); err != nil {
		return "", err
	}

	r.cache.Set(ctx, mediaRef, url)
	return url, nil
}

func (r *Resolver) buildURL(mediaRef string) string {
	if strings.HasPrefix(mediaRef, "http://") || strings.HasPrefix(mediaRef, "https://") {
		return mediaRef
	}
	// Storage key; build the Cloudinary video delivery URL.
	return fmt.Sprintf("%s/%s/video/upload/%s", r.baseURL, r.cloudName, strings.TrimLeft(mediaRef, "/"))
}

func (r *Resolver) checkReachable(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return model.NewPublishError(model.ErrKindMediaUnavailable, "invalid media url: %v", err)
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"error": err,
			"url":   url,
		}).Warn("media reachability check failed")
		return model.NewPublishError(model.ErrKindMediaUnavailable, "media not reachable: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.NewPublishError(model.ErrKindMediaUnavailable, "media returned HTTP %d", resp.StatusCode)
	}
	return nil
}
