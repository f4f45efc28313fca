package reihtv

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"

	"content-ops/domain/model"
	"content-ops/domain/repository"
	"content-ops/infrastructure/logger"
)

const defaultAPIURL = "https://api.reimaginehome.tv/v1"

// Client publishes videos to Reimaginehome TV via its multipart upload
// endpoint, authenticated by a bearer API key.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewReihTVClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultAPIURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Minute},
	}
}

func (c *Client) Platform() model.Platform { return model.PlatformReihTV }

type uploadResponse struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	Data struct {
		VideoID  string `json:"video_id"`
		VideoURL string `json:"video_url"`
	} `json:"data"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) Publish(ctx context.Context, upload repository.PublishUpload, creds model.PlatformCredentials) (*model.PublishResult, error) {
	if missing := creds.MissingFields(model.PlatformReihTV); len(missing) > 0 {
		return nil, model.NewPublishError(model.ErrKindAuth, "reimaginehome tv credentials not configured: missing %s", strings.Join(missing, ", "))
	}

	baseURL := c.baseURL
	if creds.APIURL != "" {
		baseURL = strings.TrimRight(creds.APIURL, "/")
	}

	body, contentType, err := c.buildMultipart(ctx, upload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/videos/upload", body)
	if err != nil {
		return nil, model.NewPublishError(model.ErrKindTransientNetwork, "building upload request failed: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+creds.APIKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, model.NewPublishError(model.ErrKindTransientNetwork, "reimaginehome tv request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, model.NewPublishError(model.ErrKindTransientNetwork, "reading reimaginehome tv response failed: %v", err)
	}

	var parsed uploadResponse
	_ = json.Unmarshal(raw, &parsed)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, normalizeError(resp.StatusCode, &parsed, raw)
	}

	videoID := parsed.Data.VideoID
	if videoID == "" {
		videoID = parsed.ID
	}
	if videoID == "" {
		return nil, model.NewPublishError(model.ErrKindTransientNetwork, "reimaginehome tv returned no video id")
	}
	videoURL := parsed.Data.VideoURL
	if videoURL == "" {
		videoURL = parsed.URL
	}
	if videoURL == "" {
		videoURL = fmt.Sprintf("https://reimaginehome.tv/video/%s", videoID)
	}

	logger.GetLogger().WithField("video_id", videoID).Info("reimaginehome tv upload complete")

	return &model.PublishResult{
		Success:   true,
		RemoteID:  videoID,
		RemoteURL: videoURL,
	}, nil
}

// buildMultipart streams the resolved media into a multipart body through a pipe
// so large files never sit fully in memory.
func (c *Client) buildMultipart(ctx context.Context, upload repository.PublishUpload) (io.Reader, string, error) {
	media, err := c.fetch(ctx, upload.MediaURL)
	if err != nil {
		return nil, "", err
	}

	var thumb *http.Response
	if upload.ThumbnailURL != "" {
		// Thumbnail is best effort; a missing cover should not block the upload.
		if t, err := c.fetch(ctx, upload.ThumbnailURL); err == nil {
			thumb = t
		} else {
			logger.GetLogger().WithField("error", err).Warn("thumbnail fetch failed, uploading without cover")
		}
	}

	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		defer media.Body.Close()
		if thumb != nil {
			defer thumb.Body.Close()
		}

		fail := func(err error) { pw.CloseWithError(err) }

		if err := writer.WriteField("title", upload.Title); err != nil {
			fail(err)
			return
		}
		if err := writer.WriteField("description", upload.Description); err != nil {
			fail(err)
			return
		}
		if len(upload.Tags) > 0 {
			if err := writer.WriteField("tags", strings.Join(upload.Tags, ",")); err != nil {
				fail(err)
				return
			}
		}

		part, err := writer.CreateFormFile("video", fileName(upload.MediaURL, "video.mp4"))
		if err != nil {
			fail(err)
			return
		}
		if _, err := io.Copy(part, media.Body); err != nil {
			fail(err)
			return
		}

		if thumb != nil {
			part, err := writer.CreateFormFile("thumbnail", fileName(upload.ThumbnailURL, "thumbnail.jpg"))
			if err != nil {
				fail(err)
				return
			}
			if _, err := io.Copy(part, thumb.Body); err != nil {
				fail(err)
				return
			}
		}

		pw.CloseWithError(writer.Close())
	}()

	return pr, writer.FormDataContentType(), nil
}

func (c *Client) fetch(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, model.NewPublishError(model.ErrKindMediaUnavailable, "invalid media url: %v", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, model.NewPublishError(model.ErrKindMediaUnavailable, "fetching media failed: %v", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, model.NewPublishError(model.ErrKindMediaUnavailable, "media returned HTTP %d", resp.StatusCode)
	}
	return resp, nil
}

func fileName(url, fallback string) string {
	name := path.Base(strings.SplitN(url, "?", 2)[0])
	if name == "" || name == "." || name == "/" {
		return fallback
	}
	return name
}

func normalizeError(httpStatus int, parsed *uploadResponse, raw []byte) *model.PublishError {
	msg := parsed.Error.Message
	if msg == "" {
		msg = string(raw)
	}
	switch {
	case httpStatus == http.StatusUnauthorized || httpStatus == http.StatusForbidden:
		return model.NewPublishError(model.ErrKindAuth, "reimaginehome tv rejected api key: %s", msg)
	case httpStatus == http.StatusTooManyRequests:
		return model.NewPublishError(model.ErrKindRateLimited, "reimaginehome tv rate limited: %s", msg)
	case httpStatus >= 500:
		return model.NewPublishError(model.ErrKindTransientNetwork, "reimaginehome tv unavailable: %s", msg)
	default:
		return model.NewPublishError(model.ErrKindMediaRejected, "reimaginehome tv rejected the upload: %s", msg)
	}
}
