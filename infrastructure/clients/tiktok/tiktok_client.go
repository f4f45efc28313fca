package tiktok

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"content-ops/domain/model"
	"content-ops/domain/repository"
	"content-ops/infrastructure/logger"
)

const (
	defaultAPIURL = "https://open.tiktokapis.com"

	// TikTok caps post titles at 150 characters.
	maxTitleLen = 150
)

// truncateTitle shortens a title to max runes without splitting a multi-byte
// character; the API rejects invalid UTF-8.
func truncateTitle(title string, max int) string {
	runes := []rune(title)
	if len(runes) <= max {
		return title
	}
	return string(runes[:max])
}

// Client publishes videos through the TikTok Content Posting API. The flow is
// init upload, PUT the bytes to the returned upload URL, then poll publish
// status until TikTok finishes processing.
type Client struct {
	baseURL    string
	httpClient *http.Client

	pollInterval time.Duration
	maxPolls     int
}

func NewTikTokClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultAPIURL
	}
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{Timeout: 10 * time.Minute},
		pollInterval: 2 * time.Second,
		maxPolls:     30,
	}
}

func (c *Client) Platform() model.Platform { return model.PlatformTikTok }

type initRequest struct {
	PostInfo   postInfo   `json:"post_info"`
	SourceInfo sourceInfo `json:"source_info"`
}

type postInfo struct {
	Title                 string `json:"title"`
	PrivacyLevel          string `json:"privacy_level"`
	DisableDuet           bool   `json:"disable_duet"`
	DisableComment        bool   `json:"disable_comment"`
	DisableStitch         bool   `json:"disable_stitch"`
	VideoCoverTimestampMs int    `json:"video_cover_timestamp_ms"`
}

type sourceInfo struct {
	Source string `json:"source"`
}

type apiResponse struct {
	Data struct {
		UploadURL  string `json:"upload_url"`
		PublishID  string `json:"publish_id"`
		Status     string `json:"status"`
		VideoID    string `json:"video_id"`
		FailReason string `json:"fail_reason"`
	} `json:"data"`
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) Publish(ctx context.Context, upload repository.PublishUpload, creds model.PlatformCredentials) (*model.PublishResult, error) {
	if missing := creds.MissingFields(model.PlatformTikTok); len(missing) > 0 {
		return nil, model.NewPublishError(model.ErrKindAuth, "tiktok credentials not configured: missing %s", strings.Join(missing, ", "))
	}

	title := truncateTitle(upload.Title, maxTitleLen)

	uploadURL, publishID, err := c.initUpload(ctx, creds, title)
	if err != nil {
		return nil, err
	}

	if err := c.uploadMedia(ctx, uploadURL, upload.MediaURL); err != nil {
		return nil, err
	}

	videoID, err := c.waitForPublish(ctx, creds, publishID)
	if err != nil {
		return nil, err
	}

	logger.GetLogger().WithFields(map[string]interface{}{
		"video_id":   videoID,
		"publish_id": publishID,
	}).Info("tiktok upload complete")

	return &model.PublishResult{
		Success:   true,
		RemoteID:  videoID,
		RemoteURL: fmt.Sprintf("https://www.tiktok.com/video/%s", videoID),
	}, nil
}

func (c *Client) initUpload(ctx context.Context, creds model.PlatformCredentials, title string) (string, string, error) {
	body := initRequest{
		PostInfo: postInfo{
			Title:                 title,
			PrivacyLevel:          "PUBLIC_TO_EVERYONE",
			VideoCoverTimestampMs: 1000,
		},
		SourceInfo: sourceInfo{Source: "FILE_UPLOAD"},
	}
	resp, err := c.postJSON(ctx, creds, c.baseURL+"/v2/post/publish/video/init/", body)
	if err != nil {
		return "", "", err
	}
	if resp.Data.UploadURL == "" || resp.Data.PublishID == "" {
		return "", "", model.NewPublishError(model.ErrKindTransientNetwork, "tiktok returned no upload url")
	}
	return resp.Data.UploadURL, resp.Data.PublishID, nil
}

// uploadMedia streams the resolved media to TikTok's upload endpoint.
func (c *Client) uploadMedia(ctx context.Context, uploadURL, mediaURL string) error {
	mediaReq, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return model.NewPublishError(model.ErrKindMediaUnavailable, "invalid media url: %v", err)
	}
	mediaResp, err := c.httpClient.Do(mediaReq)
	if err != nil {
		return model.NewPublishError(model.ErrKindMediaUnavailable, "fetching media failed: %v", err)
	}
	defer mediaResp.Body.Close()
	if mediaResp.StatusCode < 200 || mediaResp.StatusCode > 299 {
		return model.NewPublishError(model.ErrKindMediaUnavailable, "media returned HTTP %d", mediaResp.StatusCode)
	}

	putReq, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, mediaResp.Body)
	if err != nil {
		return model.NewPublishError(model.ErrKindTransientNetwork, "building upload request failed: %v", err)
	}
	putReq.Header.Set("Content-Type", "video/mp4")
	if mediaResp.ContentLength > 0 {
		putReq.ContentLength = mediaResp.ContentLength
	}

	putResp, err := c.httpClient.Do(putReq)
	if err != nil {
		return model.NewPublishError(model.ErrKindTransientNetwork, "uploading to tiktok failed: %v", err)
	}
	defer putResp.Body.Close()
	if putResp.StatusCode != http.StatusOK && putResp.StatusCode != http.StatusNoContent {
		return model.NewPublishError(model.ErrKindMediaRejected, "tiktok upload returned HTTP %d", putResp.StatusCode)
	}
	return nil
}

func (c *Client) waitForPublish(ctx context.Context, creds model.PlatformCredentials, publishID string) (string, error) {
	statusURL := c.baseURL + "/v2/post/publish/status/fetch/"
	for i := 0; i < c.maxPolls; i++ {
		resp, err := c.postJSON(ctx, creds, statusURL, map[string]string{"publish_id": publishID})
		if err != nil {
			return "", err
		}
		switch resp.Data.Status {
		case "PUBLISHED", "PUBLISH_COMPLETE":
			if resp.Data.VideoID == "" {
				return "", model.NewPublishError(model.ErrKindTransientNetwork, "tiktok reported publish without a video id")
			}
			return resp.Data.VideoID, nil
		case "FAILED":
			reason := resp.Data.FailReason
			if reason == "" {
				reason = "unknown error"
			}
			return "", model.NewPublishError(model.ErrKindMediaRejected, "tiktok rejected the video: %s", reason)
		}
		select {
		case <-ctx.Done():
			return "", model.NewPublishError(model.ErrKindTransientNetwork, "publish cancelled while waiting for tiktok: %v", ctx.Err())
		case <-time.After(c.pollInterval):
		}
	}
	return "", model.NewPublishError(model.ErrKindTransientNetwork, "tiktok upload timed out, video still processing")
}

func (c *Client) postJSON(ctx context.Context, creds model.PlatformCredentials, url string, payload interface{}) (*apiResponse, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, model.NewPublishError(model.ErrKindTransientNetwork, "encoding tiktok request failed: %v", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return nil, model.NewPublishError(model.ErrKindTransientNetwork, "building tiktok request failed: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+creds.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, model.NewPublishError(model.ErrKindTransientNetwork, "tiktok request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, model.NewPublishError(model.ErrKindTransientNetwork, "reading tiktok response failed: %v", err)
	}

	var parsed apiResponse
	_ = json.Unmarshal(body, &parsed)

	if resp.StatusCode != http.StatusOK {
		err := normalizeError(resp.StatusCode, &parsed, body)
		if err.Kind == model.ErrKindRateLimited {
			if secs, convErr := strconv.Atoi(resp.Header.Get("Retry-After")); convErr == nil && secs > 0 {
				err.RetryAfter = time.Duration(secs) * time.Second
			}
		}
		return nil, err
	}
	return &parsed, nil
}

func normalizeError(httpStatus int, parsed *apiResponse, body []byte) *model.PublishError {
	msg := parsed.Error.Message
	if msg == "" {
		msg = string(body)
	}
	switch {
	case httpStatus == http.StatusUnauthorized || httpStatus == http.StatusForbidden:
		return model.NewPublishError(model.ErrKindAuth, "tiktok rejected credentials: %s", msg)
	case httpStatus == http.StatusTooManyRequests:
		return model.NewPublishError(model.ErrKindRateLimited, "tiktok rate limited: %s", msg)
	case httpStatus >= 500:
		return model.NewPublishError(model.ErrKindTransientNetwork, "tiktok unavailable: %s", msg)
	default:
		return model.NewPublishError(model.ErrKindMediaRejected, "tiktok rejected the request: %s", msg)
	}
}
