package instagram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-querystring/query"

	"content-ops/domain/model"
	"content-ops/domain/repository"
	"content-ops/infrastructure/logger"
)

const defaultGraphURL = "https://graph.facebook.com/v18.0"

// Client publishes Reels through the Instagram Graph API. Publishing is a
// two-step flow: create a media container, wait for processing, then publish
// the container against the business account.
type Client struct {
	baseURL    string
	httpClient *http.Client

	pollInterval time.Duration
	maxPolls     int
}

func NewInstagramClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultGraphURL
	}
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{Timeout: 60 * time.Second},
		pollInterval: 2 * time.Second,
		maxPolls:     30,
	}
}

func (c *Client) Platform() model.Platform { return model.PlatformInstagram }

type containerParams struct {
	MediaType   string `url:"media_type"`
	VideoURL    string `url:"video_url"`
	Caption     string `url:"caption,omitempty"`
	CoverURL    string `url:"cover_url,omitempty"`
	AccessToken string `url:"access_token"`
}

type publishParams struct {
	CreationID  string `url:"creation_id"`
	AccessToken string `url:"access_token"`
}

type graphResponse struct {
	ID         string `json:"id"`
	StatusCode string `json:"status_code"`
	Error      *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

func (c *Client) Publish(ctx context.Context, upload repository.PublishUpload, creds model.PlatformCredentials) (*model.PublishResult, error) {
	if missing := creds.MissingFields(model.PlatformInstagram); len(missing) > 0 {
		return nil, model.NewPublishError(model.ErrKindAuth, "instagram credentials not configured: missing %s", strings.Join(missing, ", "))
	}

	caption := upload.Title
	if upload.Description != "" {
		caption = caption + "\n\n" + upload.Description
	}

	containerID, err := c.createContainer(ctx, creds, containerParams{
		MediaType:   "REELS",
		VideoURL:    upload.MediaURL,
		Caption:     caption,
		CoverURL:    upload.ThumbnailURL,
		AccessToken: creds.AccessToken,
	})
	if err != nil {
		return nil, err
	}

	if err := c.waitForContainer(ctx, creds, containerID); err != nil {
		return nil, err
	}

	mediaID, err := c.publishContainer(ctx, creds, containerID)
	if err != nil {
		return nil, err
	}

	logger.GetLogger().WithFields(map[string]interface{}{
		"media_id":     mediaID,
		"container_id": containerID,
	}).Info("instagram reel published")

	return &model.PublishResult{
		Success:   true,
		RemoteID:  mediaID,
		RemoteURL: fmt.Sprintf("https://www.instagram.com/reel/%s/", mediaID),
	}, nil
}

func (c *Client) createContainer(ctx context.Context, creds model.PlatformCredentials, params containerParams) (string, error) {
	values, err := query.Values(params)
	if err != nil {
		return "", model.NewPublishError(model.ErrKindTransientNetwork, "encoding container params failed: %v", err)
	}
	url := fmt.Sprintf("%s/%s/media?%s", c.baseURL, creds.AccountID, values.Encode())
	resp, err := c.post(ctx, url)
	if err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", model.NewPublishError(model.ErrKindMediaRejected, "instagram returned no container id")
	}
	return resp.ID, nil
}

func (c *Client) waitForContainer(ctx context.Context, creds model.PlatformCredentials, containerID string) error {
	url := fmt.Sprintf("%s/%s?fields=status_code&access_token=%s", c.baseURL, containerID, creds.AccessToken)
	for i := 0; i < c.maxPolls; i++ {
		resp, err := c.get(ctx, url)
		if err != nil {
			return err
		}
		switch resp.StatusCode {
		case "FINISHED":
			return nil
		case "ERROR":
			return model.NewPublishError(model.ErrKindMediaRejected, "instagram could not process the media container")
		}
		select {
		case <-ctx.Done():
			return model.NewPublishError(model.ErrKindTransientNetwork, "publish cancelled while waiting for container: %v", ctx.Err())
		case <-time.After(c.pollInterval):
		}
	}
	return model.NewPublishError(model.ErrKindTransientNetwork, "instagram container %s still processing after %d checks", containerID, c.maxPolls)
}

func (c *Client) publishContainer(ctx context.Context, creds model.PlatformCredentials, containerID string) (string, error) {
	values, err := query.Values(publishParams{CreationID: containerID, AccessToken: creds.AccessToken})
	if err != nil {
		return "", model.NewPublishError(model.ErrKindTransientNetwork, "encoding publish params failed: %v", err)
	}
	url := fmt.Sprintf("%s/%s/media_publish?%s", c.baseURL, creds.AccountID, values.Encode())
	resp, err := c.post(ctx, url)
	if err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", model.NewPublishError(model.ErrKindMediaRejected, "instagram returned no media id on publish")
	}
	return resp.ID, nil
}

func (c *Client) post(ctx context.Context, url string) (*graphResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return nil, model.NewPublishError(model.ErrKindTransientNetwork, "building request failed: %v", err)
	}
	return c.do(req)
}

func (c *Client) get(ctx context.Context, url string) (*graphResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, model.NewPublishError(model.ErrKindTransientNetwork, "building request failed: %v", err)
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) (*graphResponse, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, model.NewPublishError(model.ErrKindTransientNetwork, "instagram request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, model.NewPublishError(model.ErrKindTransientNetwork, "reading instagram response failed: %v", err)
	}

	var parsed graphResponse
	if err := json.Unmarshal(body, &parsed); err != nil && resp.StatusCode < 300 {
		return nil, model.NewPublishError(model.ErrKindTransientNetwork, "unexpected instagram response: %s", string(body))
	}

	if resp.StatusCode >= 300 || parsed.Error != nil {
		return nil, normalizeGraphError(resp.StatusCode, &parsed, body, retryAfterHeader(resp))
	}
	return &parsed, nil
}

func retryAfterHeader(resp *http.Response) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return 0
}

// Graph API error codes: 190 invalid token, 4/17/32/613 throttling.
func normalizeGraphError(httpStatus int, parsed *graphResponse, body []byte, retryAfter time.Duration) *model.PublishError {
	msg := string(body)
	code := 0
	if parsed.Error != nil {
		msg = parsed.Error.Message
		code = parsed.Error.Code
	}
	switch {
	case httpStatus == http.StatusUnauthorized || code == 190 || code == 102:
		return model.NewPublishError(model.ErrKindAuth, "instagram rejected credentials: %s", msg)
	case httpStatus == http.StatusTooManyRequests || code == 4 || code == 17 || code == 32 || code == 613:
		err := model.NewPublishError(model.ErrKindRateLimited, "instagram rate limited: %s", msg)
		err.RetryAfter = retryAfter
		return err
	case httpStatus == http.StatusForbidden:
		return model.NewPublishError(model.ErrKindAuth, "instagram denied access: %s", msg)
	case httpStatus >= 500:
		return model.NewPublishError(model.ErrKindTransientNetwork, "instagram unavailable: %s", msg)
	default:
		return model.NewPublishError(model.ErrKindMediaRejected, "instagram rejected the media: %s", msg)
	}
}
