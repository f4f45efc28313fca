package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	youtubeapi "google.golang.org/api/youtube/v3"

	"content-ops/domain/model"
	"content-ops/domain/repository"
	"content-ops/infrastructure/logger"
)

// Client publishes videos to YouTube through the Data API v3. Credentials are
// handed in per call; the API service is built lazily from them so an
// unconfigured platform never touches the network.
type Client struct {
	httpClient *http.Client
}

func NewYouTubeClient() *Client {
	return &Client{httpClient: &http.Client{Timeout: 10 * time.Minute}}
}

func (c *Client) Platform() model.Platform { return model.PlatformYouTube }

func (c *Client) Publish(ctx context.Context, upload repository.PublishUpload, creds model.PlatformCredentials) (*model.PublishResult, error) {
	if missing := creds.MissingFields(model.PlatformYouTube); len(missing) > 0 {
		return nil, model.NewPublishError(model.ErrKindAuth, "youtube credentials not configured: missing %s", strings.Join(missing, ", "))
	}

	service, err := c.newService(ctx, creds)
	if err != nil {
		return nil, normalizeError(err)
	}

	media, err := c.fetchMedia(ctx, upload.MediaURL)
	if err != nil {
		return nil, err
	}
	defer media.Body.Close()

	video := &youtubeapi.Video{
		Snippet: &youtubeapi.VideoSnippet{
			Title:       upload.Title,
			Description: upload.Description,
			Tags:        upload.Tags,
			CategoryId:  "22",
		},
		Status: &youtubeapi.VideoStatus{
			PrivacyStatus: "public",
		},
	}

	call := service.Videos.Insert([]string{"snippet", "status"}, video).Media(media.Body)
	response, err := call.Do()
	if err != nil {
		return nil, normalizeError(err)
	}

	logger.GetLogger().WithFields(map[string]interface{}{
		"video_id": response.Id,
		"title":    upload.Title,
	}).Info("youtube upload complete")

	return &model.PublishResult{
		Success:   true,
		RemoteID:  response.Id,
		RemoteURL: fmt.Sprintf("https://www.youtube.com/watch?v=%s", response.Id),
	}, nil
}

// RefreshToken exchanges the stored refresh token for a fresh access token.
func (c *Client) RefreshToken(ctx context.Context, creds model.PlatformCredentials) (*model.PlatformCredentials, error) {
	if creds.ClientID == "" || creds.ClientSecret == "" || creds.RefreshToken == "" {
		return nil, model.NewPublishError(model.ErrKindAuth, "youtube oauth refresh requires client_id, client_secret and refresh_token")
	}
	cfg := oauthConfig(creds)
	token := &oauth2.Token{
		RefreshToken: creds.RefreshToken,
		Expiry:       time.Now().Add(-time.Minute),
	}
	newToken, err := cfg.TokenSource(ctx, token).Token()
	if err != nil {
		return nil, normalizeError(err)
	}
	refreshed := creds
	refreshed.AccessToken = newToken.AccessToken
	if newToken.RefreshToken != "" {
		refreshed.RefreshToken = newToken.RefreshToken
	}
	return &refreshed, nil
}

// AuthURL builds the consent-screen URL for the OAuth flow.
func (c *Client) AuthURL(creds model.PlatformCredentials, state string) string {
	return oauthConfig(creds).AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades an authorization code for tokens.
func (c *Client) Exchange(ctx context.Context, creds model.PlatformCredentials, code string) (*oauth2.Token, error) {
	token, err := oauthConfig(creds).Exchange(ctx, code)
	if err != nil {
		return nil, normalizeError(err)
	}
	return token, nil
}

func (c *Client) newService(ctx context.Context, creds model.PlatformCredentials) (*youtubeapi.Service, error) {
	token := &oauth2.Token{
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
		TokenType:    "Bearer",
		// Force a refresh on first use so a stale access token self-heals.
		Expiry: time.Now().Add(-time.Minute),
	}
	httpClient := oauthConfig(creds).Client(ctx, token)
	return youtubeapi.NewService(ctx, option.WithHTTPClient(httpClient))
}

func (c *Client) fetchMedia(ctx context.Context, mediaURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
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

func oauthConfig(creds model.PlatformCredentials) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		RedirectURL:  creds.RedirectURL,
		Scopes: []string{
			youtubeapi.YoutubeScope,
			youtubeapi.YoutubeUploadScope,
			youtubeapi.YoutubeForceSslScope,
		},
		Endpoint: google.Endpoint,
	}
}

// normalizeError maps Google API failures onto the publish error taxonomy.
func normalizeError(err error) *model.PublishError {
	var pubErr *model.PublishError
	if errors.As(err, &pubErr) {
		return pubErr
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusUnauthorized:
			return model.NewPublishError(model.ErrKindAuth, "youtube rejected credentials: %s", apiErr.Message)
		case apiErr.Code == http.StatusForbidden && hasReason(apiErr, "quotaExceeded", "rateLimitExceeded", "userRateLimitExceeded"):
			return model.NewPublishError(model.ErrKindRateLimited, "youtube quota exceeded: %s", apiErr.Message)
		case apiErr.Code == http.StatusForbidden:
			return model.NewPublishError(model.ErrKindAuth, "youtube denied access: %s", apiErr.Message)
		case apiErr.Code == http.StatusTooManyRequests:
			return model.NewPublishError(model.ErrKindRateLimited, "youtube rate limited: %s", apiErr.Message)
		case apiErr.Code == http.StatusBadRequest || apiErr.Code == http.StatusUnprocessableEntity:
			return model.NewPublishError(model.ErrKindMediaRejected, "youtube rejected upload: %s", apiErr.Message)
		case apiErr.Code >= 500:
			return model.NewPublishError(model.ErrKindTransientNetwork, "youtube unavailable: %s", apiErr.Message)
		}
	}
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return model.NewPublishError(model.ErrKindAuth, "youtube token refresh failed: %v", retrieveErr)
	}
	return model.NewPublishError(model.ErrKindTransientNetwork, "youtube request failed: %v", err)
}

func hasReason(apiErr *googleapi.Error, reasons ...string) bool {
	for _, item := range apiErr.Errors {
		for _, reason := range reasons {
			if item.Reason == reason {
				return true
			}
		}
	}
	return false
}
