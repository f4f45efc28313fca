package http

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"content-ops/domain/model"
	"content-ops/domain/repository"
	"content-ops/infrastructure/clients/youtube"
)

// IYouTubeAuthHandler exposes the OAuth flow that mints the YouTube tokens the
// publish pipeline runs on.
type IYouTubeAuthHandler interface {
	GetAuthURL(ctx *gin.Context)
	HandleCallback(ctx *gin.Context)
	Status(ctx *gin.Context)
}

type YouTubeAuthHandler struct {
	client      *youtube.Client
	credentials repository.ICredentialSource
}

func NewYouTubeAuthHandler(client *youtube.Client, credentials repository.ICredentialSource) IYouTubeAuthHandler {
	return &YouTubeAuthHandler{client: client, credentials: credentials}
}

// GetAuthURL handles GET /auth/youtube
func (h *YouTubeAuthHandler) GetAuthURL(ctx *gin.Context) {
	creds, ok := h.credentials.GetCredentials(model.PlatformYouTube)
	if !ok || creds.ClientID == "" || creds.ClientSecret == "" {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "youtube oauth client not configured"})
		return
	}

	state := generateRandomState()
	ctx.SetCookie("oauth_state", state, 600, "/", "", false, true)

	ctx.JSON(http.StatusOK, gin.H{
		"auth_url": h.client.AuthURL(creds, state),
	})
}

// HandleCallback handles GET /auth/youtube/callback
func (h *YouTubeAuthHandler) HandleCallback(ctx *gin.Context) {
	if errorParam := ctx.Query("error"); errorParam != "" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":       fmt.Sprintf("OAuth error: %s", errorParam),
			"description": ctx.Query("error_description"),
		})
		return
	}

	state := ctx.Query("state")
	if state == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":  "State parameter missing",
			"action": "Visit /auth/youtube to start over",
		})
		return
	}
	if cookieState, err := ctx.Cookie("oauth_state"); err != nil || cookieState != state {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "State parameter mismatch"})
		return
	}

	code := ctx.Query("code")
	if code == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Authorization code not found"})
		return
	}

	creds, ok := h.credentials.GetCredentials(model.PlatformYouTube)
	if !ok {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "youtube oauth client not configured"})
		return
	}

	token, err := h.client.Exchange(ctx.Request.Context(), creds, code)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to exchange code for token",
			"message": err.Error(),
		})
		return
	}

	ctx.SetCookie("oauth_state", "", -1, "/", "", false, true)

	ctx.JSON(http.StatusOK, gin.H{
		"success":       true,
		"access_token":  token.AccessToken,
		"refresh_token": token.RefreshToken,
		"token_type":    token.TokenType,
		"expiry":        token.Expiry,
		"message":       "Authentication successful. Store these tokens in the environment before restarting.",
	})
}

// Status handles GET /api/youtube/oauth/status
func (h *YouTubeAuthHandler) Status(ctx *gin.Context) {
	creds, ok := h.credentials.GetCredentials(model.PlatformYouTube)
	configured := ok && len(creds.MissingFields(model.PlatformYouTube)) == 0
	ctx.JSON(http.StatusOK, gin.H{"configured": configured})
}

// generateRandomState generates a random state parameter for OAuth2
func generateRandomState() string {
	b := make([]byte, 32)
	rand.Read(b)
	return base64.StdEncoding.EncodeToString(b)
}
