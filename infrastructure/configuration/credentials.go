package configuration

import (
	"os"
	"strings"

	"content-ops/domain/model"
)

// CredentialSource adapts the loaded configuration into the per-platform
// credential provider the publish coordinator consumes. The snapshot is taken
// at construction time so a publish batch sees one consistent bundle even if
// configuration is reloaded underneath.
type CredentialSource struct {
	platforms Platforms
}

func NewCredentialSource() *CredentialSource {
	return &CredentialSource{platforms: C.Platforms}
}

// GetCredentials returns the credential bundle for a platform. ok is false
// when nothing at all is configured for it.
func (s *CredentialSource) GetCredentials(platform model.Platform) (model.PlatformCredentials, bool) {
	switch platform {
	case model.PlatformYouTube:
		yt := s.platforms.YouTube
		if yt.ClientID == "" && yt.AccessToken == "" {
			return model.PlatformCredentials{}, false
		}
		return model.PlatformCredentials{
			ClientID:     yt.ClientID,
			ClientSecret: yt.ClientSecret,
			RedirectURL:  yt.RedirectURI,
			AccessToken:  yt.AccessToken,
			RefreshToken: yt.RefreshToken,
			ChannelID:    yt.ChannelID,
		}, true
	case model.PlatformInstagram:
		ig := s.platforms.Instagram
		if ig.AccessToken == "" && ig.AccountID == "" {
			return model.PlatformCredentials{}, false
		}
		return model.PlatformCredentials{AccessToken: ig.AccessToken, AccountID: ig.AccountID}, true
	case model.PlatformTikTok:
		tt := s.platforms.TikTok
		if tt.AccessToken == "" && tt.AdvertiserID == "" {
			return model.PlatformCredentials{}, false
		}
		return model.PlatformCredentials{AccessToken: tt.AccessToken, AdvertiserID: tt.AdvertiserID}, true
	case model.PlatformReihTV:
		tv := s.platforms.ReihTV
		if tv.APIKey == "" {
			return model.PlatformCredentials{}, false
		}
		return model.PlatformCredentials{APIKey: tv.APIKey, APIURL: tv.APIURL}, true
	}
	return model.PlatformCredentials{}, false
}

// getConfigValue gets value from environment first, then config, then default.
// Placeholder values left in a checked-in config file are ignored.
func getConfigValue(configValue, envKey, defaultValue string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	if configValue != "" && !strings.HasPrefix(configValue, "YOUR_") {
		return configValue
	}
	return defaultValue
}
