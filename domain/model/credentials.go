package model

// PlatformCredentials is the per-platform secret bundle. It is owned by
// configuration, handed to a platform client at call time and never persisted
// by the coordinator. Not every field applies to every platform.
type PlatformCredentials struct {
	ClientID     string `json:"client_id,omitempty"`
	ClientSecret string `json:"client_secret,omitempty"`
	RedirectURL  string `json:"redirect_url,omitempty"`
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	APIKey       string `json:"api_key,omitempty"`
	APIURL       string `json:"api_url,omitempty"`
	AccountID    string `json:"account_id,omitempty"`    // Instagram business account
	AdvertiserID string `json:"advertiser_id,omitempty"` // TikTok
	ChannelID    string `json:"channel_id,omitempty"`    // YouTube
}

// MissingFields reports which required fields are absent for the given
// platform. A non-empty result is a precondition failure: clients must not
// attempt the network with an incomplete bundle.
func (c PlatformCredentials) MissingFields(p Platform) []string {
	var missing []string
	need := func(name, v string) {
		if v == "" {
			missing = append(missing, name)
		}
	}
	switch p {
	case PlatformYouTube:
		need("client_id", c.ClientID)
		need("client_secret", c.ClientSecret)
		need("access_token", c.AccessToken)
		need("refresh_token", c.RefreshToken)
	case PlatformInstagram:
		need("access_token", c.AccessToken)
		need("account_id", c.AccountID)
	case PlatformTikTok:
		need("access_token", c.AccessToken)
		need("advertiser_id", c.AdvertiserID)
	case PlatformReihTV:
		need("api_key", c.APIKey)
	}
	return missing
}
