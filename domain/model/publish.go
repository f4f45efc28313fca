package model

import (
	"fmt"
	"strings"
	"time"
)

// Platform identifies an external publishing destination.
type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformReihTV    Platform = "reimaginehome_tv"
)

// AllPlatforms is the fixed set of supported publishing destinations.
var AllPlatforms = []Platform{PlatformYouTube, PlatformInstagram, PlatformTikTok, PlatformReihTV}

// ParsePlatform normalizes a user-supplied platform name.
func ParsePlatform(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "youtube":
		return PlatformYouTube, nil
	case "instagram":
		return PlatformInstagram, nil
	case "tiktok":
		return PlatformTikTok, nil
	case "reimaginehome_tv", "reimaginehome tv", "reihtv", "reih tv", "reih":
		return PlatformReihTV, nil
	}
	return "", fmt.Errorf("unsupported platform: %s", s)
}

// PublishState is the lifecycle state of one video on one platform.
type PublishState string

const (
	PublishStateNotPublished PublishState = "not_published"
	PublishStatePending      PublishState = "pending"
	PublishStatePublished    PublishState = "published"
	PublishStateFailed       PublishState = "failed"
)

// ErrorKind classifies a publish failure the way the coordinator and UI consume it.
type ErrorKind string

const (
	ErrKindAuth             ErrorKind = "auth_error"
	ErrKindRateLimited      ErrorKind = "rate_limited"
	ErrKindMediaRejected    ErrorKind = "media_rejected"
	ErrKindTransientNetwork ErrorKind = "transient_network_error"
	ErrKindMediaUnavailable ErrorKind = "media_unavailable"
	ErrKindNotFound         ErrorKind = "not_found"
)

// PublishError is the normalized error every platform client returns. RetryAfter is
// only set when the platform supplied a throttling delay; the core never retries on
// its own, the caller decides.
type PublishError struct {
	Kind       ErrorKind
	Message    string
	RetryAfter time.Duration
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewPublishError builds a PublishError with a formatted message.
func NewPublishError(kind ErrorKind, format string, args ...interface{}) *PublishError {
	return &PublishError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// PublishStatus is the persisted per-platform state of a video.
type PublishStatus struct {
	State        PublishState `json:"state" bson:"state"`
	RemoteID     string       `json:"remote_id,omitempty" bson:"remote_id,omitempty"`
	RemoteURL    string       `json:"remote_url,omitempty" bson:"remote_url,omitempty"`
	ErrorKind    ErrorKind    `json:"error_kind,omitempty" bson:"error_kind,omitempty"`
	ErrorMessage string       `json:"error_message,omitempty" bson:"error_message,omitempty"`
	UpdatedAt    time.Time    `json:"updated_at" bson:"updated_at"`
}

// Validate enforces the status invariants: published implies a remote identifier,
// failed implies an error message.
func (s PublishStatus) Validate() error {
	switch s.State {
	case PublishStatePublished:
		if s.RemoteID == "" {
			return fmt.Errorf("published status requires a remote id")
		}
	case PublishStateFailed:
		if s.ErrorMessage == "" {
			return fmt.Errorf("failed status requires an error message")
		}
	case PublishStateNotPublished, PublishStatePending:
	default:
		return fmt.Errorf("unknown publish state: %s", s.State)
	}
	return nil
}

// PublishResult is the per-platform outcome returned to the caller of a publish batch.
type PublishResult struct {
	Success      bool          `json:"success"`
	RemoteID     string        `json:"remote_id,omitempty"`
	RemoteURL    string        `json:"remote_url,omitempty"`
	ErrorKind    ErrorKind     `json:"error_kind,omitempty"`
	ErrorMessage string        `json:"error_message,omitempty"`
	RetryAfter   time.Duration `json:"retry_after,omitempty"`
}

// ResultFromError converts a normalized client error into a failed PublishResult.
func ResultFromError(err error) PublishResult {
	if pe, ok := err.(*PublishError); ok {
		return PublishResult{ErrorKind: pe.Kind, ErrorMessage: pe.Message, RetryAfter: pe.RetryAfter}
	}
	return PublishResult{ErrorKind: ErrKindTransientNetwork, ErrorMessage: err.Error()}
}

// Status converts the result into the PublishStatus the coordinator persists.
func (r PublishResult) Status(now time.Time) PublishStatus {
	if r.Success {
		return PublishStatus{State: PublishStatePublished, RemoteID: r.RemoteID, RemoteURL: r.RemoteURL, UpdatedAt: now}
	}
	msg := r.ErrorMessage
	if msg == "" {
		msg = "publish failed"
	}
	return PublishStatus{State: PublishStateFailed, ErrorKind: r.ErrorKind, ErrorMessage: msg, UpdatedAt: now}
}
