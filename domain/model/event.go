package model

import "time"

// PublishOutcomeEvent is the terminal per-platform outcome fanned out to the
// messaging backends after an attempt finishes.
type PublishOutcomeEvent struct {
	VideoID      string    `json:"video_id"`
	Platform     Platform  `json:"platform"`
	State        string    `json:"state"`
	RemoteID     string    `json:"remote_id,omitempty"`
	RemoteURL    string    `json:"remote_url,omitempty"`
	ErrorKind    string    `json:"error_kind,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
