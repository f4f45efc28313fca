package model

import "time"

// VideoRecord is a video in the content library together with its per-platform
// publish state. MediaRef is either a full Cloudinary URL or a storage key the
// media resolver can turn into one.
type VideoRecord struct {
	ID           string                     `json:"id" bson:"_id"`
	Title        string                     `json:"title" bson:"title"`
	Description  string                     `json:"description" bson:"description"`
	Tags         []string                   `json:"tags,omitempty" bson:"tags,omitempty"`
	MediaRef     string                     `json:"media_ref" bson:"media_ref"`
	ThumbnailRef string                     `json:"thumbnail_ref,omitempty" bson:"thumbnail_ref,omitempty"`
	ScriptID     string                     `json:"script_id,omitempty" bson:"script_id,omitempty"`
	Platforms    map[Platform]PublishStatus `json:"platforms" bson:"platforms"`
	CreatedAt    time.Time                  `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time                  `json:"updated_at" bson:"updated_at"`
}

// StatusFor returns the platform status, defaulting to not_published for
// platforms that never had an attempt.
func (v *VideoRecord) StatusFor(p Platform) PublishStatus {
	if v.Platforms != nil {
		if st, ok := v.Platforms[p]; ok {
			return st
		}
	}
	return PublishStatus{State: PublishStateNotPublished}
}

// Publication is one append-only audit row for a publish attempt, mirrored into
// SQL so the dashboard can show history across videos.
type Publication struct {
	ID           int64     `json:"id"`
	VideoID      string    `json:"video_id"`
	Platform     Platform  `json:"platform"`
	Status       string    `json:"status"` // published | failed
	RemoteID     *string   `json:"remote_id,omitempty"`
	PostURL      *string   `json:"post_url,omitempty"`
	ErrorMessage *string   `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
