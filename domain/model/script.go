package model

import "time"

// ScriptStatus tracks a generated script through the video workflow.
const (
	ScriptStatusDraft     = "draft"
	ScriptStatusApproved  = "approved"
	ScriptStatusVideoMade = "video_made"
)

// Script is the metadata of one AI-generated video script derived from a blog
// article. The script body itself lives with the generation pipeline; this
// table only carries what publishing and the library pages need.
type Script struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	BlogURL      string    `json:"blog_url" gorm:"column:blog_url;size:2048"`
	ScriptNumber int       `json:"script_number" gorm:"column:script_number"`
	Title        string    `json:"title" gorm:"size:512"`
	Keywords     string    `json:"keywords" gorm:"size:1024"`
	Status       string    `json:"status" gorm:"size:32;index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName keeps the legacy table name used by the dashboard.
func (Script) TableName() string { return "scripts" }
