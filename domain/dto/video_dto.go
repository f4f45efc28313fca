package dto

// CreateVideoRequest registers an uploaded video in the library. MediaRef is
// the Cloudinary URL (or storage key) the upload step produced.
type CreateVideoRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description"`
	Tags         []string `json:"tags"`
	MediaRef     string   `json:"media_ref" binding:"required"`
	ThumbnailRef string   `json:"thumbnail_ref"`
	ScriptID     string   `json:"script_id"`
}

// VideoListRequest carries paging parameters for the library listing.
type VideoListRequest struct {
	Limit  int64 `form:"limit"`
	Offset int64 `form:"offset"`
}
