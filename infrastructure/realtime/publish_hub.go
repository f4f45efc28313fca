package realtime

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"content-ops/domain/model"
)

// PublishStatusEvent is the SSE payload pushed while a publish batch runs, one
// event per platform state change.
type PublishStatusEvent struct {
	Type         string `json:"type"`
	VideoID      string `json:"video_id"`
	Platform     string `json:"platform"`
	State        string `json:"state"`
	RemoteID     string `json:"remote_id,omitempty"`
	RemoteURL    string `json:"remote_url,omitempty"`
	ErrorKind    string `json:"error_kind,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// Hub maintains per-user subscribers listening for publish status events.
type Hub struct {
	mu    sync.RWMutex
	users map[string]map[chan PublishStatusEvent]struct{}
}

func NewPublishHub() *Hub {
	return &Hub{users: make(map[string]map[chan PublishStatusEvent]struct{})}
}

// Serve registers an SSE stream for the authenticated user (user_id set by middleware).
func (h *Hub) Serve(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.Status(http.StatusUnauthorized)
		return
	}
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // disable nginx buffering

	ch := make(chan PublishStatusEvent, 8)
	h.addSubscriber(userID, ch)
	defer h.removeSubscriber(userID, ch)

	// Initial comment to keep connection open
	c.Writer.Write([]byte(":ok\n\n"))
	c.Writer.Flush()

	notify := c.Writer.CloseNotify()
	for {
		select {
		case <-notify:
			return
		case evt := <-ch:
			data, _ := json.Marshal(evt)
			_, _ = c.Writer.Write([]byte("event: publish_status\n"))
			_, _ = c.Writer.Write([]byte("data: "))
			_, _ = c.Writer.Write(data)
			_, _ = c.Writer.Write([]byte("\n\n"))
			c.Writer.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}

func (h *Hub) addSubscriber(userID string, ch chan PublishStatusEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.users[userID] == nil {
		h.users[userID] = make(map[chan PublishStatusEvent]struct{})
	}
	h.users[userID][ch] = struct{}{}
}

func (h *Hub) removeSubscriber(userID string, ch chan PublishStatusEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs := h.users[userID]; subs != nil {
		delete(subs, ch)
		close(ch)
		if len(subs) == 0 {
			delete(h.users, userID)
		}
	}
}

// BroadcastStatus pushes one platform status change to every subscriber of the
// user who started the batch. Non-blocking; slow consumers drop events.
func (h *Hub) BroadcastStatus(userID, videoID string, platform model.Platform, status model.PublishStatus) {
	evt := PublishStatusEvent{
		Type:         "publish_status",
		VideoID:      videoID,
		Platform:     string(platform),
		State:        string(status.State),
		RemoteID:     status.RemoteID,
		RemoteURL:    status.RemoteURL,
		ErrorKind:    string(status.ErrorKind),
		ErrorMessage: status.ErrorMessage,
	}
	h.mu.RLock()
	subs := h.users[userID]
	for ch := range subs {
		select { // non-blocking
		case ch <- evt:
		default:
		}
	}
	h.mu.RUnlock()
}
