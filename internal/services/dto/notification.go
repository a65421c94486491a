package dto

import (
	"encoding/json"
	"time"

	"rtw_backend/internal/models"
)

// ---------------- Requests ----------------

type ListNotificationsQuery struct {
	Pagination
	UnreadOnly bool   `form:"unread_only"`
	Type       string `form:"type" validate:"omitempty,max=50"`
}

// ---------------- Responses ----------------

type NotificationDTO struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	IsRead    bool                   `json:"is_read"`
	ReadAt    *time.Time             `json:"read_at,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []NotificationDTO `json:"notifications"`
	UnreadCount   int64             `json:"unread_count"`
	Meta          ListMeta          `json:"meta"`
}

type MarkAllReadResponse struct {
	Success bool  `json:"success"`
	Marked  int64 `json:"marked"`
}

func NotificationDTOFromModel(n *models.Notification) NotificationDTO {
	out := NotificationDTO{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
	if len(n.Data) > 0 {
		var data map[string]interface{}
		if err := json.Unmarshal(n.Data, &data); err == nil {
			out.Data = data
		}
	}
	return out
}
