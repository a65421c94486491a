package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification is an append-only dashboard message. Ownership is the
// (recipient_kind, recipient_id) pair; this flow never hard-deletes rows.
type Notification struct {
	BaseModel
	RecipientKind AccountKind    `gorm:"type:varchar(20);not null;index:idx_notifications_recipient" json:"recipient_kind"`
	RecipientID   string         `gorm:"type:uuid;not null;index:idx_notifications_recipient" json:"recipient_id"`
	Type          string         `gorm:"not null" json:"type"` // "interview_invitation", "invitation_response", "purchase_confirmed", "welcome"
	Title         string         `gorm:"not null" json:"title"`
	Message       string         `json:"message"`
	Data          datatypes.JSON `gorm:"type:jsonb" json:"data"` // {"invitation_id": "...", "employer_id": "..."}
	IsRead        bool           `gorm:"default:false" json:"is_read"`
	ReadAt        *time.Time     `json:"read_at,omitempty"`
}
