package repositories

import (
	"errors"
	"time"

	"rtw_backend/internal/models"

	"gorm.io/gorm"
)

// Notification types produced by this flow.
const (
	NotificationTypeWelcome             = "welcome"
	NotificationTypeInterviewInvitation = "interview_invitation"
	NotificationTypeInvitationResponse  = "invitation_response"
	NotificationTypePurchaseConfirmed   = "purchase_confirmed"
	NotificationTypeContactUnlocked     = "contact_unlocked"
)

// NotificationCriteria filters a recipient's notification list.
type NotificationCriteria struct {
	UnreadOnly bool   `form:"unread_only"`
	Type       string `form:"type"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

// NotificationStats summarizes a recipient's notifications for dashboards.
type NotificationStats struct {
	Total       int64            `json:"total"`
	UnreadCount int64            `json:"unread_count"`
	ByType      map[string]int64 `json:"by_type"`
}

// NotificationRepository persists the append-only notification store.
// Nothing in this flow deletes rows.
type NotificationRepository interface {
	Create(db *gorm.DB, notification *models.Notification) error
	CreateBulk(db *gorm.DB, notifications []*models.Notification) error
	FindByID(db *gorm.DB, id string) (*models.Notification, error)
	FindForRecipient(db *gorm.DB, kind models.AccountKind, recipientID string, criteria NotificationCriteria) ([]models.Notification, int64, error)
	MarkAsRead(db *gorm.DB, kind models.AccountKind, recipientID, notificationID string) error
	MarkAllAsRead(db *gorm.DB, kind models.AccountKind, recipientID string) (int64, error)
	GetUnreadCount(db *gorm.DB, kind models.AccountKind, recipientID string) (int64, error)
	GetStats(db *gorm.DB, kind models.AccountKind, recipientID string) (*NotificationStats, error)
}

type NotificationRepositoryImpl struct{}

func NewNotificationRepository() NotificationRepository {
	return &NotificationRepositoryImpl{}
}

func (r *NotificationRepositoryImpl) Create(db *gorm.DB, notification *models.Notification) error {
	return db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) CreateBulk(db *gorm.DB, notifications []*models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return db.Create(notifications).Error
}

func (r *NotificationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Notification, error) {
	var notification models.Notification
	err := db.First(&notification, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &notification, nil
}

func (r *NotificationRepositoryImpl) FindForRecipient(db *gorm.DB, kind models.AccountKind, recipientID string, criteria NotificationCriteria) ([]models.Notification, int64, error) {
	query := db.Model(&models.Notification{}).
		Where("recipient_kind = ? AND recipient_id = ?", kind, recipientID)

	if criteria.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if criteria.Type != "" {
		query = query.Where("type = ?", criteria.Type)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := criteria.Page
	if page <= 0 {
		page = 1
	}
	pageSize := criteria.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	var notifications []models.Notification
	err := query.Order("created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&notifications).Error

	return notifications, total, err
}

// MarkAsRead is scoped by recipient: a notification belonging to someone else
// reports not-found instead of flipping.
func (r *NotificationRepositoryImpl) MarkAsRead(db *gorm.DB, kind models.AccountKind, recipientID, notificationID string) error {
	now := time.Now()
	result := db.Model(&models.Notification{}).
		Where("id = ? AND recipient_kind = ? AND recipient_id = ?", notificationID, kind, recipientID).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish "already read" from "not yours / missing"
		var existing models.Notification
		err := db.Where("id = ? AND recipient_kind = ? AND recipient_id = ?", notificationID, kind, recipientID).
			First(&existing).Error
		if err != nil {
			return ErrNotificationNotFound
		}
	}
	return nil
}

// MarkAllAsRead is idempotent; a second call matches zero rows and still
// succeeds.
func (r *NotificationRepositoryImpl) MarkAllAsRead(db *gorm.DB, kind models.AccountKind, recipientID string) (int64, error) {
	now := time.Now()
	result := db.Model(&models.Notification{}).
		Where("recipient_kind = ? AND recipient_id = ? AND is_read = ?", kind, recipientID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": now,
		})
	return result.RowsAffected, result.Error
}

func (r *NotificationRepositoryImpl) GetUnreadCount(db *gorm.DB, kind models.AccountKind, recipientID string) (int64, error) {
	var count int64
	err := db.Model(&models.Notification{}).
		Where("recipient_kind = ? AND recipient_id = ? AND is_read = ?", kind, recipientID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepositoryImpl) GetStats(db *gorm.DB, kind models.AccountKind, recipientID string) (*NotificationStats, error) {
	stats := &NotificationStats{ByType: make(map[string]int64)}

	base := db.Model(&models.Notification{}).
		Where("recipient_kind = ? AND recipient_id = ?", kind, recipientID)

	if err := base.Session(&gorm.Session{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("is_read = ?", false).Count(&stats.UnreadCount).Error; err != nil {
		return nil, err
	}

	type typeCount struct {
		Type  string
		Count int64
	}
	var rows []typeCount
	err := db.Model(&models.Notification{}).
		Select("type, count(*) as count").
		Where("recipient_kind = ? AND recipient_id = ?", kind, recipientID).
		Group("type").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats.ByType[row.Type] = row.Count
	}

	return stats, nil
}
