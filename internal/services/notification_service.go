package services

import (
	"context"
	"encoding/json"

	"rtw_backend/internal/logger"
	"rtw_backend/internal/models"
	"rtw_backend/internal/repositories"
	"rtw_backend/internal/services/dto"
	"rtw_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type NotificationService interface {
	List(ctx context.Context, db *gorm.DB, kind models.AccountKind, recipientID string, q *dto.ListNotificationsQuery) (*dto.NotificationListResponse, error)
	MarkRead(ctx context.Context, db *gorm.DB, kind models.AccountKind, recipientID, notificationID string) error
	MarkAllRead(ctx context.Context, db *gorm.DB, kind models.AccountKind, recipientID string) (int64, error)
	UnreadCount(ctx context.Context, db *gorm.DB, kind models.AccountKind, recipientID string) (int64, error)
	Stats(ctx context.Context, db *gorm.DB, kind models.AccountKind, recipientID string) (*repositories.NotificationStats, error)

	// Notify writes a dashboard message for another service's side effect.
	// Callers treat failures as best-effort and log them.
	Notify(ctx context.Context, db *gorm.DB, kind models.AccountKind, recipientID, notifType, title, message string, data map[string]interface{}) error
}

type NotificationServiceImpl struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &NotificationServiceImpl{notificationRepo: notificationRepo}
}

func (s *NotificationServiceImpl) List(ctx context.Context, db *gorm.DB, kind models.AccountKind, recipientID string, q *dto.ListNotificationsQuery) (*dto.NotificationListResponse, error) {
	q.Normalize()

	criteria := repositories.NotificationCriteria{
		UnreadOnly: q.UnreadOnly,
		Type:       q.Type,
		Page:       q.Page,
		PageSize:   q.PageSize,
	}

	notifications, total, err := s.notificationRepo.FindForRecipient(db, kind, recipientID, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	unread, err := s.notificationRepo.GetUnreadCount(db, kind, recipientID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.NotificationDTO, 0, len(notifications))
	for i := range notifications {
		out = append(out, dto.NotificationDTOFromModel(&notifications[i]))
	}

	return &dto.NotificationListResponse{
		Notifications: out,
		UnreadCount:   unread,
		Meta: dto.ListMeta{
			Total:    total,
			Page:     q.Page,
			PageSize: q.PageSize,
		},
	}, nil
}

func (s *NotificationServiceImpl) MarkRead(ctx context.Context, db *gorm.DB, kind models.AccountKind, recipientID, notificationID string) error {
	err := s.notificationRepo.MarkAsRead(db, kind, recipientID, notificationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotificationNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *NotificationServiceImpl) MarkAllRead(ctx context.Context, db *gorm.DB, kind models.AccountKind, recipientID string) (int64, error) {
	marked, err := s.notificationRepo.MarkAllAsRead(db, kind, recipientID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	if marked > 0 {
		logger.CtxDebug(ctx, "notifications marked read", "count", marked)
	}
	return marked, nil
}

func (s *NotificationServiceImpl) UnreadCount(ctx context.Context, db *gorm.DB, kind models.AccountKind, recipientID string) (int64, error) {
	count, err := s.notificationRepo.GetUnreadCount(db, kind, recipientID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

func (s *NotificationServiceImpl) Stats(ctx context.Context, db *gorm.DB, kind models.AccountKind, recipientID string) (*repositories.NotificationStats, error) {
	stats, err := s.notificationRepo.GetStats(db, kind, recipientID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return stats, nil
}

func (s *NotificationServiceImpl) Notify(ctx context.Context, db *gorm.DB, kind models.AccountKind, recipientID, notifType, title, message string, data map[string]interface{}) error {
	notification := &models.Notification{
		RecipientKind: kind,
		RecipientID:   recipientID,
		Type:          notifType,
		Title:         title,
		Message:       message,
	}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return err
		}
		notification.Data = raw
	}
	return s.notificationRepo.Create(db, notification)
}
