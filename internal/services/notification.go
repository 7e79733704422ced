package services

import (
	"context"
	"strings"

	"asha-backend/internal/models"
	"asha-backend/internal/store"
	"asha-backend/pkg/utils"
)

type NotificationService struct {
	store store.Store
}

func NewNotificationService(st store.Store) *NotificationService {
	return &NotificationService{store: st}
}

func (s *NotificationService) Unread(ctx context.Context, actor Actor) ([]models.Notification, error) {
	notifications, err := s.store.ListUnreadNotifications(ctx, actor.UserID)
	if err != nil {
		return nil, storeError(err, "Notifications not found")
	}
	return notifications, nil
}

// MarkRead only marks notifications addressed to the actor.
func (s *NotificationService) MarkRead(ctx context.Context, actor Actor, notificationID uint64) error {
	if notificationID == 0 {
		return utils.ValidationError("Invalid notification id")
	}
	return storeError(s.store.MarkNotificationRead(ctx, notificationID, actor.UserID), "Notification not found")
}

// SaveToken replaces the actor's push token.
func (s *NotificationService) SaveToken(ctx context.Context, actor Actor, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return utils.ValidationError("fcm_token is required")
	}
	return storeError(s.store.UpsertDeviceToken(ctx, actor.UserID, token), "User not found")
}
