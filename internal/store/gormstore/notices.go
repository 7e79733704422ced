package gormstore

import (
	"context"
	"time"

	"asha-backend/internal/models"
	"asha-backend/internal/store"

	"gorm.io/gorm/clause"
)

func (s *Store) CreateNotice(ctx context.Context, notice *models.Notice) error {
	return translate(s.db.WithContext(ctx).Create(notice).Error)
}

func (s *Store) InsertNotification(ctx context.Context, notification *models.Notification) error {
	return translate(s.db.WithContext(ctx).Create(notification).Error)
}

func (s *Store) GetRecipient(ctx context.Context, userID uint64) (models.Recipient, error) {
	var rows []models.Recipient
	err := s.db.WithContext(ctx).
		Table("users AS u").
		Select("u.user_id AS user_id, COALESCE(t.fcm_token, '') AS fcm_token").
		Joins("LEFT JOIN device_tokens t ON t.user_id = u.user_id").
		Where("u.user_id = ?", userID).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return models.Recipient{}, translate(err)
	}
	if len(rows) == 0 {
		return models.Recipient{}, store.ErrNotFound
	}
	return rows[0], nil
}

// ListAshaRecipientsByVillage returns ASHA workers (not supervisors) of a village.
func (s *Store) ListAshaRecipientsByVillage(ctx context.Context, village string) ([]models.Recipient, error) {
	rows := []models.Recipient{}
	err := s.db.WithContext(ctx).
		Table("asha_workers AS a").
		Select("a.user_id AS user_id, COALESCE(t.fcm_token, '') AS fcm_token").
		Joins("LEFT JOIN device_tokens t ON t.user_id = a.user_id").
		Where("a.village = ? AND a.supervisor_id IS NOT NULL", village).
		Order("a.user_id ASC").
		Scan(&rows).Error
	return rows, translate(err)
}

func (s *Store) ListSupervisorRecipientsByVillage(ctx context.Context, village string) ([]models.Recipient, error) {
	rows := []models.Recipient{}
	err := s.db.WithContext(ctx).
		Table("supervisor_details AS d").
		Select("d.user_id AS user_id, COALESCE(t.fcm_token, '') AS fcm_token").
		Joins("JOIN users u ON u.user_id = d.user_id").
		Joins("LEFT JOIN device_tokens t ON t.user_id = d.user_id").
		Where("d.village = ? AND u.user_role = ?", village, models.RoleSupervisor).
		Order("d.user_id ASC").
		Scan(&rows).Error
	return rows, translate(err)
}

func (s *Store) ListAshaRecipientsBySupervisor(ctx context.Context, supervisorAshaID uint64) ([]models.Recipient, error) {
	rows := []models.Recipient{}
	err := s.db.WithContext(ctx).
		Table("asha_workers AS a").
		Select("a.user_id AS user_id, COALESCE(t.fcm_token, '') AS fcm_token").
		Joins("LEFT JOIN device_tokens t ON t.user_id = a.user_id").
		Where("a.supervisor_id = ?", supervisorAshaID).
		Order("a.user_id ASC").
		Scan(&rows).Error
	return rows, translate(err)
}

func (s *Store) ListPatientRecipientsByAsha(ctx context.Context, ashaID uint64) ([]models.Recipient, error) {
	rows := []models.Recipient{}
	err := s.db.WithContext(ctx).
		Table("patient AS p").
		Select("p.user_id AS user_id, COALESCE(t.fcm_token, '') AS fcm_token").
		Joins("LEFT JOIN device_tokens t ON t.user_id = p.user_id").
		Where("p.registered_asha_id = ?", ashaID).
		Order("p.user_id ASC").
		Scan(&rows).Error
	return rows, translate(err)
}

func (s *Store) ListUnreadNotifications(ctx context.Context, userID uint64) ([]models.Notification, error) {
	notifications := []models.Notification{}
	err := s.db.WithContext(ctx).
		Where("receiver_id = ? AND is_read = ?", userID, false).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, translate(err)
}

// MarkNotificationRead only touches rows addressed to userID.
func (s *Store) MarkNotificationRead(ctx context.Context, notificationID, userID uint64) error {
	res := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND receiver_id = ?", notificationID, userID).
		Update("is_read", true)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Notification{}).
			Where("id = ? AND receiver_id = ?", notificationID, userID).
			Count(&count).Error; err != nil {
			return translate(err)
		}
		// already read is fine, unknown or foreign id is not
		if count == 0 {
			return store.ErrNotFound
		}
	}
	return nil
}

func (s *Store) UpsertDeviceToken(ctx context.Context, userID uint64, token string) error {
	row := models.DeviceToken{UserID: userID, FCMToken: token, UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"fcm_token", "updated_at"}),
	}).Create(&row).Error
	return translate(err)
}
