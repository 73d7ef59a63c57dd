package storage

import (
	"context"
	"errors"
	"log"

	"bedmatch/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IsNotificationEnabled checks a user's setting for one notification type.
// A missing row means enabled.
func (s *Service) IsNotificationEnabled(ctx context.Context, userID, notificationType string) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var setting models.NotificationSetting
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND notification_type = ?", userID, notificationType).
		First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, nil
	}
	if err != nil {
		return true, err
	}
	return setting.Enabled, nil
}

// SaveNotificationSetting upserts the per-user per-type flag.
func (s *Service) SaveNotificationSetting(ctx context.Context, setting *models.NotificationSetting) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "notification_type"}},
		DoUpdates: clause.AssignmentColumns([]string{"enabled", "updated_at"}),
	}).Create(setting).Error
	if err != nil {
		log.Printf("ERROR: failed to save notification setting for user %s: %v", setting.UserID, err)
	}
	return err
}
