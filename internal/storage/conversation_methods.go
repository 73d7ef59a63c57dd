package storage

import (
	"context"
	"log"

	"bedmatch/backend/internal/models"
)

func (s *Service) SaveConversationMessage(ctx context.Context, msg *models.ConversationMessage) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if err := s.DB.WithContext(ctx).Create(msg).Error; err != nil {
		log.Printf("ERROR: failed to save message for room %s: %v", msg.RoomID, err)
		return err
	}
	return nil
}

// GetConversationHistory returns a room's messages oldest-first.
func (s *Service) GetConversationHistory(ctx context.Context, roomID string) ([]models.ConversationMessage, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var history []models.ConversationMessage
	err := s.DB.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at asc").
		Find(&history).Error
	if err != nil {
		log.Printf("ERROR: failed to get history for room %s: %v", roomID, err)
		return nil, err
	}
	return history, nil
}
