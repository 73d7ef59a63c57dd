package models

import "gorm.io/gorm"

// ConversationMessage is a persisted chat message inside a tenant-landlord
// conversation about one room. The embedded gorm.Model provides the message
// id and timestamps.
type ConversationMessage struct {
	gorm.Model

	RoomID     string `gorm:"type:uuid;not null;index:idx_conv_msg" json:"room_id"`
	SenderRole string `gorm:"type:text;not null" json:"sender_role"`
	SenderID   string `gorm:"type:uuid;not null;index:idx_conv_msg" json:"sender_id"`
	Content    string `gorm:"type:text;not null" json:"content"`
	// Type is "text" or "typing"; typing notices are relayed, not persisted.
	Type string `gorm:"type:text;not null" json:"type"`
}
