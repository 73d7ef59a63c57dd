package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification type codes; push payloads carry one of these and users can
// switch each off individually.
const (
	NotifInterestRequest   = "interest_request"
	NotifInterestAccepted  = "interest_accepted"
	NotifInterestRejected  = "interest_rejected"
	NotifInterestClosed    = "interest_closed"
	NotifAppointmentBooked = "appointment_booked"
	NotifAppointmentUpdate = "appointment_update"
	NotifChatMessage       = "chat_message"
)

// AllNotificationTypes lists every code a setting row may carry.
var AllNotificationTypes = []string{
	NotifInterestRequest,
	NotifInterestAccepted,
	NotifInterestRejected,
	NotifInterestClosed,
	NotifAppointmentBooked,
	NotifAppointmentUpdate,
	NotifChatMessage,
}

// KnownNotificationType reports whether t is one of the fixed codes.
func KnownNotificationType(t string) bool {
	for _, known := range AllNotificationTypes {
		if known == t {
			return true
		}
	}
	return false
}

// NotificationSetting is a per-user, per-type enabled flag. A missing row
// means enabled.
type NotificationSetting struct {
	ID               string    `gorm:"primaryKey" json:"id"`
	UserID           string    `gorm:"type:uuid;not null;uniqueIndex:idx_notif_user_type" json:"user_id"`
	NotificationType string    `gorm:"type:text;not null;uniqueIndex:idx_notif_user_type" json:"notification_type"`
	Enabled          bool      `gorm:"not null;default:true" json:"enabled"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (s *NotificationSetting) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return
}

// PushPayload is the body handed to the external push provider. Headings and
// contents are language-keyed; Data rides along to the mobile app unchanged.
type PushPayload struct {
	Headings map[string]string `json:"headings"`
	Contents map[string]string `json:"contents"`
	Data     PushData          `json:"data"`
}

// PushData carries the transition result plus the notification type code the
// app filters on.
type PushData struct {
	Request any    `json:"request"`
	Type    string `json:"type"`
}
