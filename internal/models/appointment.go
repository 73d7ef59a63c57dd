package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentStatus is the lifecycle state of a viewing appointment.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentDeclined  AppointmentStatus = "declined"
)

// Terminal reports whether no further transition is permitted from s.
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentCancelled || s == AppointmentDeclined
}

// Roles used across requests, appointments and presence groups.
const (
	RoleTenant   = "tenant"
	RoleLandlord = "landlord"
)

// Appointment is a viewing appointment for a bed at an agreed time slot.
// Creating a new appointment for a (tenant, bed) pair cancels any other
// active appointment for that pair, so exactly one stays live.
type Appointment struct {
	ID         string `gorm:"primaryKey" json:"id"`
	TenantID   string `gorm:"type:uuid;not null;index:idx_appt_tenant_bed" json:"tenant_id"`
	LandlordID string `gorm:"type:uuid;not null;index" json:"landlord_id"`
	BedID      string `gorm:"type:uuid;not null;index:idx_appt_tenant_bed" json:"bed_id"`
	PropertyID string `gorm:"type:uuid;not null" json:"property_id"`
	TimeSlotID string `gorm:"type:uuid;not null;index" json:"time_slot_id"`

	Status AppointmentStatus `gorm:"type:text;not null" json:"status"`

	// InitiatedBy records the role that booked the slot.
	InitiatedBy string `gorm:"type:text;not null" json:"initiated_by"`

	IsActive  bool `gorm:"not null;default:true" json:"is_active"`
	IsDeleted bool `gorm:"not null;default:false" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}

// TimeSlot is a bookable viewing window published by a landlord. The slot
// catalogue itself is managed elsewhere; the realtime subsystem only checks
// openness when booking or rescheduling.
type TimeSlot struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	PropertyID string    `gorm:"type:uuid;not null;index" json:"property_id"`
	LandlordID string    `gorm:"type:uuid;not null" json:"landlord_id"`
	StartAt    time.Time `gorm:"not null" json:"start_at"`
	EndAt      time.Time `gorm:"not null" json:"end_at"`
	IsDeleted  bool      `gorm:"not null;default:false" json:"-"`
}
