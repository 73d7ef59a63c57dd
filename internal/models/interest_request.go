package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestDirection tells which party opened the interest request. The two
// directions share one table; the direction decides which message field each
// party may write.
type RequestDirection string

const (
	// DirectionTenantInitiated: the tenant asked the landlord about a bed.
	DirectionTenantInitiated RequestDirection = "tenant_to_landlord"
	// DirectionLandlordInitiated: the landlord invited the tenant.
	DirectionLandlordInitiated RequestDirection = "landlord_to_tenant"
)

// RequestStatus is the lifecycle state of an interest request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
	RequestClosed   RequestStatus = "closed"
)

// Terminal reports whether no further transition is permitted from s.
func (s RequestStatus) Terminal() bool {
	return s == RequestRejected || s == RequestClosed
}

// InterestRequest is the proposal of mutual interest between a tenant and a
// landlord regarding one bed. At most one active request may exist per
// (tenant, bed, direction); terminal requests are never reopened, a new row
// is created instead.
type InterestRequest struct {
	ID         string `gorm:"primaryKey" json:"id"`
	TenantID   string `gorm:"type:uuid;not null;index:idx_req_tenant_bed" json:"tenant_id"`
	LandlordID string `gorm:"type:uuid;not null;index" json:"landlord_id"`
	BedID      string `gorm:"type:uuid;not null;index:idx_req_tenant_bed" json:"bed_id"`
	PropertyID string `gorm:"type:uuid;not null" json:"property_id"`

	Direction RequestDirection `gorm:"type:text;not null;index:idx_req_tenant_bed" json:"direction"`
	Status    RequestStatus    `gorm:"type:text;not null" json:"status"`

	// TenantMessage is writable by the tenant only, LandlordMessage by the
	// landlord only. Which one carries the opening message depends on the
	// direction.
	TenantMessage   string `gorm:"type:text" json:"tenant_message"`
	LandlordMessage string `gorm:"type:text" json:"landlord_message"`

	// ClosedBy records the role ("tenant" or "landlord") that terminated the
	// request, empty while the request is live.
	ClosedBy string `gorm:"type:text" json:"closed_by"`

	IsActive  bool `gorm:"not null;default:true" json:"is_active"`
	IsDeleted bool `gorm:"not null;default:false" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *InterestRequest) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

// Initiator returns the role that opened the request.
func (r *InterestRequest) Initiator() string {
	if r.Direction == DirectionLandlordInitiated {
		return RoleLandlord
	}
	return RoleTenant
}

// Counterparty returns the role expected to answer the request.
func (r *InterestRequest) Counterparty() string {
	if r.Direction == DirectionLandlordInitiated {
		return RoleTenant
	}
	return RoleLandlord
}
