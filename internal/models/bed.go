package models

// Bed is the rentable unit the interest and appointment flows revolve around.
// Bed CRUD lives in the listings service; the realtime subsystem reads beds
// to resolve the property/landlord a request refers to.
type Bed struct {
	ID          string `gorm:"primaryKey" json:"id"`
	RoomID      string `gorm:"type:uuid;not null;index" json:"room_id"`
	PropertyID  string `gorm:"type:uuid;not null;index" json:"property_id"`
	LandlordID  string `gorm:"type:uuid;not null;index" json:"landlord_id"`
	IsAvailable bool   `gorm:"not null;default:true" json:"is_available"`
	IsDeleted   bool   `gorm:"not null;default:false" json:"-"`
}
