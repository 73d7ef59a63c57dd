package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Attribute is one of the known personality attributes tenants answer and
// landlords rank. The set is a fixed enum, validated at the model boundary.
type Attribute string

const (
	AttrOccupation   Attribute = "occupation"
	AttrCountry      Attribute = "country"
	AttrReligion     Attribute = "religion"
	AttrIncomeRange  Attribute = "income_range"
	AttrSmoking      Attribute = "smoking_habit"
	AttrDrinking     Attribute = "drinking_habit"
	AttrSocializing  Attribute = "socializing_habit"
	AttrRelationship Attribute = "relationship_status"
	AttrFoodHabit    Attribute = "food_habit"
	AttrPetLover     Attribute = "pet_lover"
)

// AllAttributes is the canonical attribute order. The scorer's denominator is
// the length of this list, so every attribute counts even when unanswered.
var AllAttributes = []Attribute{
	AttrOccupation,
	AttrCountry,
	AttrReligion,
	AttrIncomeRange,
	AttrSmoking,
	AttrDrinking,
	AttrSocializing,
	AttrRelationship,
	AttrFoodHabit,
	AttrPetLover,
}

// KnownAttribute reports whether a is one of the fixed attributes.
func KnownAttribute(a Attribute) bool {
	for _, known := range AllAttributes {
		if known == a {
			return true
		}
	}
	return false
}

// PersonalityProfile holds the tenant's chosen option id per attribute.
// A nil column means the tenant has not answered that attribute.
// The profile is written by the tenant-onboarding service; this subsystem
// only reads it.
type PersonalityProfile struct {
	ID       string `gorm:"primaryKey" json:"id"`
	TenantID string `gorm:"type:uuid;uniqueIndex;not null" json:"tenant_id"`

	Occupation         *int64 `json:"occupation"`
	Country            *int64 `json:"country"`
	Religion           *int64 `json:"religion"`
	IncomeRange        *int64 `json:"income_range"`
	SmokingHabit       *int64 `json:"smoking_habit"`
	DrinkingHabit      *int64 `json:"drinking_habit"`
	SocializingHabit   *int64 `json:"socializing_habit"`
	RelationshipStatus *int64 `json:"relationship_status"`
	FoodHabit          *int64 `json:"food_habit"`
	PetLover           *int64 `json:"pet_lover"`
}

func (p *PersonalityProfile) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

// Choice returns the tenant's chosen option id for attr, if answered.
func (p *PersonalityProfile) Choice(attr Attribute) (int64, bool) {
	var v *int64
	switch attr {
	case AttrOccupation:
		v = p.Occupation
	case AttrCountry:
		v = p.Country
	case AttrReligion:
		v = p.Religion
	case AttrIncomeRange:
		v = p.IncomeRange
	case AttrSmoking:
		v = p.SmokingHabit
	case AttrDrinking:
		v = p.DrinkingHabit
	case AttrSocializing:
		v = p.SocializingHabit
	case AttrRelationship:
		v = p.RelationshipStatus
	case AttrFoodHabit:
		v = p.FoodHabit
	case AttrPetLover:
		v = p.PetLover
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

// PreferenceRanking is a landlord's ordered list of acceptable option ids for
// one attribute. BedID nil means the landlord-wide base preference; a
// bed-level row overrides the base for that bed. OptionIDs is ordered by
// priority, rank 1 first.
type PreferenceRanking struct {
	ID         string        `gorm:"primaryKey" json:"id"`
	LandlordID string        `gorm:"type:uuid;not null;index" json:"landlord_id"`
	BedID      *string       `gorm:"type:uuid;index" json:"bed_id"`
	Attribute  Attribute     `gorm:"type:text;not null" json:"attribute"`
	OptionIDs  pq.Int64Array `gorm:"type:bigint[]" json:"option_ids"`
}

func (r *PreferenceRanking) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}
