package storage

import (
	"context"
	"errors"
	"log"

	"bedmatch/backend/internal/models"

	"gorm.io/gorm"
)

// GetBed returns a bed by id, nil when absent or logically deleted.
func (s *Service) GetBed(ctx context.Context, id string) (*models.Bed, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var bed models.Bed
	err := s.DB.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&bed).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bed, nil
}

func (s *Service) GetPropertyBeds(ctx context.Context, propertyID string) ([]models.Bed, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var beds []models.Bed
	err := s.DB.WithContext(ctx).
		Where("property_id = ? AND is_deleted = ?", propertyID, false).
		Find(&beds).Error
	if err != nil {
		log.Printf("ERROR: failed to list beds for property %s: %v", propertyID, err)
		return nil, err
	}
	return beds, nil
}

// GetPersonalityProfile returns a tenant's profile, nil when the tenant has
// not filled one in yet.
func (s *Service) GetPersonalityProfile(ctx context.Context, tenantID string) (*models.PersonalityProfile, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var profile models.PersonalityProfile
	err := s.DB.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetPreferenceRankings loads a landlord's rankings split into the
// landlord-wide base set and the bed-level overrides for one bed.
func (s *Service) GetPreferenceRankings(ctx context.Context, landlordID, bedID string) (base, bedLevel []models.PreferenceRanking, err error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var rankings []models.PreferenceRanking
	err = s.DB.WithContext(ctx).
		Where("landlord_id = ? AND (bed_id IS NULL OR bed_id = ?)", landlordID, bedID).
		Find(&rankings).Error
	if err != nil {
		log.Printf("ERROR: failed to load rankings for landlord %s bed %s: %v", landlordID, bedID, err)
		return nil, nil, err
	}

	for _, r := range rankings {
		if r.BedID != nil {
			bedLevel = append(bedLevel, r)
		} else {
			base = append(base, r)
		}
	}
	return base, bedLevel, nil
}
