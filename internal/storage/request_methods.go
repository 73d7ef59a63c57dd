package storage

import (
	"context"
	"errors"
	"log"

	"bedmatch/backend/internal/models"

	"gorm.io/gorm"
)

// FindActiveInterestRequest returns the live request for a
// (tenant, bed, direction) triple, or nil when none exists.
func (s *Service) FindActiveInterestRequest(ctx context.Context, tenantID, bedID string, direction models.RequestDirection) (*models.InterestRequest, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var req models.InterestRequest
	err := s.DB.WithContext(ctx).
		Where("tenant_id = ? AND bed_id = ? AND direction = ? AND is_active = ? AND is_deleted = ?",
			tenantID, bedID, direction, true, false).
		First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Printf("ERROR: failed to look up active request for tenant %s bed %s: %v", tenantID, bedID, err)
		return nil, err
	}
	return &req, nil
}

// GetInterestRequest returns a request by id, nil when absent.
func (s *Service) GetInterestRequest(ctx context.Context, id string) (*models.InterestRequest, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var req models.InterestRequest
	err := s.DB.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *Service) CreateInterestRequest(ctx context.Context, req *models.InterestRequest) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if err := s.DB.WithContext(ctx).Create(req).Error; err != nil {
		log.Printf("ERROR: failed to create interest request for tenant %s bed %s: %v", req.TenantID, req.BedID, err)
		return err
	}
	return nil
}

// TransitionInterestRequest applies updates only while the row's status is in
// the expected set. Returns false when the guard did not match, which is how
// a lost race with a concurrent actor shows up.
func (s *Service) TransitionInterestRequest(ctx context.Context, id string, from []models.RequestStatus, updates map[string]any) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res := s.DB.WithContext(ctx).Model(&models.InterestRequest{}).
		Where("id = ? AND status IN ? AND is_deleted = ?", id, from, false).
		Updates(updates)
	if res.Error != nil {
		log.Printf("ERROR: failed to transition interest request %s: %v", id, res.Error)
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// GetInterestedTenantIDs lists tenants with a live request on the bed, either
// direction.
func (s *Service) GetInterestedTenantIDs(ctx context.Context, bedID string) ([]string, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var tenantIDs []string
	err := s.DB.WithContext(ctx).Model(&models.InterestRequest{}).
		Distinct("tenant_id").
		Where("bed_id = ? AND is_active = ? AND is_deleted = ?", bedID, true, false).
		Pluck("tenant_id", &tenantIDs).Error
	if err != nil {
		log.Printf("ERROR: failed to list interested tenants for bed %s: %v", bedID, err)
		return nil, err
	}
	return tenantIDs, nil
}
