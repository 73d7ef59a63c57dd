package storage

import (
	"context"
	"errors"
	"log"

	"bedmatch/backend/internal/models"

	"gorm.io/gorm"
)

// GetAppointment returns an appointment by id, nil when absent.
func (s *Service) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var appt models.Appointment
	err := s.DB.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&appt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (s *Service) CreateAppointment(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if err := s.DB.WithContext(ctx).Create(appt).Error; err != nil {
		log.Printf("ERROR: failed to create appointment for tenant %s bed %s: %v", appt.TenantID, appt.BedID, err)
		return err
	}
	return nil
}

// CancelActiveAppointments ends every live appointment touching the bed for
// either party, keeping the single-live-appointment invariant before a new
// booking is inserted.
func (s *Service) CancelActiveAppointments(ctx context.Context, tenantID, landlordID, bedID string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	err := s.DB.WithContext(ctx).Model(&models.Appointment{}).
		Where("bed_id = ? AND is_active = ? AND (tenant_id = ? OR landlord_id = ?)",
			bedID, true, tenantID, landlordID).
		Updates(map[string]any{
			"status":    models.AppointmentCancelled,
			"is_active": false,
		}).Error
	if err != nil {
		log.Printf("ERROR: failed to cancel active appointments for bed %s: %v", bedID, err)
	}
	return err
}

// TransitionAppointment is the appointment twin of
// TransitionInterestRequest: a conditional update guarded by the current
// status.
func (s *Service) TransitionAppointment(ctx context.Context, id string, from []models.AppointmentStatus, updates map[string]any) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res := s.DB.WithContext(ctx).Model(&models.Appointment{}).
		Where("id = ? AND status IN ? AND is_deleted = ?", id, from, false).
		Updates(updates)
	if res.Error != nil {
		log.Printf("ERROR: failed to transition appointment %s: %v", id, res.Error)
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// IsSlotBooked reports whether another live appointment already occupies the
// slot. excludeAppointmentID skips the appointment being rescheduled.
func (s *Service) IsSlotBooked(ctx context.Context, slotID, excludeAppointmentID string) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	q := s.DB.WithContext(ctx).Model(&models.Appointment{}).
		Where("time_slot_id = ? AND is_active = ?", slotID, true)
	if excludeAppointmentID != "" {
		q = q.Where("id <> ?", excludeAppointmentID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		log.Printf("ERROR: failed to check slot %s: %v", slotID, err)
		return false, err
	}
	return count > 0, nil
}

// ListAppointments returns appointment history newest-first, narrowed by the
// filter's set fields.
func (s *Service) ListAppointments(ctx context.Context, filter AppointmentFilter) ([]models.Appointment, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	q := s.DB.WithContext(ctx).Model(&models.Appointment{}).
		Where("is_deleted = ?", false)
	if filter.TenantID != "" {
		q = q.Where("tenant_id = ?", filter.TenantID)
	}
	if filter.LandlordID != "" {
		q = q.Where("landlord_id = ?", filter.LandlordID)
	}
	if filter.BedID != "" {
		q = q.Where("bed_id = ?", filter.BedID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		q = q.Where("created_at >= ?", *filter.From)
	}

	var appts []models.Appointment
	if err := q.Order("created_at desc").Find(&appts).Error; err != nil {
		log.Printf("ERROR: failed to list appointments: %v", err)
		return nil, err
	}
	return appts, nil
}
