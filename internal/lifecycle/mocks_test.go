package lifecycle_test

import (
	"context"

	"bedmatch/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockStore is a testify mock of the lifecycle.Store interface.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) FindActiveInterestRequest(ctx context.Context, tenantID, bedID string, direction models.RequestDirection) (*models.InterestRequest, error) {
	args := m.Called(ctx, tenantID, bedID, direction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InterestRequest), args.Error(1)
}

func (m *MockStore) GetInterestRequest(ctx context.Context, id string) (*models.InterestRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InterestRequest), args.Error(1)
}

func (m *MockStore) CreateInterestRequest(ctx context.Context, req *models.InterestRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockStore) TransitionInterestRequest(ctx context.Context, id string, from []models.RequestStatus, updates map[string]any) (bool, error) {
	args := m.Called(ctx, id, from, updates)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockStore) CreateAppointment(ctx context.Context, appt *models.Appointment) error {
	args := m.Called(ctx, appt)
	return args.Error(0)
}

func (m *MockStore) CancelActiveAppointments(ctx context.Context, tenantID, landlordID, bedID string) error {
	args := m.Called(ctx, tenantID, landlordID, bedID)
	return args.Error(0)
}

func (m *MockStore) TransitionAppointment(ctx context.Context, id string, from []models.AppointmentStatus, updates map[string]any) (bool, error) {
	args := m.Called(ctx, id, from, updates)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) IsSlotBooked(ctx context.Context, slotID, excludeAppointmentID string) (bool, error) {
	args := m.Called(ctx, slotID, excludeAppointmentID)
	return args.Bool(0), args.Error(1)
}
