package gateway_test

import (
	"context"

	"bedmatch/backend/internal/models"
	"bedmatch/backend/internal/notify"
	"bedmatch/backend/internal/storage"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify mock of the storage.Storage interface.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) FindActiveInterestRequest(ctx context.Context, tenantID, bedID string, direction models.RequestDirection) (*models.InterestRequest, error) {
	args := m.Called(ctx, tenantID, bedID, direction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InterestRequest), args.Error(1)
}

func (m *MockStorage) GetInterestRequest(ctx context.Context, id string) (*models.InterestRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InterestRequest), args.Error(1)
}

func (m *MockStorage) CreateInterestRequest(ctx context.Context, req *models.InterestRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockStorage) TransitionInterestRequest(ctx context.Context, id string, from []models.RequestStatus, updates map[string]any) (bool, error) {
	args := m.Called(ctx, id, from, updates)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockStorage) CreateAppointment(ctx context.Context, appt *models.Appointment) error {
	args := m.Called(ctx, appt)
	return args.Error(0)
}

func (m *MockStorage) CancelActiveAppointments(ctx context.Context, tenantID, landlordID, bedID string) error {
	args := m.Called(ctx, tenantID, landlordID, bedID)
	return args.Error(0)
}

func (m *MockStorage) TransitionAppointment(ctx context.Context, id string, from []models.AppointmentStatus, updates map[string]any) (bool, error) {
	args := m.Called(ctx, id, from, updates)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) IsSlotBooked(ctx context.Context, slotID, excludeAppointmentID string) (bool, error) {
	args := m.Called(ctx, slotID, excludeAppointmentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) ListAppointments(ctx context.Context, filter storage.AppointmentFilter) ([]models.Appointment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockStorage) GetBed(ctx context.Context, id string) (*models.Bed, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bed), args.Error(1)
}

func (m *MockStorage) GetPropertyBeds(ctx context.Context, propertyID string) ([]models.Bed, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Bed), args.Error(1)
}

func (m *MockStorage) GetInterestedTenantIDs(ctx context.Context, bedID string) ([]string, error) {
	args := m.Called(ctx, bedID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStorage) GetPersonalityProfile(ctx context.Context, tenantID string) (*models.PersonalityProfile, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PersonalityProfile), args.Error(1)
}

func (m *MockStorage) GetPreferenceRankings(ctx context.Context, landlordID, bedID string) ([]models.PreferenceRanking, []models.PreferenceRanking, error) {
	args := m.Called(ctx, landlordID, bedID)
	base, _ := args.Get(0).([]models.PreferenceRanking)
	bedLevel, _ := args.Get(1).([]models.PreferenceRanking)
	return base, bedLevel, args.Error(2)
}

func (m *MockStorage) IsNotificationEnabled(ctx context.Context, userID, notificationType string) (bool, error) {
	args := m.Called(ctx, userID, notificationType)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) SaveNotificationSetting(ctx context.Context, setting *models.NotificationSetting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}

func (m *MockStorage) SaveConversationMessage(ctx context.Context, msg *models.ConversationMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockStorage) GetConversationHistory(ctx context.Context, roomID string) ([]models.ConversationMessage, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ConversationMessage), args.Error(1)
}

func (m *MockStorage) PublishEvent(ctx context.Context, event models.GroupEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockDispatcher records Dispatch fan-outs.
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, event models.OutboundMessage, targets []notify.Target, heading, notificationType string) {
	m.Called(ctx, event, targets, heading, notificationType)
}
