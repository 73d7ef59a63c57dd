package storage

import (
	"context"
	"encoding/json"
	"time"

	"bedmatch/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// EventChannel is the Redis pub/sub channel every gateway instance listens
// on; events carry their target presence group in the payload.
const EventChannel = "gateway:events"

// queryTimeout bounds every store call so a dead database fails a request
// instead of hanging the connection.
const queryTimeout = 5 * time.Second

// AppointmentFilter narrows appointment-history queries.
type AppointmentFilter struct {
	TenantID   string
	LandlordID string
	BedID      string
	Status     models.AppointmentStatus
	From       *time.Time
}

type Storage interface {
	// Interest requests
	FindActiveInterestRequest(ctx context.Context, tenantID, bedID string, direction models.RequestDirection) (*models.InterestRequest, error)
	GetInterestRequest(ctx context.Context, id string) (*models.InterestRequest, error)
	CreateInterestRequest(ctx context.Context, req *models.InterestRequest) error
	TransitionInterestRequest(ctx context.Context, id string, from []models.RequestStatus, updates map[string]any) (bool, error)

	// Appointments
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
	CreateAppointment(ctx context.Context, appt *models.Appointment) error
	CancelActiveAppointments(ctx context.Context, tenantID, landlordID, bedID string) error
	TransitionAppointment(ctx context.Context, id string, from []models.AppointmentStatus, updates map[string]any) (bool, error)
	IsSlotBooked(ctx context.Context, slotID, excludeAppointmentID string) (bool, error)
	ListAppointments(ctx context.Context, filter AppointmentFilter) ([]models.Appointment, error)

	// Beds and compatibility inputs
	GetBed(ctx context.Context, id string) (*models.Bed, error)
	GetPropertyBeds(ctx context.Context, propertyID string) ([]models.Bed, error)
	GetInterestedTenantIDs(ctx context.Context, bedID string) ([]string, error)
	GetPersonalityProfile(ctx context.Context, tenantID string) (*models.PersonalityProfile, error)
	GetPreferenceRankings(ctx context.Context, landlordID, bedID string) (base, bedLevel []models.PreferenceRanking, err error)

	// Notification preferences
	IsNotificationEnabled(ctx context.Context, userID, notificationType string) (bool, error)
	SaveNotificationSetting(ctx context.Context, setting *models.NotificationSetting) error

	// Conversations
	SaveConversationMessage(ctx context.Context, msg *models.ConversationMessage) error
	GetConversationHistory(ctx context.Context, roomID string) ([]models.ConversationMessage, error)

	// Cross-instance fan-out
	PublishEvent(ctx context.Context, event models.GroupEvent) error
}

// Service backs Storage with PostgreSQL for aggregates and Redis for
// pub/sub fan-out.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{DB: db, Redis: rdb}
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, queryTimeout)
}

// PublishEvent pushes a group event onto the shared Redis channel so every
// gateway instance can deliver it to its local members.
func (s *Service) PublishEvent(ctx context.Context, event models.GroupEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	return s.Redis.Publish(ctx, EventChannel, payload).Err()
}

// SubscribeEvents opens the pub/sub subscription the gateway hub consumes.
func (s *Service) SubscribeEvents(ctx context.Context) *redis.PubSub {
	return s.Redis.Subscribe(ctx, EventChannel)
}
