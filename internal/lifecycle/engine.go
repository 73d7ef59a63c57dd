package lifecycle

import (
	"context"
	"fmt"

	"bedmatch/backend/internal/models"
)

// Store is the slice of the storage layer the engine mutates through. Every
// Transition* call is an atomic conditional update: it succeeds only if the
// row's current status is in the expected set, so two actors racing on the
// same aggregate resolve deterministically.
type Store interface {
	FindActiveInterestRequest(ctx context.Context, tenantID, bedID string, direction models.RequestDirection) (*models.InterestRequest, error)
	GetInterestRequest(ctx context.Context, id string) (*models.InterestRequest, error)
	CreateInterestRequest(ctx context.Context, req *models.InterestRequest) error
	TransitionInterestRequest(ctx context.Context, id string, from []models.RequestStatus, updates map[string]any) (bool, error)

	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
	CreateAppointment(ctx context.Context, appt *models.Appointment) error
	CancelActiveAppointments(ctx context.Context, tenantID, landlordID, bedID string) error
	TransitionAppointment(ctx context.Context, id string, from []models.AppointmentStatus, updates map[string]any) (bool, error)
	IsSlotBooked(ctx context.Context, slotID, excludeAppointmentID string) (bool, error)
}

// Engine owns the interest-request and appointment state machines. It never
// hard-deletes: terminal aggregates stay as rows with IsActive=false.
type Engine struct {
	store Store
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// Actor identifies who performs a transition. Every mutation verifies the
// actor occupies their role's side of the aggregate before touching it.
type Actor struct {
	UserID string
	Role   string
}

func (a Actor) validate() error {
	if a.UserID == "" {
		return fmt.Errorf("%w: actor user id is required", ErrValidation)
	}
	if a.Role != models.RoleTenant && a.Role != models.RoleLandlord {
		return fmt.Errorf("%w: unknown role %q", ErrValidation, a.Role)
	}
	return nil
}

func (a Actor) partyTo(tenantID, landlordID string) bool {
	if a.Role == models.RoleTenant {
		return a.UserID == tenantID
	}
	return a.UserID == landlordID
}

// InterestParams describes a new interest request. Message lands in the
// initiator's message field; the counterparty's field stays theirs to write.
type InterestParams struct {
	TenantID   string
	LandlordID string
	BedID      string
	PropertyID string
	Direction  models.RequestDirection
	Message    string
}

func (p InterestParams) validate() error {
	if p.TenantID == "" || p.LandlordID == "" || p.BedID == "" || p.PropertyID == "" {
		return fmt.Errorf("%w: tenant_id, landlord_id, bed_id and property_id are required", ErrValidation)
	}
	if p.Direction != models.DirectionTenantInitiated && p.Direction != models.DirectionLandlordInitiated {
		return fmt.Errorf("%w: unknown direction %q", ErrValidation, p.Direction)
	}
	return nil
}

// CreateInterestRequest opens a pending request, rejecting a second active
// request for the same (tenant, bed, direction).
func (e *Engine) CreateInterestRequest(ctx context.Context, p InterestParams) (*models.InterestRequest, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	existing, err := e.store.FindActiveInterestRequest(ctx, p.TenantID, p.BedID, p.Direction)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if existing != nil {
		return nil, ErrDuplicateRequest
	}

	req := &models.InterestRequest{
		TenantID:   p.TenantID,
		LandlordID: p.LandlordID,
		BedID:      p.BedID,
		PropertyID: p.PropertyID,
		Direction:  p.Direction,
		Status:     models.RequestPending,
		IsActive:   true,
	}
	if p.Direction == models.DirectionTenantInitiated {
		req.TenantMessage = p.Message
	} else {
		req.LandlordMessage = p.Message
	}

	if err := e.store.CreateInterestRequest(ctx, req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return req, nil
}

// answererOnly restricts a transition to the role the request was addressed
// to; the sender withdraws with a close, not an answer.
func answererOnly(actor Actor) func(*models.InterestRequest) error {
	return func(req *models.InterestRequest) error {
		if actor.Role == req.Initiator() {
			return fmt.Errorf("%w: only the %s may answer this request", ErrValidation, req.Counterparty())
		}
		return nil
	}
}

// AcceptInterestRequest moves a pending request to accepted. The request
// stays active: an accepted conversation can still be closed later.
func (e *Engine) AcceptInterestRequest(ctx context.Context, id string, actor Actor) (*models.InterestRequest, error) {
	return e.transitionRequest(ctx, id, actor, answererOnly(actor),
		[]models.RequestStatus{models.RequestPending},
		map[string]any{"status": models.RequestAccepted})
}

// RejectInterestRequest moves a pending request to the terminal rejected
// state.
func (e *Engine) RejectInterestRequest(ctx context.Context, id string, actor Actor) (*models.InterestRequest, error) {
	return e.transitionRequest(ctx, id, actor, answererOnly(actor),
		[]models.RequestStatus{models.RequestPending},
		map[string]any{"status": models.RequestRejected, "is_active": false})
}

// CloseInterestRequest terminates a request from any non-terminal state and
// records who closed it. Either party may close; the parting message lands
// in the actor's own field.
func (e *Engine) CloseInterestRequest(ctx context.Context, id string, actor Actor, message string) (*models.InterestRequest, error) {
	updates := map[string]any{
		"status":    models.RequestClosed,
		"closed_by": actor.Role,
		"is_active": false,
	}
	if message != "" {
		if actor.Role == models.RoleTenant {
			updates["tenant_message"] = message
		} else {
			updates["landlord_message"] = message
		}
	}
	return e.transitionRequest(ctx, id, actor, nil,
		[]models.RequestStatus{models.RequestPending, models.RequestAccepted}, updates)
}

func (e *Engine) transitionRequest(ctx context.Context, id string, actor Actor, guard func(*models.InterestRequest) error, from []models.RequestStatus, updates map[string]any) (*models.InterestRequest, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: request_id is required", ErrValidation)
	}
	if err := actor.validate(); err != nil {
		return nil, err
	}

	req, err := e.store.GetInterestRequest(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	// An outsider learns nothing: not-a-party reads the same as not found.
	if req == nil || !actor.partyTo(req.TenantID, req.LandlordID) {
		return nil, ErrNotFound
	}
	if guard != nil {
		if err := guard(req); err != nil {
			return nil, err
		}
	}

	// State still resolves through the conditional update: both parties can
	// pass the reads, only one lands the write.
	ok, err := e.store.TransitionInterestRequest(ctx, id, from, updates)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !ok {
		return nil, ErrAlreadyTerminal
	}

	req, err = e.store.GetInterestRequest(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return req, nil
}

// AppointmentParams describes a new booking.
type AppointmentParams struct {
	TenantID    string
	LandlordID  string
	BedID       string
	PropertyID  string
	TimeSlotID  string
	InitiatedBy string
}

func (p AppointmentParams) validate() error {
	if p.TenantID == "" || p.LandlordID == "" || p.BedID == "" || p.TimeSlotID == "" {
		return fmt.Errorf("%w: tenant_id, landlord_id, bed_id and time_slot_id are required", ErrValidation)
	}
	if p.InitiatedBy != models.RoleTenant && p.InitiatedBy != models.RoleLandlord {
		return fmt.Errorf("%w: initiated_by must be tenant or landlord", ErrValidation)
	}
	return nil
}

// CreateAppointment books a slot. Any other active appointment for the same
// (tenant, bed) or (landlord, bed) is cancelled first, so exactly one
// appointment stays live per pair.
func (e *Engine) CreateAppointment(ctx context.Context, p AppointmentParams) (*models.Appointment, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	booked, err := e.store.IsSlotBooked(ctx, p.TimeSlotID, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if booked {
		return nil, ErrSlotTaken
	}

	if err := e.store.CancelActiveAppointments(ctx, p.TenantID, p.LandlordID, p.BedID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	appt := &models.Appointment{
		TenantID:    p.TenantID,
		LandlordID:  p.LandlordID,
		BedID:       p.BedID,
		PropertyID:  p.PropertyID,
		TimeSlotID:  p.TimeSlotID,
		Status:      models.AppointmentPending,
		InitiatedBy: p.InitiatedBy,
		IsActive:    true,
	}
	if err := e.store.CreateAppointment(ctx, appt); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return appt, nil
}

// ConfirmAppointment moves a pending appointment to confirmed.
func (e *Engine) ConfirmAppointment(ctx context.Context, id string, actor Actor) (*models.Appointment, error) {
	return e.transitionAppointment(ctx, id, actor,
		[]models.AppointmentStatus{models.AppointmentPending},
		map[string]any{"status": models.AppointmentConfirmed})
}

// DeclineAppointment moves a pending appointment to the terminal declined
// state.
func (e *Engine) DeclineAppointment(ctx context.Context, id string, actor Actor) (*models.Appointment, error) {
	return e.transitionAppointment(ctx, id, actor,
		[]models.AppointmentStatus{models.AppointmentPending},
		map[string]any{"status": models.AppointmentDeclined, "is_active": false})
}

// CancelAppointment terminates a pending or confirmed appointment.
func (e *Engine) CancelAppointment(ctx context.Context, id string, actor Actor) (*models.Appointment, error) {
	return e.transitionAppointment(ctx, id, actor,
		[]models.AppointmentStatus{models.AppointmentPending, models.AppointmentConfirmed},
		map[string]any{"status": models.AppointmentCancelled, "is_active": false})
}

// RescheduleAppointment re-enters pending with a new time slot, provided the
// slot is still open.
func (e *Engine) RescheduleAppointment(ctx context.Context, id, slotID string, actor Actor) (*models.Appointment, error) {
	if slotID == "" {
		return nil, fmt.Errorf("%w: time_slot_id is required", ErrValidation)
	}

	booked, err := e.store.IsSlotBooked(ctx, slotID, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if booked {
		return nil, ErrSlotTaken
	}

	return e.transitionAppointment(ctx, id, actor,
		[]models.AppointmentStatus{models.AppointmentPending},
		map[string]any{"status": models.AppointmentPending, "time_slot_id": slotID})
}

func (e *Engine) transitionAppointment(ctx context.Context, id string, actor Actor, from []models.AppointmentStatus, updates map[string]any) (*models.Appointment, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: appointment_id is required", ErrValidation)
	}
	if err := actor.validate(); err != nil {
		return nil, err
	}

	appt, err := e.store.GetAppointment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if appt == nil || !actor.partyTo(appt.TenantID, appt.LandlordID) {
		return nil, ErrNotFound
	}

	ok, err := e.store.TransitionAppointment(ctx, id, from, updates)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !ok {
		return nil, ErrAlreadyTerminal
	}

	appt, err = e.store.GetAppointment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return appt, nil
}
