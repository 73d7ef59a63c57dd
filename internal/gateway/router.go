package gateway

import (
	"context"
	"errors"
	"log"

	"bedmatch/backend/internal/lifecycle"
	"bedmatch/backend/internal/models"
	"bedmatch/backend/internal/notify"
	"bedmatch/backend/internal/presence"
	"bedmatch/backend/internal/storage"
)

// Dispatcher is the notify side the router fans results out through.
type Dispatcher interface {
	Dispatch(ctx context.Context, event models.OutboundMessage, targets []notify.Target, heading, notificationType string)
}

// Joiner subscribes a connection to a presence group.
type Joiner interface {
	Join(ctx context.Context, client Client, group string) error
}

type handlerFunc func(ctx context.Context, client Client, msg models.InboundMessage) models.OutboundMessage

// Router maps inbound actions onto the lifecycle engine and scorer, and
// routes results to the sender plus, through the dispatcher, to everyone
// else who should hear about them.
type Router struct {
	store      storage.Storage
	engine     *lifecycle.Engine
	dispatcher Dispatcher
	joiner     Joiner

	handlers map[string]handlerFunc
}

func NewRouter(store storage.Storage, engine *lifecycle.Engine, dispatcher Dispatcher, joiner Joiner) *Router {
	r := &Router{
		store:      store,
		engine:     engine,
		dispatcher: dispatcher,
		joiner:     joiner,
	}
	// Role-suffixed actions bind to the role named in the suffix; a tenant
	// answers landlord-sent interest and vice versa.
	r.handlers = map[string]handlerFunc{
		// tenant-side interest flow
		"send_interest_request_to_landlord":        requires(models.RoleTenant, r.sendInterestToLandlord),
		"cancel_interest_request_sent_to_landlord": requires(models.RoleTenant, r.cancelOwnInterest),
		"accept_landlord_interest":                 requires(models.RoleTenant, r.acceptInterest),
		"reject_landlord_interest":                 requires(models.RoleTenant, r.rejectInterest),
		"close_conversation_request_from_tenant":   requires(models.RoleTenant, r.closeConversation),

		// landlord-side interest flow
		"send_interest_request_to_tenant":          requires(models.RoleLandlord, r.sendInterestToTenant),
		"cancel_interest_request_sent_to_tenant":   requires(models.RoleLandlord, r.cancelOwnInterest),
		"accept_tenant_interest":                   requires(models.RoleLandlord, r.acceptInterest),
		"reject_tenant_interest":                   requires(models.RoleLandlord, r.rejectInterest),
		"close_conversation_request_from_landlord": requires(models.RoleLandlord, r.closeConversation),

		// appointments
		"book_appointment_slot":              r.bookAppointment,
		"confirm_appointment_by_tenant":      requires(models.RoleTenant, r.confirmAppointment),
		"confirm_appointment_by_landlord":    requires(models.RoleLandlord, r.confirmAppointment),
		"cancel_appointment_by_tenant":       requires(models.RoleTenant, r.cancelAppointment),
		"cancel_appointment_by_landlord":     requires(models.RoleLandlord, r.cancelAppointment),
		"decline_appointment_by_tenant":      requires(models.RoleTenant, r.declineAppointment),
		"decline_appointment_by_landlord":    requires(models.RoleLandlord, r.declineAppointment),
		"reschedule_appointment_by_tenant":   requires(models.RoleTenant, r.rescheduleAppointment),
		"reschedule_appointment_by_landlord": requires(models.RoleLandlord, r.rescheduleAppointment),

		// chat
		"send_message": r.sendChatMessage,
		"typing":       r.relayTyping,
		"load_history": r.loadHistory,

		// settings and dashboards
		"update_notification_setting": r.updateNotificationSetting,
		"watch_property":              requires(models.RoleLandlord, r.watchProperty),
	}
	return r
}

// HandleMessage produces exactly one reply for one inbound message. The
// connection survives handler errors.
func (r *Router) HandleMessage(ctx context.Context, client Client, msg models.InboundMessage) models.OutboundMessage {
	if msg.Action == "" {
		return models.Error("", "action is required")
	}
	handler, ok := r.handlers[msg.Action]
	if !ok {
		return models.Error(msg.Action, "unknown action")
	}

	// Every identified connection sits in its personal group, so lifecycle
	// events initiated by the other party reach it here.
	r.join(ctx, client, presence.UserGroup(client.Role(), client.UserID()))

	return handler(ctx, client, msg)
}

func (r *Router) join(ctx context.Context, client Client, group string) {
	if err := r.joiner.Join(ctx, client, group); err != nil {
		log.Printf("WARNING: join %s failed for %s: %v", group, client.ChannelID(), err)
	}
}

// errorReply maps the engine taxonomy onto the wire envelope. Store
// failures surface generically, never silently dropped.
func errorReply(action string, err error) models.OutboundMessage {
	switch {
	case errors.Is(err, lifecycle.ErrValidation):
		return models.Error(action, err.Error())
	case errors.Is(err, lifecycle.ErrNotFound):
		return models.Error(action, "no matching active request")
	case errors.Is(err, lifecycle.ErrDuplicateRequest):
		return models.Error(action, "an active request already exists for this bed")
	case errors.Is(err, lifecycle.ErrAlreadyTerminal):
		return models.Error(action, "request was already finalised")
	case errors.Is(err, lifecycle.ErrSlotTaken):
		return models.Error(action, "time slot is no longer available")
	default:
		log.Printf("ERROR: %s failed: %v", action, err)
		return models.Error(action, "temporary failure, please retry")
	}
}

// requires rejects the message before the handler runs when the connection's
// role does not match the action's.
func requires(role string, h handlerFunc) handlerFunc {
	return func(ctx context.Context, client Client, msg models.InboundMessage) models.OutboundMessage {
		if client.Role() != role {
			return models.Error(msg.Action, "action is not available to the "+client.Role()+" role")
		}
		return h(ctx, client, msg)
	}
}

func actorOf(client Client) lifecycle.Actor {
	return lifecycle.Actor{UserID: client.UserID(), Role: client.Role()}
}

type interestParams struct {
	BedID    string `json:"bed_id"`
	TenantID string `json:"tenant_id"`
	Message  string `json:"message"`
}

func (r *Router) sendInterestToLandlord(ctx context.Context, client Client, msg models.InboundMessage) models.OutboundMessage {
	var p interestParams
	if err := msg.Decode(&p); err != nil || p.BedID == "" {
		return models.Error(msg.Action, "bed_id is required")
	}

	bed, err := r.store.GetBed(ctx, p.BedID)
	if err != nil {
		return errorReply(msg.Action, err)
	}
	if bed == nil {
		return models.Error(msg.Action, "bed not found")
	}

	r.join(ctx, client, presence.BedGroup(bed.PropertyID, bed.ID))

	req, err := r.engine.CreateInterestRequest(ctx, lifecycle.InterestParams{
		TenantID:   client.UserID(),
		LandlordID: bed.LandlordID,
		BedID:      bed.ID,
		PropertyID: bed.PropertyID,
		Direction:  models.DirectionTenantInitiated,
		Message:    p.Message,
	})
	if err != nil {
		return errorReply(msg.Action, err)
	}

	event := models.Success(msg.Action, req)
	r.dispatcher.Dispatch(ctx, event, []notify.Target{
		{Group: presence.UserGroup(models.RoleLandlord, req.LandlordID), UserID: req.LandlordID},
		{Group: presence.PropertyGroup(req.PropertyID)},
	}, "New interest request", models.NotifInterestRequest)
	return event
}

func (r *Router) sendInterestToTenant(ctx context.Context, client Client, msg models.InboundMessage) models.OutboundMessage {
	var p interestParams
	if err := msg.Decode(&p); err != nil || p.BedID == "" || p.TenantID == "" {
		return models.Error(msg.Action, "bed_id and tenant_id are required")
	}

	bed, err := r.store.GetBed(ctx, p.BedID)
	if err != nil {
		return errorReply(msg.Action, err)
	}
	if bed == nil {
		return models.Error(msg.Action, "bed not found")
	}
	if bed.LandlordID != client.UserID() {
		return models.Error(msg.Action, "bed does not belong to this landlord")
	}

	r.join(ctx, client, presence.PropertyGroup(bed.PropertyID))

	req, err := r.engine.CreateInterestRequest(ctx, lifecycle.InterestParams{
		TenantID:   p.TenantID,
		LandlordID: client.UserID(),
		BedID:      bed.ID,
		PropertyID: bed.PropertyID,
		Direction:  models.DirectionLandlordInitiated,
		Message:    p.Message,
	})
	if err != nil {
		return errorReply(msg.Action, err)
	}

	event := models.Success(msg.Action, req)
	r.dispatcher.Dispatch(ctx, event, []notify.Target{
		{Group: presence.UserGroup(models.RoleTenant, req.TenantID), UserID: req.TenantID},
	}, "A landlord is interested in you", models.NotifInterestRequest)
	return event
}

type requestRefParams struct {
	RequestID string `json:"request_id"`
	Message   string `json:"message"`
}

func (r *Router) acceptInterest(ctx context.Context, client Client, msg models.InboundMessage) models.OutboundMessage {
	return r.interestTransition(ctx, client, msg, "Interest accepted", models.NotifInterestAccepted,
		func(ctx context.Context, id string) (*models.InterestRequest, error) {
			return r.engine.AcceptInterestRequest(ctx, id, actorOf(client))
		})
}

func (r *Router) rejectInterest(ctx context.Context, client Client, msg models.InboundMessage) models.OutboundMessage {
	return r.interestTransition(ctx, client, msg, "Interest declined", models.NotifInterestRejected,
		func(ctx context.Context, id string) (*models.InterestRequest, error) {
			return r.engine.RejectInterestRequest(ctx, id, actorOf(client))
		})
}

func (r *Router) cancelOwnInterest(ctx context.Context, client Client, msg models.InboundMessage) models.OutboundMessage {
	return r.interestTransition(ctx, client, msg, "Interest request cancelled", models.NotifInterestClosed,
		func(ctx context.Context, id string) (*models.InterestRequest, error) {
			return r.engine.CloseInterestRequest(ctx, id, actorOf(client), "")
		})
}

func (r *Router) closeConversation(ctx context.Context, client Client, msg models.InboundMessage) models.OutboundMessage {
	var p requestRefParams
	msg.Decode(&p)
	return r.interestTransition(ctx, client, msg, "Conversation closed", models.NotifInterestClosed,
		func(ctx context.Context, id string) (*models.InterestRequest, error) {
			return r.engine.CloseInterestRequest(ctx, id, actorOf(client), p.Message)
		})
}

func (r *Router) interestTransition(ctx context.Context, client Client, msg models.InboundMessage, heading, notifType string, op func(context.Context, string) (*models.InterestRequest, error)) models.OutboundMessage {
	var p requestRefParams
	if err := msg.Decode(&p); err != nil || p.RequestID == "" {
		return models.Error(msg.Action, "request_id is required")
	}

	req, err := op(ctx, p.RequestID)
	if err != nil {
		return errorReply(msg.Action, err)
	}

	event := models.Success(msg.Action, req)
	r.dispatcher.Dispatch(ctx, event,
		append(counterpartyTargets(client.Role(), req.TenantID, req.LandlordID),
			notify.Target{Group: presence.BedGroup(req.PropertyID, req.BedID)}),
		heading, notifType)
	return event
}

// counterpartyTargets points a transition's notifications at the party that
// did not perform it.
func counterpartyTargets(actorRole, tenantID, landlordID string) []notify.Target {
	if actorRole == models.RoleTenant {
		return []notify.Target{{Group: presence.UserGroup(models.RoleLandlord, landlordID), UserID: landlordID}}
	}
	return []notify.Target{{Group: presence.UserGroup(models.RoleTenant, tenantID), UserID: tenantID}}
}

type bookingParams struct {
	BedID      string `json:"bed_id"`
	TenantID   string `json:"tenant_id"`
	TimeSlotID string `json:"time_slot_id"`
}

func (r *Router) bookAppointment(ctx context.Context, client Client, msg models.InboundMessage) models.OutboundMessage {
	var p bookingParams
	if err := msg.Decode(&p); err != nil || p.BedID == "" || p.TimeSlotID == "" {
		return models.Error(msg.Action, "bed_id and time_slot_id are required")
	}

	bed, err := r.store.GetBed(ctx, p.BedID)
	if err != nil {
		return errorReply(msg.Action, err)
	}
	if bed == nil {
		return models.Error(msg.Action, "bed not found")
	}

	tenantID := client.UserID()
	if client.Role() == models.RoleLandlord {
		if p.TenantID == "" {
			return models.Error(msg.Action, "tenant_id is required when a landlord books")
		}
		if bed.LandlordID != client.UserID() {
			return models.Error(msg.Action, "bed does not belong to this landlord")
		}
		tenantID = p.TenantID
	}

	r.join(ctx, client, presence.BedGroup(bed.PropertyID, bed.ID))

	appt, err := r.engine.CreateAppointment(ctx, lifecycle.AppointmentParams{
		TenantID:    tenantID,
		LandlordID:  bed.LandlordID,
		BedID:       bed.ID,
		PropertyID:  bed.PropertyID,
		TimeSlotID:  p.TimeSlotID,
		InitiatedBy: client.Role(),
	})
	if err != nil {
		return errorReply(msg.Action, err)
	}

	event := models.Success(msg.Action, appt)
	r.dispatcher.Dispatch(ctx, event,
		append(counterpartyTargets(client.Role(), appt.TenantID, appt.LandlordID),
			notify.Target{Group: presence.BedGroup(appt.PropertyID, appt.BedID)}),
		"New viewing appointment", models.NotifAppointmentBooked)
	return event
}

type appointmentRefParams struct {
	AppointmentID string `json:"appointment_id"`
	TimeSlotID    string `json:"time_slot_id"`
}

func (r *Router) confirmAppointment(ctx context.Context, client Client, msg models.InboundMessage) models.OutboundMessage {
	return r.appointmentTransition(ctx, client, msg, "Appointment confirmed",
		func(ctx context.Context, p appointmentRefParams) (*models.Appointment, error) {
			return r.engine.ConfirmAppointment(ctx, p.AppointmentID, actorOf(client))
		})
}

func (r *Router) cancelAppointment(ctx context.Context, client Client, msg models.InboundMessage) models.OutboundMessage {
	return r.appointmentTransition(ctx, client, msg, "Appointment cancelled",
		func(ctx context.Context, p appointmentRefParams) (*models.Appointment, error) {
			return r.engine.CancelAppointment(ctx, p.AppointmentID, actorOf(client))
		})
}

func (r *Router) declineAppointment(ctx context.Context, client Client, msg models.InboundMessage) models.OutboundMessage {
	return r.appointmentTransition(ctx, client, msg, "Appointment declined",
		func(ctx context.Context, p appointmentRefParams) (*models.Appointment, error) {
			return r.engine.DeclineAppointment(ctx, p.AppointmentID, actorOf(client))
		})
}

func (r *Router) rescheduleAppointment(ctx context.Context, client Client, msg models.InboundMessage) models.OutboundMessage {
	return r.appointmentTransition(ctx, client, msg, "Appointment rescheduled",
		func(ctx context.Context, p appointmentRefParams) (*models.Appointment, error) {
			if p.TimeSlotID == "" {
				return nil, lifecycle.ErrValidation
			}
			return r.engine.RescheduleAppointment(ctx, p.AppointmentID, p.TimeSlotID, actorOf(client))
		})
}

func (r *Router) appointmentTransition(ctx context.Context, client Client, msg models.InboundMessage, heading string, op func(context.Context, appointmentRefParams) (*models.Appointment, error)) models.OutboundMessage {
	var p appointmentRefParams
	if err := msg.Decode(&p); err != nil || p.AppointmentID == "" {
		return models.Error(msg.Action, "appointment_id is required")
	}

	appt, err := op(ctx, p)
	if err != nil {
		return errorReply(msg.Action, err)
	}

	event := models.Success(msg.Action, appt)
	r.dispatcher.Dispatch(ctx, event,
		append(counterpartyTargets(client.Role(), appt.TenantID, appt.LandlordID),
			notify.Target{Group: presence.BedGroup(appt.PropertyID, appt.BedID)}),
		heading, models.NotifAppointmentUpdate)
	return event
}

type chatParams struct {
	RoomID        string `json:"room_id"`
	RecipientRole string `json:"recipient_role"`
	RecipientID   string `json:"recipient_id"`
	Content       string `json:"content"`
}

func (p chatParams) valid() bool {
	if p.RoomID == "" || p.RecipientID == "" {
		return false
	}
	return p.RecipientRole == models.RoleTenant || p.RecipientRole == models.RoleLandlord
}

func (r *Router) sendChatMessage(ctx context.Context, client Client, msg models.InboundMessage) models.OutboundMessage {
	var p chatParams
	if err := msg.Decode(&p); err != nil || !p.valid() || p.Content == "" {
		return models.Error(msg.Action, "room_id, recipient_role, recipient_id and content are required")
	}

	r.join(ctx, client, presence.RoomGroup(client.Role(), client.UserID(), p.RoomID))

	saved := &models.ConversationMessage{
		RoomID:     p.RoomID,
		SenderRole: client.Role(),
		SenderID:   client.UserID(),
		Content:    p.Content,
		Type:       "text",
	}
	if err := r.store.SaveConversationMessage(ctx, saved); err != nil {
		return errorReply(msg.Action, err)
	}

	event := models.Success(msg.Action, saved)
	r.dispatcher.Dispatch(ctx, event, []notify.Target{
		{Group: presence.RoomGroup(p.RecipientRole, p.RecipientID, p.RoomID), UserID: p.RecipientID},
	}, "New message", models.NotifChatMessage)
	return event
}

func (r *Router) relayTyping(ctx context.Context, client Client, msg models.InboundMessage) models.OutboundMessage {
	var p chatParams
	if err := msg.Decode(&p); err != nil || !p.valid() {
		return models.Error(msg.Action, "room_id, recipient_role and recipient_id are required")
	}

	r.join(ctx, client, presence.RoomGroup(client.Role(), client.UserID(), p.RoomID))

	// Typing notices are ephemeral: realtime only, never pushed.
	event := models.Success(msg.Action, map[string]string{
		"room_id":     p.RoomID,
		"sender_role": client.Role(),
		"sender_id":   client.UserID(),
	})
	r.dispatcher.Dispatch(ctx, event, []notify.Target{
		{Group: presence.RoomGroup(p.RecipientRole, p.RecipientID, p.RoomID)},
	}, "", models.NotifChatMessage)
	return event
}

func (r *Router) loadHistory(ctx context.Context, client Client, msg models.InboundMessage) models.OutboundMessage {
	var p chatParams
	if err := msg.Decode(&p); err != nil || p.RoomID == "" {
		return models.Error(msg.Action, "room_id is required")
	}

	r.join(ctx, client, presence.RoomGroup(client.Role(), client.UserID(), p.RoomID))

	history, err := r.store.GetConversationHistory(ctx, p.RoomID)
	if err != nil {
		return errorReply(msg.Action, err)
	}
	return models.Success(msg.Action, history)
}

type watchParams struct {
	PropertyID string `json:"property_id"`
}

func (r *Router) watchProperty(ctx context.Context, client Client, msg models.InboundMessage) models.OutboundMessage {
	var p watchParams
	if err := msg.Decode(&p); err != nil || p.PropertyID == "" {
		return models.Error(msg.Action, "property_id is required")
	}

	r.join(ctx, client, presence.PropertyGroup(p.PropertyID))
	return models.Success(msg.Action, map[string]string{"property_id": p.PropertyID})
}

type notificationSettingParams struct {
	NotificationType string `json:"notification_type"`
	Enabled          *bool  `json:"enabled"`
}

// updateNotificationSetting flips the caller's per-type push switch. The
// dispatcher reads these back before every push fallback.
func (r *Router) updateNotificationSetting(ctx context.Context, client Client, msg models.InboundMessage) models.OutboundMessage {
	var p notificationSettingParams
	if err := msg.Decode(&p); err != nil || p.Enabled == nil {
		return models.Error(msg.Action, "notification_type and enabled are required")
	}
	if !models.KnownNotificationType(p.NotificationType) {
		return models.Error(msg.Action, "unknown notification_type")
	}

	setting := &models.NotificationSetting{
		UserID:           client.UserID(),
		NotificationType: p.NotificationType,
		Enabled:          *p.Enabled,
	}
	if err := r.store.SaveNotificationSetting(ctx, setting); err != nil {
		return errorReply(msg.Action, err)
	}
	return models.Success(msg.Action, setting)
}
