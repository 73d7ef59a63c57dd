package notify

import (
	"context"
	"log"

	"bedmatch/backend/internal/models"
)

// Broadcaster delivers an event to all live members of a presence group.
// The gateway implements it by publishing to the shared Redis channel.
type Broadcaster interface {
	Broadcast(ctx context.Context, group string, event models.OutboundMessage) error
}

// Pusher delivers an external push notification to users identified by their
// platform ids.
type Pusher interface {
	Push(ctx context.Context, userIDs []string, payload models.PushPayload) error
}

// Presence is the read side of the presence registry the dispatcher needs.
type Presence interface {
	IsEmpty(ctx context.Context, group string) bool
}

// Settings answers whether a user wants pushes of a given type.
type Settings interface {
	IsNotificationEnabled(ctx context.Context, userID, notificationType string) (bool, error)
}

// Target pairs a presence group with the user to push to when the group
// turns out to be empty.
type Target struct {
	Group  string
	UserID string
}

// Dispatcher fans a lifecycle event out to presence groups and falls back to
// at most one push per distinct recipient when a group is empty.
type Dispatcher struct {
	presence    Presence
	broadcaster Broadcaster
	pusher      Pusher
	settings    Settings
}

func NewDispatcher(presence Presence, broadcaster Broadcaster, pusher Pusher, settings Settings) *Dispatcher {
	return &Dispatcher{
		presence:    presence,
		broadcaster: broadcaster,
		pusher:      pusher,
		settings:    settings,
	}
}

// Dispatch broadcasts event to every target group, then checks emptiness.
// The order matters: the broadcast is enqueued before the presence check, so
// a peer joining in between still receives the realtime event rather than
// falling through both delivery paths. Push failures are logged and never
// roll back the transition that triggered them.
func (d *Dispatcher) Dispatch(ctx context.Context, event models.OutboundMessage, targets []Target, heading, notificationType string) {
	pushUsers := make([]string, 0, len(targets))
	pushed := make(map[string]bool, len(targets))

	for _, target := range targets {
		if err := d.broadcaster.Broadcast(ctx, target.Group, event); err != nil {
			log.Printf("ERROR: broadcast to group %s failed: %v", target.Group, err)
		}

		if target.UserID == "" || pushed[target.UserID] {
			continue
		}
		if !d.presence.IsEmpty(ctx, target.Group) {
			continue
		}

		enabled, err := d.settings.IsNotificationEnabled(ctx, target.UserID, notificationType)
		if err != nil {
			log.Printf("WARNING: notification setting lookup for %s failed, defaulting to enabled: %v", target.UserID, err)
			enabled = true
		}
		if !enabled {
			continue
		}

		pushed[target.UserID] = true
		pushUsers = append(pushUsers, target.UserID)
	}

	if len(pushUsers) == 0 {
		return
	}

	payload := models.PushPayload{
		Headings: map[string]string{"en": heading},
		Contents: map[string]string{"en": event.Message},
		Data: models.PushData{
			Request: event.Data,
			Type:    notificationType,
		},
	}
	if payload.Contents["en"] == "" {
		payload.Contents["en"] = heading
	}

	if err := d.pusher.Push(ctx, pushUsers, payload); err != nil {
		log.Printf("ERROR: push delivery failed for %d recipients: %v", len(pushUsers), err)
	}
}
