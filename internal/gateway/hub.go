package gateway

import (
	"context"
	"encoding/json"
	"log"

	"bedmatch/backend/internal/models"
	"bedmatch/backend/internal/presence"

	"github.com/redis/go-redis/v9"
)

// EventPublisher is the slice of storage the hub broadcasts through.
type EventPublisher interface {
	PublishEvent(ctx context.Context, event models.GroupEvent) error
}

type membership struct {
	client Client
	group  string
}

// Hub owns the local client map and group index, serialized through a single
// goroutine. Shared membership truth lives in the presence registry; events
// reach other instances over Redis pub/sub.
type Hub struct {
	Clients map[string]Client
	groups  map[string]map[string]Client

	RegisterCh   chan Client
	UnregisterCh chan Client
	joinCh       chan membership

	// DeliverCh receives events for local delivery; fed by the pub/sub
	// listener in production and directly in tests.
	DeliverCh chan models.GroupEvent

	Registry  presence.Registry
	publisher EventPublisher
}

func NewHub(registry presence.Registry, publisher EventPublisher) *Hub {
	return &Hub{
		Clients:      make(map[string]Client),
		groups:       make(map[string]map[string]Client),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		joinCh:       make(chan membership, 16),
		DeliverCh:    make(chan models.GroupEvent, 64),
		Registry:     registry,
		publisher:    publisher,
	}
}

// Run is the hub's main loop. Start it once, as a goroutine.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.RegisterCh:
			h.Clients[client.ChannelID()] = client

		case client := <-h.UnregisterCh:
			h.dropClient(ctx, client)

		case m := <-h.joinCh:
			members, ok := h.groups[m.group]
			if !ok {
				members = make(map[string]Client)
				h.groups[m.group] = members
			}
			members[m.client.ChannelID()] = m.client

		case event := <-h.DeliverCh:
			h.deliver(event)
		}
	}
}

func (h *Hub) dropClient(ctx context.Context, client Client) {
	id := client.ChannelID()
	if _, ok := h.Clients[id]; !ok {
		return
	}
	delete(h.Clients, id)

	// Best-effort: a failed Leave self-heals when the registry TTL lapses.
	for _, group := range client.Groups() {
		if members, ok := h.groups[group]; ok {
			delete(members, id)
			if len(members) == 0 {
				delete(h.groups, group)
			}
		}
		h.Registry.Leave(ctx, group, id)
	}
	client.Close()
	log.Printf("connection %s (%s %s) unregistered", id, client.Role(), client.UserID())
}

// deliver fans an event out to the local members of its group. A member
// whose send buffer is full is skipped, not waited on: one dead connection
// must not block delivery to the rest.
func (h *Hub) deliver(event models.GroupEvent) {
	for id, client := range h.groups[event.Group] {
		select {
		case client.SendChannel() <- event.Payload:
		default:
			log.Printf("WARNING: dropping event for slow connection %s in group %s", id, event.Group)
		}
	}
}

// Join subscribes a connection to a presence group: the shared registry
// first, then the local index.
func (h *Hub) Join(ctx context.Context, client Client, group string) error {
	if !client.AddGroup(group) {
		return nil
	}
	if err := h.Registry.Join(ctx, group, client.ChannelID()); err != nil {
		return err
	}
	h.joinCh <- membership{client: client, group: group}
	return nil
}

// Broadcast implements notify.Broadcaster: events go through Redis so every
// gateway instance, this one included, delivers to its own members.
func (h *Hub) Broadcast(ctx context.Context, group string, event models.OutboundMessage) error {
	return h.publisher.PublishEvent(ctx, models.GroupEvent{Group: group, Payload: event})
}

// RunEventListener pumps the shared pub/sub subscription into DeliverCh.
// Start it once per instance, as a goroutine.
func (h *Hub) RunEventListener(ctx context.Context, pubsub *redis.PubSub) {
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var event models.GroupEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("ERROR: bad event on %s: %v", msg.Channel, err)
				continue
			}
			h.DeliverCh <- event
		}
	}
}
