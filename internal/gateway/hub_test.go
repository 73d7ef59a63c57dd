package gateway_test

import (
	"context"
	"testing"
	"time"

	"bedmatch/backend/internal/gateway"
	"bedmatch/backend/internal/models"
	"bedmatch/backend/internal/presence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHub_RegisterUnregister(t *testing.T) {
	registry := presence.NewMemoryRegistry()
	store := new(MockStorage)
	hub := gateway.NewHub(registry, store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := newMockClient("conn-1", "t1", models.RoleTenant)

	hub.RegisterCh <- client
	time.Sleep(50 * time.Millisecond)
	assert.Contains(t, hub.Clients, "conn-1")

	hub.UnregisterCh <- client
	time.Sleep(50 * time.Millisecond)
	assert.NotContains(t, hub.Clients, "conn-1")
}

func TestHub_JoinThenLeaveRestoresEmpty(t *testing.T) {
	registry := presence.NewMemoryRegistry()
	hub := gateway.NewHub(registry, new(MockStorage))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := newMockClient("conn-1", "t1", models.RoleTenant)
	hub.RegisterCh <- client

	group := presence.UserGroup(models.RoleTenant, "t1")
	assert.NoError(t, hub.Join(ctx, client, group))
	time.Sleep(50 * time.Millisecond)
	assert.False(t, registry.IsEmpty(ctx, group))

	hub.UnregisterCh <- client
	time.Sleep(50 * time.Millisecond)
	assert.True(t, registry.IsEmpty(ctx, group))
}

func TestHub_DeliverReachesGroupMembersOnly(t *testing.T) {
	registry := presence.NewMemoryRegistry()
	hub := gateway.NewHub(registry, new(MockStorage))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	member := newMockClient("conn-1", "t1", models.RoleTenant)
	outsider := newMockClient("conn-2", "t2", models.RoleTenant)
	hub.RegisterCh <- member
	hub.RegisterCh <- outsider

	group := presence.BedGroup("prop-1", "bed-7")
	assert.NoError(t, hub.Join(ctx, member, group))
	time.Sleep(50 * time.Millisecond)

	hub.DeliverCh <- models.GroupEvent{
		Group:   group,
		Payload: models.Success("accept_landlord_interest", nil),
	}
	time.Sleep(50 * time.Millisecond)

	select {
	case msg := <-member.RecvChannel:
		assert.Equal(t, "success", msg.Status)
	default:
		t.Error("group member did not receive the event")
	}
	select {
	case <-outsider.RecvChannel:
		t.Error("outsider received an event for a group it never joined")
	default:
	}
}

func TestHub_BroadcastPublishesToSharedChannel(t *testing.T) {
	registry := presence.NewMemoryRegistry()
	store := new(MockStorage)
	hub := gateway.NewHub(registry, store)

	event := models.Success("send_message", nil)
	store.On("PublishEvent", mock.Anything, models.GroupEvent{
		Group:   "tenant_t1",
		Payload: event,
	}).Return(nil)

	assert.NoError(t, hub.Broadcast(context.Background(), "tenant_t1", event))
	store.AssertExpectations(t)
}

func TestHub_SlowMemberDoesNotBlockOthers(t *testing.T) {
	registry := presence.NewMemoryRegistry()
	hub := gateway.NewHub(registry, new(MockStorage))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	slow := newMockClient("conn-1", "t1", models.RoleTenant)
	slow.RecvChannel = make(chan models.OutboundMessage) // full immediately
	healthy := newMockClient("conn-2", "t2", models.RoleTenant)
	hub.RegisterCh <- slow
	hub.RegisterCh <- healthy

	group := presence.PropertyGroup("prop-1")
	assert.NoError(t, hub.Join(ctx, slow, group))
	assert.NoError(t, hub.Join(ctx, healthy, group))
	time.Sleep(50 * time.Millisecond)

	hub.DeliverCh <- models.GroupEvent{Group: group, Payload: models.Success("typing", nil)}
	time.Sleep(50 * time.Millisecond)

	select {
	case <-healthy.RecvChannel:
	default:
		t.Error("healthy member starved by slow member")
	}
}
