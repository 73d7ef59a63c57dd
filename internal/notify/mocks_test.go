package notify_test

import (
	"context"

	"bedmatch/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockBroadcaster struct {
	mock.Mock
}

func (m *MockBroadcaster) Broadcast(ctx context.Context, group string, event models.OutboundMessage) error {
	args := m.Called(ctx, group, event)
	return args.Error(0)
}

type MockPusher struct {
	mock.Mock
}

func (m *MockPusher) Push(ctx context.Context, userIDs []string, payload models.PushPayload) error {
	args := m.Called(ctx, userIDs, payload)
	return args.Error(0)
}

type MockPresence struct {
	mock.Mock
}

func (m *MockPresence) IsEmpty(ctx context.Context, group string) bool {
	args := m.Called(ctx, group)
	return args.Bool(0)
}

type MockSettings struct {
	mock.Mock
}

func (m *MockSettings) IsNotificationEnabled(ctx context.Context, userID, notificationType string) (bool, error) {
	args := m.Called(ctx, userID, notificationType)
	return args.Bool(0), args.Error(1)
}
