package gateway_test

import (
	"sync"

	"bedmatch/backend/internal/models"
)

// mockClient is an in-memory gateway.Client for hub and router tests.
type mockClient struct {
	connID  string
	userID  string
	role    string
	purpose string

	RecvChannel chan models.OutboundMessage

	mu     sync.Mutex
	groups []string
	closed bool
}

func newMockClient(connID, userID, role string) *mockClient {
	return &mockClient{
		connID:      connID,
		userID:      userID,
		role:        role,
		purpose:     "interest",
		RecvChannel: make(chan models.OutboundMessage, 16),
	}
}

func (c *mockClient) ChannelID() string { return c.connID }
func (c *mockClient) UserID() string    { return c.userID }
func (c *mockClient) Role() string      { return c.role }
func (c *mockClient) Purpose() string   { return c.purpose }

func (c *mockClient) SendChannel() chan<- models.OutboundMessage { return c.RecvChannel }

func (c *mockClient) Groups() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.groups...)
}

func (c *mockClient) AddGroup(group string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, g := range c.groups {
		if g == group {
			return false
		}
	}
	c.groups = append(c.groups, group)
	return true
}

func (c *mockClient) Run() {}

func (c *mockClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}
