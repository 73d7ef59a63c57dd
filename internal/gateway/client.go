package gateway

import "bedmatch/backend/internal/models"

// Client is one live connection to the gateway, whatever transport carries
// it. The hub manages clients uniformly through this interface.
type Client interface {
	// ChannelID identifies this connection; one user may hold several.
	ChannelID() string
	// UserID is the authenticated identity behind the connection.
	UserID() string
	// Role is "tenant" or "landlord".
	Role() string
	// Purpose is the socket endpoint flavour (interest, appointments, chat,
	// dashboard).
	Purpose() string

	// SendChannel is where the hub queues outbound messages for this
	// connection.
	SendChannel() chan<- models.OutboundMessage

	// Groups lists the presence groups this connection has joined, for leave
	// on disconnect and for liveness refresh.
	Groups() []string
	// AddGroup records a joined group; returns false if already joined.
	AddGroup(group string) bool

	// Run starts the connection's read and write pumps.
	Run()
	// Close shuts the connection's send side down.
	Close()
}
