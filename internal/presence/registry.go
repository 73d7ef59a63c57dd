package presence

import (
	"context"
	"fmt"
)

// Registry tracks which channels are currently connected to each presence
// group. All gateway instances share one registry so the broadcast-vs-push
// decision sees the same membership everywhere.
type Registry interface {
	// Join adds a channel to a group, creating the group implicitly.
	Join(ctx context.Context, group, channel string) error
	// Leave removes a channel from a group. Best-effort on disconnect.
	Leave(ctx context.Context, group, channel string) error
	// IsEmpty reports whether a group has no live members. Registry failures
	// degrade to true: an extra push beats a missed notification.
	IsEmpty(ctx context.Context, group string) bool
	// Touch refreshes the liveness of every group the channel is in. Called
	// on each ping/pong cycle; a crashed connection stops touching and its
	// membership expires.
	Touch(ctx context.Context, groups []string) error
}

// Group key builders. The formats must stay byte-identical across gateway
// instances or members join disjoint groups.

// UserGroup is the personal channel of one tenant or landlord.
func UserGroup(role, id string) string {
	return fmt.Sprintf("%s_%s", role, id)
}

// RoomGroup scopes a user's chat about one room.
func RoomGroup(role, id, roomID string) string {
	return fmt.Sprintf("%s_%s_room_%s", role, id, roomID)
}

// BedGroup scopes events about one bed of a property.
func BedGroup(propertyID, bedID string) string {
	return fmt.Sprintf("property_%s_bed_%s", propertyID, bedID)
}

// PropertyGroup scopes a landlord's property-wide dashboard.
func PropertyGroup(propertyID string) string {
	return fmt.Sprintf("property_%s", propertyID)
}
