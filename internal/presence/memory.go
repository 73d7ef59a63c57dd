package presence

import (
	"context"
	"sync"
)

// MemoryRegistry is an in-process Registry for tests and single-instance
// runs. It has no TTL eviction; liveness only matters once membership is
// shared between processes.
type MemoryRegistry struct {
	mu     sync.RWMutex
	groups map[string]map[string]struct{}
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{groups: make(map[string]map[string]struct{})}
}

func (r *MemoryRegistry) Join(ctx context.Context, group, channel string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	members, ok := r.groups[group]
	if !ok {
		members = make(map[string]struct{})
		r.groups[group] = members
	}
	members[channel] = struct{}{}
	return nil
}

func (r *MemoryRegistry) Leave(ctx context.Context, group, channel string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if members, ok := r.groups[group]; ok {
		delete(members, channel)
		if len(members) == 0 {
			delete(r.groups, group)
		}
	}
	return nil
}

func (r *MemoryRegistry) IsEmpty(ctx context.Context, group string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.groups[group]) == 0
}

func (r *MemoryRegistry) Touch(ctx context.Context, groups []string) error {
	return nil
}
