package sessionstore

import (
	"time"

	"github.com/patrickmn/go-cache"

	"network_switcher/internal/app/service"
)

// Registry keeps switch sessions addressable by id for a while after they start.
type Registry struct {
	cache *cache.Cache
}

// NewRegistry creates a registry that forgets sessions ttl after registration.
func NewRegistry(ttl, cleanupInterval time.Duration) *Registry {
	return &Registry{cache: cache.New(ttl, cleanupInterval)}
}

// Put registers a session under its id.
func (r *Registry) Put(s *service.SwitchSession) {
	r.cache.SetDefault(s.ID(), s)
}

// Get returns the session with id, if still known.
func (r *Registry) Get(id string) (*service.SwitchSession, bool) {
	x, found := r.cache.Get(id)
	if !found {
		return nil, false
	}
	s, ok := x.(*service.SwitchSession)
	return s, ok
}

// Len returns the number of sessions still held.
func (r *Registry) Len() int {
	return r.cache.ItemCount()
}
