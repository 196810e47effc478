package session

import (
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// Store holds one Provider per browser session, keyed by the opaque id
// carried in the session cookie. Entries expire after ttl of inactivity and
// are closed on eviction.
type Store struct {
	cache       *gocache.Cache
	newProvider func() *Provider
}

// NewStore creates a store whose providers are built by newProvider.
func NewStore(ttl time.Duration, newProvider func() *Provider) *Store {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	c := gocache.New(ttl, ttl/4)
	c.OnEvicted(func(_ string, v interface{}) {
		if p, ok := v.(*Provider); ok {
			p.Close()
		}
	})
	return &Store{cache: c, newProvider: newProvider}
}

// Get returns the provider of id and extends its lifetime.
func (s *Store) Get(id string) (*Provider, bool) {
	if id == "" {
		return nil, false
	}
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	p := v.(*Provider)
	s.cache.SetDefault(id, p)
	return p, true
}

// Create registers a new provider under a fresh id.
func (s *Store) Create() (string, *Provider) {
	id := uuid.NewString()
	p := s.newProvider()
	s.cache.SetDefault(id, p)
	return id, p
}

// GetOrCreate returns the provider of id, or a new one under a fresh id when
// id is unknown or expired.
func (s *Store) GetOrCreate(id string) (string, *Provider, bool) {
	if p, ok := s.Get(id); ok {
		return id, p, false
	}
	newID, p := s.Create()
	return newID, p, true
}

// Delete removes and closes the provider of id.
func (s *Store) Delete(id string) {
	s.cache.Delete(id)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	return s.cache.ItemCount()
}

// Flush closes every provider. Used on shutdown.
func (s *Store) Flush() {
	for id := range s.cache.Items() {
		s.cache.Delete(id)
	}
}
