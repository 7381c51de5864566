package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Henry-Paul/Paperless-Restaurant-Menu/checkout"
)

// DefaultTTL is how long an idle browsing session keeps its cart.
const DefaultTTL = 2 * time.Hour

type key struct {
	token        string
	restaurantID uint
}

type entry struct {
	flow     *checkout.Flow
	lastSeen time.Time
}

// Registry maps (session token, restaurant) to one checkout flow. The
// mutex guards the map only: each flow belongs to a single browsing
// session and is never written by two actors. Stale entries are pruned
// on access; no background sweeper runs.
type Registry struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[key]*entry
}

func NewRegistry(ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Registry{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[key]*entry),
	}
}

// NewToken issues an opaque session token.
func NewToken() string {
	return uuid.NewString()
}

// Get returns the live flow for a session at a restaurant, if any.
func (r *Registry) Get(token string, restaurantID uint) (*checkout.Flow, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prune()

	e, ok := r.entries[key{token, restaurantID}]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.flow, true
}

// GetOrCreate returns the session's flow, creating one via build when
// the session is new or expired. It returns the token to echo back to
// the client (freshly issued when the incoming token was empty).
func (r *Registry) GetOrCreate(token string, restaurantID uint, build func() *checkout.Flow) (string, *checkout.Flow) {
	if token == "" {
		token = NewToken()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.prune()

	k := key{token, restaurantID}
	if e, ok := r.entries[k]; ok {
		e.lastSeen = r.now()
		return token, e.flow
	}
	f := build()
	r.entries[k] = &entry{flow: f, lastSeen: r.now()}
	return token, f
}

// Drop abandons and removes the session's flow.
func (r *Registry) Drop(token string, restaurantID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := key{token, restaurantID}
	if e, ok := r.entries[k]; ok {
		e.flow.Abandon()
		delete(r.entries, k)
	}
}

// prune removes expired entries. Callers must hold the mutex.
func (r *Registry) prune() {
	cutoff := r.now().Add(-r.ttl)
	for k, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			e.flow.Abandon()
			delete(r.entries, k)
		}
	}
}
