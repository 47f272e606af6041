package store

import (
	"sync"
	"time"

	"github.com/flowerstalk/storefront-gateway/models"
)

// cartIdleTTL matches the session cookie lifetime: a cart untouched for
// this long is dead weight and may be evicted.
const cartIdleTTL = 30 * 24 * time.Hour

// maxSessions bounds the store against cookie spraying. Session ids
// are client input, so the map must not grow on their say-so alone.
const maxSessions = 10000

type sessionCart struct {
	cart     *models.Cart
	lastSeen time.Time
}

// CartStore owns one cart per shopper session, keyed by the session
// cookie. The upstream API is the system of record for orders; carts
// are purely in-memory presentation state and vanish on restart.
//
// The mutex guards the map only. A browser session issues one request
// at a time, so the carts themselves follow the single-writer model and
// need no locking of their own.
type CartStore struct {
	mu    sync.Mutex
	now   func() time.Time
	carts map[string]*sessionCart
}

func NewCartStore() *CartStore {
	return &CartStore{
		now:   time.Now,
		carts: make(map[string]*sessionCart),
	}
}

// Get returns the session's cart, creating an empty one on first use.
// Hitting the session cap evicts idle carts first, then the least
// recently seen one.
func (s *CartStore) Get(sessionID string) *models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if entry, ok := s.carts[sessionID]; ok {
		entry.lastSeen = now
		return entry.cart
	}

	if len(s.carts) >= maxSessions {
		s.evict(now)
	}
	cart := &models.Cart{}
	s.carts[sessionID] = &sessionCart{cart: cart, lastSeen: now}
	return cart
}

func (s *CartStore) evict(now time.Time) {
	for id, entry := range s.carts {
		if now.Sub(entry.lastSeen) > cartIdleTTL {
			delete(s.carts, id)
		}
	}
	if len(s.carts) < maxSessions {
		return
	}
	var oldestID string
	var oldest time.Time
	for id, entry := range s.carts {
		if oldestID == "" || entry.lastSeen.Before(oldest) {
			oldestID = id
			oldest = entry.lastSeen
		}
	}
	delete(s.carts, oldestID)
}

// Drop forgets a session's cart entirely.
func (s *CartStore) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

// Len reports how many session carts are live.
func (s *CartStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts)
}
