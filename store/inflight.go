package store

import "sync"

// TransitionGuard serializes status-transition requests per order. Two
// conflicting transitions racing each other is the one concurrency
// hazard in this service, so a transition for an order that already has
// one in flight is refused outright rather than queued.
type TransitionGuard struct {
	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewTransitionGuard() *TransitionGuard {
	return &TransitionGuard{inflight: make(map[string]struct{})}
}

// Begin marks a transition for orderID as in flight. It returns false
// when one is already running, in which case the caller must not issue
// the request.
func (g *TransitionGuard) Begin(orderID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.inflight[orderID]; busy {
		return false
	}
	g.inflight[orderID] = struct{}{}
	return true
}

// End releases the in-flight mark. Safe to call with defer regardless
// of how the request finished.
func (g *TransitionGuard) End(orderID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inflight, orderID)
}
