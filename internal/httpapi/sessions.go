package httpapi

import (
	"context"
	"sync"
	"time"

	"github.com/abhisek/mathcoach/internal/session"
)

type sessionEntry struct {
	machine  *session.Machine
	lastSeen time.Time
}

// registry holds the in-memory practice sessions, keyed by session id.
// Nothing here outlives the process.
type registry struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry
	ttl     time.Duration
	now     func() time.Time
	onSize  func(int)
}

func newRegistry(ttl time.Duration, onSize func(int)) *registry {
	if onSize == nil {
		onSize = func(int) {}
	}
	return &registry{
		entries: make(map[string]*sessionEntry),
		ttl:     ttl,
		now:     time.Now,
		onSize:  onSize,
	}
}

func (r *registry) add(m *session.Machine) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[m.ID()] = &sessionEntry{machine: m, lastSeen: r.now()}
	r.onSize(len(r.entries))
}

// get returns the session and marks it as used.
func (r *registry) get(id string) (*session.Machine, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.machine, true
}

func (r *registry) remove(id string) (*session.Machine, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	delete(r.entries, id)
	r.onSize(len(r.entries))
	return e.machine, true
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// sweep drops sessions idle for longer than the TTL and returns how many
// were removed.
func (r *registry) sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for id, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			e.machine.Reset()
			delete(r.entries, id)
			removed++
		}
	}
	if removed > 0 {
		r.onSize(len(r.entries))
	}
	return removed
}

// janitor sweeps until ctx is done.
func (r *registry) janitor(ctx context.Context, every time.Duration, swept func(int)) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.sweep(); n > 0 && swept != nil {
				swept(n)
			}
		}
	}
}
