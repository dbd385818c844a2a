package dashboard

import (
	"context"
	"sync"
	"time"
)

// Registry keeps one Controller per browser session and closes the ones
// that sat idle for longer than ttl.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*registryEntry
	ttl     time.Duration
	newFn   func(key string) *Controller
	now     func() time.Time
}

type registryEntry struct {
	controller *Controller
	lastSeen   time.Time
}

func NewRegistry(ttl time.Duration, newFn func(key string) *Controller) *Registry {
	return &Registry{
		entries: map[string]*registryEntry{},
		ttl:     ttl,
		newFn:   newFn,
		now:     time.Now,
	}
}

// Get returns the controller of key, creating it on first use. newFn runs
// outside the lock; when two requests race, the loser's controller is closed.
func (r *Registry) Get(key string) *Controller {
	r.mu.Lock()
	if e, ok := r.entries[key]; ok {
		e.lastSeen = r.now()
		r.mu.Unlock()
		return e.controller
	}
	r.mu.Unlock()

	created := r.newFn(key)

	r.mu.Lock()
	e, ok := r.entries[key]
	if !ok {
		e = &registryEntry{controller: created}
		r.entries[key] = e
	}
	e.lastSeen = r.now()
	r.mu.Unlock()

	if e.controller != created {
		created.Close()
	}
	return e.controller
}

// Remove closes and forgets the controller of key.
func (r *Registry) Remove(key string) {
	r.mu.Lock()
	e, ok := r.entries[key]
	delete(r.entries, key)
	r.mu.Unlock()

	if ok {
		e.controller.Close()
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep evicts controllers idle for longer than ttl and returns how many
// were closed.
func (r *Registry) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.ttl)

	var idle []*Controller
	r.mu.Lock()
	for key, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			idle = append(idle, e.controller)
			delete(r.entries, key)
		}
	}
	r.mu.Unlock()

	for _, c := range idle {
		c.Close()
	}
	return len(idle)
}

// Run sweeps every interval until ctx is done, then closes everything.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.closeAll()
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

func (r *Registry) closeAll() {
	r.mu.Lock()
	entries := r.entries
	r.entries = map[string]*registryEntry{}
	r.mu.Unlock()

	for _, e := range entries {
		e.controller.Close()
	}
}
