package shell

import (
	"sync"
	"time"

	"audiotech/internal/domain"
)

// Registry keeps one State per browser session id. Only sessions that moved
// away from the arrival state are held, and entries not touched for Idle are
// evicted.
type Registry struct {
	mu        sync.Mutex
	states    map[string]entry
	featured  domain.Product
	idle      time.Duration
	now       func() time.Time
	lastSweep time.Time
}

type entry struct {
	state State
	seen  time.Time
}

// NewRegistry builds a registry; idle <= 0 disables eviction.
func NewRegistry(featured domain.Product, idle time.Duration) *Registry {
	return &Registry{states: map[string]entry{}, featured: featured, idle: idle, now: time.Now}
}

// Get returns the state for sid, or a fresh one when sid is unknown.
// Reading never creates an entry.
func (r *Registry) Get(sid string) State {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.states[sid]
	if !ok {
		return New(r.featured)
	}
	e.seen = r.now()
	r.states[sid] = e
	return e.state.clone()
}

func (r *Registry) Put(sid string, s State) {
	r.mu.Lock()
	r.store(sid, s.clone())
	r.mu.Unlock()
}

// Update applies fn to the state of sid atomically and returns the result.
func (r *Registry) Update(sid string, fn func(State) State) State {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := New(r.featured)
	if e, ok := r.states[sid]; ok {
		s = e.state
	}
	s = fn(s)
	r.store(sid, s)
	return s.clone()
}

// store must be called with mu held.
func (r *Registry) store(sid string, s State) {
	now := r.now()
	if r.pristine(s) {
		delete(r.states, sid)
	} else {
		r.states[sid] = entry{state: s, seen: now}
	}
	if r.idle > 0 && now.Sub(r.lastSweep) >= r.idle/4 {
		r.sweep(now)
	}
}

// pristine reports whether s equals the arrival state, which Get can rebuild.
func (r *Registry) pristine(s State) bool {
	return s.Page == domain.PageHome && s.Selected.ID == r.featured.ID &&
		len(s.Cart) == 0 && s.User == nil && !s.Loading &&
		s.Query == "" && s.ReturnTo == ""
}

// Sweep evicts entries idle for longer than the registry's idle limit and
// returns how many were dropped.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sweep(r.now())
}

func (r *Registry) sweep(now time.Time) int {
	r.lastSweep = now
	if r.idle <= 0 {
		return 0
	}
	n := 0
	for sid, e := range r.states {
		if now.Sub(e.seen) > r.idle {
			delete(r.states, sid)
			n++
		}
	}
	return n
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.states)
}
