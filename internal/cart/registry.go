package cart

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type entry struct {
	cart    *Cart
	touched time.Time
}

// Registry owns the carts of all visitors, keyed by cart id. Carts left
// untouched for longer than the idle limit are dropped by Sweep.
type Registry struct {
	mu    sync.Mutex
	carts map[string]*entry
	now   func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{carts: make(map[string]*entry), now: time.Now}
}

// Create registers a new empty cart under a random id.
func (r *Registry) Create() *Cart {
	c := New(uuid.NewString())

	r.mu.Lock()
	r.carts[c.ID()] = &entry{cart: c, touched: r.now()}
	r.mu.Unlock()

	return c
}

// Get looks a cart up by id and marks it as used.
func (r *Registry) Get(id string) (*Cart, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.carts[id]
	if !ok {
		return nil, false
	}
	e.touched = r.now()
	return e.cart, true
}

// Remove forgets a cart.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.carts, id)
	r.mu.Unlock()
}

// Len is the number of live carts.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.carts)
}

// Sweep drops carts idle for longer than idle and returns how many went.
// A cart in the middle of checkout is kept.
func (r *Registry) Sweep(idle time.Duration) int {
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, e := range r.carts {
		if e.touched.Before(cutoff) && !e.cart.CheckingOut() {
			delete(r.carts, id)
			evicted++
		}
	}
	return evicted
}

// RunSweeper calls Sweep every interval until ctx is done. onSweep, when set,
// receives the number of carts dropped by each non-empty sweep.
func (r *Registry) RunSweeper(ctx context.Context, interval, idle time.Duration, onSweep func(evicted int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(idle); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}
