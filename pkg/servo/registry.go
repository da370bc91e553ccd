package servo

import (
	"errors"
	"sync"

	"github.com/servolink-protocol/servolink-go/internal/slots"
)

// registry is a locked subscriber slot table. Monitors hold the lock while
// dispatching, so a completed unsubscribe guarantees no further callbacks.
type registry[T any] struct {
	mu    sync.Mutex
	table *slots.Table[T]
}

func (r *registry[T]) init(max int) {
	r.table = slots.New[T](max)
}

func (r *registry[T]) add(v T) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, err := r.table.Add(v)
	if errors.Is(err, slots.ErrExhausted) {
		return 0, ErrResourceExhausted
	}
	return slot, err
}

func (r *registry[T]) remove(slot int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.table.Remove(slot)
}

// dispatch invokes fn for every subscriber, in slot order, under the
// registry lock.
func (r *registry[T]) dispatch(fn func(T)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.table.Each(fn)
}
