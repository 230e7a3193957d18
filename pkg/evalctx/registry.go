package evalctx

import (
	"container/list"
	"sync"

	"github.com/datagen-go/datagen/pkg/value"
)

// Registry is the mutex-protected reference cache: a mapping from
// normalised path to a FIFO queue of finalised values produced at or under
// that path. Every Context owns one; a child starts with a fresh Registry
// unless it is given a sibling, whose Registry it then shares by pointer.
// It is held behind a mutex so that plugin goroutines calling
// back into the context can register/read safely alongside the (otherwise
// single-threaded) evaluator.
type Registry struct {
	mu       sync.Mutex
	queues   map[string]*list.List
	maxSize  RefCacheSize
}

// NewRegistry creates an empty reference registry bounded by max.
func NewRegistry(max RefCacheSize) *Registry {
	return &Registry{queues: make(map[string]*list.List), maxSize: max}
}

// Finalize inserts v under key, suppressing duplicates (by deep structural
// equality) and applying the bounded-FIFO eviction policy.
func (r *Registry) Finalize(key string, v value.Value) {
	if r.maxSize.IsSet() && r.maxSize.Value() == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.queues[key]
	if !ok {
		q = list.New()
		r.queues[key] = q
	}

	for e := q.Front(); e != nil; e = e.Next() {
		if value.Equal(e.Value.(value.Value), v) {
			return
		}
	}

	q.PushBack(v)

	if r.maxSize.IsSet() {
		limit := r.maxSize.Value()
		for q.Len() > limit {
			q.Remove(q.Front())
		}
	}
}

// Lookup returns every value currently queued under key, oldest first.
func (r *Registry) Lookup(key string) []value.Value {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.queues[key]
	if !ok {
		return nil
	}
	out := make([]value.Value, 0, q.Len())
	for e := q.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(value.Value))
	}
	return out
}
