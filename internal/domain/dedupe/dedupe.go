// Package dedupe tracks already-processed round IDs so a retried
// submission is acknowledged instead of scored twice.
package dedupe

import (
	"container/list"
	"context"
	"sync"
)

// defaultMaxSize bounds the remembered ID set.
const defaultMaxSize = 50000

// Deduper records seen round IDs to ensure at-most-once scoring.
type Deduper interface {
	// SeenAndRecord atomically checks whether id was seen and records
	// it if not. Returns true if id was already seen.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord forgets an ID so the round can be retried. Used when a
	// round was marked seen but failed before scoring (oracle error).
	Unrecord(ctx context.Context, id string)

	// Size returns the number of remembered IDs.
	Size() int64
}

// memDeduper implements Deduper with a map plus a FIFO list. When the
// bound is reached the oldest remembered ID is dropped first. Unrecord
// unlinks the ID from the list as well, so churned IDs hold no memory.
// A maxSize of zero or less means unbounded.
type memDeduper struct {
	mu      sync.Mutex
	seen    map[string]*list.Element
	order   *list.List // of string, oldest at front
	maxSize int
}

// Option applies a configuration option to the deduper.
type Option func(*memDeduper)

// WithMaxSize bounds how many IDs are remembered.
func WithMaxSize(n int) Option {
	return func(d *memDeduper) {
		d.maxSize = n
	}
}

// New creates an in-memory deduper.
func New(opts ...Option) Deduper {
	d := &memDeduper{
		seen:    make(map[string]*list.Element),
		order:   list.New(),
		maxSize: defaultMaxSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *memDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}

	if d.maxSize > 0 && len(d.seen) >= d.maxSize {
		d.evictOldest()
	}

	d.seen[id] = d.order.PushBack(id)
	return false
}

func (d *memDeduper) Unrecord(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	elem, ok := d.seen[id]
	if !ok {
		return
	}
	d.order.Remove(elem)
	delete(d.seen, id)
}

func (d *memDeduper) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(len(d.seen))
}

// evictOldest drops the oldest remembered ID. Must be called with the
// lock held.
func (d *memDeduper) evictOldest() {
	front := d.order.Front()
	if front == nil {
		return
	}
	d.order.Remove(front)
	delete(d.seen, front.Value.(string))
}
