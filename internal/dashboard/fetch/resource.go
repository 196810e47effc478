package fetch

import (
	"context"
	"sync"
	"time"

	"stock-forecast-dashboard/internal/dashboard/repository"
)

// Status is the lifecycle state of a Resource.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Snapshot is the committed state of a Resource. Key identifies what was
// requested, for example a symbol or a watchlist item id. While loading, Data
// holds the previous result of the same key, if it succeeded.
type Snapshot[T any] struct {
	Status    Status    `json:"status"`
	Key       string    `json:"key,omitempty"`
	Data      T         `json:"data"`
	Failure   *Failure  `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Resource holds the latest result of a keyed fetch. Each Load gets a
// generation number; a result is committed only when its generation is
// still the newest and the resource has not been closed. Starting a Load
// cancels the one in flight.
type Resource[T any] struct {
	mu       sync.Mutex
	gen      uint64
	cancel   context.CancelFunc
	closed   bool
	snapshot Snapshot[T]
	now      func() time.Time
}

// NewResource creates an idle resource.
func NewResource[T any]() *Resource[T] {
	return &Resource[T]{snapshot: Snapshot[T]{Status: StatusIdle}, now: time.Now}
}

// Snapshot returns the committed state.
func (r *Resource[T]) Snapshot() Snapshot[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot
}

// Load runs fn for key and commits its result if no newer Load started in
// the meantime. It returns the state after the attempt and whether this
// call's result was the one committed. A failed fn is committed as an error
// state; nothing is retried.
func (r *Resource[T]) Load(ctx context.Context, key string, fn func(ctx context.Context) (T, error)) (Snapshot[T], bool) {
	gen, fetchCtx, previous, ok := r.begin(ctx, key)
	if !ok {
		return r.Snapshot(), false
	}

	data, err := fn(fetchCtx)
	return r.finish(gen, fetchCtx, key, previous, data, err)
}

// Reset returns the resource to idle and drops any fetch in flight.
func (r *Resource[T]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.snapshot = Snapshot[T]{Status: StatusIdle}
}

// Close cancels the fetch in flight. Results arriving after Close are
// dropped. Close always returns nil.
func (r *Resource[T]) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.gen++
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	return nil
}

func (r *Resource[T]) begin(ctx context.Context, key string) (uint64, context.Context, Snapshot[T], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return 0, nil, Snapshot[T]{}, false
	}
	if r.cancel != nil {
		r.cancel()
	}
	r.gen++
	fetchCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	// Reloading the same key keeps the last good data readable until the
	// new result lands.
	previous := r.snapshot
	var stale T
	if previous.Status == StatusSuccess && previous.Key == key {
		stale = previous.Data
	}
	r.snapshot = Snapshot[T]{Status: StatusLoading, Key: key, Data: stale, UpdatedAt: r.now()}
	return r.gen, fetchCtx, previous, true
}

func (r *Resource[T]) finish(gen uint64, fetchCtx context.Context, key string, previous Snapshot[T], data T, err error) (Snapshot[T], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || gen != r.gen {
		return r.snapshot, false
	}
	r.cancel = nil

	// The caller went away before the fetch finished. Nothing newer
	// replaced it, so fall back to what was shown before.
	if err != nil && fetchCtx.Err() != nil && repository.IsCanceled(err) {
		r.snapshot = previous
		return r.snapshot, false
	}

	if err != nil {
		var zero T
		r.snapshot = Snapshot[T]{Status: StatusError, Key: key, Data: zero, Failure: Classify(err), UpdatedAt: r.now()}
		return r.snapshot, true
	}
	r.snapshot = Snapshot[T]{Status: StatusSuccess, Key: key, Data: data, UpdatedAt: r.now()}
	return r.snapshot, true
}
