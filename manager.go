package texwrap

import (
	"fmt"
	"reflect"
	"sync"
	"weak"
)

// Manager is the factory for DeferredTexture values. It binds every texture
// it wraps to one DisposalQueue and keeps a registry of textures that have
// not been released, so that Close can destroy whatever its owners leaked.
//
// The registry holds weak references only: tracking never keeps a texture
// reachable, so the finalization path still works for tracked textures.
//
// Manager is safe for concurrent use.
type Manager struct {
	queue    DisposalQueue
	tracking bool
	metrics  *managerMetrics

	mu       sync.Mutex
	nextID   uint64
	registry map[uint64]weak.Pointer[DeferredTexture]
	stats    Stats
	closed   bool
}

// NewManager creates a Manager configured by opts.
func NewManager(opts ...ManagerOption) *Manager {
	o := defaultManagerOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Manager{
		queue:    o.queue,
		tracking: o.tracking,
		metrics:  newManagerMetrics(o.registerer),
		registry: make(map[uint64]weak.Pointer[DeferredTexture]),
	}
}

// Wrap takes exclusive ownership of native and returns its deferred-teardown
// wrapper. The caller must not destroy native directly afterwards.
//
// Wrap returns ErrNilTexture if native is nil (including a nil pointer
// stored in the interface) and ErrManagerClosed if Close has been called,
// even concurrently with Wrap. On error the caller keeps ownership of native.
//
// The returned texture is released with Close. Its RealDispose method belongs
// to the DisposalQueue: calling it from the owner destroys the GPU resource
// before the frame ends and defeats the deferral.
func (m *Manager) Wrap(native NativeTexture) (*DeferredTexture, error) {
	if isNil(native) {
		return nil, ErrNilTexture
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, ErrManagerClosed
	}
	m.nextID++
	id := m.nextID
	m.mu.Unlock()

	t := newDeferredTexture(m, id, native)

	m.mu.Lock()
	if m.closed {
		// Close ran while t was being built and could not sweep it.
		m.mu.Unlock()
		t.cleanup.Stop()
		return nil, ErrManagerClosed
	}
	if m.tracking {
		m.registry[id] = weak.Make(t)
	}
	m.stats.Wrapped++
	m.stats.Live++
	m.stats.LiveBytes += t.bytes
	m.mu.Unlock()

	m.metrics.wrapped.Inc()
	m.metrics.live.Inc()
	m.metrics.liveBytes.Add(float64(t.bytes))

	Logger().Debug("texwrap: texture wrapped", "texture", t)
	return t, nil
}

// isNil reports whether native is nil or a nil pointer, map, slice, func,
// or channel held in a non-nil interface.
func isNil(native NativeTexture) bool {
	if native == nil {
		return true
	}
	v := reflect.ValueOf(native)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}

// MustWrap is like Wrap but panics on error.
// Use only when errors are programming mistakes.
func (m *Manager) MustWrap(native NativeTexture) *DeferredTexture {
	t, err := m.Wrap(native)
	if err != nil {
		panic(err)
	}
	return t
}

// Queue returns the DisposalQueue textures are handed to on Close, or nil.
func (m *Manager) Queue() DisposalQueue {
	return m.queue
}

// Stats returns a snapshot of the Manager's texture accounting.
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// Close destroys every tracked texture that was never released and rejects
// further Wrap calls. Textures already handed to the DisposalQueue are left
// to the queue. Close is idempotent.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	leaked := make([]*DeferredTexture, 0, len(m.registry))
	for _, wp := range m.registry {
		if t := wp.Value(); t != nil {
			leaked = append(leaked, t)
		}
	}
	m.mu.Unlock()

	swept := 0
	for _, t := range leaked {
		if t.sweep() {
			swept++
		}
	}
	if swept > 0 {
		Logger().Warn("texwrap: destroyed textures that were never closed", "count", swept)
	}
	return nil
}

// released records the Live -> PendingTeardown transition.
func (m *Manager) released(t *DeferredTexture) {
	m.mu.Lock()
	delete(m.registry, t.id)
	m.stats.Live--
	m.stats.Pending++
	m.mu.Unlock()

	m.metrics.live.Dec()
	m.metrics.pending.Inc()
}

// tornDown records the destruction of a native texture through path.
func (m *Manager) tornDown(id, bytes uint64, path string) {
	m.mu.Lock()
	delete(m.registry, id)
	switch path {
	case pathDeferred:
		m.stats.Pending--
	case pathFinalizer:
		m.stats.Live--
		m.stats.Finalized++
	default:
		m.stats.Live--
	}
	m.stats.TornDown++
	m.stats.LiveBytes -= bytes
	m.mu.Unlock()

	if path == pathDeferred {
		m.metrics.pending.Dec()
	} else {
		m.metrics.live.Dec()
	}
	m.metrics.liveBytes.Sub(float64(bytes))
	m.metrics.tornDown.WithLabelValues(path).Inc()
}

// Stats contains texture accounting for a Manager.
type Stats struct {
	// Wrapped is the total number of textures wrapped.
	Wrapped uint64

	// Live is the number of textures not yet released or torn down.
	Live int

	// Pending is the number of released textures waiting for teardown.
	Pending int

	// TornDown is the total number of native textures destroyed.
	TornDown uint64

	// Finalized is how many of TornDown were destroyed by the
	// finalization path because their owner never called Close.
	Finalized uint64

	// LiveBytes estimates the GPU memory of textures not yet torn down.
	LiveBytes uint64
}

// String returns a human-readable string of texture stats.
func (s Stats) String() string {
	return fmt.Sprintf("Textures[%d live, %d pending, %d wrapped, %d torn down (%d finalized), %.1f MB]",
		s.Live,
		s.Pending,
		s.Wrapped,
		s.TornDown,
		s.Finalized,
		float64(s.LiveBytes)/(1024*1024))
}
