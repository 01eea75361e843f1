package texwrap

import "sync"

// Disposable is a resource whose teardown must wait for a frame boundary.
type Disposable interface {
	// RealDispose releases the resource immediately. Called once by the
	// queue that received the resource.
	RealDispose()
}

// DisposalQueue accepts resources for deferred disposal. Implementations
// must call RealDispose on every enqueued resource exactly once, no earlier
// than the end of the frame in which it was enqueued.
type DisposalQueue interface {
	EnqueueDeferredDispose(d Disposable)
}

// FrameQueue is a DisposalQueue drained once per frame by the render loop.
//
// Enqueue is safe for concurrent use. EndFrame and Close must be called from
// the render loop goroutine only, after the frame's draw commands have been
// submitted.
type FrameQueue struct {
	mu      sync.Mutex
	pending []Disposable
	frame   uint64
	closed  bool
	metrics *queueMetrics
}

// Ensure FrameQueue implements DisposalQueue.
var _ DisposalQueue = (*FrameQueue)(nil)

// NewFrameQueue creates an empty FrameQueue.
func NewFrameQueue(opts ...FrameQueueOption) *FrameQueue {
	o := frameQueueOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	return &FrameQueue{metrics: newQueueMetrics(o.registerer)}
}

// EnqueueDeferredDispose schedules d for teardown at the next EndFrame.
// After Close, d is torn down immediately. Nil is ignored.
func (q *FrameQueue) EnqueueDeferredDispose(d Disposable) {
	if d == nil {
		return
	}
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		d.RealDispose()
		q.metrics.drained.Inc()
		return
	}
	q.pending = append(q.pending, d)
	n := len(q.pending)
	q.mu.Unlock()
	q.metrics.pending.Set(float64(n))
}

// EndFrame tears down everything enqueued before the call and advances the
// frame counter. Resources enqueued while draining (for example by a
// RealDispose that releases dependent resources) wait for the next frame.
// Returns the number of resources torn down.
func (q *FrameQueue) EndFrame() int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.frame++
	frame := q.frame
	q.mu.Unlock()

	n := q.drain(batch)
	q.metrics.frames.Inc()
	if n > 0 {
		Logger().Debug("texwrap: end of frame disposal", "frame", frame, "count", n)
	}
	return n
}

// Len returns the number of resources waiting for the next frame boundary.
func (q *FrameQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Frame returns the number of completed EndFrame calls.
func (q *FrameQueue) Frame() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.frame
}

// Close tears down everything still pending. Once closed, no more frames are
// rendered, so later enqueues are torn down immediately.
// Close is idempotent.
func (q *FrameQueue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	if n := q.drain(batch); n > 0 {
		Logger().Debug("texwrap: frame queue closed", "disposed", n)
	}
	return nil
}

func (q *FrameQueue) drain(batch []Disposable) int {
	for _, d := range batch {
		d.RealDispose()
	}
	q.metrics.drained.Add(float64(len(batch)))
	q.metrics.pending.Set(float64(q.Len()))
	return len(batch)
}
