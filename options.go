package texwrap

import "github.com/prometheus/client_golang/prometheus"

// ManagerOption configures a Manager during creation.
//
// Example:
//
//	queue := texwrap.NewFrameQueue()
//	m := texwrap.NewManager(texwrap.WithQueue(queue))
type ManagerOption func(*managerOptions)

type managerOptions struct {
	queue      DisposalQueue
	tracking   bool
	registerer prometheus.Registerer
}

func defaultManagerOptions() managerOptions {
	return managerOptions{
		queue:    nil, // Close leaves teardown to the owner
		tracking: true,
	}
}

// WithQueue sets the DisposalQueue that receives textures on Close.
// Without a queue, closed textures are never torn down by texwrap; this is
// the expected state while the host renderer is not running.
func WithQueue(q DisposalQueue) ManagerOption {
	return func(o *managerOptions) {
		o.queue = q
	}
}

// WithTracking enables or disables the registry that lets Manager.Close
// destroy textures that were never released. Tracking is on by default.
func WithTracking(enabled bool) ManagerOption {
	return func(o *managerOptions) {
		o.tracking = enabled
	}
}

// WithMetrics registers the Manager's Prometheus collectors on reg.
// Register at most one Manager per registry.
func WithMetrics(reg prometheus.Registerer) ManagerOption {
	return func(o *managerOptions) {
		o.registerer = reg
	}
}

// FrameQueueOption configures a FrameQueue during creation.
type FrameQueueOption func(*frameQueueOptions)

type frameQueueOptions struct {
	registerer prometheus.Registerer
}

// WithFrameQueueMetrics registers the FrameQueue's Prometheus collectors on
// reg.
func WithFrameQueueMetrics(reg prometheus.Registerer) FrameQueueOption {
	return func(o *frameQueueOptions) {
		o.registerer = reg
	}
}
