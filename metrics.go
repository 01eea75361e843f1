package texwrap

import "github.com/prometheus/client_golang/prometheus"

// managerMetrics are the Prometheus collectors of one Manager. They always
// exist; they are only exported when a registerer was configured.
type managerMetrics struct {
	wrapped   prometheus.Counter
	live      prometheus.Gauge
	pending   prometheus.Gauge
	liveBytes prometheus.Gauge
	tornDown  *prometheus.CounterVec
}

func newManagerMetrics(reg prometheus.Registerer) *managerMetrics {
	m := &managerMetrics{
		wrapped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "texwrap_textures_wrapped_total",
			Help: "Total number of native textures wrapped",
		}),
		live: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "texwrap_textures_live",
			Help: "Current number of wrapped textures not yet released",
		}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "texwrap_textures_pending_teardown",
			Help: "Current number of released textures waiting for end-of-frame teardown",
		}),
		liveBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "texwrap_texture_bytes",
			Help: "Estimated GPU memory held by textures not yet torn down",
		}),
		tornDown: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "texwrap_textures_torn_down_total",
			Help: "Total number of textures destroyed, by teardown path",
		}, []string{"path"}),
	}
	if reg != nil {
		reg.MustRegister(m.wrapped, m.live, m.pending, m.liveBytes, m.tornDown)
	}
	return m
}

// queueMetrics are the Prometheus collectors of one FrameQueue.
type queueMetrics struct {
	frames  prometheus.Counter
	drained prometheus.Counter
	pending prometheus.Gauge
}

func newQueueMetrics(reg prometheus.Registerer) *queueMetrics {
	m := &queueMetrics{
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "texwrap_frame_queue_frames_total",
			Help: "Total number of frame boundaries processed",
		}),
		drained: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "texwrap_frame_queue_drained_total",
			Help: "Total number of resources torn down by the frame queue",
		}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "texwrap_frame_queue_pending",
			Help: "Current number of resources waiting for the next frame boundary",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.frames, m.drained, m.pending)
	}
	return m
}
