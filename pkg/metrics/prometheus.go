// Package metrics provides Prometheus instrumentation for the image trail.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/decker502/imagetrail/pkg/trail"
)

// Manager owns the trail metrics and implements trail.Observer.
type Manager struct {
	namespace   string
	subsystem   string
	enabled     bool
	constLabels map[string]string
	registry    *prometheus.Registry

	reveals         prometheus.Counter
	preemptions     prometheus.Counter
	revealsBySlot   *prometheus.CounterVec
	activeAnims     prometheus.Gauge
	idle            prometheus.Gauge
	stackingOrder   prometheus.Gauge
	frames          prometheus.Counter
	mounts          *prometheus.CounterVec
	slotsUnmeasured prometheus.Gauge
}

var _ trail.Observer = (*Manager)(nil)

// NewManager creates a metrics manager. Without WithPrometheusRegistry a
// fresh registry is used so Go runtime collectors are not exported.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:   "imagetrail",
		subsystem:   "trail",
		enabled:     true,
		constLabels: map[string]string{},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.reveals = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "reveals_total",
		Help:        "Total number of image reveals triggered by pointer travel",
		ConstLabels: m.constLabels,
	})
	m.preemptions = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "preemptions_total",
		Help:        "Reveals that cancelled an in-flight animation on the same slot",
		ConstLabels: m.constLabels,
	})
	m.revealsBySlot = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "slot_reveals_total",
		Help:        "Reveals per pool slot",
		ConstLabels: m.constLabels,
	}, []string{"slot"})
	m.activeAnims = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "active_animations",
		Help:        "Number of slots with an in-flight reveal timeline",
		ConstLabels: m.constLabels,
	})
	m.idle = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "idle",
		Help:        "1 when no slot is animating",
		ConstLabels: m.constLabels,
	})
	m.stackingOrder = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "stacking_order",
		Help:        "Z order assigned to the most recent reveal",
		ConstLabels: m.constLabels,
	})
	m.frames = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "frames_total",
		Help:        "Frames pumped through the trail scheduler",
		ConstLabels: m.constLabels,
	})
	m.mounts = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "mounts_total",
		Help:        "Trail mounts by resolved variant",
		ConstLabels: m.constLabels,
	}, []string{"variant"})
	m.slotsUnmeasured = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "slots_unmeasured",
		Help:        "Pool slots whose element could not be measured",
		ConstLabels: m.constLabels,
	})

	m.idle.Set(1)
}

// Registry returns the registry backing this manager.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Revealed implements trail.Observer.
func (m *Manager) Revealed(ev trail.RevealEvent) {
	if !m.enabled {
		return
	}
	m.reveals.Inc()
	m.revealsBySlot.WithLabelValues(itoa(ev.Slot)).Inc()
	m.stackingOrder.Set(float64(ev.Z))
	if ev.Preempted {
		m.preemptions.Inc()
	}
}

// ActivityChanged implements trail.Observer.
func (m *Manager) ActivityChanged(active int, idle bool) {
	if !m.enabled {
		return
	}
	m.activeAnims.Set(float64(active))
	if idle {
		m.idle.Set(1)
	} else {
		m.idle.Set(0)
	}
}

// RecordFrame counts one scheduler frame.
func (m *Manager) RecordFrame() {
	if !m.enabled {
		return
	}
	m.frames.Inc()
}

// RecordMount counts a trail mount and the pool's unmeasured slots.
func (m *Manager) RecordMount(variant int, unmeasured int) {
	if !m.enabled {
		return
	}
	m.mounts.WithLabelValues(itoa(variant)).Inc()
	m.slotsUnmeasured.Set(float64(unmeasured))
	m.activeAnims.Set(0)
	m.idle.Set(1)
}
