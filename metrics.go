package ctxlog

import "github.com/prometheus/client_golang/prometheus"

/*
metrics.go

Optional delivery counters. The facade works without them (nil *Metrics is a
valid, counting-free receiver), an application that already scrapes
prometheus attaches them with SetMetrics.
*/

// Drop reason labels.
const (
	_DROP_THRESHOLD = "threshold"
	_DROP_FILTER    = "filter"
)

// Metrics counts delivered and dropped messages, labeled by level name and,
// for drops, by the reason (threshold or filter).
type Metrics struct {
	delivered *prometheus.CounterVec
	dropped   *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them on reg (registration is
// skipped when reg is nil, which keeps tests free of global registry
// collisions).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		delivered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ctxlog_messages_delivered_total",
			Help: "Messages that reached at least one sink.",
		}, []string{"level"}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ctxlog_messages_dropped_total",
			Help: "Messages dropped before dispatch, by reason.",
		}, []string{"level", "reason"}),
	}
	if reg != nil {
		reg.MustRegister(m.delivered, m.dropped)
	}
	return m
}

func (m *Metrics) countDelivered(level LogLevel) {
	if m == nil {
		return
	}
	m.delivered.WithLabelValues(LevelName(level)).Inc()
}

func (m *Metrics) countDropped(level LogLevel, reason string) {
	if m == nil {
		return
	}
	m.dropped.WithLabelValues(LevelName(level), reason).Inc()
}
