package guard

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts guard decisions.
type Metrics struct {
	decisions *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg when it is
// not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		decisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "route_guard_decisions_total",
				Help: "Route guard decisions by action and route class.",
			},
			[]string{"action", "class"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.decisions)
	}
	return m
}

func (m *Metrics) observe(d Decision) {
	if m == nil {
		return
	}
	m.decisions.WithLabelValues(d.Action.String(), string(d.Class)).Inc()
}
