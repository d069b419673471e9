package core

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes engine counters. All engine components accept a nil
// *Metrics and skip instrumentation in that case.
type Metrics struct {
	Broadcasts        prometheus.Counter
	SyncWrites        *prometheus.CounterVec
	LimitCorrections  prometheus.Counter
	CapacityExhausted prometheus.Counter
}

// Sync write outcome labels.
const (
	SyncApplied = "applied"
	SyncSkipped = "skipped"
)

// NewMetrics builds and registers the engine metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Broadcasts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bcaguide_settings_broadcasts_total",
			Help: "Settings events fanned out over the component bus.",
		}),
		SyncWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bcaguide_sync_writes_total",
			Help: "Cross-table synced field writes by outcome.",
		}, []string{"outcome"}),
		LimitCorrections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bcaguide_limit_sum_corrections_total",
			Help: "Columns corrected because their sum exceeded the bound.",
		}),
		CapacityExhausted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bcaguide_capacity_exhausted_total",
			Help: "Row additions rejected by the capacity counter.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Broadcasts, m.SyncWrites, m.LimitCorrections, m.CapacityExhausted)
	}
	return m
}

func (m *Metrics) countSync(applied bool) {
	if m == nil {
		return
	}
	if applied {
		m.SyncWrites.WithLabelValues(SyncApplied).Inc()
	} else {
		m.SyncWrites.WithLabelValues(SyncSkipped).Inc()
	}
}

func (m *Metrics) countLimit(changed bool) {
	if m == nil || !changed {
		return
	}
	m.LimitCorrections.Inc()
}

func (m *Metrics) countCapacityExhausted() {
	if m == nil {
		return
	}
	m.CapacityExhausted.Inc()
}
