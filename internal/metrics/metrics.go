// Package metrics exposes editor activity as Prometheus counters fed by lifecycle hooks.
package metrics

import (
	"io"

	"github.com/aretw0/casetree/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Metrics groups the editor collectors.
type Metrics struct {
	registry     *prometheus.Registry
	edits        *prometheus.CounterVec
	steps        *prometheus.CounterVec
	loads        prometheus.Counter
	loadFailures *prometheus.CounterVec
	saves        prometheus.Counter
	savedBytes   prometheus.Counter
}

// New creates the collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		edits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "casetree_edits_total",
			Help: "Changes recorded in the undo history, by label.",
		}, []string{"label"}),
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "casetree_history_steps_total",
			Help: "Undo and redo operations.",
		}, []string{"direction"}),
		loads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "casetree_loads_total",
			Help: "Case documents loaded.",
		}),
		loadFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "casetree_load_failures_total",
			Help: "Case documents rejected on load, by kind.",
		}, []string{"kind"}),
		saves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "casetree_saves_total",
			Help: "Case documents saved.",
		}),
		savedBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "casetree_saved_bytes_total",
			Help: "Bytes written by saves.",
		}),
	}
	m.registry.MustRegister(m.edits, m.steps, m.loads, m.loadFailures, m.saves, m.savedBytes)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Hooks returns lifecycle callbacks that update the counters.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRecord: func(e *domain.HistoryEvent) {
			m.edits.WithLabelValues(e.Label).Inc()
		},
		OnUndo: func(e *domain.HistoryEvent) {
			m.steps.WithLabelValues(string(domain.EventUndo)).Inc()
		},
		OnRedo: func(e *domain.HistoryEvent) {
			m.steps.WithLabelValues(string(domain.EventRedo)).Inc()
		},
		OnLoad: func(e *domain.DocumentEvent) {
			if e.Type == domain.EventLoadFailed {
				m.loadFailures.WithLabelValues(e.Kind).Inc()
				return
			}
			m.loads.Inc()
		},
		OnSave: func(e *domain.DocumentEvent) {
			m.saves.Inc()
			m.savedBytes.Add(float64(e.Bytes))
		},
	}
}

// WriteText dumps every collected family in the Prometheus text exposition format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
