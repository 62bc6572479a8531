package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/vitrine/pkg/domain"
)

const namespace = "vitrine"

// Metrics holds the collectors fed by engine hooks.
type Metrics struct {
	SlideChanges *prometheus.CounterVec
	NodeVisits   *prometheus.CounterVec
	Selections   *prometheus.CounterVec
	Effects      *prometheus.CounterVec
	Fallbacks    *prometheus.CounterVec
	Sessions     *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SlideChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "carousel_slide_changes_total",
			Help:      "Slide moves per carousel, split by auto-advance and visitor input.",
		}, []string{"carousel", "cause"}),
		NodeVisits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dialogue_node_visits_total",
			Help:      "Total number of chatbot node visits.",
		}, []string{"node_id"}),
		Selections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dialogue_selections_total",
			Help:      "Options chosen by visitors, per node.",
		}, []string{"node_id"}),
		Effects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dialogue_effects_total",
			Help:      "Side effects dispatched by the chatbot, per kind.",
		}, []string{"kind"}),
		Fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dialogue_fallbacks_total",
			Help:      "Transitions to unknown nodes that fell back to the root.",
		}, []string{"missing_node"}),
		Sessions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_sessions",
			Help:      "Live widget instances held in memory.",
		}, []string{"kind"}),
	}
	reg.MustRegister(m.SlideChanges, m.NodeVisits, m.Selections, m.Effects, m.Fallbacks, m.Sessions)
	return m
}

// CarouselHooks counts slide moves. Settle and suppression updates are not moves.
func (m *Metrics) CarouselHooks() domain.CarouselHooks {
	return domain.CarouselHooks{
		OnChange: func(_ context.Context, e *domain.SlideEvent) {
			if !e.Snapshot.State.Transitioning {
				return
			}
			cause := "manual"
			if e.Auto {
				cause = "auto"
			}
			m.SlideChanges.WithLabelValues(e.Carousel, cause).Inc()
		},
	}
}

// DialogueHooks counts conversation events.
func (m *Metrics) DialogueHooks() domain.DialogueHooks {
	return domain.DialogueHooks{
		OnNodeEnter: func(_ context.Context, e *domain.DialogueEvent) {
			m.NodeVisits.WithLabelValues(e.NodeID).Inc()
		},
		OnOptionSelected: func(_ context.Context, e *domain.DialogueEvent) {
			m.Selections.WithLabelValues(e.NodeID).Inc()
		},
		OnEffect: func(_ context.Context, e *domain.DialogueEvent) {
			if e.Effect != nil {
				m.Effects.WithLabelValues(string(e.Effect.Kind)).Inc()
			}
		},
		OnFallback: func(_ context.Context, e *domain.DialogueEvent) {
			m.Fallbacks.WithLabelValues(e.NodeID).Inc()
		},
	}
}

// SessionOpened increments the live gauge for kind.
func (m *Metrics) SessionOpened(kind string) {
	m.Sessions.WithLabelValues(kind).Inc()
}

// SessionClosed decrements the live gauge for kind.
func (m *Metrics) SessionClosed(kind string) {
	m.Sessions.WithLabelValues(kind).Dec()
}
