package live

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "live"

// Metrics counts node activations, emissions and deliveries.
// A single Metrics can be shared by any number of graphs.
type Metrics struct {
	// Activations counts inactive to active transitions of derived nodes.
	Activations prometheus.Counter
	// Deactivations counts active to inactive transitions of derived nodes.
	Deactivations prometheus.Counter
	// ActiveNodes is the number of derived nodes currently subscribed upstream.
	ActiveNodes prometheus.Gauge
	// Emissions counts operator runs.
	// Labels: result (accepted, suppressed)
	Emissions *prometheus.CounterVec
	// Deliveries counts listener notifications.
	// Labels: mode (state, single)
	Deliveries *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Activations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "node_activations_total",
			Help:      "Total node activations",
		}),
		Deactivations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "node_deactivations_total",
			Help:      "Total node deactivations",
		}),
		ActiveNodes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "active_nodes",
			Help:      "Number of derived nodes subscribed to their source",
		}),
		Emissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "emissions_total",
			Help:      "Total upstream emissions by operator result",
		}, []string{"result"}),
		Deliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "deliveries_total",
			Help:      "Total listener notifications by delivery mode",
		}, []string{"mode"}),
	}
}

func (m *Metrics) Activated() {
	m.Activations.Inc()
	m.ActiveNodes.Inc()
}

func (m *Metrics) Deactivated() {
	m.Deactivations.Inc()
	m.ActiveNodes.Dec()
}

func (m *Metrics) Emitted(accepted bool) {
	result := "accepted"
	if !accepted {
		result = "suppressed"
	}
	m.Emissions.WithLabelValues(result).Inc()
}

func (m *Metrics) Delivered(single bool) {
	mode := "state"
	if single {
		mode = "single"
	}
	m.Deliveries.WithLabelValues(mode).Inc()
}
