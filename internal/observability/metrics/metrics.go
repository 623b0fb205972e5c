package metrics

import "github.com/prometheus/client_golang/prometheus"

// ChatMetrics exposes counters/histograms for chat turns and form submissions.
type ChatMetrics struct {
	turnsTotal        *prometheus.CounterVec
	completionLatency *prometheus.HistogramVec
	autofillTotal     *prometheus.CounterVec
	reservationsTotal *prometheus.CounterVec
}

func NewChatMetrics(reg prometheus.Registerer) *ChatMetrics {
	m := &ChatMetrics{
		turnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ecocenter",
			Subsystem: "chat",
			Name:      "turns_total",
			Help:      "Total chat turns processed",
		}, []string{"outcome"}),
		completionLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ecocenter",
			Subsystem: "chat",
			Name:      "completion_latency_seconds",
			Help:      "Latency of completion-service calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider"}),
		autofillTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ecocenter",
			Subsystem: "chat",
			Name:      "autofill_total",
			Help:      "Auto-fill blocks by validation status",
		}, []string{"status"}),
		reservationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ecocenter",
			Subsystem: "reservation",
			Name:      "submissions_total",
			Help:      "Reservation form submissions by result",
		}, []string{"result"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.turnsTotal, m.completionLatency, m.autofillTotal, m.reservationsTotal)
	return m
}

func (m *ChatMetrics) ObserveTurn(outcome string) {
	if m == nil {
		return
	}
	m.turnsTotal.WithLabelValues(outcome).Inc()
}

func (m *ChatMetrics) ObserveCompletionLatency(provider string, seconds float64) {
	if m == nil {
		return
	}
	m.completionLatency.WithLabelValues(provider).Observe(seconds)
}

func (m *ChatMetrics) ObserveAutoFill(status string) {
	if m == nil {
		return
	}
	m.autofillTotal.WithLabelValues(status).Inc()
}

func (m *ChatMetrics) ObserveReservation(result string) {
	if m == nil {
		return
	}
	m.reservationsTotal.WithLabelValues(result).Inc()
}
