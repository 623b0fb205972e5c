package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestChatMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewChatMetrics(reg)
	m.ObserveTurn("ok")
	m.ObserveCompletionLatency("openai", 0.5)
	m.ObserveAutoFill("validated")
	m.ObserveReservation("accepted")
}

func TestChatMetricsNilSafe(t *testing.T) {
	var m *ChatMetrics
	m.ObserveTurn("ok")
	m.ObserveCompletionLatency("openai", 0.1)
	m.ObserveAutoFill("rejected")
	m.ObserveReservation("invalid")
}
