package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus counters for the POS event stream, exposed on the metrics
// server.
var (
	LinesAdded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "comanda_order_lines_added_total",
		Help: "Order lines added to tables, by source.",
	}, []string{"source"}) // manual | voice

	DishesSentToKitchen = promauto.NewCounter(prometheus.CounterOpts{
		Name: "comanda_dishes_sent_to_kitchen_total",
		Help: "Dishes fired to the kitchen.",
	})

	TablesClosed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "comanda_tables_closed_total",
		Help: "Tables settled and freed.",
	})

	VoiceParses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "comanda_voice_parses_total",
		Help: "Voice order parse attempts, by outcome.",
	}, []string{"outcome"}) // ok | empty | error

	VoiceUnmatchedItems = promauto.NewCounter(prometheus.CounterOpts{
		Name: "comanda_voice_unmatched_items_total",
		Help: "Parsed items dropped for not matching the catalog.",
	})

	LLMCallDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "comanda_llm_call_seconds",
		Help:    "Latency of language model calls.",
		Buckets: prometheus.DefBuckets,
	})
)

// Monitor collects ad hoc gauges for the admin status endpoint.
type Monitor struct {
	metrics      map[string]interface{}
	metricsMutex sync.RWMutex
	startTime    time.Time
}

// NewMonitor creates a new monitoring instance
func NewMonitor() *Monitor {
	return &Monitor{
		metrics:   make(map[string]interface{}),
		startTime: time.Now(),
	}
}

// RecordMetric records a metric value
func (m *Monitor) RecordMetric(name string, value interface{}) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics[name] = value
}

// GetMetric returns a specific metric value
func (m *Monitor) GetMetric(name string) (interface{}, bool) {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()
	value, exists := m.metrics[name]
	return value, exists
}

// GetMetrics returns all current metrics
func (m *Monitor) GetMetrics() map[string]interface{} {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()

	// Create a copy to avoid concurrent map access
	metrics := make(map[string]interface{}, len(m.metrics))
	for k, v := range m.metrics {
		metrics[k] = v
	}

	// Add system metrics
	metrics["uptime_seconds"] = time.Since(m.startTime).Seconds()

	return metrics
}

// Reset clears all metrics
func (m *Monitor) Reset() {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics = make(map[string]interface{})
}
