package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TerminalMetrics records counters for the billing station.
type TerminalMetrics struct {
	scanSessions  *prometheus.CounterVec
	decodes       prometheus.Counter
	bills         *prometheus.CounterVec
	backendErrors *prometheus.CounterVec
	backendCalls  *prometheus.HistogramVec
}

// NewTerminalMetrics registers the terminal metrics on the provided registerer.
func NewTerminalMetrics(reg prometheus.Registerer) *TerminalMetrics {
	if reg == nil {
		return &TerminalMetrics{}
	}
	scanSessions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scan_sessions_total",
		Help: "Barcode scan sessions by terminal outcome.",
	}, []string{"outcome"})
	decodes := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "barcodes_decoded_total",
		Help: "Successfully decoded barcodes.",
	})
	bills := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bills_submitted_total",
		Help: "Bill submissions by result.",
	}, []string{"result"})
	backendErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "backend_errors_total",
		Help: "Failed backend calls by endpoint group.",
	}, []string{"group"})
	backendCalls := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "backend_call_duration_seconds",
		Help:    "Duration of backend REST calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"group"})
	reg.MustRegister(scanSessions, decodes, bills, backendErrors, backendCalls)
	return &TerminalMetrics{
		scanSessions:  scanSessions,
		decodes:       decodes,
		bills:         bills,
		backendErrors: backendErrors,
		backendCalls:  backendCalls,
	}
}

// ScanSessionEnded records a finished scan session with its outcome.
func (m *TerminalMetrics) ScanSessionEnded(outcome string) {
	if m == nil || m.scanSessions == nil {
		return
	}
	m.scanSessions.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// BarcodeDecoded increments the decode counter.
func (m *TerminalMetrics) BarcodeDecoded() {
	if m == nil || m.decodes == nil {
		return
	}
	m.decodes.Inc()
}

// BillSubmitted records a submission attempt result.
func (m *TerminalMetrics) BillSubmitted(result string) {
	if m == nil || m.bills == nil {
		return
	}
	m.bills.WithLabelValues(normalizeLabel(result)).Inc()
}

// BackendError counts a failed backend call for the endpoint group.
func (m *TerminalMetrics) BackendError(group string) {
	if m == nil || m.backendErrors == nil {
		return
	}
	m.backendErrors.WithLabelValues(normalizeLabel(group)).Inc()
}

// ObserveBackendCall records the duration of a backend call.
func (m *TerminalMetrics) ObserveBackendCall(group string, duration time.Duration) {
	if m == nil || m.backendCalls == nil {
		return
	}
	m.backendCalls.WithLabelValues(normalizeLabel(group)).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
