package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "itms_"

// Ingest outcomes.
const (
	ResultSuccess       = "success"
	ResultInvalidFormat = "invalid_format"
	ResultStoreError    = "store_error"
)

var (
	registerOnce sync.Once

	ingestRequests *prometheus.CounterVec
	faultEvents    *prometheus.CounterVec
	tsFallbacks    prometheus.Counter
)

// Init registers the ingestion pipeline metrics. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		ingestRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "ingest_requests_total",
				Help: "Total telemetry ingest attempts by result",
			},
			[]string{"result"},
		)
		faultEvents = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "fault_events_total",
				Help: "Total fault events created by category and severity",
			},
			[]string{"category", "severity"},
		)
		tsFallbacks = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "timestamp_fallbacks_total",
				Help: "Total readings ingested with an unparsable device timestamp",
			},
		)

		prometheus.MustRegister(ingestRequests, faultEvents, tsFallbacks)
	})
}

// ObserveIngest counts one ingest attempt with the given result label.
func ObserveIngest(result string) {
	if ingestRequests == nil {
		return
	}
	ingestRequests.WithLabelValues(result).Inc()
}

// ObserveFaultEvent counts one created fault event.
func ObserveFaultEvent(category, severity string) {
	if faultEvents == nil {
		return
	}
	faultEvents.WithLabelValues(category, severity).Inc()
}

// ObserveTimestampFallback counts one timestamp parse fallback.
func ObserveTimestampFallback() {
	if tsFallbacks == nil {
		return
	}
	tsFallbacks.Inc()
}
