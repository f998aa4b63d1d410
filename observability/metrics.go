package observability

import (
	"net/http"
	"nutzy-site/domain"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "nutzy"

// Metrics collects the service counters. It satisfies the observer interfaces of the
// remote client, the loaders and the form service.
type Metrics struct {
	registry *prometheus.Registry

	remoteRequests *prometheus.CounterVec
	remoteDuration *prometheus.HistogramVec
	loads          *prometheus.CounterVec
	loadDuration   *prometheus.HistogramVec
	entries        *prometheus.GaugeVec
	skipped        *prometheus.CounterVec
	submissions    *prometheus.CounterVec
	indexSize      prometheus.Gauge
}

func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: reg,
		remoteRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remote_requests_total",
			Help:      "Requests sent to the remote store",
		}, []string{"operation", "status"}),
		remoteDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "remote_request_duration_seconds",
			Help:      "Remote store round trip duration",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_loads_total",
			Help:      "Content loads by collection and outcome",
		}, []string{"collection", "outcome"}),
		loadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "content_load_duration_seconds",
			Help:      "Duration of a full collection load",
			Buckets:   prometheus.DefBuckets,
		}, []string{"collection"}),
		entries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "content_entries",
			Help:      "Entries in the current snapshot",
		}, []string{"collection"}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_skipped_records_total",
			Help:      "Records rejected while loading",
		}, []string{"collection"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "form_submissions_total",
			Help:      "Form actions by form and outcome",
		}, []string{"form", "outcome"}),
		indexSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "search_index_documents",
			Help:      "Documents in the search index",
		}),
	}
	reg.MustRegister(
		m.remoteRequests,
		m.remoteDuration,
		m.loads,
		m.loadDuration,
		m.entries,
		m.skipped,
		m.submissions,
		m.indexSize,
	)
	return m
}

func (m *Metrics) ObserveRequest(operation string, status int, duration time.Duration) {
	label := strconv.Itoa(status)
	if status == 0 {
		label = "error"
	}
	m.remoteRequests.WithLabelValues(operation, label).Inc()
	m.remoteDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *Metrics) ObserveLoad(report domain.LoadReport, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.loads.WithLabelValues(report.Collection, outcome).Inc()
	m.loadDuration.WithLabelValues(report.Collection).Observe(report.Duration.Seconds())
	m.entries.WithLabelValues(report.Collection).Set(float64(report.Loaded))
	m.skipped.WithLabelValues(report.Collection).Add(float64(report.Skipped))
}

func (m *Metrics) ObserveSubmission(form, outcome string) {
	m.submissions.WithLabelValues(form, outcome).Inc()
}

func (m *Metrics) SetIndexSize(n int) {
	m.indexSize.Set(float64(n))
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
