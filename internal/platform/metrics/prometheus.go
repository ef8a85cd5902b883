package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	SearchResults       prometheus.Histogram
	ListingsCreated     prometheus.Counter
	ListingsDeleted     prometheus.Counter
	QuotaRejections     prometheus.Counter
	ViewsCounted        prometheus.Counter
	ViewsDeduplicated   prometheus.Counter
	ListingsSwept       prometheus.Counter
}

// New creates and registers all collectors on a private registry
func New(namespace string) *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		SearchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_matches",
			Help:      "Number of listings matching a search before pagination.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
		}),
		ListingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listings_created_total",
			Help:      "Garage sales created.",
		}),
		ListingsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listings_deleted_total",
			Help:      "Garage sales deleted.",
		}),
		QuotaRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quota_rejections_total",
			Help:      "Create attempts rejected by the monthly limit.",
		}),
		ViewsCounted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "views_counted_total",
			Help:      "Listing views that incremented the counter.",
		}),
		ViewsDeduplicated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "views_deduplicated_total",
			Help:      "Listing views ignored as repeats or owner views.",
		}),
		ListingsSwept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listings_swept_total",
			Help:      "Expired listings marked completed by the sweeper.",
		}),
	}

	m.Registry.MustRegister(
		m.HTTPRequests,
		m.HTTPRequestDuration,
		m.SearchResults,
		m.ListingsCreated,
		m.ListingsDeleted,
		m.QuotaRejections,
		m.ViewsCounted,
		m.ViewsDeduplicated,
		m.ListingsSwept,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
