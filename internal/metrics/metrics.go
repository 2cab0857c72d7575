package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors used by the web application.
// It covers HTTP traffic, the per-request database connections and queries,
// and the background image downloads performed on every page render.
type Metrics struct {
	HTTPRequests      *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
	DBConnects        *prometheus.CounterVec
	DBQueryDuration   *prometheus.HistogramVec
	BackgroundFetches *prometheus.CounterVec
	EmployeesAdded    prometheus.Counter
}

// NewMetrics creates a new Metrics instance with the provided Registerer.
//
// Parameters:
//   - reg: A prometheus.Registerer used to register the metrics.
//
// Returns:
//   - A pointer to the newly created Metrics instance.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		HTTPRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "hestia_http_requests_total",
			Help: "Total number of HTTP requests served, by route and status code.",
		}, []string{"route", "code"}),
		HTTPDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hestia_http_request_duration_seconds",
			Help:    "Time spent serving HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		DBConnects: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "hestia_db_connects_total",
			Help: "Database connection attempts, by outcome.",
		}, []string{"status"}),
		DBQueryDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hestia_db_query_duration_seconds",
			Help:    "Duration of database queries.",
			Buckets: prometheus.DefBuckets,
		}, []string{"query_type"}), // query_type: 'insert_employee', 'fetch_employee', 'ping'
		BackgroundFetches: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "hestia_background_fetches_total",
			Help: "Background image resolutions, by result.",
		}, []string{"result"}),
		EmployeesAdded: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "hestia_employees_added_total",
			Help: "Total number of employee records inserted.",
		}),
	}

	metrics.DBConnects.WithLabelValues("success")
	metrics.DBConnects.WithLabelValues("failure")

	return metrics
}
