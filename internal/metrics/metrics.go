package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "job_intake",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "job_intake",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "job_intake",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	usersRegistered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "job_intake",
			Subsystem: "intake",
			Name:      "users_registered_total",
			Help:      "Total number of new applicant emails registered.",
		},
	)

	applicationsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "job_intake",
			Subsystem: "intake",
			Name:      "applications_created_total",
			Help:      "Total number of applications submitted through the job form.",
		},
	)

	statusTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "job_intake",
			Subsystem: "intake",
			Name:      "status_transitions_total",
			Help:      "Total number of admin status updates by target status.",
		},
		[]string{"status"},
	)

	adminLogins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "job_intake",
			Subsystem: "admin",
			Name:      "logins_total",
			Help:      "Admin login attempts by result.",
		},
		[]string{"result"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		usersRegistered,
		applicationsCreated,
		statusTransitions,
		adminLogins,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// InFlight tracks a request for the duration of the returned func.
func InFlight() func() {
	httpInFlight.Inc()
	return httpInFlight.Dec
}

// RecordHTTPRequest records a finished HTTP request.
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	method = strings.ToUpper(method)
	httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func RecordUserRegistered() { usersRegistered.Inc() }

func RecordApplicationCreated() { applicationsCreated.Inc() }

// RecordStatusTransition counts an admin update to status.
func RecordStatusTransition(status string) {
	statusTransitions.WithLabelValues(status).Inc()
}

// RecordAdminLogin counts a login attempt; result is "success", "failure"
// or "throttled".
func RecordAdminLogin(result string) {
	adminLogins.WithLabelValues(result).Inc()
}
