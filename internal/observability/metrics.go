package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	usersRegisteredCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "exercise_tracker",
		Subsystem: "persistence",
		Name:      "users_registered_total",
		Help:      "Number of users inserted into storage.",
	})

	exercisesLoggedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "exercise_tracker",
		Subsystem: "persistence",
		Name:      "exercises_logged_total",
		Help:      "Number of exercises inserted into storage.",
	})

	exerciseLoggedGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "exercise_tracker",
		Subsystem: "persistence",
		Name:      "last_exercise_logged_timestamp_seconds",
		Help:      "Unix timestamp of the most recent exercise persisted.",
	})

	storageFailureCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "exercise_tracker",
		Subsystem: "persistence",
		Name:      "failures_total",
		Help:      "Storage operations that failed with a driver or I/O error, labeled by operation.",
	}, []string{"op"})

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "exercise_tracker",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Latency of HTTP requests, labeled by method, route and status.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
	}, []string{"method", "route", "status"})

	domainErrorCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "exercise_tracker",
		Subsystem: "http",
		Name:      "errors_total",
		Help:      "Error responses, labeled by error kind.",
	}, []string{"kind"})
)

func init() {
	prometheus.MustRegister(
		usersRegisteredCounter,
		exercisesLoggedCounter,
		exerciseLoggedGauge,
		storageFailureCounter,
		requestDuration,
		domainErrorCounter,
	)
}

// RecordUserRegistered counts a persisted user.
func RecordUserRegistered() {
	usersRegisteredCounter.Inc()
}

// RecordExerciseLogged counts a persisted exercise and moves the watermark gauge.
func RecordExerciseLogged(ts time.Time) {
	exercisesLoggedCounter.Inc()
	if ts.IsZero() {
		return
	}
	exerciseLoggedGauge.Set(float64(ts.Unix()))
}

// RecordStorageFailure counts a failed storage operation.
func RecordStorageFailure(op string) {
	storageFailureCounter.WithLabelValues(op).Inc()
}

// ObserveRequest records the latency of a served request.
func ObserveRequest(method, route, status string, elapsed time.Duration) {
	requestDuration.WithLabelValues(method, route, status).Observe(elapsed.Seconds())
}

// RecordErrorResponse counts an error response by kind.
func RecordErrorResponse(kind string) {
	domainErrorCounter.WithLabelValues(kind).Inc()
}
