package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Service registers and exposes the client's Prometheus collectors: poll
// loop outcomes, mutation dispatch outcomes, and gateway HTTP traffic.
type Service struct {
	registry *prometheus.Registry
	handler  http.Handler

	pollTotal        *prometheus.CounterVec
	pollDuration     *prometheus.HistogramVec
	mutationTotal    *prometheus.CounterVec
	mutationDuration *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
}

// New registers the collectors on a private registry.
func New() *Service {
	registry := prometheus.NewRegistry()

	pollTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tracker_poll_ticks_total",
		Help: "Poll ticks per mirrored resource, by outcome",
	}, []string{"resource", "outcome"})

	pollDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tracker_poll_duration_seconds",
		Help:    "Duration of poll fetches per mirrored resource",
		Buckets: prometheus.DefBuckets,
	}, []string{"resource"})

	mutationTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tracker_mutations_total",
		Help: "Dispatched mutations by resource, operation and outcome",
	}, []string{"resource", "operation", "outcome"})

	mutationDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tracker_mutation_duration_seconds",
		Help:    "Duration of mutation round trips",
		Buckets: prometheus.DefBuckets,
	}, []string{"resource", "operation"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_http_requests_total",
		Help: "Total local gateway HTTP requests",
	}, []string{"method", "path", "status"})

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gateway_http_request_duration_seconds",
		Help:    "Duration of local gateway HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	registry.MustRegister(pollTotal, pollDuration, mutationTotal, mutationDuration, requestTotal, requestDuration)

	return &Service{
		registry:         registry,
		handler:          promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		pollTotal:        pollTotal,
		pollDuration:     pollDuration,
		mutationTotal:    mutationTotal,
		mutationDuration: mutationDuration,
		requestTotal:     requestTotal,
		requestDuration:  requestDuration,
	}
}

// PollTick implements the mirror observer contract.
func (s *Service) PollTick(resource string, success bool, duration time.Duration) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	s.pollTotal.WithLabelValues(resource, outcome).Inc()
	s.pollDuration.WithLabelValues(resource).Observe(duration.Seconds())
}

// ObserveMutation records one mutation dispatch.
func (s *Service) ObserveMutation(resource, operation string, err error, duration time.Duration) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	s.mutationTotal.WithLabelValues(resource, operation, outcome).Inc()
	s.mutationDuration.WithLabelValues(resource, operation).Observe(duration.Seconds())
}

// Handler serves the scrape endpoint.
func (s *Service) Handler() http.Handler {
	return s.handler
}

// GinMiddleware captures gateway request metrics.
func (s *Service) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		status := strconv.Itoa(c.Writer.Status())
		s.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		s.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}
