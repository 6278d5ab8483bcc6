package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	APIEndpointRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "contact_mailer_api_endpoint_requests_total",
		Help: "Total number of requests per API endpoint",
	}, []string{"endpoint"})
	APIEndpointErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "contact_mailer_api_endpoint_errors_total",
		Help: "Total number of API responses with status >= 400 per endpoint",
	}, []string{"endpoint", "status_code"})
	APIEndpointDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "contact_mailer_api_endpoint_duration_seconds",
		Help:    "API endpoint latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	// ContactSubmissions counts submissions by outcome: accepted, invalid, failed.
	ContactSubmissions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "contact_mailer_submissions_total",
		Help: "Total number of contact form submissions by outcome",
	}, []string{"outcome"})

	// Mail metrics
	MailSendSuccess = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "contact_mailer_mail_send_success_total",
		Help: "Total number of successful mail sends",
	}, []string{"host", "kind"})
	MailSendFailure = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "contact_mailer_mail_send_failure_total",
		Help: "Total number of failed mail sends",
	}, []string{"host", "kind"})
)

func init() {
	prometheus.MustRegister(APIEndpointRequests)
	prometheus.MustRegister(APIEndpointErrors)
	prometheus.MustRegister(APIEndpointDuration)
	prometheus.MustRegister(ContactSubmissions)
	prometheus.MustRegister(MailSendSuccess)
	prometheus.MustRegister(MailSendFailure)
}

// MetricsHandler returns an http.Handler exposing Prometheus metrics.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// InstrumentedHandler wraps a gin handler to record request count, latency
// and error status codes under the given endpoint label.
func InstrumentedHandler(endpoint string, handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		APIEndpointRequests.WithLabelValues(endpoint).Inc()
		handler(c)
		APIEndpointDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
		if status := c.Writer.Status(); status >= 400 {
			APIEndpointErrors.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
		}
	}
}
