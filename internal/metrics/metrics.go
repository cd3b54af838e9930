package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	initOnce sync.Once

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	documentUploadsTotal    prometheus.Counter
	signedLinksTotal        prometheus.Counter
	signedLinkFailuresTotal prometheus.Counter
)

// InitMetrics registers all collectors. Safe to call more than once.
func InitMetrics() {
	initOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nido_http_requests_total",
			Help: "Total HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"})

		httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nido_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"})

		documentUploadsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nido_document_uploads_total",
			Help: "Total medical documents uploaded to the vault.",
		})

		signedLinksTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nido_signed_links_issued_total",
			Help: "Total signed view links issued.",
		})

		signedLinkFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nido_signed_link_failures_total",
			Help: "Total signed link issuance failures.",
		})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpRequestDuration,
			documentUploadsTotal,
			signedLinksTotal,
			signedLinkFailuresTotal,
		)
	})
}

// Middleware records request counts and latency per route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		if httpRequestsTotal != nil {
			httpRequestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		}
		if httpRequestDuration != nil {
			httpRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		}
	}
}

// Register attaches the Prometheus metrics endpoint to the router.
func Register(router *gin.Engine, path string) {
	router.GET(path, gin.WrapH(promhttp.Handler()))
}

// DocumentUploaded counts a successful vault upload.
func DocumentUploaded() {
	if documentUploadsTotal != nil {
		documentUploadsTotal.Inc()
	}
}

// SignedLinkIssued counts a successfully issued view link.
func SignedLinkIssued() {
	if signedLinksTotal != nil {
		signedLinksTotal.Inc()
	}
}

// SignedLinkFailed counts a failed view link issuance.
func SignedLinkFailed() {
	if signedLinkFailuresTotal != nil {
		signedLinkFailuresTotal.Inc()
	}
}
