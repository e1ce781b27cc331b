package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors of one server instance. Collectors live on a
// registry owned by the caller so tests can build isolated instances.
type Metrics struct {
	registry *prometheus.Registry

	scrapes        *prometheus.CounterVec
	scrapeDuration *prometheus.HistogramVec
	requests       *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		scrapes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "zodiacle_upstream_scrapes_total",
			Help: "Upstream page fetches by content marker and outcome",
		}, []string{"marker", "outcome"}),
		scrapeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "zodiacle_upstream_scrape_seconds",
			Help:    "Latency of upstream page fetches",
			Buckets: prometheus.DefBuckets,
		}, []string{"marker"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "zodiacle_http_requests_total",
			Help: "Handled API requests by route and status code",
		}, []string{"method", "route", "code"}),
	}
	reg.MustRegister(m.scrapes, m.scrapeDuration, m.requests)
	return m
}

// ObserveScrape implements scraper.Recorder.
func (m *Metrics) ObserveScrape(marker, outcome string, elapsed time.Duration) {
	m.scrapes.WithLabelValues(marker, outcome).Inc()
	m.scrapeDuration.WithLabelValues(marker).Observe(elapsed.Seconds())
}

// Middleware counts requests by matched route template, so unmatched paths
// collapse into a single label value.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
