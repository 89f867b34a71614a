// Package metrics exposes Prometheus instrumentation for HTTP traffic and marketplace activity.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	ImagesProcessed      *prometheus.CounterVec
	ImageCompressionTime prometheus.Histogram
	ListingsCreatedTotal prometheus.Counter
	PremiumReviewsTotal  *prometheus.CounterVec
	PageViewsTotal       prometheus.Counter
	ExchangeRate         prometheus.Gauge
	RateRefreshFailures  prometheus.Counter
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),
		ImagesProcessed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carmarket_images_processed_total",
				Help: "Uploaded images by outcome",
			},
			[]string{"bucket", "result"},
		),
		ImageCompressionTime: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "carmarket_image_compression_seconds",
				Help:    "Time spent decoding, scaling and re-encoding an image",
				Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
		),
		ListingsCreatedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "carmarket_listings_created_total",
				Help: "Total number of listings created",
			},
		),
		PremiumReviewsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carmarket_premium_reviews_total",
				Help: "Premium requests reviewed by outcome",
			},
			[]string{"status"},
		),
		PageViewsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "carmarket_page_views_total",
				Help: "Total number of tracked page views",
			},
		),
		ExchangeRate: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "carmarket_exchange_rate_iqd_per_100_usd",
				Help: "Exchange rate currently used for price display",
			},
		),
		RateRefreshFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "carmarket_rate_refresh_failures_total",
				Help: "Failed attempts to reload the exchange rate",
			},
		),
	}
}

// Middleware records request counts and latency labelled by route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status()/100) + "xx"
		m.HTTPRequestDuration.WithLabelValues(path, c.Request.Method).Observe(time.Since(start).Seconds())
		m.HTTPRequestsTotal.WithLabelValues(path, c.Request.Method, status).Inc()
	}
}

// ObserveImage records the outcome of processing one uploaded image.
func (m *Metrics) ObserveImage(bucket, result string, took time.Duration) {
	if m == nil {
		return
	}
	m.ImagesProcessed.WithLabelValues(bucket, result).Inc()
	if took > 0 {
		m.ImageCompressionTime.Observe(took.Seconds())
	}
}

// ListingCreated counts a new listing.
func (m *Metrics) ListingCreated() {
	if m == nil {
		return
	}
	m.ListingsCreatedTotal.Inc()
}

// PremiumReviewed counts a review decision.
func (m *Metrics) PremiumReviewed(status string) {
	if m == nil {
		return
	}
	m.PremiumReviewsTotal.WithLabelValues(status).Inc()
}

// PageViewed counts a tracked page view.
func (m *Metrics) PageViewed() {
	if m == nil {
		return
	}
	m.PageViewsTotal.Inc()
}

// SetExchangeRate publishes the rate in effect.
func (m *Metrics) SetExchangeRate(rate float64) {
	if m == nil {
		return
	}
	m.ExchangeRate.Set(rate)
}

// RateRefreshFailed counts a failed rate reload.
func (m *Metrics) RateRefreshFailed() {
	if m == nil {
		return
	}
	m.RateRefreshFailures.Inc()
}
