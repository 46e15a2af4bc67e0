package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the contract
// pipeline and the HTTP surface.
type MetricsService struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	contractsGenerated prometheus.Counter
	contractsSigned    prometheus.Counter
	conversionDuration prometheus.Histogram
	emailFailures      prometheus.Counter
	cacheHits          prometheus.Counter
	cacheMisses        prometheus.Counter
}

// NewMetricsService registers the portal's Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	contractsGenerated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "contracts_generated_total",
		Help: "Contracts generated through the wizard",
	})

	contractsSigned := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "contracts_signed_total",
		Help: "Contracts countersigned on the public page",
	})

	conversionDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pdf_conversion_duration_seconds",
		Help:    "DOCX to PDF conversion latency",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30},
	})

	emailFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "email_failures_total",
		Help: "Signing-link email deliveries that exhausted retries",
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_cache_hits_total",
		Help: "Course catalog cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_cache_misses_total",
		Help: "Course catalog cache misses",
	})

	registry.MustRegister(requestDuration, requestTotal, contractsGenerated, contractsSigned,
		conversionDuration, emailFailures, cacheHits, cacheMisses)

	return &MetricsService{
		registry:           registry,
		handler:            promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:    requestDuration,
		requestTotal:       requestTotal,
		contractsGenerated: contractsGenerated,
		contractsSigned:    contractsSigned,
		conversionDuration: conversionDuration,
		emailFailures:      emailFailures,
		cacheHits:          cacheHits,
		cacheMisses:        cacheMisses,
	}
}

// Handler exposes the scrape endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// RecordHTTPRequest observes one completed request.
func (s *MetricsService) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if s == nil {
		return
	}
	labels := []string{method, path, strconv.Itoa(status)}
	s.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	s.requestTotal.WithLabelValues(labels...).Inc()
}

// RecordContractGenerated counts a successful generation.
func (s *MetricsService) RecordContractGenerated() {
	if s != nil {
		s.contractsGenerated.Inc()
	}
}

// RecordContractSigned counts a successful countersignature.
func (s *MetricsService) RecordContractSigned() {
	if s != nil {
		s.contractsSigned.Inc()
	}
}

// ObserveConversion records one DOCX to PDF conversion.
func (s *MetricsService) ObserveConversion(duration time.Duration) {
	if s != nil {
		s.conversionDuration.Observe(duration.Seconds())
	}
}

// RecordEmailFailure counts a delivery that exhausted its retries.
func (s *MetricsService) RecordEmailFailure() {
	if s != nil {
		s.emailFailures.Inc()
	}
}

// RecordCacheLookup counts a catalog cache hit or miss.
func (s *MetricsService) RecordCacheLookup(hit bool) {
	if s == nil {
		return
	}
	if hit {
		s.cacheHits.Inc()
	} else {
		s.cacheMisses.Inc()
	}
}
