// Package metrics публикует метрики Prometheus для HTTP-слоя и обогащения анкет.
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Исходы обращения к GitHub.
const (
	OutcomeSuccess = "success"
	OutcomeSkipped = "skipped"
	OutcomeStatus  = "status"
	OutcomeTimeout = "timeout"
	OutcomeNetwork = "network"
	OutcomeDecode  = "decode"
)

var (
	registerOnce sync.Once

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "portfolio",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Длительность обработки HTTP запросов (секунды).",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	requestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portfolio",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Количество HTTP запросов.",
		},
		[]string{"method", "path", "status"},
	)

	enrichmentTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portfolio",
			Subsystem: "enrichment",
			Name:      "requests_total",
			Help:      "Обращения к GitHub API по исходу.",
		},
		[]string{"outcome"},
	)
)

// Register регистрирует коллекторы в глобальном реестре. Повторные вызовы безопасны.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(requestDuration, requestTotal, enrichmentTotal)
	})
}

// GinMiddleware собирает длительность и количество запросов.
func GinMiddleware() gin.HandlerFunc {
	Register()

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		labels := prometheus.Labels{
			"method": c.Request.Method,
			"path":   path,
			"status": strconv.Itoa(c.Writer.Status()),
		}

		requestDuration.With(labels).Observe(time.Since(start).Seconds())
		requestTotal.With(labels).Inc()
	}
}

// ObserveEnrichment учитывает исход обращения к GitHub.
func ObserveEnrichment(outcome string) {
	enrichmentTotal.WithLabelValues(outcome).Inc()
}
