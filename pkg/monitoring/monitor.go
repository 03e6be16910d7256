package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	AttemptsScored = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exam_attempts_scored_total",
			Help: "Submitted attempts that were scored, by outcome",
		},
		[]string{"outcome"},
	)

	ScoreRatio = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "exam_attempt_score_ratio",
			Help:    "Final score divided by total marks for scored attempts",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	QuestionCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exam_question_cache_lookups_total",
			Help: "Question cache lookups, by result",
		},
		[]string{"result"},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(AttemptsScored)
	prometheus.MustRegister(ScoreRatio)
	prometheus.MustRegister(QuestionCacheLookups)
}

// ObserveScore records one scored attempt.
func ObserveScore(score, totalMarks float64, timedOut bool) {
	outcome := "submitted"
	if timedOut {
		outcome = "timed_out"
	}
	AttemptsScored.WithLabelValues(outcome).Inc()
	if totalMarks > 0 {
		ScoreRatio.Observe(score / totalMarks)
	}
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
