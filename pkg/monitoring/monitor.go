package monitoring

import (
	"strconv"
	"sync"
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

	// 答题引擎指标
	AnswersChecked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "answers_checked_total",
			Help: "Total number of checked answers by exercise type and outcome",
		},
		[]string{"type", "correct"},
	)

	XPAwarded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "xp_awarded_total",
			Help: "Total XP awarded to users",
		},
	)

	LevelUps = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "level_ups_total",
			Help: "Total number of user level-ups",
		},
	)

	CheckAnswerRetries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "check_answer_retries_total",
			Help: "Check-answer transactions retried after a write conflict",
		},
	)
)

var registerOnce sync.Once

// Init 可重复调用，只注册一次
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			AnswersChecked,
			XPAwarded,
			LevelUps,
			CheckAnswerRetries,
		)
	})
}

// RecordAnswer 在答题事务提交后调用
func RecordAnswer(exerciseType string, correct bool, xp int, leveledUp bool) {
	AnswersChecked.WithLabelValues(exerciseType, strconv.FormatBool(correct)).Inc()
	if xp > 0 {
		XPAwarded.Add(float64(xp))
	}
	if leveledUp {
		LevelUps.Inc()
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
