package observability

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
)

const namespace = "skillbridge"

// Metrics owns a private prometheus registry. Every method is safe on a nil
// receiver so callers never branch on whether metrics are enabled.
type Metrics struct {
	registry *prometheus.Registry

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	apiInflight prometheus.Gauge

	wsConnections prometheus.Gauge
	wsDropped     prometheus.Counter

	quizScores        prometheus.Histogram
	lessonCompletions *prometheus.CounterVec
	notifications     *prometheus.CounterVec
	authFailures      *prometheus.CounterVec

	redisUp   prometheus.Gauge
	redisPing prometheus.Gauge

	sloCompliance *prometheus.GaugeVec
	sloBudget     *prometheus.GaugeVec
	sloBurn       *prometheus.GaugeVec

	// Raw totals read by the SLO evaluator.
	apiTotal        atomic.Int64
	apiErrors       atomic.Int64
	apiFast         atomic.Int64
	notifyPublished atomic.Int64
	notifyFailed    atomic.Int64
}

// fastRequest is the latency bound of the api_latency SLO.
const fastRequest = 500 * time.Millisecond

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Total API requests by method/route/status.",
		}, []string{"method", "route", "status"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "API request latency in seconds by method/route/status.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}, []string{"method", "route", "status"}),
		apiInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "api_inflight_requests",
			Help:      "In-flight API requests.",
		}),
		wsConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ws_connections",
			Help:      "Open notification websocket connections.",
		}),
		wsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ws_frames_dropped_total",
			Help:      "Realtime frames dropped on a full client buffer.",
		}),
		quizScores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "quiz_attempt_score",
			Help:      "Scores of submitted quiz attempts.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}),
		lessonCompletions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lesson_completions_total",
			Help:      "Lesson completion events by resulting progress status.",
		}, []string{"status"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notifications by outcome (created, published, publish_failed).",
		}, []string{"outcome"}),
		authFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_failures_total",
			Help:      "Rejected credentials by transport.",
		}, []string{"transport"}),
		redisUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "redis_up",
			Help:      "1 if the realtime redis answered the last ping.",
		}),
		redisPing: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "redis_ping_seconds",
			Help:      "Latency of the last realtime redis ping.",
		}),
		sloCompliance: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "slo_compliance_ratio",
			Help:      "SLI over the rolling window.",
		}, []string{"slo", "window"}),
		sloBudget: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "slo_error_budget_remaining_ratio",
			Help:      "Error budget left over the rolling window.",
		}, []string{"slo", "window"}),
		sloBurn: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "slo_burn_rate",
			Help:      "Error budget burn rate over the rolling window.",
		}, []string{"slo", "window"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.wsConnections,
		m.wsDropped,
		m.quizScores,
		m.lessonCompletions,
		m.notifications,
		m.authFailures,
		m.redisUp,
		m.redisPing,
		m.sloCompliance,
		m.sloBudget,
		m.sloBurn,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveAPI(method, route string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	code := strconv.Itoa(status)
	m.apiRequests.WithLabelValues(method, route, code).Inc()
	m.apiLatency.WithLabelValues(method, route, code).Observe(dur.Seconds())

	m.apiTotal.Add(1)
	if status >= 500 {
		m.apiErrors.Add(1)
	}
	if dur <= fastRequest {
		m.apiFast.Add(1)
	}
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) WSConnected() {
	if m == nil {
		return
	}
	m.wsConnections.Inc()
}

func (m *Metrics) WSDisconnected() {
	if m == nil {
		return
	}
	m.wsConnections.Dec()
}

func (m *Metrics) IncWSDropped() {
	if m == nil {
		return
	}
	m.wsDropped.Inc()
}

func (m *Metrics) ObserveQuizScore(score float64) {
	if m == nil {
		return
	}
	m.quizScores.Observe(score)
}

func (m *Metrics) IncLessonCompletion(status string) {
	if m == nil {
		return
	}
	m.lessonCompletions.WithLabelValues(status).Inc()
}

func (m *Metrics) IncNotification(outcome string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(outcome).Inc()
	switch outcome {
	case "published":
		m.notifyPublished.Add(1)
	case "publish_failed":
		m.notifyFailed.Add(1)
	}
}

func (m *Metrics) IncAuthFailure(transport string) {
	if m == nil {
		return
	}
	m.authFailures.WithLabelValues(transport).Inc()
}

// RegisterDB exports database/sql pool statistics for db.
func (m *Metrics) RegisterDB(db *gorm.DB, log *logger.Logger) {
	if m == nil || db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		if log != nil {
			log.Warn("metrics: db stats unavailable", "error", err)
		}
		return
	}
	if err := m.registry.Register(collectors.NewDBStatsCollector(sqlDB, namespace)); err != nil && log != nil {
		log.Warn("metrics: register db stats collector failed", "error", err)
	}
}

// StartRedisCollector pings addr every interval until ctx is done.
func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, addr string, interval time.Duration) {
	if m == nil {
		return
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return
	}
	if interval <= 0 {
		interval = 15 * time.Second
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				_ = rdb.Close()
				return
			case <-ticker.C:
				start := time.Now()
				if err := rdb.Ping(ctx).Err(); err != nil {
					m.redisUp.Set(0)
					if log != nil {
						log.Warn("metrics: redis ping failed", "error", err)
					}
					continue
				}
				m.redisUp.Set(1)
				m.redisPing.Set(time.Since(start).Seconds())
			}
		}
	}()
}
