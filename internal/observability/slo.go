package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
)

type SLOConfig struct {
	Enabled  bool
	Interval time.Duration
	Window   time.Duration

	APIAvailabilityTarget float64
	APILatencyTarget      float64
	NotificationTarget    float64

	AlertWebhookURL  string
	AlertOwner       string
	AlertRunbookURL  string
	AlertMinInterval time.Duration
	BurnWarn         float64
	BurnCrit         float64
}

type rollingSum struct {
	values []float64
	idx    int
	total  float64
}

func newRollingSum(size int) *rollingSum {
	if size < 1 {
		size = 1
	}
	return &rollingSum{values: make([]float64, size)}
}

func (r *rollingSum) add(v float64) {
	r.total += v - r.values[r.idx]
	r.values[r.idx] = v
	r.idx++
	if r.idx >= len(r.values) {
		r.idx = 0
	}
}

// sloSeries tracks one good/bad ratio over the rolling window.
type sloSeries struct {
	name   string
	target float64
	total  *rollingSum
	bad    *rollingSum

	prevTotal float64
	prevBad   float64
}

func (s *sloSeries) observe(total, bad float64) {
	s.total.add(delta(total, s.prevTotal))
	s.bad.add(delta(bad, s.prevBad))
	s.prevTotal = total
	s.prevBad = bad
}

type SLOEvaluator struct {
	metrics *Metrics
	log     *logger.Logger
	cfg     SLOConfig

	windowLabel string

	apiAvailability *sloSeries
	apiLatency      *sloSeries
	notifications   *sloSeries

	alertMu    sync.Mutex
	lastAlerts map[string]time.Time
	client     *http.Client
}

// StartSLOEvaluator samples the request and notification totals every interval
// until ctx is done. It is a no-op when metrics or the evaluator are disabled.
func (m *Metrics) StartSLOEvaluator(ctx context.Context, log *logger.Logger, cfg SLOConfig) {
	if m == nil || !cfg.Enabled {
		return
	}
	eval := newSLOEvaluator(m, log, cfg)
	go eval.run(ctx)
	if log != nil {
		log.Info("SLO evaluator started", "window", eval.windowLabel, "interval", eval.cfg.Interval.String())
	}
}

func newSLOEvaluator(m *Metrics, log *logger.Logger, cfg SLOConfig) *SLOEvaluator {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.Window < time.Hour {
		cfg.Window = 24 * time.Hour
	}
	if cfg.AlertMinInterval <= 0 {
		cfg.AlertMinInterval = 15 * time.Minute
	}
	if cfg.BurnWarn <= 0 {
		cfg.BurnWarn = 2
	}
	if cfg.BurnCrit <= 0 {
		cfg.BurnCrit = 10
	}
	cfg.AlertWebhookURL = strings.TrimSpace(cfg.AlertWebhookURL)
	cfg.AlertOwner = strings.TrimSpace(cfg.AlertOwner)

	size := int(cfg.Window / cfg.Interval)
	series := func(name string, target float64) *sloSeries {
		return &sloSeries{name: name, target: clamp01(target), total: newRollingSum(size), bad: newRollingSum(size)}
	}
	return &SLOEvaluator{
		metrics:         m,
		log:             log,
		cfg:             cfg,
		windowLabel:     formatWindowLabel(cfg.Window),
		apiAvailability: series("api_availability", cfg.APIAvailabilityTarget),
		apiLatency:      series("api_latency", cfg.APILatencyTarget),
		notifications:   series("notification_delivery", cfg.NotificationTarget),
		lastAlerts:      map[string]time.Time{},
		client:          &http.Client{Timeout: 5 * time.Second},
	}
}

func (e *SLOEvaluator) run(ctx context.Context) {
	ticker := time.NewTicker(e.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.evaluate(ctx)
		}
	}
}

func (e *SLOEvaluator) evaluate(ctx context.Context) {
	m := e.metrics
	apiTotal := float64(m.apiTotal.Load())
	published := float64(m.notifyPublished.Load())
	failed := float64(m.notifyFailed.Load())

	e.apiAvailability.observe(apiTotal, float64(m.apiErrors.Load()))
	e.apiLatency.observe(apiTotal, apiTotal-float64(m.apiFast.Load()))
	e.notifications.observe(published+failed, failed)

	for _, s := range []*sloSeries{e.apiAvailability, e.apiLatency, e.notifications} {
		e.evalSLO(ctx, s)
	}
}

func (e *SLOEvaluator) evalSLO(ctx context.Context, s *sloSeries) {
	total, bad := s.total.total, s.bad.total
	if total <= 0 {
		e.metrics.sloCompliance.WithLabelValues(s.name, e.windowLabel).Set(1)
		e.metrics.sloBudget.WithLabelValues(s.name, e.windowLabel).Set(1)
		e.metrics.sloBurn.WithLabelValues(s.name, e.windowLabel).Set(0)
		return
	}
	sli := clamp01(1 - bad/total)
	burn := 0.0
	if s.target < 1 {
		burn = (1 - sli) / (1 - s.target)
	}
	budget := clamp01(1 - burn)
	e.metrics.sloCompliance.WithLabelValues(s.name, e.windowLabel).Set(sli)
	e.metrics.sloBudget.WithLabelValues(s.name, e.windowLabel).Set(budget)
	e.metrics.sloBurn.WithLabelValues(s.name, e.windowLabel).Set(burn)

	if e.cfg.AlertWebhookURL == "" || e.cfg.AlertOwner == "" {
		return
	}
	severity := ""
	if burn >= e.cfg.BurnCrit {
		severity = "critical"
	} else if burn >= e.cfg.BurnWarn {
		severity = "warning"
	}
	if severity == "" {
		return
	}
	key := s.name + ":" + severity
	e.alertMu.Lock()
	last := e.lastAlerts[key]
	if !last.IsZero() && time.Since(last) < e.cfg.AlertMinInterval {
		e.alertMu.Unlock()
		return
	}
	e.lastAlerts[key] = time.Now()
	e.alertMu.Unlock()
	e.sendAlert(ctx, s, severity, sli, burn, budget)
}

func (e *SLOEvaluator) sendAlert(ctx context.Context, s *sloSeries, severity string, sli, burn, budget float64) {
	payload := map[string]any{
		"title":                  "SLO burn rate alert",
		"service":                namespace,
		"severity":               severity,
		"owner":                  e.cfg.AlertOwner,
		"slo":                    s.name,
		"window":                 e.windowLabel,
		"sli":                    sli,
		"target":                 s.target,
		"burn_rate":              burn,
		"error_budget_remaining": budget,
		"runbook":                e.cfg.AlertRunbookURL,
		"timestamp":              time.Now().UTC().Format(time.RFC3339),
	}
	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.AlertWebhookURL, bytes.NewReader(body))
	if err != nil {
		if e.log != nil {
			e.log.Warn("slo alert request build failed", "error", err, "slo", s.name)
		}
		return
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := e.client.Do(req)
	if err != nil {
		if e.log != nil {
			e.log.Warn("slo alert post failed", "error", err, "slo", s.name)
		}
		return
	}
	_ = resp.Body.Close()
	if e.log != nil {
		e.log.Info("slo alert sent", "slo", s.name, "severity", severity, "status", resp.StatusCode)
	}
}

// delta treats a decrease as a counter reset.
func delta(current, prev float64) float64 {
	if current < prev {
		return current
	}
	return current - prev
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func formatWindowLabel(window time.Duration) string {
	hours := window.Hours()
	if hours >= 24 && int(hours)%24 == 0 && hours == float64(int(hours)) {
		return strconv.Itoa(int(hours/24)) + "d"
	}
	if hours >= 1 {
		return strconv.Itoa(int(hours)) + "h"
	}
	return strconv.Itoa(int(window.Minutes())) + "m"
}
