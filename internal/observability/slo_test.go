package observability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
)

func TestRollingSumWraps(t *testing.T) {
	r := newRollingSum(3)
	for _, v := range []float64{1, 2, 3, 4} {
		r.add(v)
	}
	if r.total != 9 {
		t.Fatalf("expected 2+3+4=9, got %v", r.total)
	}
}

func TestSLOEvaluatorComputesRatios(t *testing.T) {
	m := NewMetrics()
	e := newSLOEvaluator(m, logger.NewNop(), SLOConfig{
		Enabled:               true,
		Interval:              time.Minute,
		Window:                24 * time.Hour,
		APIAvailabilityTarget: 0.9,
		APILatencyTarget:      0.5,
		NotificationTarget:    0.99,
	})

	for i := 0; i < 8; i++ {
		m.ObserveAPI("GET", "/modules", 200, time.Millisecond)
	}
	m.ObserveAPI("GET", "/modules", 500, time.Millisecond)
	m.ObserveAPI("GET", "/modules", 200, 2*time.Second)
	e.evaluate(context.Background())

	avail := testutil.ToFloat64(m.sloCompliance.WithLabelValues("api_availability", "1d"))
	if avail != 0.9 {
		t.Fatalf("api_availability: want 0.9 got %v", avail)
	}
	latency := testutil.ToFloat64(m.sloCompliance.WithLabelValues("api_latency", "1d"))
	if latency != 0.9 {
		t.Fatalf("api_latency: want 0.9 got %v", latency)
	}
	if got := testutil.ToFloat64(m.sloBudget.WithLabelValues("notification_delivery", "1d")); got != 1 {
		t.Fatalf("idle notification budget: want 1 got %v", got)
	}

	// Only the delta since the last sample counts.
	m.ObserveAPI("GET", "/modules", 200, time.Millisecond)
	e.evaluate(context.Background())
	avail = testutil.ToFloat64(m.sloCompliance.WithLabelValues("api_availability", "1d"))
	if avail <= 0.9 || avail >= 1 {
		t.Fatalf("api_availability after one more success: got %v", avail)
	}
}

func TestSLOEvaluatorAlertsOnBurn(t *testing.T) {
	var (
		mu       sync.Mutex
		payloads []map[string]any
	)
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p map[string]any
		_ = json.NewDecoder(r.Body).Decode(&p)
		mu.Lock()
		payloads = append(payloads, p)
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer hook.Close()

	m := NewMetrics()
	e := newSLOEvaluator(m, logger.NewNop(), SLOConfig{
		Enabled:               true,
		Interval:              time.Minute,
		Window:                time.Hour,
		APIAvailabilityTarget: 1,
		APILatencyTarget:      0,
		NotificationTarget:    0.9,
		AlertWebhookURL:       hook.URL,
		AlertOwner:            "oncall",
	})

	m.IncNotification("published")
	m.IncNotification("publish_failed")
	e.evaluate(context.Background())
	e.evaluate(context.Background())

	mu.Lock()
	defer mu.Unlock()
	if len(payloads) != 1 {
		t.Fatalf("expected one rate-limited alert, got %d", len(payloads))
	}
	if payloads[0]["slo"] != "notification_delivery" || payloads[0]["severity"] != "warning" {
		t.Fatalf("unexpected alert payload %v", payloads[0])
	}
}

func TestFormatWindowLabel(t *testing.T) {
	for window, want := range map[time.Duration]string{
		720 * time.Hour: "30d",
		36 * time.Hour:  "36h",
		time.Hour:       "1h",
	} {
		if got := formatWindowLabel(window); got != want {
			t.Fatalf("formatWindowLabel(%s): want %q got %q", window, want, got)
		}
	}
}
