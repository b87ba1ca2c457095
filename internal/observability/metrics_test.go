package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/x", 200, time.Millisecond)
	m.ApiInflightInc()
	m.ApiInflightDec()
	m.WSConnected()
	m.WSDisconnected()
	m.IncWSDropped()
	m.ObserveQuizScore(50)
	m.IncLessonCompletion("completed")
	m.IncNotification("created")
	m.IncAuthFailure("http")
	m.RegisterDB(nil, nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("nil handler: want 503 got %d", rec.Code)
	}
}

func TestMetricsCountAndExpose(t *testing.T) {
	m := NewMetrics()
	m.ObserveAPI("GET", "/modules", 200, 3*time.Millisecond)
	m.ObserveAPI("GET", "/modules", 200, 3*time.Millisecond)
	m.IncLessonCompletion("completed")
	m.WSConnected()

	if got := testutil.ToFloat64(m.apiRequests.WithLabelValues("GET", "/modules", "200")); got != 2 {
		t.Fatalf("api_requests_total: want 2 got %v", got)
	}
	if got := testutil.ToFloat64(m.wsConnections); got != 1 {
		t.Fatalf("ws_connections: want 1 got %v", got)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	for _, want := range []string{
		"skillbridge_api_requests_total",
		"skillbridge_lesson_completions_total{status=\"completed\"} 1",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("metrics output missing %q", want)
		}
	}
}

func TestParseHeaders(t *testing.T) {
	got := ParseHeaders(" a=1, broken ,b = 2,c=")
	if len(got) != 2 || got["a"] != "1" || got["b"] != "2" {
		t.Fatalf("ParseHeaders: got %v", got)
	}
	if ParseHeaders("") != nil {
		t.Fatalf("ParseHeaders(empty): want nil")
	}
}
