package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func scrape(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	return string(body)
}

func TestHandlerExposesRecordedMetrics(t *testing.T) {
	m := New()
	m.ObserveBackend("admin_orders", 200, 20*time.Millisecond)
	m.ObserveConsole("GET", "/api/admin/orders", 200)
	m.ChatFrame("in", "ok")
	m.ChatConnect("ok")
	m.SetBoardOrders(map[string]int{"Processing": 3})
	m.RefreshRun("ok")

	body := scrape(t, m.Handler())

	wants := []string{
		`iowasensors_backend_requests_total{code="200",endpoint="admin_orders"} 1`,
		`iowasensors_backend_request_duration_seconds_count{endpoint="admin_orders"} 1`,
		`iowasensors_console_requests_total{method="GET",route="/api/admin/orders",status="200"} 1`,
		`iowasensors_chat_frames_total{direction="in",result="ok"} 1`,
		`iowasensors_chat_connects_total{result="ok"} 1`,
		`iowasensors_board_orders{bucket="Processing"} 3`,
		`iowasensors_refresher_runs_total{result="ok"} 1`,
		`go_goroutines`,
	}
	for _, want := range wants {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in scrape output", want)
		}
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveBackend("x", 500, time.Second)
	m.ObserveConsole("GET", "/", 200)
	m.ChatFrame("out", "ok")
	m.ChatConnect("error")
	m.SetBoardOrders(map[string]int{"Canceled": 1})
	m.RefreshRun("error")

	_ = scrape(t, m.Handler())
}
