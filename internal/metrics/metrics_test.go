package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_RecordHTTPRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPRequest(http.MethodGet, "/projects/{id}", 200)
	c.RecordHTTPRequest(http.MethodGet, "/projects/{id}", 200)
	c.RecordHTTPRequest(http.MethodGet, "/projects/{id}", 404)

	got := testutil.ToFloat64(c.httpRequests.WithLabelValues("GET", "/projects/{id}", "200"))
	if got != 2 {
		t.Errorf("200 count = %v, want 2", got)
	}
	got = testutil.ToFloat64(c.httpRequests.WithLabelValues("GET", "/projects/{id}", "404"))
	if got != 1 {
		t.Errorf("404 count = %v, want 1", got)
	}
}

func TestCollector_AuthCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRegistration()
	c.RecordLoginSuccess()
	c.RecordLoginFailure()
	c.RecordLoginFailure()

	if got := testutil.ToFloat64(c.registrations); got != 1 {
		t.Errorf("registrations = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.loginSuccess); got != 1 {
		t.Errorf("loginSuccess = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.loginFail); got != 2 {
		t.Errorf("loginFail = %v, want 2", got)
	}
}

func TestCollector_RecordRequestLatency(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRequestLatency(25 * time.Millisecond)

	count := testutil.CollectAndCount(c.requestLatency, "taskboard_request_latency_seconds")
	if count != 1 {
		t.Errorf("metric families = %d, want 1", count)
	}
}

func TestHandler_ExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordRegistration()

	handler := Handler(reg)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	if !strings.Contains(string(body), "taskboard_registrations_total 1") {
		t.Errorf("metrics output missing registration counter:\n%s", body)
	}
}

// インターフェースの実装を確認
var _ MetricsCollector = (*Collector)(nil)
