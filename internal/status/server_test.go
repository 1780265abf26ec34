package status

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	s := NewServer("", "1.2.3", SessionInfo{}, NewMetrics(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	s.handleHealthz().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q, want %q", resp.Status, "ok")
	}
}

func TestStatus(t *testing.T) {
	t.Parallel()

	metrics := NewMetrics()
	metrics.RecordInvocation("read_file", OutcomeOK, 5*time.Millisecond)
	metrics.RecordInvocation("read_file", OutcomeOK, 5*time.Millisecond)
	metrics.RecordInvocation("write_file", OutcomeError, time.Millisecond)

	session := SessionInfo{
		Provider:    "anthropic",
		Model:       "claude-test",
		ProjectFile: "/work/btw.md",
		Tools:       []string{"read_file", "write_file"},
	}
	s := NewServer("", "1.2.3", session, metrics, testLogger())
	s.startedAt = time.Now()

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rr := httptest.NewRecorder()
	s.handleStatus().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp StatusResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if resp.Version != "1.2.3" {
		t.Errorf("version = %q", resp.Version)
	}
	if resp.Session.Provider != "anthropic" {
		t.Errorf("provider = %q", resp.Session.Provider)
	}
	if resp.Metrics.Invocations != 2 {
		t.Errorf("invocations = %d, want 2", resp.Metrics.Invocations)
	}
	if resp.Metrics.Errors != 1 {
		t.Errorf("errors = %d, want 1", resp.Metrics.Errors)
	}
	if resp.Metrics.AvgLatency <= 0 {
		t.Errorf("avg latency = %v, want > 0", resp.Metrics.AvgLatency)
	}
}

func TestStatus_UptimeInSeconds(t *testing.T) {
	t.Parallel()

	s := NewServer("", "dev", SessionInfo{}, NewMetrics(), testLogger())
	s.startedAt = time.Now().Add(-90 * time.Second)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rr := httptest.NewRecorder()
	s.handleStatus().ServeHTTP(rr, req)

	var raw map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&raw); err != nil {
		t.Fatalf("decode: %v", err)
	}

	uptime, ok := raw["uptime_seconds"].(float64)
	if !ok {
		t.Fatalf("uptime_seconds = %T(%v), want a number", raw["uptime_seconds"], raw["uptime_seconds"])
	}
	if uptime < 90 || uptime > 95 {
		t.Errorf("uptime_seconds = %v, want ~90", uptime)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	metrics := NewMetrics()
	metrics.RecordInvocation("list_files", OutcomeOK, time.Millisecond)

	s := NewServer("", "dev", SessionInfo{}, metrics, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	s.buildRouter().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	body := rr.Body.String()
	for _, want := range []string{
		`btw_tool_invocations_total{outcome="ok",tool="list_files"} 1`,
		"btw_tool_duration_seconds_bucket",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("missing %q in metrics output", want)
		}
	}
}

func TestDefaultAddr(t *testing.T) {
	t.Parallel()

	s := NewServer("", "dev", SessionInfo{}, NewMetrics(), testLogger())
	if s.addr != DefaultAddr {
		t.Errorf("addr = %q, want %q", s.addr, DefaultAddr)
	}

	s = NewServer("127.0.0.1:0", "dev", SessionInfo{}, NewMetrics(), testLogger())
	if s.addr != "127.0.0.1:0" {
		t.Errorf("addr = %q", s.addr)
	}
}
