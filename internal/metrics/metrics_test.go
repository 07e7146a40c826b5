package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func getCounterVecValue(cv *prometheus.CounterVec, labels ...string) float64 {
	c, err := cv.GetMetricWithLabelValues(labels...)
	if err != nil {
		return 0
	}
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

func TestMetrics_RemoteRequestsTotal(t *testing.T) {
	before := getCounterVecValue(RemoteRequestsTotal, "/api/config", "success")
	RemoteRequestsTotal.WithLabelValues("/api/config", "success").Inc()
	after := getCounterVecValue(RemoteRequestsTotal, "/api/config", "success")

	if after != before+1 {
		t.Errorf("Expected success counter to increment by 1, got diff %.0f", after-before)
	}
}

func TestMetrics_RemoteRequestsTotal_Failure(t *testing.T) {
	before := getCounterVecValue(RemoteRequestsTotal, "/api/file", "gateway_timeout")
	RemoteRequestsTotal.WithLabelValues("/api/file", "gateway_timeout").Inc()
	after := getCounterVecValue(RemoteRequestsTotal, "/api/file", "gateway_timeout")

	if after != before+1 {
		t.Errorf("Expected failure counter to increment by 1, got diff %.0f", after-before)
	}
}

func TestMetrics_ToolCallsTotal(t *testing.T) {
	before := getCounterVecValue(ToolCallsTotal, "start_subtitle_task", "success")
	ToolCallsTotal.WithLabelValues("start_subtitle_task", "success").Inc()
	after := getCounterVecValue(ToolCallsTotal, "start_subtitle_task", "success")

	if after != before+1 {
		t.Errorf("Expected tool counter to increment by 1, got diff %.0f", after-before)
	}
}

func TestMetrics_RemoteRequestDuration(t *testing.T) {
	RemoteRequestDuration.WithLabelValues("/api/config").Observe(0.05)

	h, err := RemoteRequestDuration.GetMetricWithLabelValues("/api/config")
	if err != nil {
		t.Fatalf("GetMetricWithLabelValues failed: %v", err)
	}

	var m dto.Metric
	if err := h.(prometheus.Metric).Write(&m); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if m.GetHistogram().GetSampleCount() == 0 {
		t.Error("Expected at least one observation")
	}
}

func TestMetrics_NewHTTPServer(t *testing.T) {
	srv := NewHTTPServer("localhost", 9090)

	if srv.Addr != "localhost:9090" {
		t.Errorf("Expected address 'localhost:9090', got '%s'", srv.Addr)
	}

	if srv.Handler == nil {
		t.Error("Expected handler to be set")
	}
}

func TestMetrics_NewHTTPServer_DefaultPort(t *testing.T) {
	srv := NewHTTPServer("0.0.0.0", 0)

	if srv.Addr != "0.0.0.0:9090" {
		t.Errorf("Expected address '0.0.0.0:9090', got '%s'", srv.Addr)
	}
}
