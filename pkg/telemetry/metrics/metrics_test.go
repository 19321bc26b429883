package metrics

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"balticwatch/pkg/config"
)

func scrape(t *testing.T, c *Collector) string {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	c.Handler().ServeHTTP(rec, req)
	return rec.Body.String()
}

func TestRecordCollection(t *testing.T) {
	c := NewCollector(nil, prometheus.NewRegistry())

	c.RecordCollection(120, 2*time.Second, nil)
	c.RecordCollection(0, time.Second, errors.New("feed down"))

	body := scrape(t, c)
	if !strings.Contains(body, `balticwatch_collector_cycles_total{status="success"} 1`) {
		t.Errorf("missing success cycle:\n%s", body)
	}
	if !strings.Contains(body, `balticwatch_collector_cycles_total{status="error"} 1`) {
		t.Errorf("missing error cycle:\n%s", body)
	}
	if !strings.Contains(body, "balticwatch_collector_positions_total 120") {
		t.Errorf("missing position count:\n%s", body)
	}
}

func TestRecordRetentionRun(t *testing.T) {
	c := NewCollector(nil, prometheus.NewRegistry())

	c.RecordRetentionRun("crossing", 7, 3, 42, time.Second, nil)

	body := scrape(t, c)
	if !strings.Contains(body, `balticwatch_retention_runs_total{status="success",variant="crossing"} 1`) {
		t.Errorf("missing run counter:\n%s", body)
	}
	if !strings.Contains(body, `balticwatch_retention_verdicts_total{disposition="keep"} 7`) {
		t.Errorf("missing keep verdicts:\n%s", body)
	}
	if !strings.Contains(body, `balticwatch_retention_verdicts_total{disposition="delete"} 3`) {
		t.Errorf("missing delete verdicts:\n%s", body)
	}
	if !strings.Contains(body, "balticwatch_retention_rows_deleted_total 42") {
		t.Errorf("missing deleted rows:\n%s", body)
	}
}

func TestCustomNamespace(t *testing.T) {
	cfg := &config.MetricsConfig{Namespace: "ais"}
	c := NewCollector(cfg, prometheus.NewRegistry())
	c.SetBoundaryFeatures(12)

	body := scrape(t, c)
	if !strings.Contains(body, "ais_territory_boundary_features 12") {
		t.Errorf("namespace not applied:\n%s", body)
	}
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *Collector
	c.RecordCollection(1, time.Second, nil)
	c.RecordRetentionRun("flagged", 1, 1, 1, time.Second, nil)
	c.SetBoundaryFeatures(3)
}
