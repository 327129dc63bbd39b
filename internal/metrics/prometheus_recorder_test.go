package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveGenerationDuration("core", 1500*time.Millisecond)
	pr.IncConfigResult("core", ResultSuccess)
	pr.IncConfigResult("core", ResultSkipped)
	pr.IncConfigResult("core", ResultSkipped)
	pr.ObserveRunDuration(2 * time.Second)
	pr.IncRunOutcome(RunSuccess)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(mfs) != 4 {
		t.Fatalf("expected 4 metric families, got %d", len(mfs))
	}
	if got := testutil.ToFloat64(pr.configResults.WithLabelValues("core", "skipped")); got != 2 {
		t.Fatalf("expected 2 skipped results, got %v", got)
	}
}

func TestPrometheusRecorder_WriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncRunOutcome(RunFailed)

	path := filepath.Join(t.TempDir(), "docpipe.prom")
	if err := pr.WriteTextfile(path); err != nil {
		t.Fatalf("write textfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	if !strings.Contains(string(data), `docpipe_run_outcomes_total{outcome="failed"} 1`) {
		t.Fatalf("unexpected textfile contents:\n%s", data)
	}
}

func TestNilPrometheusRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.IncRunOutcome(RunAborted)
	pr.ObserveRunDuration(time.Second)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.IncConfigResult("core", ResultFailed)
	r.ObserveGenerationDuration("core", time.Second)
}
