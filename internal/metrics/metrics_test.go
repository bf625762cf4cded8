package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/khrees2412/hireboard/internal/apperr"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserve(t *testing.T) {
	m := New()
	start := time.Now()

	m.Observe("apply_for_job", start, nil)
	m.Observe("apply_for_job", start, apperr.ErrAlreadyApplied)
	m.Observe("apply_for_job", start, apperr.ErrAlreadyApplied)
	m.Observe("login", start, apperr.Invalid("email", "is required"))

	if got := testutil.ToFloat64(m.operations.WithLabelValues("apply_for_job", "ok")); got != 1 {
		t.Errorf("ok count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.operations.WithLabelValues("apply_for_job", "already_applied")); got != 2 {
		t.Errorf("already_applied count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.operations.WithLabelValues("login", "validation")); got != 1 {
		t.Errorf("validation count = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(m.duration); n != 2 {
		t.Errorf("expected 2 duration series, got %d", n)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.Observe("login", time.Now(), nil)
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.Observe("create_job", time.Now(), nil)

	path := filepath.Join(t.TempDir(), "hireboard.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("write textfile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `hireboard_operations_total{operation="create_job",outcome="ok"} 1`) {
		t.Errorf("textfile missing counter:\n%s", data)
	}
}
