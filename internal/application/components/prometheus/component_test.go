package prometheus

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCounterExposedThroughHandler(t *testing.T) {
	c := NewComponent(&Config{Enabled: true, Namespace: "todo", DisableGoMetrics: true, DisableProcess: true})
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer c.Stop(context.Background())

	if C() != c {
		t.Fatalf("global component not registered")
	}
	cv := c.NewCounter("task_operations_total", "ops", []string{"op"})
	if again := c.NewCounter("task_operations_total", "ops", []string{"op"}); again != cv {
		t.Fatalf("expected cached counter")
	}
	cv.WithLabelValues("create").Inc()

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()
	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), `todo_task_operations_total{op="create"} 1`) {
		t.Fatalf("metric missing from scrape:\n%s", body)
	}
}
