package http_server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/nabeel-hussain/ToDoApp/internal/application/core"
)

func TestHandlerServesHealthAndExtras(t *testing.T) {
	comp := NewHTTPServerComponent(&HTTPServerConfig{Enabled: true, EnableHealth: true, CORSOrigins: []string{"http://localhost:3000"}}, core.NewContainer())
	if err := comp.AddRouteRegistrar(func(r chi.Router, c *core.Container) error {
		r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("pong")) })
		return nil
	}); err != nil {
		t.Fatalf("add registrar: %v", err)
	}
	h, err := comp.Handler()
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	srv := httptest.NewServer(h)
	defer srv.Close()

	cases := []struct {
		path   string
		status int
		body   string
	}{
		{"/healthz", http.StatusOK, "ok"},
		{"/ping", http.StatusOK, "pong"},
		{"/missing", http.StatusNotFound, ""},
	}
	for _, tc := range cases {
		resp, err := http.Get(srv.URL + tc.path)
		if err != nil {
			t.Fatalf("get %s: %v", tc.path, err)
		}
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if resp.StatusCode != tc.status {
			t.Fatalf("%s: status %d want %d", tc.path, resp.StatusCode, tc.status)
		}
		if tc.body != "" && string(b) != tc.body {
			t.Fatalf("%s: body %q want %q", tc.path, b, tc.body)
		}
	}

	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent || resp.Header.Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Fatalf("unexpected preflight response: %d %v", resp.StatusCode, resp.Header)
	}
}

func TestStartStopOnEphemeralPort(t *testing.T) {
	comp := NewHTTPServerComponent(&HTTPServerConfig{Enabled: true, Address: "127.0.0.1:0", EnableHealth: true}, core.NewContainer())
	ctx := context.Background()
	if err := comp.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := comp.HealthCheck(); err != nil {
		t.Fatalf("health: %v", err)
	}
	resp, err := http.Get("http://" + comp.Addr() + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if err := comp.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if err := comp.AddRouteRegistrar(nil); err != nil {
		t.Fatalf("registrar after stop should be allowed: %v", err)
	}
}

func TestRequestIDHeader(t *testing.T) {
	comp := NewHTTPServerComponent(&HTTPServerConfig{Enabled: true}, core.NewContainer())
	_ = comp.AddRouteRegistrar(func(r chi.Router, c *core.Container) error {
		r.Get("/rid", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(middleware.GetReqID(r.Context())))
		})
		return nil
	})
	h, err := comp.Handler()
	if err != nil {
		t.Fatalf("handler: %v", err)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rid", nil))
	generated := rec.Header().Get("X-Request-Id")
	if _, err := uuid.Parse(generated); err != nil {
		t.Fatalf("generated id %q is not a uuid: %v", generated, err)
	}
	if rec.Body.String() != generated {
		t.Fatalf("context id %q differs from header %q", rec.Body.String(), generated)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/rid", nil)
	req.Header.Set("X-Request-Id", "upstream-42")
	h.ServeHTTP(rec, req)
	if rec.Header().Get("X-Request-Id") != "upstream-42" || rec.Body.String() != "upstream-42" {
		t.Fatalf("upstream id not kept: header=%q body=%q", rec.Header().Get("X-Request-Id"), rec.Body.String())
	}
}
