package http_server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/riandyrn/otelchi"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/nabeel-hussain/ToDoApp/internal/application/components/logging"
	"github.com/nabeel-hussain/ToDoApp/internal/application/consts"
	"github.com/nabeel-hussain/ToDoApp/internal/application/core"
)

type HTTPServerComponent struct {
	*core.BaseComponent
	cfg       *HTTPServerConfig
	container *core.Container

	mu       sync.Mutex
	router   chi.Router
	server   *http.Server
	listener net.Listener
	extras   []RouteRegisterFunc
	started  bool
}

func NewHTTPServerComponent(cfg *HTTPServerConfig, c *core.Container, deps ...string) *HTTPServerComponent {
	cfg.applyDefaults()
	return &HTTPServerComponent{
		BaseComponent: core.NewBaseComponent(consts.COMPONENT_HTTP_SERVER, deps...),
		cfg:           cfg,
		container:     c,
	}
}

// AddRouteRegistrar 仅允许在启动前调用（例如 BeforeStart 钩子）。
func (hc *HTTPServerComponent) AddRouteRegistrar(fn RouteRegisterFunc) error {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	if hc.started {
		return fmt.Errorf("cannot register route: http_server already started")
	}
	if fn != nil {
		hc.extras = append(hc.extras, fn)
	}
	return nil
}

// Handler 构建完整路由（中间件 + 内置端点 + 业务路由），测试可直接配合 httptest 使用。
func (hc *HTTPServerComponent) Handler() (http.Handler, error) {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(hc.cfg.RequestTimeout))
	r.Use(otelchi.Middleware(hc.cfg.ServiceName, otelchi.WithChiRoutes(r)))
	if len(hc.cfg.CORSOrigins) > 0 {
		r.Use(corsMiddleware(hc.cfg.CORSOrigins))
	}
	r.Use(accessLog)

	if hc.cfg.EnableHealth {
		r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
	}

	hc.mu.Lock()
	all := append(snapshot(), hc.extras...)
	hc.mu.Unlock()
	for _, fn := range all {
		if err := fn(r, hc.container); err != nil {
			return nil, fmt.Errorf("route register failed: %w", err)
		}
	}
	hc.router = r
	return r, nil
}

func (hc *HTTPServerComponent) Router() chi.Router { return hc.router }

// Addr 返回实际监听地址（配置 :0 时有用）。
func (hc *HTTPServerComponent) Addr() string {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	if hc.listener == nil {
		return hc.cfg.Address
	}
	return hc.listener.Addr().String()
}

func (hc *HTTPServerComponent) Start(ctx context.Context) error {
	handler, err := hc.Handler()
	if err != nil {
		return err
	}
	ln, err := net.Listen("tcp", hc.cfg.Address)
	if err != nil {
		return fmt.Errorf("http_server listen %s: %w", hc.cfg.Address, err)
	}
	srv := &http.Server{
		Handler:      handler,
		ReadTimeout:  hc.cfg.ReadTimeout,
		WriteTimeout: hc.cfg.WriteTimeout,
		IdleTimeout:  hc.cfg.IdleTimeout,
	}

	hc.mu.Lock()
	hc.server, hc.listener, hc.started = srv, ln, true
	hc.mu.Unlock()

	go func() {
		logging.Infof(ctx, "http_server listening on %s", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error(context.Background(), "http_server serve failed", zap.Error(err))
		}
	}()
	return hc.BaseComponent.Start(ctx)
}

func (hc *HTTPServerComponent) Stop(ctx context.Context) error {
	defer hc.BaseComponent.Stop(ctx)
	hc.mu.Lock()
	srv, started := hc.server, hc.started
	hc.started = false
	hc.mu.Unlock()
	if !started || srv == nil {
		return nil
	}
	stopCtx, cancel := context.WithTimeout(ctx, hc.cfg.GracefulTimeout)
	defer cancel()
	if err := srv.Shutdown(stopCtx); err != nil {
		return fmt.Errorf("http_server graceful shutdown failed: %w", err)
	}
	logging.Info(ctx, "http_server stopped")
	return nil
}

func (hc *HTTPServerComponent) HealthCheck() error {
	if err := hc.BaseComponent.HealthCheck(); err != nil {
		return err
	}
	hc.mu.Lock()
	defer hc.mu.Unlock()
	if !hc.started {
		return fmt.Errorf("http_server not started")
	}
	return nil
}

type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestID 沿用上游 X-Request-Id，缺失时生成 uuid；写回响应头并放入 chi 的 ctx key。
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(middleware.RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(middleware.RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		if sc := trace.SpanContextFromContext(r.Context()); sc.IsValid() {
			w.Header().Set("traceparent", fmt.Sprintf("00-%s-%s-%s", sc.TraceID(), sc.SpanID(), sc.TraceFlags()))
		}

		next.ServeHTTP(sw, r)

		logging.Info(r.Context(), "http_access",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("query", r.URL.RawQuery),
			zap.String("remote", r.RemoteAddr),
			zap.Int("status", sw.status),
			zap.Int("bytes", sw.bytes),
			zap.Duration("dur", time.Since(start)),
			zap.String(consts.KEY_RequestID, middleware.GetReqID(r.Context())),
		)
	})
}

func corsMiddleware(origins []string) func(http.Handler) http.Handler {
	allowAll := false
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
		allowed[strings.TrimRight(o, "/")] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if _, ok := allowed[origin]; ok || (allowAll && origin != "") {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Content-Type, traceparent")
				h.Add("Vary", "Origin")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
