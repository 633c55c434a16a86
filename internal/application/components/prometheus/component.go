package prometheus

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nabeel-hussain/ToDoApp/internal/application/components/logging"
	"github.com/nabeel-hussain/ToDoApp/internal/application/consts"
	"github.com/nabeel-hussain/ToDoApp/internal/application/core"
)

type Component struct {
	*core.BaseComponent
	cfg      *Config
	registry *prometheus.Registry
	server   *http.Server

	mu         sync.Mutex
	counters   map[string]*prometheus.CounterVec
	histograms map[string]*prometheus.HistogramVec
}

func NewComponent(cfg *Config, deps ...string) *Component {
	if cfg.Path == "" {
		cfg.Path = "/metrics"
	}
	c := &Component{
		BaseComponent: core.NewBaseComponent(consts.COMPONENT_PROMETHEUS, deps...),
		cfg:           cfg,
		registry:      prometheus.NewRegistry(),
		counters:      map[string]*prometheus.CounterVec{},
		histograms:    map[string]*prometheus.HistogramVec{},
	}
	if !cfg.DisableGoMetrics {
		c.registry.MustRegister(collectors.NewGoCollector())
	}
	if !cfg.DisableProcess {
		c.registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	return c
}

func (c *Component) Start(ctx context.Context) error {
	if c.cfg.Address != "" {
		mux := http.NewServeMux()
		mux.Handle(c.cfg.Path, c.Handler())
		c.server = &http.Server{Addr: c.cfg.Address, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			logging.Infof(ctx, "prometheus metrics listening on %s%s", c.cfg.Address, c.cfg.Path)
			if err := c.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logging.Errorf(context.Background(), "prometheus server error: %v", err)
			}
		}()
	}
	registerGlobal(c)
	return c.BaseComponent.Start(ctx)
}

func (c *Component) Stop(ctx context.Context) error {
	defer c.BaseComponent.Stop(ctx)
	registerGlobal(nil)
	if c.server == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := c.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("prometheus server shutdown: %w", err)
	}
	logging.Info(ctx, "prometheus component stopped")
	return nil
}

func (c *Component) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Component) Registry() *prometheus.Registry { return c.registry }

// HasListener 为 false 时由 HTTP 服务组件挂载抓取路径。
func (c *Component) HasListener() bool { return c.cfg.Address != "" }

func (c *Component) Path() string { return c.cfg.Path }

func (c *Component) fqName(name string) string {
	return prometheus.BuildFQName(c.cfg.Namespace, c.cfg.Subsystem, name)
}

// NewCounter 同名重复注册时返回已有实例。
func (c *Component) NewCounter(name, help string, labels []string) *prometheus.CounterVec {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cv, ok := c.counters[name]; ok {
		return cv
	}
	cv := prometheus.NewCounterVec(prometheus.CounterOpts{Name: c.fqName(name), Help: help}, labels)
	c.registry.MustRegister(cv)
	c.counters[name] = cv
	return cv
}

func (c *Component) NewHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	c.mu.Lock()
	defer c.mu.Unlock()
	if hv, ok := c.histograms[name]; ok {
		return hv
	}
	if len(buckets) == 0 {
		buckets = prometheus.DefBuckets
	}
	hv := prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: c.fqName(name), Help: help, Buckets: buckets}, labels)
	c.registry.MustRegister(hv)
	c.histograms[name] = hv
	return hv
}
